package model

// CrawlNode is one visited article in the crawl discovery tree.
// The tree mirrors discovery order, not graph structure: the same URL
// appears as distinct nodes when it is reachable from multiple parents.
type CrawlNode struct {
	// URL is the canonical article URL.
	URL string `json:"url"`

	// Title is the article title at fetch time.
	Title string `json:"title,omitempty"`

	// Children are the articles discovered through this page's links,
	// in filter output order. Nil for leaves.
	Children []*CrawlNode `json:"children,omitempty"`
}

// Size returns the number of nodes in the tree rooted at n.
func (n *CrawlNode) Size() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += c.Size()
	}
	return total
}

// Walk visits every node of the tree in depth-first discovery order.
// It stops early if fn returns false.
func (n *CrawlNode) Walk(fn func(*CrawlNode) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}
