package analysis

// Cycles counts the independent cycles in the undirected projection of
// the graph: edges minus nodes plus connected components, the size of
// the graph's cycle basis. An empty graph has zero cycles.
func (a *Analyzer) Cycles() int {
	u := a.graph.Undirected()
	nodes := u.Nodes()
	if len(nodes) == 0 {
		return 0
	}

	uf := newUnionFind(nodes)
	for _, url := range nodes {
		for _, neighbor := range u.Neighbors(url) {
			uf.union(url, neighbor)
		}
	}

	count := u.EdgeCount() - u.NodeCount() + uf.components()
	a.logger.Info("cycle count", "edges", u.EdgeCount(), "nodes", u.NodeCount(), "cycles", count)
	return count
}

// unionFind tracks connected components with path compression.
type unionFind struct {
	parent map[string]string
}

func newUnionFind(nodes []string) *unionFind {
	parent := make(map[string]string, len(nodes))
	for _, n := range nodes {
		parent[n] = n
	}
	return &unionFind{parent: parent}
}

func (uf *unionFind) find(n string) string {
	root := n
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	for uf.parent[n] != root {
		uf.parent[n], n = root, uf.parent[n]
	}
	return root
}

func (uf *unionFind) union(a, b string) {
	ra, rb := uf.find(a), uf.find(b)
	if ra != rb {
		uf.parent[ra] = rb
	}
}

func (uf *unionFind) components() int {
	count := 0
	for n, p := range uf.parent {
		if n == p {
			count++
		}
	}
	return count
}
