package crawler

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Parser extracts the article title and raw anchor hrefs from a page.
//
// golang.org/x/net/html is used rather than regex because it handles
// the malformed markup MediaWiki skins occasionally emit and gives a
// proper DOM walk for nested anchors.
type Parser struct {
	// siteName is the suffix the wiki appends to page titles
	// ("<Article> – <SiteName>"); kept for documentation, the strip
	// is positional (see Title).
	siteName string
}

// ParseResult holds everything extracted from one page in a single
// pass.
type ParseResult struct {
	// Title is the article title with the site suffix stripped.
	Title string

	// Hrefs are the raw, unresolved href attributes of every anchor,
	// in document order. LinkFilter owns canonicalization.
	Hrefs []string
}

// NewParser creates a Parser for a wiki with the given site name.
func NewParser(siteName string) *Parser {
	return &Parser{siteName: siteName}
}

// Parse walks the document and collects the title and anchor hrefs.
// A parse failure is returned as an error; callers degrade it to "no
// links" for the page rather than aborting the crawl.
func (p *Parser) Parse(content io.Reader) (*ParseResult, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{Hrefs: make([]string, 0)}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if result.Title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					result.Title = stripSiteSuffix(strings.TrimSpace(n.FirstChild.Data))
				}
			case "a":
				if href := getAttr(n, "href"); href != "" {
					result.Hrefs = append(result.Hrefs, href)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return result, nil
}

// stripSiteSuffix removes the trailing " – <SiteName>" from a page
// title by dropping the last two whitespace-delimited tokens (the
// dash and the site name). Titles too short to carry the suffix are
// returned unchanged.
func stripSiteSuffix(title string) string {
	fields := strings.Fields(title)
	if len(fields) <= 2 {
		return title
	}
	return strings.Join(fields[:len(fields)-2], " ")
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
