// Package crawler fetches encyclopedia articles and builds the link
// graph through a depth-bounded traversal.
//
// # Components
//
//   - Fetcher: HTTP transport for article pages
//   - Parser: extracts the title and raw anchor hrefs from a page
//   - LinkFilter: turns raw hrefs into canonical article URLs,
//     dropping external links, fragments, and non-article namespaces
//   - SeedSource: resolves the wiki's random-article redirect into a
//     seed URL
//   - Engine: the depth-bounded crawl itself
//
// # Traversal
//
// The engine replaces the reference implementation's unbounded
// recursion with an explicit work list of (url, source, remaining)
// items, processed level by level. A page fetched with remaining
// depth r expands its filtered links as children with depth r−1;
// pages arriving with r < 0 are leaves. Nodes and edges are committed
// to the graph only after their fetch succeeds, so a cancelled or
// failed crawl leaves prior progress intact.
//
// Within one crawl invocation a URL's content is fetched once; a
// re-discovery from another parent still registers its edge but
// becomes a leaf in the discovery tree. This deliberately diverges
// from the reference behavior, whose cost grows with the branching
// factor raised to the depth because every rediscovery re-fetched the
// page. WithRefetch restores the reference behavior.
//
// # Politeness
//
// Requests carry a descriptive User-Agent and are separated by a
// configurable delay. Frontier levels can be fetched concurrently
// with a bounded worker count; the default is fully sequential.
package crawler
