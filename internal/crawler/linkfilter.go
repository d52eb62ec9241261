package crawler

import "strings"

// articleNamespaceMarker is the path segment that introduces article
// pages on MediaWiki sites ("/wiki/<Article>").
const articleNamespaceMarker = "wiki"

// LinkFilter turns raw anchor hrefs into canonical absolute article
// URLs. It is a pure function over its configuration: the fixed site
// origin and the set of excluded namespace prefixes.
type LinkFilter struct {
	origin   string
	excluded map[string]struct{}
}

// NewLinkFilter creates a LinkFilter for the given site origin and
// excluded namespaces. Origin must not carry a trailing slash; one is
// trimmed defensively since filtered hrefs start with "/".
func NewLinkFilter(origin string, excludedNamespaces []string) *LinkFilter {
	excluded := make(map[string]struct{}, len(excludedNamespaces))
	for _, ns := range excludedNamespaces {
		excluded[ns] = struct{}{}
	}
	return &LinkFilter{
		origin:   strings.TrimSuffix(origin, "/"),
		excluded: excluded,
	}
}

// Filter applies the exclusion rules to each raw href, in order:
//
//  1. Absolute links (http:// or https://) are external and dropped.
//  2. Fragment links (#...) point inside the current page.
//  3. The first path segment must be the article namespace marker.
//  4. The segment after the marker must not start with an excluded
//     namespace prefix (the part before its first ':').
//
// Survivors are prefixed with the site origin, deduplicated in
// first-seen order, and any canonical URL equal to pageURL is removed.
// The reference implementation instead dropped the final list entry
// positionally, assuming it was always the page's self-link; that
// heuristic silently loses a legitimate link whenever no self-link is
// present, so it is replaced here with the explicit same-URL check.
//
// Malformed hrefs are skipped individually; the result for a page
// with nothing viable is an empty list, never an error.
func (lf *LinkFilter) Filter(pageURL string, hrefs []string) []string {
	result := make([]string, 0, len(hrefs))
	seen := make(map[string]struct{}, len(hrefs))

	for _, href := range hrefs {
		if href == "" {
			continue
		}
		if strings.Contains(href, "http://") || strings.Contains(href, "https://") {
			continue
		}
		if strings.HasPrefix(href, "#") {
			continue
		}

		segments := strings.Split(href, "/")
		// A root-relative href starts with "/", so the first split
		// segment is empty.
		if len(segments) > 0 && segments[0] == "" {
			segments = segments[1:]
		}
		if len(segments) < 2 || segments[0] != articleNamespaceMarker {
			continue
		}

		namespace := strings.SplitN(segments[1], ":", 2)[0]
		if _, ok := lf.excluded[namespace]; ok {
			continue
		}

		canonical := lf.origin + "/" + strings.Join(segments, "/")
		if canonical == pageURL {
			continue
		}
		if _, ok := seen[canonical]; ok {
			continue
		}
		seen[canonical] = struct{}{}
		result = append(result, canonical)
	}

	return result
}
