package crawler

import (
	"bytes"
	"context"
	"net/url"
)

// SeedSource resolves the wiki's random-article redirect into a
// canonical article URL, used to seed crawls when the user supplies
// none and to draw random starting points for the growth test.
type SeedSource struct {
	fetcher    *Fetcher
	parser     *Parser
	origin     string
	randomPage string
}

// NewSeedSource creates a SeedSource. randomPage is the path under
// /wiki/ of the random-article redirect (already percent-encoded).
func NewSeedSource(fetcher *Fetcher, parser *Parser, origin, randomPage string) *SeedSource {
	return &SeedSource{
		fetcher:    fetcher,
		parser:     parser,
		origin:     origin,
		randomPage: randomPage,
	}
}

// RandomArticleURL fetches the random-article redirect, extracts the
// landing article's title, and rebuilds its canonical URL from the
// percent-encoded title. Rebuilding from the title rather than the
// final response URL reproduces the node keys the link filter
// produces, so random seeds dedupe against crawled nodes.
func (s *SeedSource) RandomArticleURL(ctx context.Context) (string, error) {
	page, err := s.fetcher.Fetch(ctx, s.origin+"/wiki/"+s.randomPage, "")
	if err != nil {
		return "", err
	}

	result, err := s.parser.Parse(bytes.NewReader(page.Raw))
	if err != nil {
		return "", err
	}
	if result.Title == "" {
		return "", ErrSeedResolution
	}

	return s.origin + "/wiki/" + url.PathEscape(result.Title), nil
}
