package crawler

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/wikigraph/wikigraph/internal/model"
)

// Fetcher retrieves article pages over HTTP.
// It owns the transport concerns (timeout, user agent, body size cap)
// and converts every failure into a *FetchError.
type Fetcher struct {
	// client performs the requests. Injected so tests can point at
	// httptest servers and callers can tune transport settings.
	client *http.Client

	// userAgent identifies the crawler. Wikimedia bot policy
	// requires a descriptive value with a contact reference.
	userAgent string

	// maxBodySize caps how many response bytes are read.
	maxBodySize int64
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) FetcherOption {
	return func(f *Fetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// NewFetcher creates a Fetcher with a 30-second default timeout.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:      &http.Client{Timeout: 30 * time.Second},
		userAgent:   "wikigraph/1.0 (+https://github.com/wikigraph/wikigraph)",
		maxBodySize: model.MaxPageSize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the page at pageURL. The source URL is recorded on
// the returned Page so the engine can register the discovery edge.
// Any failure returns a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, pageURL, source string) (*model.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}

	page := &model.Page{
		URL:         pageURL,
		Source:      source,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Raw:         body,
		FetchedAt:   time.Now(),
	}
	page.ComputeHash()
	page.TruncateRaw()
	return page, nil
}
