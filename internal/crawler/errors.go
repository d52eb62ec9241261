package crawler

import (
	"errors"
	"fmt"
)

// ErrSeedResolution is returned when the random-article redirect
// yields no usable title.
var ErrSeedResolution = errors.New("random article lookup yielded no title")

// FetchError reports a failed page fetch: either a transport failure
// (Err set) or a non-2xx HTTP response (StatusCode set).
//
// A FetchError anywhere inside a crawl is not swallowed locally; it
// propagates to the caller of Crawl, which reports it and keeps the
// graph progress committed so far.
type FetchError struct {
	// URL is the page that failed to fetch.
	URL string

	// StatusCode is the HTTP status, 0 for transport failures.
	StatusCode int

	// Err is the underlying transport error, nil for HTTP failures.
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("failed to fetch %s: status %d", e.URL, e.StatusCode)
}

// Unwrap returns the underlying transport error, if any.
func (e *FetchError) Unwrap() error {
	return e.Err
}
