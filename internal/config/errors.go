package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Package-level sentinel errors allow callers to use errors.Is() for
// programmatic handling while still carrying a human-readable message.
var (
	// ErrInvalidOrigin is returned when the site origin is empty or
	// missing a scheme. The origin must look like "https://host".
	ErrInvalidOrigin = errors.New("invalid origin: must be of the form scheme://host")

	// ErrInvalidDepth is returned when the crawl depth is negative.
	// Depth 0 is the shallowest crawl (seed plus direct links).
	ErrInvalidDepth = errors.New("invalid crawl depth: must be non-negative")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidCrawlDelay is returned when the crawl delay is
	// negative. Use 0 for no delay between requests.
	ErrInvalidCrawlDelay = errors.New("invalid crawl delay: must be non-negative")

	// ErrInvalidWorkers is returned when the worker count is not
	// positive. 1 means fully sequential crawling.
	ErrInvalidWorkers = errors.New("invalid workers: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is
	// negative. Use 0 to apply the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidGrowthParams is returned when the growth test is
	// configured with zero runs or negative layers.
	ErrInvalidGrowthParams = errors.New("invalid growth parameters: runs must be positive and layers non-negative")
)
