// Package model defines the data structures shared across wikigraph:
// fetched pages, the crawl discovery tree, and the run report consumed
// by the report writers.
//
// The package has no dependencies on other internal packages so that
// every layer (crawler, analysis, pipeline, report) can exchange data
// through it without import cycles.
package model
