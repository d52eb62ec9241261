// Package main provides the entry point for the wikigraph CLI.
//
// wikigraph crawls a MediaWiki-style encyclopedia, records which
// articles link to which, and runs structural experiments on the
// resulting graph.
//
// Usage:
//
//	wikigraph crawl [seed-url]
//	wikigraph analyze --growth
//
// See --help for all available options.
package main

// main is the entry point for wikigraph.
func main() {
	Execute()
}
