// Package analysis implements graph experiments over a crawled link
// graph: the destructive growth test, shortest-path sampling between
// random articles, and counting independent cycles.
//
// The Analyzer takes the crawl and random-seed operations as plain
// functions so the experiments can be driven without a live wiki.
// Growth and path results are appended to plain text logs so repeated
// sessions accumulate one observable series per file.
package analysis
