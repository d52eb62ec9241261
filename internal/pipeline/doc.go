// Package pipeline executes the stages of a wikigraph session in
// sequence: crawling, graph experiments, and persistence. Each stage
// is a Step that receives the accumulated RunReport and records its
// outcome there.
//
// Design decision: We use a pipeline pattern instead of direct function
// calls because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context for long-running sessions
//
// The driver runs with continue-on-error so that a failed crawl still
// reaches the analysis and persist stages; whatever was committed to
// the graph before the failure is analyzed and saved.
package pipeline
