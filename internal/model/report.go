package model

import "time"

// GrowthRecord is one growth-test measurement: the node count after
// iteration Layer of run Run. Layer 0 is the initial seed crawl.
type GrowthRecord struct {
	Run   int `json:"run"`
	Layer int `json:"layer"`
	Nodes int `json:"nodes"`
}

// StepError records a pipeline step failure without aborting the run.
type StepError struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// RunReport accumulates the outcome of one wikigraph run as pipeline
// steps execute. Report writers render it as text or Markdown.
type RunReport struct {
	// Seed is the article URL the crawl started from.
	Seed string `json:"seed,omitempty"`

	// Depth is the crawl recursion depth.
	Depth int `json:"depth"`

	// StartedAt and FinishedAt bound the whole run.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// GraphLoaded is true when prior persisted state was read,
	// false when the run started from an empty graph.
	GraphLoaded bool `json:"graph_loaded"`

	// NodesBefore/EdgesBefore capture graph size before the crawl,
	// NodesAfter/EdgesAfter after the final step.
	NodesBefore int `json:"nodes_before"`
	EdgesBefore int `json:"edges_before"`
	NodesAfter  int `json:"nodes_after"`
	EdgesAfter  int `json:"edges_after"`

	// PagesFetched is the number of pages fetched during this run.
	PagesFetched int `json:"pages_fetched"`

	// Growth holds growth-test measurements, when the test ran.
	Growth []GrowthRecord `json:"growth,omitempty"`

	// CycleCount is the cycle-basis size, when the test ran.
	CycleCount int  `json:"cycle_count"`
	CyclesRan  bool `json:"cycles_ran"`

	// Path is the sampled shortest path, when one was found.
	Path      []string `json:"path,omitempty"`
	PathRan   bool     `json:"path_ran"`
	PathFound bool     `json:"path_found"`

	// Persisted is true once the graph was written back to disk.
	Persisted bool `json:"persisted"`

	// StepErrors collects non-fatal step failures in execution order.
	StepErrors []StepError `json:"step_errors,omitempty"`

	// PerformedSteps lists the pipeline steps that ran.
	PerformedSteps []string `json:"performed_steps,omitempty"`
}

// NewRunReport creates a RunReport with the start time set.
func NewRunReport() *RunReport {
	return &RunReport{StartedAt: time.Now()}
}

// AddStepError records a step failure.
func (r *RunReport) AddStepError(step string, err error) {
	r.StepErrors = append(r.StepErrors, StepError{Step: step, Message: err.Error()})
}

// Failed reports whether any step recorded an error.
func (r *RunReport) Failed() bool {
	return len(r.StepErrors) > 0
}
