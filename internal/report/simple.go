package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/wikigraph/wikigraph/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the run report in human-readable format.
func (w *SimpleWriter) Write(report *model.RunReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeGraph(&sb, report)
	w.writeAnalyses(&sb, report)
	w.writeErrors(&sb, report)
	w.writeFooter(&sb, report)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.RunReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         WIKIGRAPH REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	if report.Seed != "" {
		sb.WriteString(fmt.Sprintf("Seed Article:  %s\n", report.Seed))
		sb.WriteString(fmt.Sprintf("Crawl Depth:   %d\n", report.Depth))
	}
	sb.WriteString(fmt.Sprintf("Started:       %s\n", report.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Pages Fetched: %d\n", report.PagesFetched))
	sb.WriteString("\n")
}

// writeGraph writes the graph size section.
func (w *SimpleWriter) writeGraph(sb *strings.Builder, report *model.RunReport) {
	sb.WriteString("GRAPH\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")

	source := "empty graph"
	if report.GraphLoaded {
		source = "persisted graph"
	}
	sb.WriteString(fmt.Sprintf("  Started from %s\n", source))
	sb.WriteString(fmt.Sprintf("  Nodes: %d -> %d\n", report.NodesBefore, report.NodesAfter))
	sb.WriteString(fmt.Sprintf("  Edges: %d -> %d\n", report.EdgesBefore, report.EdgesAfter))
	if report.Persisted {
		sb.WriteString("  Graph persisted\n")
	}
	sb.WriteString("\n")
}

// writeAnalyses writes the experiment results, when any ran.
func (w *SimpleWriter) writeAnalyses(sb *strings.Builder, report *model.RunReport) {
	if len(report.Growth) == 0 && !report.CyclesRan && !report.PathRan {
		return
	}

	sb.WriteString("ANALYSES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")

	if len(report.Growth) > 0 {
		sb.WriteString("  Growth:\n")
		for _, rec := range report.Growth {
			sb.WriteString(fmt.Sprintf("    %d.%d: %d\n", rec.Run, rec.Layer, rec.Nodes))
		}
	}

	if report.CyclesRan {
		sb.WriteString(fmt.Sprintf("  Independent cycles: %d\n", report.CycleCount))
	}

	if report.PathRan {
		switch {
		case report.PathFound && w.verbose:
			sb.WriteString(fmt.Sprintf("  Shortest path (%d nodes):\n", len(report.Path)))
			for _, url := range report.Path {
				sb.WriteString(fmt.Sprintf("    %s\n", url))
			}
		case report.PathFound:
			sb.WriteString(fmt.Sprintf("  Shortest path: %d nodes\n", len(report.Path)))
		default:
			sb.WriteString("  Shortest path: sampled articles are not connected\n")
		}
	}
	sb.WriteString("\n")
}

// writeErrors writes non-fatal step failures.
func (w *SimpleWriter) writeErrors(sb *strings.Builder, report *model.RunReport) {
	if len(report.StepErrors) == 0 {
		return
	}

	sb.WriteString("ERRORS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	for _, se := range report.StepErrors {
		sb.WriteString(fmt.Sprintf("  [%s] %s\n", se.Step, se.Message))
	}
	sb.WriteString("\n")
}

// writeFooter writes the closing line with the run duration.
func (w *SimpleWriter) writeFooter(sb *strings.Builder, report *model.RunReport) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	if !report.FinishedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Completed in %s\n", report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond)))
	}
}
