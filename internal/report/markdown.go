package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/wikigraph/wikigraph/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the run report in Markdown format.
func (w *MarkdownWriter) Write(report *model.RunReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeGraph(md, report)
	w.writeAnalyses(md, report)
	w.writeErrors(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.RunReport) {
	md.H1("Wikigraph Report")
	md.PlainText("")

	rows := [][]string{
		{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
		{"Pages Fetched", strconv.Itoa(report.PagesFetched)},
		{"Status", w.statusText(report)},
	}
	if report.Seed != "" {
		rows = append([][]string{
			{"Seed Article", "`" + report.Seed + "`"},
			{"Crawl Depth", strconv.Itoa(report.Depth)},
		}, rows...)
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// statusText returns the status text based on report state.
func (w *MarkdownWriter) statusText(report *model.RunReport) string {
	if report.Failed() {
		return "⚠️ Completed with errors"
	}
	return "✅ Complete"
}

// writeGraph writes the graph size section.
func (w *MarkdownWriter) writeGraph(md *markdown.Markdown, report *model.RunReport) {
	md.H2("Graph")
	md.PlainText("")

	source := "empty graph"
	if report.GraphLoaded {
		source = "persisted graph"
	}

	md.Table(markdown.TableSet{
		Header: []string{"", "Before", "After"},
		Rows: [][]string{
			{"Nodes", strconv.Itoa(report.NodesBefore), strconv.Itoa(report.NodesAfter)},
			{"Edges", strconv.Itoa(report.EdgesBefore), strconv.Itoa(report.EdgesAfter)},
		},
	})
	md.PlainText("")
	md.PlainTextf("Started from %s; persisted: %t.", source, report.Persisted)
	md.PlainText("")
}

// writeAnalyses writes the experiment results, when any ran.
func (w *MarkdownWriter) writeAnalyses(md *markdown.Markdown, report *model.RunReport) {
	if len(report.Growth) == 0 && !report.CyclesRan && !report.PathRan {
		return
	}

	md.H2("Analyses")
	md.PlainText("")

	if len(report.Growth) > 0 {
		md.H3("Growth")
		rows := make([][]string, 0, len(report.Growth))
		for _, rec := range report.Growth {
			rows = append(rows, []string{
				strconv.Itoa(rec.Run),
				strconv.Itoa(rec.Layer),
				strconv.Itoa(rec.Nodes),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Run", "Layer", "Nodes"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if report.CyclesRan {
		md.PlainTextf("Independent cycles: **%d**", report.CycleCount)
		md.PlainText("")
	}

	if report.PathRan {
		md.H3("Shortest Path")
		if report.PathFound {
			items := make([]string, 0, len(report.Path))
			for _, url := range report.Path {
				items = append(items, "`"+url+"`")
			}
			md.OrderedList(items...)
		} else {
			md.PlainText("The sampled articles are not connected.")
		}
		md.PlainText("")
	}
}

// writeErrors writes non-fatal step failures as an alert.
func (w *MarkdownWriter) writeErrors(md *markdown.Markdown, report *model.RunReport) {
	if len(report.StepErrors) == 0 {
		return
	}

	md.H2("Errors")
	items := make([]string, 0, len(report.StepErrors))
	for _, se := range report.StepErrors {
		items = append(items, fmt.Sprintf("**%s**: %s", se.Step, se.Message))
	}
	md.BulletList(items...)
	md.PlainText("")
}
