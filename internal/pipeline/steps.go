package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wikigraph/wikigraph/internal/analysis"
	"github.com/wikigraph/wikigraph/internal/graph"
	"github.com/wikigraph/wikigraph/internal/model"
)

// Crawler runs a depth-bounded crawl from a seed article.
// The crawler engine satisfies it.
type Crawler interface {
	Crawl(ctx context.Context, seedURL string, depth int) (*model.CrawlNode, error)
}

// Seeder resolves a random article URL.
// The crawler's seed source satisfies it.
type Seeder interface {
	RandomArticleURL(ctx context.Context) (string, error)
}

// CrawlStep crawls the wiki from a seed article and registers every
// reached page in the graph. When no seed is configured, one is drawn
// from the wiki's random-article redirect.
type CrawlStep struct {
	crawler Crawler
	seeder  Seeder
	graph   *graph.Graph
	seedURL string
	depth   int
	logger  *slog.Logger
}

// CrawlStepOption configures a CrawlStep.
type CrawlStepOption func(*CrawlStep)

// WithSeedURL fixes the crawl's starting article. When empty, the step
// resolves a random article instead.
func WithSeedURL(seedURL string) CrawlStepOption {
	return func(s *CrawlStep) {
		s.seedURL = seedURL
	}
}

// WithCrawlDepth sets the crawl recursion depth.
func WithCrawlDepth(depth int) CrawlStepOption {
	return func(s *CrawlStep) {
		s.depth = depth
	}
}

// WithCrawlLogger sets a custom logger for the crawl step.
func WithCrawlLogger(logger *slog.Logger) CrawlStepOption {
	return func(s *CrawlStep) {
		s.logger = logger
	}
}

// NewCrawlStep creates the crawl step.
func NewCrawlStep(crawler Crawler, seeder Seeder, g *graph.Graph, opts ...CrawlStepOption) *CrawlStep {
	s := &CrawlStep{
		crawler: crawler,
		seeder:  seeder,
		graph:   g,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *CrawlStep) Name() string {
	return "crawl"
}

// Do executes the crawl step. Nodes and edges committed before a
// mid-crawl failure stay in the graph for the later steps.
func (s *CrawlStep) Do(ctx context.Context, report *model.RunReport) error {
	report.NodesBefore = s.graph.NodeCount()
	report.EdgesBefore = s.graph.EdgeCount()
	report.Depth = s.depth

	seedURL := s.seedURL
	if seedURL == "" {
		var err error
		seedURL, err = s.seeder.RandomArticleURL(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve random seed: %w", err)
		}
		s.logger.Info("starting from random article", "seed", seedURL)
	}
	report.Seed = seedURL

	root, err := s.crawler.Crawl(ctx, seedURL, s.depth)
	if root != nil {
		report.PagesFetched = distinctPages(root)
	}
	if err != nil {
		return fmt.Errorf("crawl from %s failed: %w", seedURL, err)
	}
	return nil
}

// distinctPages counts the distinct article URLs in a discovery tree.
// The same URL can appear under several parents.
func distinctPages(root *model.CrawlNode) int {
	seen := make(map[string]struct{})
	root.Walk(func(n *model.CrawlNode) bool {
		seen[n.URL] = struct{}{}
		return true
	})
	return len(seen)
}

// GrowthStep runs the destructive growth experiment.
type GrowthStep struct {
	analyzer *analysis.Analyzer
	runs     int
	layers   int
}

// NewGrowthStep creates the growth step.
func NewGrowthStep(analyzer *analysis.Analyzer, runs, layers int) *GrowthStep {
	return &GrowthStep{analyzer: analyzer, runs: runs, layers: layers}
}

// Name returns the step name.
func (s *GrowthStep) Name() string {
	return "growth"
}

// Do executes the growth step. Partial measurements from an aborted
// experiment are kept in the report.
func (s *GrowthStep) Do(ctx context.Context, report *model.RunReport) error {
	records, err := s.analyzer.Growth(ctx, s.runs, s.layers)
	report.Growth = records
	return err
}

// CycleStep counts the independent cycles in the graph.
type CycleStep struct {
	analyzer *analysis.Analyzer
}

// NewCycleStep creates the cycle step.
func NewCycleStep(analyzer *analysis.Analyzer) *CycleStep {
	return &CycleStep{analyzer: analyzer}
}

// Name returns the step name.
func (s *CycleStep) Name() string {
	return "cycles"
}

// Do executes the cycle step.
func (s *CycleStep) Do(_ context.Context, report *model.RunReport) error {
	report.CycleCount = s.analyzer.Cycles()
	report.CyclesRan = true
	return nil
}

// ShortestPathStep samples a shortest path between two random articles.
type ShortestPathStep struct {
	analyzer *analysis.Analyzer
	logger   *slog.Logger
}

// ShortestPathStepOption configures a ShortestPathStep.
type ShortestPathStepOption func(*ShortestPathStep)

// WithShortestPathLogger sets a custom logger for the path step.
func WithShortestPathLogger(logger *slog.Logger) ShortestPathStepOption {
	return func(s *ShortestPathStep) {
		s.logger = logger
	}
}

// NewShortestPathStep creates the shortest-path step.
func NewShortestPathStep(analyzer *analysis.Analyzer, opts ...ShortestPathStepOption) *ShortestPathStep {
	s := &ShortestPathStep{
		analyzer: analyzer,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *ShortestPathStep) Name() string {
	return "shortest_path"
}

// Do executes the shortest-path step. An unconnected sample is an
// outcome, not a failure: it is logged and the step succeeds with
// PathFound false.
func (s *ShortestPathStep) Do(_ context.Context, report *model.RunReport) error {
	report.PathRan = true

	path, err := s.analyzer.ShortestPath()
	if errors.Is(err, analysis.ErrNoPath) {
		s.logger.Info("no path between sampled articles")
		return nil
	}
	if err != nil {
		return err
	}

	report.Path = path
	report.PathFound = true
	return nil
}

// PersistStep writes the graph back to its GraphML file and closes the
// report's bookkeeping.
type PersistStep struct {
	store *graph.Store
	graph *graph.Graph
}

// NewPersistStep creates the persist step.
func NewPersistStep(store *graph.Store, g *graph.Graph) *PersistStep {
	return &PersistStep{store: store, graph: g}
}

// Name returns the step name.
func (s *PersistStep) Name() string {
	return "persist"
}

// Do executes the persist step.
func (s *PersistStep) Do(_ context.Context, report *model.RunReport) error {
	report.NodesAfter = s.graph.NodeCount()
	report.EdgesAfter = s.graph.EdgeCount()
	report.FinishedAt = time.Now()

	if err := s.store.Persist(s.graph); err != nil {
		return fmt.Errorf("failed to persist graph: %w", err)
	}
	report.Persisted = true
	return nil
}
