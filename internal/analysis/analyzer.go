package analysis

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/wikigraph/wikigraph/internal/graph"
	"github.com/wikigraph/wikigraph/internal/model"
)

// CrawlFunc fetches one article and its links into the graph. The
// engine's depth-bounded Crawl satisfies it.
type CrawlFunc func(ctx context.Context, seedURL string, depth int) (*model.CrawlNode, error)

// SeedFunc resolves a random article URL on the target wiki.
type SeedFunc func(ctx context.Context) (string, error)

// LogPaths names the append-only log files the experiments write to.
type LogPaths struct {
	// Growth receives one "<run>.<layer>: <nodes>" line per growth
	// measurement.
	Growth string

	// Paths receives the node sequence of each sampled shortest path,
	// one node per line, followed by a separator line.
	Paths string
}

// Analyzer runs graph experiments against a shared crawl graph.
type Analyzer struct {
	graph   *graph.Graph
	store   *graph.Store
	crawl   CrawlFunc
	seed    SeedFunc
	logs    LogPaths
	rng     *rand.Rand
	workers int
	logger  *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithRand sets the random source used to sample nodes. Injecting a
// seeded source makes experiment runs reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(a *Analyzer) {
		a.rng = rng
	}
}

// WithWorkers bounds the concurrency of frontier expansion during the
// growth test. Values below 1 are treated as 1.
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.workers = n
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// New creates an Analyzer over g. The store is used only by the growth
// test to discard the persisted graph before measuring from scratch.
func New(g *graph.Graph, store *graph.Store, crawl CrawlFunc, seed SeedFunc, logs LogPaths, opts ...Option) *Analyzer {
	a := &Analyzer{
		graph:   g,
		store:   store,
		crawl:   crawl,
		seed:    seed,
		logs:    logs,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		workers: 1,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// appendLine appends one line to the text log at path, creating the
// file on first use.
func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open log %s: %w", path, err)
	}

	_, werr := fmt.Fprintln(f, line)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return fmt.Errorf("failed to append to log %s: %w", path, werr)
	}
	return nil
}
