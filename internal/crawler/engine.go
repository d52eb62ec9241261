package crawler

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wikigraph/wikigraph/internal/graph"
	"github.com/wikigraph/wikigraph/internal/model"
)

// Archiver records fetched pages. The sqlite page archive implements
// it; the engine accepts the interface so tests run without a
// database and archiving stays optional.
type Archiver interface {
	RecordPage(ctx context.Context, page *model.Page) error
}

// Engine performs the depth-bounded crawl, registering every visited
// article and discovery edge into the graph.
type Engine struct {
	fetcher *Fetcher
	parser  *Parser
	filter  *LinkFilter
	graph   *graph.Graph
	archive Archiver

	// workers bounds concurrent fetches per frontier level.
	// 1 reproduces the reference's fully sequential traversal.
	workers int

	// delay is the politeness pause after each fetch.
	delay time.Duration

	// refetch disables per-invocation fetch memoization.
	refetch bool

	logger *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithWorkers sets the number of concurrent fetches per frontier
// level. Values below 1 are ignored.
func WithWorkers(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithDelay sets the politeness delay between requests.
func WithDelay(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.delay = d
	}
}

// WithRefetch restores the reference behavior of fetching a URL once
// per discovering parent instead of once per crawl invocation. Edge
// registration is identical either way; only fetch volume and the
// shape of the discovery tree differ.
func WithRefetch(refetch bool) EngineOption {
	return func(e *Engine) {
		e.refetch = refetch
	}
}

// WithArchiver sets the page archive sink.
func WithArchiver(a Archiver) EngineOption {
	return func(e *Engine) {
		e.archive = a
	}
}

// WithEngineLogger sets a custom logger.
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an Engine writing into g.
func NewEngine(fetcher *Fetcher, parser *Parser, filter *LinkFilter, g *graph.Graph, opts ...EngineOption) *Engine {
	e := &Engine{
		fetcher: fetcher,
		parser:  parser,
		filter:  filter,
		graph:   g,
		workers: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// workItem is one pending page visit: the URL to fetch, the parent
// that linked to it, the remaining depth budget, and the discovery
// tree node to fill in.
type workItem struct {
	url       string
	source    string
	remaining int
	node      *model.CrawlNode
}

// Crawl traverses the wiki from seedURL down to the given depth and
// returns the discovery tree. Depth 0 visits the seed and every
// article it links to; each further level follows links one hop more.
//
// Node and edge registration is incremental and survives failure: a
// fetch error aborts the invocation, but everything committed before
// it stays in the graph.
func (e *Engine) Crawl(ctx context.Context, seedURL string, depth int) (*model.CrawlNode, error) {
	if depth < 0 {
		return nil, fmt.Errorf("crawl depth must be non-negative, got %d", depth)
	}

	root := &model.CrawlNode{URL: seedURL}
	level := []workItem{{url: seedURL, source: "", remaining: depth, node: root}}

	// fetched memoizes URLs already expanded in this invocation.
	fetched := make(map[string]struct{})
	var mu sync.Mutex

	for levelNum := 0; len(level) > 0; levelNum++ {
		e.logger.Debug("crawling frontier level",
			"level", levelNum,
			"items", len(level),
			"nodes", e.graph.NodeCount(),
		)

		var next []workItem

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.workers)
		for _, item := range level {
			item := item
			g.Go(func() error {
				children, err := e.visit(gctx, item, fetched, &mu)
				if err != nil {
					return err
				}
				if len(children) > 0 {
					mu.Lock()
					next = append(next, children...)
					mu.Unlock()
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return root, err
		}

		level = next
	}

	e.logger.Info("crawl finished",
		"seed", seedURL,
		"depth", depth,
		"pages", len(fetched),
		"nodes", e.graph.NodeCount(),
		"edges", e.graph.EdgeCount(),
	)
	return root, nil
}

// visit fetches one work item, commits its node and edge, and returns
// the next-level work items for its children.
func (e *Engine) visit(ctx context.Context, item workItem, fetched map[string]struct{}, mu *sync.Mutex) ([]workItem, error) {
	mu.Lock()
	_, alreadyFetched := fetched[item.url]
	if !alreadyFetched {
		fetched[item.url] = struct{}{}
	}
	mu.Unlock()

	if alreadyFetched && !e.refetch {
		// Rediscovery from another parent: the edge is still real,
		// but the page's subtree was expanded at first discovery.
		e.graph.AddNode(item.url)
		if item.source != "" {
			e.graph.AddEdge(item.source, item.url)
		}
		return nil, nil
	}

	page, err := e.fetcher.Fetch(ctx, item.url, item.source)
	if err != nil {
		return nil, err
	}

	// Commit only after the fetch succeeded.
	e.graph.AddNode(item.url)
	if item.source != "" {
		e.graph.AddEdge(item.source, item.url)
	}

	result, perr := e.parser.Parse(bytes.NewReader(page.Raw))
	if perr != nil {
		// A page that cannot be parsed contributes no children but
		// does not abort the crawl (fail-soft per page).
		e.logger.Warn("failed to parse page, treating as leaf",
			"url", item.url,
			"error", perr,
		)
		result = &ParseResult{}
	}
	item.node.Title = result.Title
	page.Title = result.Title

	if e.archive != nil {
		if aerr := e.archive.RecordPage(ctx, page); aerr != nil {
			e.logger.Warn("failed to archive page", "url", item.url, "error", aerr)
		}
	}

	e.logger.Debug("reached article", "title", result.Title, "url", item.url)

	if err := e.politeness(ctx); err != nil {
		return nil, err
	}

	if item.remaining < 0 {
		return nil, nil
	}

	links := e.filter.Filter(item.url, result.Hrefs)
	children := make([]workItem, 0, len(links))
	for _, link := range links {
		child := &model.CrawlNode{URL: link}
		item.node.Children = append(item.node.Children, child)
		children = append(children, workItem{
			url:       link,
			source:    item.url,
			remaining: item.remaining - 1,
			node:      child,
		})
	}
	return children, nil
}

// politeness waits the configured delay or returns early when the
// context is cancelled.
func (e *Engine) politeness(ctx context.Context) error {
	if e.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(e.delay):
		return nil
	}
}
