package analysis

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/wikigraph/wikigraph/internal/model"
)

// Growth measures how the graph grows when dead-end articles are
// expanded layer by layer. It is destructive: the persisted graph file
// and the in-memory graph are discarded so every run starts from a
// fresh random article.
//
// Per run it crawls one random seed at depth 0 and records the node
// count as layer 0; each subsequent layer expands every node of degree
// one (a page that was linked but never fetched) with its own depth-0
// crawl and records the new count. Counts within a run never decrease.
func (a *Analyzer) Growth(ctx context.Context, runs, layers int) ([]model.GrowthRecord, error) {
	if runs < 1 || layers < 0 {
		return nil, ErrInvalidGrowthParams
	}

	if err := a.store.Reset(); err != nil {
		// A missing or stubborn graph file does not invalidate the
		// experiment; the in-memory reset below is what matters.
		a.logger.Warn("failed to remove persisted graph", "error", err)
	}
	a.graph.Reset()

	records := make([]model.GrowthRecord, 0, runs*(layers+1))

	for run := 1; run <= runs; run++ {
		seedURL, err := a.seed(ctx)
		if err != nil {
			return records, fmt.Errorf("failed to resolve random seed for run %d: %w", run, err)
		}
		if _, err := a.crawl(ctx, seedURL, 0); err != nil {
			return records, fmt.Errorf("failed to crawl seed for run %d: %w", run, err)
		}

		rec, err := a.recordGrowth(run, 0)
		if err != nil {
			return records, err
		}
		records = append(records, rec)

		for layer := 1; layer <= layers; layer++ {
			if err := a.expandDeadEnds(ctx); err != nil {
				return records, fmt.Errorf("failed to expand layer %d of run %d: %w", layer, run, err)
			}

			rec, err := a.recordGrowth(run, layer)
			if err != nil {
				return records, err
			}
			records = append(records, rec)
		}
	}

	return records, nil
}

// expandDeadEnds crawls every degree-1 node at depth 0, turning the
// current dead ends into interior nodes with their own out-links.
func (a *Analyzer) expandDeadEnds(ctx context.Context) error {
	var frontier []string
	for _, url := range a.graph.Nodes() {
		if a.graph.Degree(url) == 1 {
			frontier = append(frontier, url)
		}
	}
	a.logger.Debug("expanding dead ends", "count", len(frontier))

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(a.workers)
	for _, url := range frontier {
		url := url
		eg.Go(func() error {
			_, err := a.crawl(gctx, url, 0)
			return err
		})
	}
	return eg.Wait()
}

func (a *Analyzer) recordGrowth(run, layer int) (model.GrowthRecord, error) {
	rec := model.GrowthRecord{
		Run:   run,
		Layer: layer,
		Nodes: a.graph.NodeCount(),
	}
	a.logger.Info("growth measurement", "run", run, "layer", layer, "nodes", rec.Nodes)

	line := fmt.Sprintf("%d.%d: %d", rec.Run, rec.Layer, rec.Nodes)
	if err := appendLine(a.logs.Growth, line); err != nil {
		return rec, err
	}
	return rec, nil
}
