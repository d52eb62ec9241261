package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wikigraph/wikigraph/internal/analysis"
	"github.com/wikigraph/wikigraph/internal/config"
	"github.com/wikigraph/wikigraph/internal/model"
	"github.com/wikigraph/wikigraph/internal/pipeline"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run graph experiments on the persisted link graph",
		Long: `Analyze runs structural experiments on the link graph built by
previous crawls and persists the result.

Available experiments:
  --growth         Measure node growth while dead-end articles are
                   expanded layer by layer. DESTRUCTIVE: discards the
                   persisted graph and rebuilds it from random seeds.
  --cycles         Count the independent cycles in the graph.
  --shortest-path  Sample two random articles and find the shortest
                   path between them.

Without experiment flags, the non-destructive experiments (--cycles
and --shortest-path) run.

Examples:
  # Count cycles and sample a shortest path
  wikigraph analyze

  # Growth test: 3 runs, 4 expansion layers each
  wikigraph analyze --growth -r 3 -l 4

  # Only the cycle count, as JSON
  wikigraph analyze --cycles -j`,
		RunE: runAnalyzeCmd,
	}

	cmd.Flags().Bool("growth", false,
		"Run the destructive growth experiment")
	cmd.Flags().Bool("cycles", false,
		"Count independent cycles")
	cmd.Flags().Bool("shortest-path", false,
		"Sample a shortest path between two random articles")
	cmd.Flags().IntP("runs", "r", config.DefaultGrowthRuns,
		"Number of growth-test runs")
	cmd.Flags().IntP("layers", "l", config.DefaultGrowthLayers,
		"Number of frontier expansions per growth-test run")
	addCommonFlags(cmd)

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("runs") {
		if cfg.GrowthRuns, err = cmd.Flags().GetInt("runs"); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("layers") {
		if cfg.GrowthLayers, err = cmd.Flags().GetInt("layers"); err != nil {
			return err
		}
	}

	growth, err := cmd.Flags().GetBool("growth")
	if err != nil {
		return err
	}
	cycles, err := cmd.Flags().GetBool("cycles")
	if err != nil {
		return err
	}
	shortestPath, err := cmd.Flags().GetBool("shortest-path")
	if err != nil {
		return err
	}
	if !growth && !cycles && !shortestPath {
		cycles, shortestPath = true, true
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	cfg.Verbose = getVerboseFlag(cmd)
	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runAnalyze(ctx, cfg, logger, growth, cycles, shortestPath)
}

// runAnalyze assembles and executes the analysis pipeline.
func runAnalyze(ctx context.Context, cfg *config.Config, logger *slog.Logger, growth, cycles, shortestPath bool) error {
	comps, err := buildComponents(cfg, logger)
	if err != nil {
		return err
	}
	defer comps.Close()

	if !growth && comps.graph.NodeCount() == 0 {
		return fmt.Errorf("graph at %s is empty: run a crawl first", cfg.GraphPath())
	}

	analyzer := analysis.New(
		comps.graph,
		comps.store,
		comps.engine.Crawl,
		comps.seeds.RandomArticleURL,
		analysis.LogPaths{
			Growth: cfg.GrowthLogPath(),
			Paths:  cfg.PathsLogPath(),
		},
		analysis.WithWorkers(cfg.Workers),
		analysis.WithLogger(logger),
	)

	rep := model.NewRunReport()
	rep.GraphLoaded = comps.graphLoaded
	rep.NodesBefore = comps.graph.NodeCount()
	rep.EdgesBefore = comps.graph.EdgeCount()

	p := pipeline.New(
		pipeline.WithLogger(logger),
		pipeline.WithContinueOnError(true),
	)
	if growth {
		p.AddStep(pipeline.NewGrowthStep(analyzer, cfg.GrowthRuns, cfg.GrowthLayers))
	}
	if cycles {
		p.AddStep(pipeline.NewCycleStep(analyzer))
	}
	if shortestPath {
		p.AddStep(pipeline.NewShortestPathStep(analyzer,
			pipeline.WithShortestPathLogger(logger)))
	}
	p.AddStep(pipeline.NewPersistStep(comps.store, comps.graph))

	if err := p.Execute(ctx, rep); err != nil {
		return err
	}
	if err := outputReport(cfg, rep); err != nil {
		return err
	}
	if rep.Failed() {
		return fmt.Errorf("run completed with %d error(s)", len(rep.StepErrors))
	}
	return nil
}
