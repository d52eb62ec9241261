package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wikigraph/wikigraph/internal/config"
	"github.com/wikigraph/wikigraph/internal/crawler"
	"github.com/wikigraph/wikigraph/internal/database"
	"github.com/wikigraph/wikigraph/internal/graph"
	"github.com/wikigraph/wikigraph/internal/model"
	"github.com/wikigraph/wikigraph/internal/pipeline"
	"github.com/wikigraph/wikigraph/internal/report"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [seed-url]",
		Short: "Crawl the wiki and extend the persisted link graph",
		Long: `Crawl fetches an article, follows its intra-wiki links down to the
configured depth, and records every reached article and link in the
graph. The graph is loaded from the data directory before the crawl
and persisted back afterwards, so repeated crawls accumulate.

Without a seed URL, the crawl starts from a random article.

Examples:
  # Crawl starting from a random article
  wikigraph crawl

  # Crawl a fixed article two levels deep
  wikigraph crawl -d 2 https://de.wikipedia.org/wiki/Informatik

  # Crawl with four concurrent fetches and a shorter delay
  wikigraph crawl -w 4 --delay 200ms

  # Output a Markdown report to a file
  wikigraph crawl -m -o report.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCrawlCmd,
	}

	cmd.Flags().IntP("depth", "d", config.DefaultCrawlDepth,
		"Crawl recursion depth (0 fetches the seed and its links)")
	addCommonFlags(cmd)

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		cfg.Seed = args[0]
	}
	if cmd.Flags().Changed("depth") {
		if cfg.CrawlDepth, err = cmd.Flags().GetInt("depth"); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	cfg.Verbose = getVerboseFlag(cmd)
	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runCrawl(ctx, cfg, logger)
}

// runCrawl executes the crawl pipeline: crawl then persist.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	comps, err := buildComponents(cfg, logger)
	if err != nil {
		return err
	}
	defer comps.Close()

	logger.Info("starting crawl",
		"seed", cfg.Seed,
		"depth", cfg.CrawlDepth,
		"workers", cfg.Workers,
		"dataDir", cfg.DataDir,
	)

	rep := model.NewRunReport()
	rep.GraphLoaded = comps.graphLoaded

	p := pipeline.New(
		pipeline.WithLogger(logger),
		pipeline.WithContinueOnError(true),
	)
	p.AddSteps(
		pipeline.NewCrawlStep(comps.engine, comps.seeds, comps.graph,
			pipeline.WithSeedURL(cfg.Seed),
			pipeline.WithCrawlDepth(cfg.CrawlDepth),
			pipeline.WithCrawlLogger(logger),
		),
		pipeline.NewPersistStep(comps.store, comps.graph),
	)

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

// components bundles the wired application parts of one run.
type components struct {
	graph       *graph.Graph
	graphLoaded bool
	store       *graph.Store
	engine      *crawler.Engine
	seeds       *crawler.SeedSource
	archive     *database.ArchiveDB
}

// Close releases held resources.
func (c *components) Close() {
	if c.archive != nil {
		if err := c.archive.Close(); err != nil {
			slog.Default().Error("failed to close archive", "error", err)
		}
	}
}

// buildComponents wires the fetcher, parser, graph, archive, and
// engine from the configuration.
func buildComponents(cfg *config.Config, logger *slog.Logger) (*components, error) {
	archive, err := database.Open(cfg.ArchiveDir(), database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open page archive: %w", err)
	}
	logger.Info("page archive opened", "path", archive.Path())

	store := graph.NewStore(cfg.GraphPath())
	g, loaded, err := store.LoadOrCreate()
	if err != nil {
		_ = archive.Close()
		return nil, fmt.Errorf("failed to load graph: %w", err)
	}
	logger.Info("graph ready",
		"loaded", loaded,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
	)

	fetcher := crawler.NewFetcher(
		crawler.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		crawler.WithUserAgent(config.DefaultUserAgent),
		crawler.WithMaxBodySize(cfg.MaxBodySize),
	)
	parser := crawler.NewParser(cfg.SiteName)
	filter := crawler.NewLinkFilter(cfg.Origin, cfg.ExcludedNamespaces)

	engine := crawler.NewEngine(fetcher, parser, filter, g,
		crawler.WithWorkers(cfg.Workers),
		crawler.WithDelay(cfg.CrawlDelay),
		crawler.WithRefetch(cfg.Refetch),
		crawler.WithArchiver(archive),
		crawler.WithEngineLogger(logger),
	)
	seeds := crawler.NewSeedSource(fetcher, parser, cfg.Origin, cfg.RandomPage)

	return &components{
		graph:       g,
		graphLoaded: loaded,
		store:       store,
		engine:      engine,
		seeds:       seeds,
		archive:     archive,
	}, nil
}

// addCommonFlags registers the flags shared by crawl and analyze.
func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for each request")
	cmd.Flags().Duration("delay", config.DefaultCrawlDelay,
		"Politeness delay between requests")
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers,
		"Number of concurrent fetches per frontier level")
	cmd.Flags().Bool("refetch", false,
		"Re-fetch a page once per linking parent instead of once per run")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .wikigraph in current or home directory)")
	cmd.Flags().String("data-dir", "",
		"Directory for the graph file, page archive, and logs (default: XDG data dir)")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write the report to the specified file in addition to stdout")
	cmd.MarkFlagsMutuallyExclusive("json", "markdown")
}

// buildConfig creates a Config from the configuration file and the
// common cobra flags. Flag values override file values.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath = configPath

	found := config.FindConfigFile(configPath)
	switch {
	case found != "":
		cf, err := config.LoadConfigFile(found)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
		}
		cf.Apply(cfg)
	case configPath != "":
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	if cmd.Flags().Changed("timeout") {
		if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("delay") {
		if cfg.CrawlDelay, err = cmd.Flags().GetDuration("delay"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("workers") {
		if cfg.Workers, err = cmd.Flags().GetInt("workers"); err != nil {
			return nil, err
		}
	}
	if cfg.Refetch, err = cmd.Flags().GetBool("refetch"); err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("data-dir") {
		if cfg.DataDir, err = cmd.Flags().GetString("data-dir"); err != nil {
			return nil, err
		}
	}
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on verbosity setting.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	return slog.New(handler)
}

// signalContext returns a context cancelled by SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// outputReport renders the run report to stdout, and additionally to
// the configured report file.
func outputReport(cfg *config.Config, rep *model.RunReport) error {
	writers := []report.Writer{newReportWriter(cfg, os.Stdout)}

	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		writers = append(writers, newReportWriter(cfg, f))
	}

	_, err := report.NewMultiWriter(writers...).Write(rep)
	return err
}

// newReportWriter picks the report format from the configuration.
func newReportWriter(cfg *config.Config, out *os.File) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(out, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(out)
	default:
		return report.NewSimpleWriter(out, report.WithVerbose(cfg.Verbose))
	}
}
