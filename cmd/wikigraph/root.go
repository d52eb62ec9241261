// Package main provides the entry point for the wikigraph CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for wikigraph.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wikigraph",
		Short: "Encyclopedia link-graph crawler and analyzer",
		Long: `wikigraph crawls a MediaWiki-style encyclopedia and records which
articles link to which as a directed graph. The graph persists between
runs and can be analyzed: how fast it grows when dead ends are
expanded, how many independent cycles it contains, and how far apart
two random articles are.

By default wikigraph targets the German-language Wikipedia; use a
.wikigraph configuration file to point it at another wiki.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
