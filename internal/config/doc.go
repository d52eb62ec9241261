// Package config manages wikigraph configuration.
//
// Configuration comes from three sources, in increasing priority:
//  1. Compiled-in defaults (the German Wikipedia, matching the
//     original survey this tool was built for)
//  2. The .wikigraph YAML configuration file
//  3. CLI flags
//
// The Config struct is populated once in the cmd layer and passed down
// via dependency injection. No package reads configuration from global
// state.
//
// Data files (the persisted graph, the page archive, and the analysis
// logs) live in the XDG data directory unless overridden with --data-dir.
package config
