// Package graph provides the directed link graph built during crawls
// and its GraphML persistence.
//
// # Components
//
//   - Graph: RWMutex-guarded directed graph. Nodes are canonical
//     article URLs; an edge A→B means "article A links to article B".
//   - Undirected: a read-only undirected projection used by the
//     analysis algorithms.
//   - Store: loads, persists, and resets the graph file.
//
// # Invariants
//
// Node and edge sets only grow during a crawl; the only removal
// operation is a full reset. Re-adding an existing node is a no-op
// that never disturbs incident edges. Both endpoints of an edge are
// created implicitly if absent, so an edge can never dangle.
// Self-edges and parallel edges do not exist by construction.
//
// # Persistence
//
// The on-disk format is GraphML: a structural interchange file with
// nodes keyed by URL string and directed edges, no attributes. A
// missing file means no prior crawl state.
package graph
