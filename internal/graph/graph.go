package graph

import (
	"sort"
	"sync"
)

// Graph is a directed graph with string-keyed nodes.
// All methods are safe for concurrent use; the crawl engine writes to
// it from multiple workers while holding no other locks.
type Graph struct {
	mu    sync.RWMutex
	nodes map[string]struct{}
	out   map[string]map[string]struct{}
	in    map[string]map[string]struct{}
}

// Edge is a directed source→target pair.
type Edge struct {
	Source string
	Target string
}

// New creates an empty directed graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]struct{}),
		out:   make(map[string]map[string]struct{}),
		in:    make(map[string]map[string]struct{}),
	}
}

// AddNode inserts a node. Adding an existing node is a no-op: the
// node carries no attributes beyond its URL, and incident edges are
// never touched.
func (g *Graph) AddNode(url string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addNodeLocked(url)
}

func (g *Graph) addNodeLocked(url string) {
	g.nodes[url] = struct{}{}
}

// AddEdge inserts a directed edge. Missing endpoints are created
// implicitly so an edge never dangles. Duplicate edges collapse to
// one; self-edges are rejected.
func (g *Graph) AddEdge(source, target string) {
	if source == target {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.addNodeLocked(source)
	g.addNodeLocked(target)

	if g.out[source] == nil {
		g.out[source] = make(map[string]struct{})
	}
	g.out[source][target] = struct{}{}

	if g.in[target] == nil {
		g.in[target] = make(map[string]struct{})
	}
	g.in[target][source] = struct{}{}
}

// HasNode reports whether url is a node.
func (g *Graph) HasNode(url string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.nodes[url]
	return ok
}

// HasEdge reports whether the directed edge source→target exists.
func (g *Graph) HasEdge(source, target string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.out[source][target]
	return ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// EdgeCount returns the number of directed edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	total := 0
	for _, targets := range g.out {
		total += len(targets)
	}
	return total
}

// Nodes returns all node URLs in sorted order.
// Sorting makes iteration deterministic for tests and logs.
func (g *Graph) Nodes() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	urls := make([]string, 0, len(g.nodes))
	for url := range g.nodes {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls
}

// Edges returns all directed edges sorted by source, then target.
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	edges := make([]Edge, 0)
	for source, targets := range g.out {
		for target := range targets {
			edges = append(edges, Edge{Source: source, Target: target})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
	return edges
}

// Degree returns the total degree (in + out) of a node.
// The growth test uses degree 1 to identify dead-end articles.
func (g *Graph) Degree(url string) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.out[url]) + len(g.in[url])
}

// Reset discards all nodes and edges.
func (g *Graph) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes = make(map[string]struct{})
	g.out = make(map[string]map[string]struct{})
	g.in = make(map[string]map[string]struct{})
}

// Undirected returns an undirected snapshot of the graph: an edge
// {A,B} exists if either A→B or B→A existed. The projection is
// detached from the Graph, so later mutation never affects it.
func (g *Graph) Undirected() *Undirected {
	g.mu.RLock()
	defer g.mu.RUnlock()

	u := &Undirected{adj: make(map[string]map[string]struct{}, len(g.nodes))}
	for url := range g.nodes {
		u.adj[url] = make(map[string]struct{})
	}
	for source, targets := range g.out {
		for target := range targets {
			u.adj[source][target] = struct{}{}
			u.adj[target][source] = struct{}{}
		}
	}
	return u
}

// Undirected is an immutable undirected projection of a Graph.
type Undirected struct {
	adj map[string]map[string]struct{}
}

// NodeCount returns the number of nodes.
func (u *Undirected) NodeCount() int {
	return len(u.adj)
}

// EdgeCount returns the number of undirected edges.
func (u *Undirected) EdgeCount() int {
	total := 0
	for _, neighbors := range u.adj {
		total += len(neighbors)
	}
	// Every undirected edge is stored from both endpoints.
	return total / 2
}

// Nodes returns all node URLs in sorted order.
func (u *Undirected) Nodes() []string {
	urls := make([]string, 0, len(u.adj))
	for url := range u.adj {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls
}

// Neighbors returns the sorted neighbor set of a node.
func (u *Undirected) Neighbors(url string) []string {
	neighbors := make([]string, 0, len(u.adj[url]))
	for n := range u.adj[url] {
		neighbors = append(neighbors, n)
	}
	sort.Strings(neighbors)
	return neighbors
}
