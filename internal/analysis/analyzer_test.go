package analysis

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/wikigraph/wikigraph/internal/graph"
	"github.com/wikigraph/wikigraph/internal/model"
)

// fakeWiki drives the Analyzer without a live site: crawling a URL
// adds its preset out-links to the graph.
type fakeWiki struct {
	mu    sync.Mutex
	links map[string][]string
	seeds []string
	next  int
	calls []string
}

func (f *fakeWiki) crawl(g *graph.Graph) CrawlFunc {
	return func(_ context.Context, seedURL string, _ int) (*model.CrawlNode, error) {
		f.mu.Lock()
		f.calls = append(f.calls, seedURL)
		f.mu.Unlock()

		g.AddNode(seedURL)
		for _, target := range f.links[seedURL] {
			g.AddEdge(seedURL, target)
		}
		return &model.CrawlNode{URL: seedURL}, nil
	}
}

func (f *fakeWiki) seed(_ context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.next >= len(f.seeds) {
		return "", errors.New("out of seeds")
	}
	url := f.seeds[f.next]
	f.next++
	return url, nil
}

func testLogs(t *testing.T) LogPaths {
	t.Helper()
	dir := t.TempDir()
	return LogPaths{
		Growth: filepath.Join(dir, "growth.log"),
		Paths:  filepath.Join(dir, "paths.log"),
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// TestGrowth tests the destructive growth experiment.
func TestGrowth(t *testing.T) {
	t.Parallel()

	t.Run("records one measurement per run and layer", func(t *testing.T) {
		t.Parallel()

		// a links to b and c; both dead ends link onward.
		wiki := &fakeWiki{
			links: map[string][]string{
				"a": {"b", "c"},
				"b": {"d"},
				"c": {"e"},
			},
			seeds: []string{"a"},
		}

		g := graph.New()
		store := graph.NewStore(filepath.Join(t.TempDir(), "graph.xml"))
		logs := testLogs(t)
		a := New(g, store, wiki.crawl(g), wiki.seed, logs)

		records, err := a.Growth(context.Background(), 1, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []model.GrowthRecord{
			{Run: 1, Layer: 0, Nodes: 3}, // a, b, c
			{Run: 1, Layer: 1, Nodes: 5}, // + d, e
			{Run: 1, Layer: 2, Nodes: 5}, // d and e are dead ends with no links
		}
		if len(records) != len(want) {
			t.Fatalf("expected %d records, got %d: %+v", len(want), len(records), records)
		}
		for i, rec := range records {
			if rec != want[i] {
				t.Errorf("record %d: expected %+v, got %+v", i, want[i], rec)
			}
		}

		lines := readLines(t, logs.Growth)
		wantLines := []string{"1.0: 3", "1.1: 5", "1.2: 5"}
		for i, line := range wantLines {
			if lines[i] != line {
				t.Errorf("log line %d: expected %q, got %q", i, line, lines[i])
			}
		}
	})

	t.Run("node counts never decrease within a run", func(t *testing.T) {
		t.Parallel()

		wiki := &fakeWiki{
			links: map[string][]string{
				"a": {"b"},
				"b": {"c"},
				"c": {"a"},
			},
			seeds: []string{"a"},
		}

		g := graph.New()
		store := graph.NewStore(filepath.Join(t.TempDir(), "graph.xml"))
		a := New(g, store, wiki.crawl(g), wiki.seed, testLogs(t))

		records, err := a.Growth(context.Background(), 1, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := 1; i < len(records); i++ {
			if records[i].Nodes < records[i-1].Nodes {
				t.Errorf("node count decreased: %+v -> %+v", records[i-1], records[i])
			}
		}
	})

	t.Run("discards the persisted graph before measuring", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "graph.xml")
		store := graph.NewStore(path)

		stale := graph.New()
		stale.AddEdge("x", "y")
		if err := store.Persist(stale); err != nil {
			t.Fatalf("failed to persist: %v", err)
		}

		wiki := &fakeWiki{links: map[string][]string{}, seeds: []string{"a"}}
		g := graph.New()
		g.AddEdge("x", "y")
		a := New(g, store, wiki.crawl(g), wiki.seed, testLogs(t))

		records, err := a.Growth(context.Background(), 1, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("expected persisted graph file to be removed")
		}
		if records[0].Nodes != 1 {
			t.Errorf("expected fresh graph with only the seed, got %d nodes", records[0].Nodes)
		}
	})

	t.Run("rejects invalid parameters", func(t *testing.T) {
		t.Parallel()

		g := graph.New()
		store := graph.NewStore(filepath.Join(t.TempDir(), "graph.xml"))
		wiki := &fakeWiki{}
		a := New(g, store, wiki.crawl(g), wiki.seed, testLogs(t))

		if _, err := a.Growth(context.Background(), 0, 1); !errors.Is(err, ErrInvalidGrowthParams) {
			t.Errorf("expected ErrInvalidGrowthParams for runs=0, got %v", err)
		}
		if _, err := a.Growth(context.Background(), 1, -1); !errors.Is(err, ErrInvalidGrowthParams) {
			t.Errorf("expected ErrInvalidGrowthParams for layers=-1, got %v", err)
		}
	})

	t.Run("returns partial records when a seed fails", func(t *testing.T) {
		t.Parallel()

		wiki := &fakeWiki{
			links: map[string][]string{"a": {"b"}},
			seeds: []string{"a"}, // second run has no seed left
		}

		g := graph.New()
		store := graph.NewStore(filepath.Join(t.TempDir(), "graph.xml"))
		a := New(g, store, wiki.crawl(g), wiki.seed, testLogs(t))

		records, err := a.Growth(context.Background(), 2, 0)
		if err == nil {
			t.Fatal("expected error from exhausted seed source")
		}
		if len(records) != 1 {
			t.Errorf("expected 1 partial record, got %d", len(records))
		}
	})
}

// TestShortestPath tests path sampling over the undirected projection.
func TestShortestPath(t *testing.T) {
	t.Parallel()

	t.Run("finds a path and appends it to the log", func(t *testing.T) {
		t.Parallel()

		// Chain a -> b -> c: any sampled pair is connected.
		g := graph.New()
		g.AddEdge("a", "b")
		g.AddEdge("b", "c")

		logs := testLogs(t)
		a := New(g, nil, nil, nil, logs, WithRand(rand.New(rand.NewSource(1))))

		path, err := a.ShortestPath()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(path) < 2 {
			t.Fatalf("expected path with at least 2 nodes, got %v", path)
		}

		lines := readLines(t, logs.Paths)
		if len(lines) != len(path)+1 {
			t.Fatalf("expected %d log lines, got %d", len(path)+1, len(lines))
		}
		for i, url := range path {
			if lines[i] != url {
				t.Errorf("log line %d: expected %q, got %q", i, url, lines[i])
			}
		}
		if lines[len(lines)-1] != "--------------------------" {
			t.Errorf("expected separator line, got %q", lines[len(lines)-1])
		}
	})

	t.Run("path via undirected projection ignores edge direction", func(t *testing.T) {
		t.Parallel()

		// Both edges point away from b; only the undirected view
		// connects a and c.
		g := graph.New()
		g.AddEdge("b", "a")
		g.AddEdge("b", "c")

		found := false
		for seed := int64(0); seed < 16 && !found; seed++ {
			a := New(g, nil, nil, nil, testLogs(t), WithRand(rand.New(rand.NewSource(seed))))
			path, err := a.ShortestPath()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if path[0] == "a" && path[len(path)-1] == "c" || path[0] == "c" && path[len(path)-1] == "a" {
				if len(path) != 3 {
					t.Errorf("expected a-b-c path of length 3, got %v", path)
				}
				found = true
			}
		}
		if !found {
			t.Error("never sampled the a..c pair across seeds")
		}
	})

	t.Run("disconnected nodes yield ErrNoPath", func(t *testing.T) {
		t.Parallel()

		g := graph.New()
		g.AddNode("a")
		g.AddNode("b")

		a := New(g, nil, nil, nil, testLogs(t), WithRand(rand.New(rand.NewSource(1))))
		if _, err := a.ShortestPath(); !errors.Is(err, ErrNoPath) {
			t.Errorf("expected ErrNoPath, got %v", err)
		}
	})

	t.Run("fewer than two nodes yields ErrNoPath", func(t *testing.T) {
		t.Parallel()

		g := graph.New()
		g.AddNode("a")

		a := New(g, nil, nil, nil, testLogs(t))
		if _, err := a.ShortestPath(); !errors.Is(err, ErrNoPath) {
			t.Errorf("expected ErrNoPath, got %v", err)
		}
	})
}

// TestBFSPath tests the path search directly.
func TestBFSPath(t *testing.T) {
	t.Parallel()

	g := graph.New()
	g.AddEdge("a", "b")
	g.AddEdge("b", "c")
	g.AddEdge("c", "d")
	g.AddEdge("a", "d") // shortcut
	u := g.Undirected()

	t.Run("prefers the shorter route", func(t *testing.T) {
		t.Parallel()

		path := bfsPath(u, "a", "d")
		if len(path) != 2 || path[0] != "a" || path[1] != "d" {
			t.Errorf("expected direct path, got %v", path)
		}
	})

	t.Run("identical endpoints", func(t *testing.T) {
		t.Parallel()

		path := bfsPath(u, "b", "b")
		if len(path) != 1 || path[0] != "b" {
			t.Errorf("expected single-node path, got %v", path)
		}
	})

	t.Run("unreachable target", func(t *testing.T) {
		t.Parallel()

		g2 := graph.New()
		g2.AddNode("x")
		g2.AddNode("y")
		if path := bfsPath(g2.Undirected(), "x", "y"); path != nil {
			t.Errorf("expected nil path, got %v", path)
		}
	})
}

// TestCycles tests the cycle-basis count.
func TestCycles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		edges [][2]string
		nodes []string
		want  int
	}{
		{
			name: "triangle has one cycle",
			edges: [][2]string{
				{"a", "b"}, {"b", "c"}, {"c", "a"},
			},
			want: 1,
		},
		{
			name: "tree has no cycles",
			edges: [][2]string{
				{"a", "b"}, {"a", "c"}, {"c", "d"},
			},
			want: 0,
		},
		{
			name: "two separate triangles",
			edges: [][2]string{
				{"a", "b"}, {"b", "c"}, {"c", "a"},
				{"x", "y"}, {"y", "z"}, {"z", "x"},
			},
			want: 2,
		},
		{
			name: "opposing directed edges collapse to one undirected edge",
			edges: [][2]string{
				{"a", "b"}, {"b", "a"},
			},
			want: 0,
		},
		{
			name:  "isolated nodes only",
			nodes: []string{"a", "b"},
			want:  0,
		},
		{
			name: "empty graph",
			want: 0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := graph.New()
			for _, n := range tt.nodes {
				g.AddNode(n)
			}
			for _, e := range tt.edges {
				g.AddEdge(e[0], e[1])
			}

			a := New(g, nil, nil, nil, LogPaths{})
			if got := a.Cycles(); got != tt.want {
				t.Errorf("expected %d cycles, got %d", tt.want, got)
			}
		})
	}
}

// TestAppendLine tests the log appender.
func TestAppendLine(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.log")
	for _, line := range []string{"erste", "zweite"} {
		if err := appendLine(path, line); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	lines := readLines(t, path)
	if len(lines) != 2 || lines[0] != "erste" || lines[1] != "zweite" {
		t.Errorf("unexpected log content: %v", lines)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("failed to stat log: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected 0600 permissions, got %o", perm)
	}
}
