package graph

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store persists a Graph to a GraphML file at a fixed path.
// It is a thin repository: loading, saving, and resetting are explicit
// entry points, independent of crawl orchestration lifecycle.
type Store struct {
	path string
}

// NewStore creates a Store bound to the given file path.
// The parent directory is created on first Persist, not here, so a
// Store over a read-only location can still load.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the graph file path.
func (s *Store) Path() string {
	return s.path
}

// LoadOrCreate returns the persisted graph if the file exists, or a
// new empty graph otherwise. The second return reports which branch
// was taken: true when prior state was loaded.
func (s *Store) LoadOrCreate() (*Graph, bool, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), false, nil
		}
		return nil, false, fmt.Errorf("failed to open graph file: %w", err)
	}
	defer f.Close()

	g, err := DecodeGraphML(f)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load graph from %s: %w", s.path, err)
	}
	return g, true, nil
}

// Persist serializes the graph, overwriting any existing file.
// The write goes through a temp file and rename so a crash mid-write
// never leaves a truncated graph behind.
func (s *Store) Persist(g *Graph) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return fmt.Errorf("failed to create graph directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".graph-*.xml")
	if err != nil {
		return fmt.Errorf("failed to create temp graph file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := EncodeGraphML(g, tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp graph file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace graph file: %w", err)
	}
	return nil
}

// Reset deletes the persisted file. A failed delete (typically: the
// file never existed) is returned for logging but callers treat it as
// non-fatal; a subsequent LoadOrCreate still yields an empty graph.
func (s *Store) Reset() error {
	if err := os.Remove(s.path); err != nil {
		return fmt.Errorf("failed to reset graph file: %w", err)
	}
	return nil
}
