package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoadConfigFile tests YAML configuration file loading.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads wiki overrides", func(t *testing.T) {
		t.Parallel()

		content := `wiki:
  origin: https://en.wikipedia.org
  siteName: Wikipedia
  randomPage: Special:Random
  excludedNamespaces:
    - Wikipedia
    - Special
    - Talk
  depth: 2
  delayMillis: 250
dataDir: /tmp/wikigraph-test
`
		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("failed to load config file: %v", err)
		}

		if cf.Wiki.Origin != "https://en.wikipedia.org" {
			t.Errorf("unexpected origin: %s", cf.Wiki.Origin)
		}
		if cf.Wiki.RandomPage != "Special:Random" {
			t.Errorf("unexpected random page: %s", cf.Wiki.RandomPage)
		}
		if len(cf.Wiki.ExcludedNamespaces) != 3 {
			t.Errorf("expected 3 excluded namespaces, got %d", len(cf.Wiki.ExcludedNamespaces))
		}
	})

	t.Run("returns ErrConfigNotFound for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("wiki: [unclosed"), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for malformed yaml")
		}
	})
}

// TestFileApply tests merging file settings into a Config.
func TestFileApply(t *testing.T) {
	t.Parallel()

	t.Run("non-zero values override defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cf := &File{
			Wiki: WikiConfig{
				Origin:      "https://en.wikipedia.org",
				Depth:       3,
				DelayMillis: 100,
			},
		}
		cf.Apply(cfg)

		if cfg.Origin != "https://en.wikipedia.org" {
			t.Errorf("unexpected origin: %s", cfg.Origin)
		}
		if cfg.CrawlDepth != 3 {
			t.Errorf("unexpected depth: %d", cfg.CrawlDepth)
		}
		if cfg.CrawlDelay != 100*time.Millisecond {
			t.Errorf("unexpected delay: %v", cfg.CrawlDelay)
		}
	})

	t.Run("zero values keep defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		(&File{}).Apply(cfg)

		if cfg.Origin != DefaultOrigin {
			t.Errorf("expected default origin, got %s", cfg.Origin)
		}
		if cfg.CrawlDelay != DefaultCrawlDelay {
			t.Errorf("expected default delay, got %v", cfg.CrawlDelay)
		}
	})
}
