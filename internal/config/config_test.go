package config

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfig tests default configuration values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.Origin != DefaultOrigin {
		t.Errorf("expected origin %q, got %q", DefaultOrigin, cfg.Origin)
	}
	if cfg.CrawlDepth != DefaultCrawlDepth {
		t.Errorf("expected depth %d, got %d", DefaultCrawlDepth, cfg.CrawlDepth)
	}
	if cfg.Workers != DefaultWorkers {
		t.Errorf("expected workers %d, got %d", DefaultWorkers, cfg.Workers)
	}
	if len(cfg.ExcludedNamespaces) != 7 {
		t.Errorf("expected 7 excluded namespaces, got %d", len(cfg.ExcludedNamespaces))
	}
}

// TestConfigValidate tests configuration validation.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	t.Run("default config is valid", func(t *testing.T) {
		t.Parallel()

		if err := NewConfig().Validate(); err != nil {
			t.Errorf("expected valid config, got %v", err)
		}
	})

	t.Run("rejects origin without scheme", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.Origin = "de.wikipedia.org"
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidOrigin) {
			t.Errorf("expected ErrInvalidOrigin, got %v", err)
		}
	})

	t.Run("rejects negative depth", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.CrawlDepth = -1
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidDepth) {
			t.Errorf("expected ErrInvalidDepth, got %v", err)
		}
	})

	t.Run("rejects zero timeout", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.Timeout = 0
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidTimeout) {
			t.Errorf("expected ErrInvalidTimeout, got %v", err)
		}
	})

	t.Run("rejects negative crawl delay", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.CrawlDelay = -time.Second
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidCrawlDelay) {
			t.Errorf("expected ErrInvalidCrawlDelay, got %v", err)
		}
	})

	t.Run("rejects zero workers", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.Workers = 0
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidWorkers) {
			t.Errorf("expected ErrInvalidWorkers, got %v", err)
		}
	})

	t.Run("rejects zero growth runs", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.GrowthRuns = 0
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidGrowthParams) {
			t.Errorf("expected ErrInvalidGrowthParams, got %v", err)
		}
	})
}

// TestConfigPaths tests data file path helpers.
func TestConfigPaths(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	cfg.DataDir = filepath.Join("some", "dir")

	if got := cfg.GraphPath(); got != filepath.Join("some", "dir", GraphFileName) {
		t.Errorf("unexpected graph path: %s", got)
	}
	if got := cfg.GrowthLogPath(); got != filepath.Join("some", "dir", GrowthLogName) {
		t.Errorf("unexpected growth log path: %s", got)
	}
	if got := cfg.PathsLogPath(); got != filepath.Join("some", "dir", PathsLogName) {
		t.Errorf("unexpected paths log path: %s", got)
	}
}
