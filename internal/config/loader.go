package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".wikigraph"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// WikiConfig holds per-wiki overrides loaded from the configuration
// file. Zero values fall back to the compiled-in defaults.
type WikiConfig struct {
	// Origin is the site origin, e.g. "https://en.wikipedia.org".
	Origin string `yaml:"origin,omitempty"`

	// SiteName is the title suffix the wiki appends to page titles,
	// e.g. "Wikipedia".
	SiteName string `yaml:"siteName,omitempty"`

	// RandomPage is the path under /wiki/ of the random-article
	// redirect, e.g. "Special:Random" for English-language wikis.
	RandomPage string `yaml:"randomPage,omitempty"`

	// ExcludedNamespaces overrides the namespace prefixes skipped
	// during link filtering.
	ExcludedNamespaces []string `yaml:"excludedNamespaces,omitempty"`

	// Depth overrides the crawl depth.
	Depth int `yaml:"depth,omitempty"`

	// DelayMillis overrides the politeness delay, in milliseconds.
	DelayMillis int `yaml:"delayMillis,omitempty"`
}

// File represents the structure of the .wikigraph configuration file.
type File struct {
	// Wiki holds the crawl target settings.
	Wiki WikiConfig `yaml:"wiki,omitempty"`

	// DataDir overrides the XDG data directory.
	DataDir string `yaml:"dataDir,omitempty"`
}

// LoadConfigFile loads wiki settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers
// decide whether that matters based on whether the path was explicitly
// specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .wikigraph in the current directory
//  3. Look for .wikigraph in the user's home directory
//
// Returns the path to the configuration file if found, or empty string
// if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// Apply merges file settings into the Config. Only non-zero file
// values override; flag values applied after Apply win over both.
func (cf *File) Apply(c *Config) {
	if cf.Wiki.Origin != "" {
		c.Origin = cf.Wiki.Origin
	}
	if cf.Wiki.SiteName != "" {
		c.SiteName = cf.Wiki.SiteName
	}
	if cf.Wiki.RandomPage != "" {
		c.RandomPage = cf.Wiki.RandomPage
	}
	if len(cf.Wiki.ExcludedNamespaces) > 0 {
		c.ExcludedNamespaces = cf.Wiki.ExcludedNamespaces
	}
	if cf.Wiki.Depth > 0 {
		c.CrawlDepth = cf.Wiki.Depth
	}
	if cf.Wiki.DelayMillis > 0 {
		c.CrawlDelay = time.Duration(cf.Wiki.DelayMillis) * time.Millisecond
	}
	if cf.DataDir != "" {
		c.DataDir = cf.DataDir
	}
}
