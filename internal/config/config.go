package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The wiki-specific defaults reproduce the behavior of the original
// survey crawler, which indexed the German-language Wikipedia.
const (
	// DefaultOrigin is the fixed site origin prefixed to every
	// surviving intra-wiki link to form a canonical absolute URL.
	DefaultOrigin = "https://de.wikipedia.org"

	// DefaultSiteName is the name the wiki appends to every page
	// title ("<Article> – <SiteName>"). The parser strips this
	// suffix when extracting article titles.
	DefaultSiteName = "Wikipedia"

	// DefaultRandomPage is the path (under /wiki/) of the wiki's
	// random-article redirect. Fetching it yields an arbitrary
	// article, which seeds crawls when the user supplies none.
	DefaultRandomPage = "Spezial:Zuf%C3%A4llige_Seite"

	// DefaultCrawlDepth is the default recursion depth. Depth 0
	// fetches the seed article and every article it links to;
	// each additional level follows links one hop further.
	DefaultCrawlDepth = 0

	// DefaultTimeout is the per-request timeout. Wikipedia responds
	// quickly; a generous timeout only matters for slow links.
	DefaultTimeout = 30 * time.Second

	// DefaultCrawlDelay is the politeness delay between requests.
	// 500ms keeps a full depth-1 crawl well under the request rates
	// Wikimedia asks bots to stay below.
	DefaultCrawlDelay = 500 * time.Millisecond

	// DefaultWorkers is the number of concurrent fetches. The
	// reference behavior is fully sequential, so 1 is the default;
	// raising it fetches each frontier level concurrently.
	DefaultWorkers = 1

	// DefaultMaxBodySize limits the response body size. 5MB covers
	// even the largest encyclopedia articles.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// DefaultUserAgent identifies wikigraph in HTTP requests.
	// Wikimedia policy requires a descriptive User-Agent for bots.
	DefaultUserAgent = "wikigraph/1.0 (+https://github.com/wikigraph/wikigraph)"

	// DefaultGrowthRuns is the number of independent growth-test runs.
	DefaultGrowthRuns = 1

	// DefaultGrowthLayers is the number of frontier-expansion
	// iterations per growth-test run.
	DefaultGrowthLayers = 2

	// AppName is the application name used for XDG directory paths.
	AppName = "wikigraph"

	// GraphFileName is the persisted graph file (GraphML) inside the
	// data directory. Its absence means no prior crawl state.
	GraphFileName = "graph.xml"

	// ArchiveFileName is the SQLite page archive inside the data
	// directory.
	ArchiveFileName = "archive.db"

	// GrowthLogName is the append-only growth-test record log.
	GrowthLogName = "growth.log"

	// PathsLogName is the append-only shortest-path record log.
	PathsLogName = "paths.log"
)

// DefaultExcludedNamespaces are the non-article namespace prefixes
// skipped during link filtering. These are the German Wikipedia names;
// other-language wikis override them via the configuration file.
func DefaultExcludedNamespaces() []string {
	return []string{
		"Wikipedia",
		"Portal",
		"Spezial",
		"Kategorie",
		"Datei",
		"Hilfe",
		"Diskussion",
	}
}

// Config holds all configuration options for wikigraph.
// It is populated from CLI flags and the optional configuration file,
// then passed through the application via dependency injection.
type Config struct {
	// Origin is the site origin ("https://host") prefixed to
	// filtered links and used to build the random-article URL.
	Origin string

	// SiteName is the title suffix the wiki appends to page titles.
	SiteName string

	// RandomPage is the path under /wiki/ of the random-article
	// redirect.
	RandomPage string

	// ExcludedNamespaces are namespace prefixes (the part before the
	// first ':' in an article path segment) that are never crawled.
	ExcludedNamespaces []string

	// Seed is the article URL to start crawling from. Empty means
	// resolve a random article instead.
	Seed string

	// CrawlDepth is the recursion depth for the crawl command.
	CrawlDepth int

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// CrawlDelay is the politeness delay between requests.
	CrawlDelay time.Duration

	// Workers is the number of concurrent fetches per frontier level.
	Workers int

	// MaxBodySize limits the size of response bodies to read.
	MaxBodySize int64

	// Refetch disables per-invocation fetch memoization, restoring
	// the reference behavior of re-fetching a URL once per parent.
	Refetch bool

	// GrowthRuns is the number of growth-test runs.
	GrowthRuns int

	// GrowthLayers is the number of frontier expansions per run.
	GrowthLayers int

	// DataDir is where the graph file, page archive, and analysis
	// logs live. Defaults to the XDG data directory.
	DataDir string

	// ConfigFilePath is the path to the configuration file. If
	// empty, the tool searches for .wikigraph in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// Verbose enables debug-level log output.
	Verbose bool

	// MarkdownReport selects Markdown report output instead of the
	// human-readable format.
	MarkdownReport bool

	// JSONReport selects JSON report output instead of the
	// human-readable format.
	JSONReport bool

	// ReportFile writes the run report to a file in addition to
	// stdout. Empty means stdout only.
	ReportFile string
}

// NewConfig returns a Config populated with default values.
func NewConfig() *Config {
	return &Config{
		Origin:             DefaultOrigin,
		SiteName:           DefaultSiteName,
		RandomPage:         DefaultRandomPage,
		ExcludedNamespaces: DefaultExcludedNamespaces(),
		CrawlDepth:         DefaultCrawlDepth,
		Timeout:            DefaultTimeout,
		CrawlDelay:         DefaultCrawlDelay,
		Workers:            DefaultWorkers,
		MaxBodySize:        DefaultMaxBodySize,
		GrowthRuns:         DefaultGrowthRuns,
		GrowthLayers:       DefaultGrowthLayers,
		DataDir:            XDGDataDir(),
	}
}

// Validate checks the configuration for invalid values.
// It returns the first sentinel error encountered, suitable for
// errors.Is checks in the cmd layer.
func (c *Config) Validate() error {
	if c.Origin == "" || !strings.Contains(c.Origin, "://") {
		return ErrInvalidOrigin
	}
	if c.CrawlDepth < 0 {
		return ErrInvalidDepth
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.CrawlDelay < 0 {
		return ErrInvalidCrawlDelay
	}
	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.GrowthRuns <= 0 || c.GrowthLayers < 0 {
		return ErrInvalidGrowthParams
	}
	return nil
}

// GraphPath returns the path of the persisted graph file.
func (c *Config) GraphPath() string {
	return filepath.Join(c.DataDir, GraphFileName)
}

// ArchiveDir returns the directory holding the page archive database.
func (c *Config) ArchiveDir() string {
	return c.DataDir
}

// GrowthLogPath returns the path of the growth-test record log.
func (c *Config) GrowthLogPath() string {
	return filepath.Join(c.DataDir, GrowthLogName)
}

// PathsLogPath returns the path of the shortest-path record log.
func (c *Config) PathsLogPath() string {
	return filepath.Join(c.DataDir, PathsLogName)
}

// XDGDataDir returns the XDG data directory for wikigraph.
// On Linux: ~/.local/share/wikigraph
// On macOS: ~/Library/Application Support/wikigraph
// On Windows: %LOCALAPPDATA%\wikigraph
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for wikigraph.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
