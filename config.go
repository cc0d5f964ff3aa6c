package repackdb

import "time"

// Default configuration values.
const (
	DefaultBaseURL   = "https://fitgirl-repacks.site"
	DefaultDBPath    = "repacks.db"
	DefaultBlocklist = "config/blocklist.txt"
	DefaultMaxPages  = 50
	DefaultDelay     = time.Second
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Config holds the crawl run configuration. It is an explicit value object
// passed into the orchestrator at construction; there is no module-level
// configuration state.
type Config struct {
	// BaseURL is the catalog root. Page N > 1 is fetched from
	// BaseURL/page/N/.
	BaseURL string `yaml:"base_url"`

	// DBPath is the SQLite database location.
	DBPath string `yaml:"db_path"`

	// BlocklistPath is the line-oriented pattern file for the filter gate.
	BlocklistPath string `yaml:"blocklist_path"`

	// StartPage is the first page to crawl (1-based).
	StartPage int `yaml:"start_page"`

	// MaxPages bounds the traversal. Zero means crawl until the site runs
	// out of pages.
	MaxPages int `yaml:"max_pages"`

	// Delay is the minimum interval between fetches.
	Delay time.Duration `yaml:"delay"`

	// UserAgent is sent with every request.
	UserAgent string `yaml:"user_agent"`
}

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:       DefaultBaseURL,
		DBPath:        DefaultDBPath,
		BlocklistPath: DefaultBlocklist,
		StartPage:     1,
		MaxPages:      DefaultMaxPages,
		Delay:         DefaultDelay,
		UserAgent:     DefaultUserAgent,
	}
}

// Validate returns an error if the configuration is unusable.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return Errorf(EINVALID, "base URL required")
	}
	if c.StartPage < 1 {
		return Errorf(EINVALID, "start page must be at least 1")
	}
	if c.MaxPages < 0 {
		return Errorf(EINVALID, "max pages must be non-negative")
	}
	if c.Delay < 0 {
		return Errorf(EINVALID, "delay must be non-negative")
	}
	return nil
}
