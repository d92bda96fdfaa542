package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/dmitrijs2005/readtrack/internal/flagx"
	"github.com/dmitrijs2005/readtrack/internal/logging"
)

const (
	DefaultAPIBaseURL     = "http://127.0.0.1:3001"
	DefaultDatabasePath   = "readtrack.db"
	DefaultSearchDebounce = 300 * time.Millisecond
	DefaultLogLevel       = "info"
	DefaultLogFile        = "readtrack.log"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime settings for the readtrack CLI.
//
// Fields:
//   - APIBaseURL: scheme://host[:port] of the reading-tracker API.
//   - DatabasePath: sqlite file holding the cached session.
//   - SearchDebounce: pause after the last keystroke before searching.
//   - RequestTimeout: per-request limit; zero means none.
//   - LogLevel: debug, info, warn or error.
//   - LogFile: where logs go; the terminal is reserved for the REPL.
type Config struct {
	APIBaseURL     string
	DatabasePath   string
	SearchDebounce time.Duration
	RequestTimeout time.Duration
	LogLevel       string
	LogFile        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.DatabasePath = DefaultDatabasePath
	c.SearchDebounce = DefaultSearchDebounce
	c.RequestTimeout = 0
	c.LogLevel = DefaultLogLevel
	c.LogFile = DefaultLogFile
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: api base url %q", ErrInvalidConfig, c.APIBaseURL)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("%w: empty database path", ErrInvalidConfig)
	}
	if c.SearchDebounce <= 0 {
		return fmt.Errorf("%w: search debounce must be positive", ErrInvalidConfig)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout", ErrInvalidConfig)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file (if given) and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, flagx.ConfigFileFrom(args)); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
