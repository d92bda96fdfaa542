package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	want := &Config{
		APIBaseURL:     "http://127.0.0.1:3001",
		DatabasePath:   "readtrack.db",
		SearchDebounce: 300 * time.Millisecond,
		RequestTimeout: 0,
		LogLevel:       "info",
		LogFile:        "readtrack.log",
	}
	assert.Empty(t, cmp.Diff(want, defaults()))
	require.NoError(t, defaults().Validate())
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    func(*Config)
		wantErr bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "https://books.example.org", "-d", "/tmp/rt.db", "-s", "150", "-t", "5", "-l", "debug", "-f", "/tmp/rt.log"},
			want: func(c *Config) {
				c.APIBaseURL = "https://books.example.org"
				c.DatabasePath = "/tmp/rt.db"
				c.SearchDebounce = 150 * time.Millisecond
				c.RequestTimeout = 5 * time.Second
				c.LogLevel = "debug"
				c.LogFile = "/tmp/rt.log"
			},
		},
		{
			name: "foreign flags are ignored",
			args: []string{"-c", "cfg.json", "--verbose", "-s=500"},
			want: func(c *Config) { c.SearchDebounce = 500 * time.Millisecond },
		},
		{
			name:    "non-numeric debounce",
			args:    []string{"-s", "fast"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			want := defaults()
			tt.want(want)
			assert.Empty(t, cmp.Diff(want, cfg))
		})
	}
}

func TestParseFile(t *testing.T) {
	t.Run("json overrides only present fields", func(t *testing.T) {
		path := writeFile(t, "cfg.json", `{"api_base_url":"https://json.example","search_debounce":"1s","request_timeout":2000000000}`)
		cfg := defaults()
		require.NoError(t, parseFile(cfg, path))

		want := defaults()
		want.APIBaseURL = "https://json.example"
		want.SearchDebounce = time.Second
		want.RequestTimeout = 2 * time.Second
		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("yaml by extension", func(t *testing.T) {
		path := writeFile(t, "cfg.yaml", "database_path: /var/rt.db\nlog_level: warn\nsearch_debounce: 250ms\n")
		cfg := defaults()
		require.NoError(t, parseFile(cfg, path))

		want := defaults()
		want.DatabasePath = "/var/rt.db"
		want.LogLevel = "warn"
		want.SearchDebounce = 250 * time.Millisecond
		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("empty path is a no-op", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseFile(cfg, ""))
		assert.Empty(t, cmp.Diff(defaults(), cfg))
	})

	t.Run("missing file", func(t *testing.T) {
		require.Error(t, parseFile(defaults(), filepath.Join(t.TempDir(), "nope.json")))
	})

	t.Run("invalid json", func(t *testing.T) {
		path := writeFile(t, "bad.json", `{ this is not valid json`)
		require.Error(t, parseFile(defaults(), path))
	})

	t.Run("invalid duration", func(t *testing.T) {
		path := writeFile(t, "bad.yml", "search_debounce: soon\n")
		require.Error(t, parseFile(defaults(), path))
	})
}

func TestLoad_Precedence(t *testing.T) {
	path := writeFile(t, "cfg.json", `{"api_base_url":"https://file.example","log_level":"debug"}`)

	cfg, err := load([]string{"-config", path, "-a", "https://flag.example"})
	require.NoError(t, err)
	assert.Equal(t, "https://flag.example", cfg.APIBaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, DefaultSearchDebounce, cfg.SearchDebounce)
}

func TestLoad_FileDurationsKeepSubUnitPrecision(t *testing.T) {
	path := writeFile(t, "cfg.json", `{"request_timeout":"1500ms","search_debounce":"250500us"}`)

	cfg, err := load([]string{"-c", path})
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, 250500*time.Microsecond, cfg.SearchDebounce)

	cfg, err = load([]string{"-c", path, "-t", "3"})
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 250500*time.Microsecond, cfg.SearchDebounce)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"ftp scheme", func(c *Config) { c.APIBaseURL = "ftp://host" }},
		{"no host", func(c *Config) { c.APIBaseURL = "http://" }},
		{"empty db", func(c *Config) { c.DatabasePath = "" }},
		{"zero debounce", func(c *Config) { c.SearchDebounce = 0 }},
		{"negative timeout", func(c *Config) { c.RequestTimeout = -time.Second }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	_, err := load([]string{"-s", "0"})
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = load([]string{"-c", filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
}
