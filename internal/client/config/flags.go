package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/readtrack/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the reading-tracker API
//	-d string   path of the local sqlite database
//	-s int      search debounce (milliseconds)
//	-t int      request timeout (seconds, 0 = none)
//	-l string   log level
//	-f string   log file
//
// args is filtered with flagx.FilterArgs first, so flags owned by other
// components (-c/-config) do not break parsing.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-l", "-f"})

	fs := flag.NewFlagSet("readtrack", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the reading-tracker API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local database")
	debounce := fs.Int("s", int(cfg.SearchDebounce.Milliseconds()), "search debounce (in milliseconds)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds, 0 = none)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFile, "f", cfg.LogFile, "log file")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// Durations from the file may be finer than the flag units, so only
	// flags given on the command line replace them.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "s":
			cfg.SearchDebounce = time.Duration(*debounce) * time.Millisecond
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
