// Package config loads runtime configuration for the readtrack CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. JSON by default,
//     YAML when the name ends in .yaml or .yml.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   API base URL
//	-d string   local database path
//	-s int      search debounce (milliseconds)
//	-t int      request timeout (seconds, 0 = none)
//	-l string   log level
//	-f string   log file
//
// # File schema
//
// Durations may be strings like "300ms" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://books.example.org",
//	  "database_path": "/home/me/.local/share/readtrack/readtrack.db",
//	  "search_debounce": "300ms",
//	  "request_timeout": "10s",
//	  "log_level": "info",
//	  "log_file": "readtrack.log"
//	}
//
// Note: This package does not read environment variables directly; use the
// config file or flags to configure values.
package config
