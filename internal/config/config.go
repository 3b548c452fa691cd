// Package config provides functionality for managing configuration options
// for the client using command-line flags, a .env file, and environment
// variables.
package config

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the client.
type Options struct {
	// APIBaseURL is the base URL of the storefront API, including the
	// /api prefix.
	APIBaseURL string

	// StateDir is the directory holding the persisted cart and token.
	StateDir string

	// LogLevel sets the zap logging level (debug, info, warn, error).
	LogLevel string

	// ShowVersion prints build metadata and exits.
	ShowVersion bool
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.APIBaseURL, "url", "http://localhost:8000/api", "storefront API base URL")
	flag.StringVar(&options.StateDir, "state", ".storefront", "directory for persisted client state")
	flag.StringVar(&options.LogLevel, "log", "info", "log level: debug, info, warn, error")
	flag.BoolVar(&options.ShowVersion, "version", false, "show build version and date")
}

// Parse parses the command-line flags, an optional .env file, and
// environment variables to set configuration values. Environment variables
// take precedence over flags. It returns a pointer to the Options struct
// containing the parsed configuration values.
func Parse() *Options {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	flag.Parse()

	if url := os.Getenv("STOREFRONT_API_URL"); url != "" {
		options.APIBaseURL = url
	}
	if dir := os.Getenv("STOREFRONT_STATE_DIR"); dir != "" {
		options.StateDir = dir
	}
	if level := os.Getenv("STOREFRONT_LOG_LEVEL"); level != "" {
		options.LogLevel = level
	}

	return options
}
