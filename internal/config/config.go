// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) initializer to build a Config with defaults.
// - Functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"fmt"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir, when set, serves datasets from runners*.json files in this
	// directory instead of the copies compiled into the binary.
	DataDir string `koanf:"data_dir"`

	// PageSize is the default number of rows per search page.
	PageSize int `koanf:"page_size"`

	// MaxPageSize caps the page_size query parameter.
	MaxPageSize int `koanf:"max_page_size"`
}

// New creates a Config holding the defaults. The context is reserved for
// future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:    "info",
		LogFormat:   "text",
		Addr:        ":9080",
		PageSize:    10,
		MaxPageSize: 100,
	}
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.PageSize < 1:
		return fmt.Errorf("%w: page_size must be positive", ErrInvalidConfig)
	case c.MaxPageSize < c.PageSize:
		return fmt.Errorf("%w: max_page_size must be >= page_size", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json", ErrInvalidConfig)
	}
	return nil
}
