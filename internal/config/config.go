// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load layers a .env file, an optional YAML file and ACTIVITIES_ env vars on top.
// - Errors returned from this package wrap ErrLoadConfig or ErrInvalidConfig.
package config

import (
	"fmt"
	"runtime"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// SeedFile optionally points at a YAML roster replacing the built-in one.
	SeedFile string `koanf:"seed_file"`

	// ChangeQueueSize bounds the in-memory roster change queue.
	ChangeQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of change workers.
	WorkerCount int `koanf:"worker_count"`

	// JournalSize sets how many recent roster changes are kept.
	JournalSize int `koanf:"journal_size"`

	// MaxChangesLimit caps GET /changes?limit.
	MaxChangesLimit int `koanf:"max_changes_limit"`

	// AllowedOrigins lists origins granted CORS access. Empty disables CORS headers.
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":8000",
		ChangeQueueSize: 10_000,
		WorkerCount:     max(runtime.NumCPU()/2, 1),
		JournalSize:     1_000,
		MaxChangesLimit: 100,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	case c.ChangeQueueSize < 1:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.WorkerCount < 1:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.JournalSize < 1:
		return fmt.Errorf("%w: journal_size must be positive", ErrInvalidConfig)
	case c.MaxChangesLimit < 1:
		return fmt.Errorf("%w: max_changes_limit must be positive", ErrInvalidConfig)
	}
	return nil
}
