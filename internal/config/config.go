// Package config resolves auditlens settings from defaults, an optional
// config file and AUDITLENS_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ConfigEnv names the variable pointing at a config file
const ConfigEnv = "AUDITLENS_CONFIG"

// Config holds the settings shared by every auditlens binary
type Config struct {
	// StatePath is the sqlite database holding the state slot
	StatePath string `env:"AUDITLENS_STATE"`

	// Session selects the slot inside the database (default: default)
	Session string `env:"AUDITLENS_SESSION"`

	// Workers bounds concurrent file reads and decodes (default: 4)
	Workers int `env:"AUDITLENS_WORKERS"`

	LogLevel  string `env:"AUDITLENS_LOG_LEVEL"`
	LogFormat string `env:"AUDITLENS_LOG_FORMAT"`

	// WatchDebounce coalesces bursts of directory events (default: 500ms)
	WatchDebounce time.Duration `env:"AUDITLENS_WATCH_DEBOUNCE"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		StatePath:     DefaultStatePath(),
		Session:       "default",
		Workers:       4,
		LogLevel:      "info",
		LogFormat:     "text",
		WatchDebounce: 500 * time.Millisecond,
	}
}

// DefaultStatePath returns $XDG_DATA_HOME/auditlens/state.db
func DefaultStatePath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "auditlens", "state.db")
}

// Load resolves the configuration. path names a config file and may be
// empty, in which case AUDITLENS_CONFIG is consulted. Environment
// variables override file values.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path != "" {
		if err := loadFile(cfg, ExpandHome(path)); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
	}

	if err := loadEnv(cfg); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	cfg.StatePath = ExpandHome(cfg.StatePath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration and reports every problem at once
func (c *Config) Validate() error {
	var errs []string

	if c.StatePath == "" {
		errs = append(errs, "AUDITLENS_STATE must not be empty")
	}
	if c.Session == "" {
		errs = append(errs, "AUDITLENS_SESSION must not be empty")
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Sprintf("AUDITLENS_WORKERS (%d) must be positive", c.Workers))
	}
	if c.WatchDebounce < 0 {
		errs = append(errs, "AUDITLENS_WATCH_DEBOUNCE must be non-negative")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("AUDITLENS_LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.LogLevel))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.LogFormat)] {
		errs = append(errs, fmt.Sprintf("AUDITLENS_LOG_FORMAT (%q) must be one of: text, json", c.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
