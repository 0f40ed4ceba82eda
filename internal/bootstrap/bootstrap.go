// Package bootstrap wires configuration, logging and the persistent store
// for the auditlens binaries.
package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"

	"auditlens/internal/adapters/sqlite"
	"auditlens/internal/config"
	"auditlens/internal/logging"
	"auditlens/internal/store"
)

// Overrides are command line values that win over file and environment
// settings. Empty fields leave the configured value alone.
type Overrides struct {
	ConfigPath string
	StatePath  string
	Session    string
	LogLevel   string
}

// LoadConfig reads .env from the working directory, then resolves the
// configuration and applies the overrides
func LoadConfig(o Overrides) (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, err
	}

	if o.StatePath != "" {
		cfg.StatePath = config.ExpandHome(o.StatePath)
	}
	if o.Session != "" {
		cfg.Session = o.Session
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Open loads the configuration, installs the default logger writing to w
// and opens the store on the configured session slot
func Open(o Overrides, w io.Writer) (*config.Config, *store.Store, error) {
	cfg, err := LoadConfig(o)
	if err != nil {
		return nil, nil, err
	}

	logging.Setup(cfg.LogLevel, cfg.LogFormat, w)

	st, err := OpenStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, st, nil
}

// OpenStore opens the sqlite slot for cfg.Session and loads the store
// from it
func OpenStore(cfg *config.Config) (*store.Store, error) {
	slot, err := sqlite.OpenSlot(cfg.StatePath, cfg.Session)
	if err != nil {
		return nil, err
	}
	slog.Debug("state slot opened", "path", slot.Path(), "session", cfg.Session)
	return store.New(slot), nil
}
