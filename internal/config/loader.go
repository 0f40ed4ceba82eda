package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config for config files. Durations are written as
// strings ("750ms") in both JSON and YAML.
type fileConfig struct {
	StatePath     string `json:"statePath" yaml:"statePath"`
	Session       string `json:"session" yaml:"session"`
	Workers       int    `json:"workers" yaml:"workers"`
	LogLevel      string `json:"logLevel" yaml:"logLevel"`
	LogFormat     string `json:"logFormat" yaml:"logFormat"`
	WatchDebounce string `json:"watchDebounce" yaml:"watchDebounce"`
}

// loadFile overlays the non-zero values of a .json, .jsonc, .yaml or .yml
// file onto cfg. JSON files may carry comments and trailing commas.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &fc); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}

	if fc.StatePath != "" {
		cfg.StatePath = fc.StatePath
	}
	if fc.Session != "" {
		cfg.Session = fc.Session
	}
	if fc.Workers != 0 {
		cfg.Workers = fc.Workers
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		cfg.LogFormat = fc.LogFormat
	}
	if fc.WatchDebounce != "" {
		d, err := time.ParseDuration(fc.WatchDebounce)
		if err != nil {
			return fmt.Errorf("watchDebounce: %w", err)
		}
		cfg.WatchDebounce = d
	}

	return nil
}

// loadEnv overrides fields whose env tag names a set variable
func loadEnv(cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		envName := field.Tag.Get("env")
		if envName == "" || !fieldVal.CanSet() {
			continue
		}

		value := os.Getenv(envName)
		if value == "" {
			continue
		}

		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

// setField sets a reflect.Value from a string based on its type
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration: %w", err)
			}
			field.Set(reflect.ValueOf(d))
		} else {
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer: %w", err)
			}
			field.SetInt(i)
		}

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}
