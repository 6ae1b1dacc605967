// Package config loads derlens settings from a YAML file with environment
// variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvConfig names the environment variable holding an explicit config path.
const EnvConfig = "DERLENS_CONFIG"

const envVarPrefix = "DERLENS_"

// Config holds every user-tunable setting.
type Config struct {
	// HistoryPath is the SQLite file for submitted inputs. Empty disables history.
	HistoryPath string `yaml:"history_path"`
	// HistoryLimit is how many entries are kept after each submit.
	HistoryLimit int `yaml:"history_limit"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// LogFile receives log output while the TUI owns the terminal.
	LogFile string `yaml:"log_file"`
	// HexWidth is the number of bytes per row in hex views.
	HexWidth int `yaml:"hex_width"`
	// StringPreview bounds string and hex values in tree labels.
	StringPreview int `yaml:"string_preview"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		HistoryPath:   "~/.derlens/history.db",
		HistoryLimit:  100,
		LogLevel:      "info",
		LogFile:       "~/.derlens/derlens.log",
		HexWidth:      16,
		StringPreview: 64,
	}
}

// ValidationError reports one invalid field.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Message, e.Value)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.HexWidth < 4 || c.HexWidth > 64 {
		errs = append(errs, &ValidationError{Field: "hex_width", Value: c.HexWidth, Message: "must be between 4 and 64"})
	}
	if c.HistoryLimit < 0 {
		errs = append(errs, &ValidationError{Field: "history_limit", Value: c.HistoryLimit, Message: "must not be negative"})
	}
	if c.StringPreview < 0 {
		errs = append(errs, &ValidationError{Field: "string_preview", Value: c.StringPreview, Message: "must not be negative"})
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, &ValidationError{Field: "log_level", Value: c.LogLevel, Message: "must be debug, info, warn or error"})
	}
	return errors.Join(errs...)
}

// Discover returns the config file to read: explicit if set, else
// $DERLENS_CONFIG, else the user config under $XDG_CONFIG_HOME (or
// ~/.config).
func Discover(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "derlens", "config.yaml")
}

// Load reads the discovered config file over the defaults, applies
// environment overrides, expands "~" in paths and validates the result.
// A missing file is not an error unless it was named explicitly.
func Load(explicit string) (*Config, error) {
	cfg := Default()

	path := Discover(explicit)
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && explicit == "":
		default:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if err := LoadFromEnv(cfg); err != nil {
		return nil, err
	}

	var err error
	if cfg.HistoryPath, err = ExpandHome(cfg.HistoryPath); err != nil {
		return nil, err
	}
	if cfg.LogFile, err = ExpandHome(cfg.LogFile); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromEnv applies DERLENS_* overrides.
func LoadFromEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(envVarPrefix + "HISTORY_PATH"); ok {
		cfg.HistoryPath = v
	}
	if v := os.Getenv(envVarPrefix + "LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(envVarPrefix + "LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv(envVarPrefix + "HEX_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %sHEX_WIDTH: %w", envVarPrefix, err)
		}
		cfg.HexWidth = n
	}
	return nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expanding %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
