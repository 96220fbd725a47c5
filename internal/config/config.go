// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"budgetcast/core/types"
	"budgetcast/internal/errors"
	"budgetcast/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Period contains pay-period configuration
	Period PeriodConfig `json:"period"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// PeriodConfig contains pay-period settings
type PeriodConfig struct {
	// AnchorWeekday is the weekday every pay period starts on
	// (e.g., "friday")
	AnchorWeekday string `json:"anchor_weekday"`

	// Currency is the display currency code
	Currency types.Currency `json:"currency"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json)
	DefaultFormat string `json:"default_format"`

	// ShowWarnings includes data-quality warnings in output
	ShowWarnings bool `json:"show_warnings"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Version: "1",
		Period: PeriodConfig{
			AnchorWeekday: "friday",
			Currency:      types.CurrencyUSD,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowWarnings:  true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// current is the active configuration
var current = Default()

// Get returns the active configuration
func Get() *Config {
	return current
}

// Set replaces the active configuration
func Set(cfg *Config) {
	current = cfg
}

// Load reads configuration from a JSON file, layering it over defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "reading config file", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "parsing config file", err)
	}

	if _, err := cfg.Anchor(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Anchor resolves the configured anchor weekday.
func (c *Config) Anchor() (time.Weekday, error) {
	weekdays := map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}
	day, ok := weekdays[strings.ToLower(c.Period.AnchorWeekday)]
	if !ok {
		return 0, errors.Newf(errors.TypeConfig, "invalid anchor weekday: %q", c.Period.AnchorWeekday)
	}
	return day, nil
}
