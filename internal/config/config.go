// Package config loads process configuration by layering defaults, an
// optional YAML file, and environment variables. Engine tuning knobs here
// override the compiled-in defaults of the risk and predict packages;
// per-owner settings (inactivity threshold, competitive signals) live in
// the database instead.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/avelinecarr/dealsense/internal/predict"
	"github.com/avelinecarr/dealsense/internal/risk"
)

// Config contains process configuration.
type Config struct {
	// DBPath locates the SQLite deal store.
	DBPath string `koanf:"db_path"`

	// NoColor disables ANSI styling in CLI output.
	NoColor bool `koanf:"no_color"`

	// Risk band cutpoints: score <= LowBandMax is low, <= MediumBandMax is
	// medium, above is high.
	LowBandMax    float64 `koanf:"low_band_max"`
	MediumBandMax float64 `koanf:"medium_band_max"`

	// ValueBaseline is the deal value at which the high-value boost
	// saturates.
	ValueBaseline float64 `koanf:"value_baseline"`

	// FallbackCycleDays seeds days-to-close estimates when no closed-won
	// history exists.
	FallbackCycleDays int `koanf:"fallback_cycle_days"`

	// DefaultP90CycleDays stands in for the 90th-percentile cycle length
	// when no closed history exists.
	DefaultP90CycleDays int `koanf:"default_p90_cycle_days"`
}

// New returns the default configuration.
func New() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("finding home directory: %w", err)
	}
	riskDefaults := risk.DefaultConfig()
	predictDefaults := predict.DefaultConfig()
	return &Config{
		DBPath:              filepath.Join(home, ".dealsense", "dealsense.db"),
		LowBandMax:          riskDefaults.LowMax,
		MediumBandMax:       riskDefaults.MediumMax,
		ValueBaseline:       riskDefaults.ValueBaseline,
		FallbackCycleDays:   predictDefaults.FallbackCycleDays,
		DefaultP90CycleDays: predictDefaults.DefaultP90CycleDays,
	}, nil
}

// RiskConfig returns the risk engine config with overrides applied.
func (c *Config) RiskConfig() risk.Config {
	cfg := risk.DefaultConfig()
	cfg.LowMax = c.LowBandMax
	cfg.MediumMax = c.MediumBandMax
	cfg.ValueBaseline = c.ValueBaseline
	return cfg
}

// PredictConfig returns the prediction engine config with overrides applied.
func (c *Config) PredictConfig() predict.Config {
	cfg := predict.DefaultConfig()
	cfg.FallbackCycleDays = c.FallbackCycleDays
	cfg.DefaultP90CycleDays = c.DefaultP90CycleDays
	return cfg
}
