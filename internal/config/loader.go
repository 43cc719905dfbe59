package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if DEALSENSE_CONFIG is set
//  3. env (prefix DEALSENSE_)
func Load() (*Config, error) {
	base, err := New()
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if path := os.Getenv("DEALSENSE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	// Environment variables: DEALSENSE_DB_PATH, DEALSENSE_LOW_BAND_MAX, ...
	// Map env keys like DEALSENSE_DB_PATH -> db_path (flat keys).
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("DEALSENSE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "dealsense_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("loading env config: %w", err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if c.LowBandMax <= 0 || c.MediumBandMax <= c.LowBandMax {
		return fmt.Errorf("risk bands must satisfy 0 < low_band_max < medium_band_max, got %v and %v",
			c.LowBandMax, c.MediumBandMax)
	}
	if c.FallbackCycleDays <= 0 {
		return fmt.Errorf("fallback_cycle_days must be > 0, got %d", c.FallbackCycleDays)
	}
	if c.DefaultP90CycleDays <= 0 {
		return fmt.Errorf("default_p90_cycle_days must be > 0, got %d", c.DefaultP90CycleDays)
	}
	return nil
}
