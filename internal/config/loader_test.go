package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Contains(t, cfg.DBPath, ".dealsense")
	assert.Equal(t, 0.40, cfg.LowBandMax)
	assert.Equal(t, 0.70, cfg.MediumBandMax)
	assert.Equal(t, 500_000.0, cfg.ValueBaseline)
	assert.Equal(t, 45, cfg.FallbackCycleDays)
	assert.Equal(t, 60, cfg.DefaultP90CycleDays)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DEALSENSE_DB_PATH", "/tmp/deals-test.db")
	t.Setenv("DEALSENSE_LOW_BAND_MAX", "0.3")
	t.Setenv("DEALSENSE_MEDIUM_BAND_MAX", "0.6")
	t.Setenv("DEALSENSE_FALLBACK_CYCLE_DAYS", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/deals-test.db", cfg.DBPath)
	assert.Equal(t, 0.3, cfg.LowBandMax)
	assert.Equal(t, 0.6, cfg.MediumBandMax)
	assert.Equal(t, 30, cfg.FallbackCycleDays)
	// Untouched keys keep their defaults.
	assert.Equal(t, 60, cfg.DefaultP90CycleDays)
}

func TestLoadYAMLFileThenEnvWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dealsense.yaml")
	yaml := "db_path: /tmp/from-file.db\nvalue_baseline: 250000\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("DEALSENSE_CONFIG", path)
	t.Setenv("DEALSENSE_DB_PATH", "/tmp/from-env.db")

	cfg, err := Load()
	require.NoError(t, err)

	// Env beats file; file beats defaults.
	assert.Equal(t, "/tmp/from-env.db", cfg.DBPath)
	assert.Equal(t, 250_000.0, cfg.ValueBaseline)
}

func TestLoadRejectsInvalidBands(t *testing.T) {
	t.Setenv("DEALSENSE_LOW_BAND_MAX", "0.8")
	t.Setenv("DEALSENSE_MEDIUM_BAND_MAX", "0.5")

	_, err := Load()
	assert.ErrorContains(t, err, "risk bands")
}

func TestConfigEngineOverrides(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)
	cfg.LowBandMax = 0.2
	cfg.DefaultP90CycleDays = 90

	assert.Equal(t, 0.2, cfg.RiskConfig().LowMax)
	assert.Equal(t, 90, cfg.PredictConfig().DefaultP90CycleDays)
	// Non-overridable knobs keep engine defaults.
	assert.Equal(t, 0.15, cfg.RiskConfig().CompetitorIncrement)
}
