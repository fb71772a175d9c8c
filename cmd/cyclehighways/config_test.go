package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/LdDl/cyclehighways"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "cyclehighways.yaml")
	require.NoError(t, os.WriteFile(fname, []byte(content), 0o644))
	return fname
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, cyclehighways.DefaultAugmentConfiguration(), cfg.Augment)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadConfigFile(t *testing.T) {
	fname := writeConfig(t, `
augment:
  cycle_highway_speed: 7.5
  duplicate_prefix: "cyc_"
log:
  level: debug
  format: json
`)
	cfg, err := LoadConfig(fname)
	require.NoError(t, err)
	assert.Equal(t, 7.5, cfg.Augment.CycleHighwaySpeed)
	assert.Equal(t, "cyc_", cfg.Augment.DuplicatePrefix)
	assert.Equal(t, cyclehighways.DEFAULT_AVERAGE_BIKE_SPEED, cfg.Augment.AverageBikeSpeed)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("CYCLEHIGHWAYS_AUGMENT_AVERAGE_BIKE_SPEED", "3.5")
	t.Setenv("CYCLEHIGHWAYS_AUGMENT_BIKE_MODE", "bicycle")
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 3.5, cfg.Augment.AverageBikeSpeed)
	assert.Equal(t, cyclehighways.AgentType("bicycle"), cfg.Augment.BikeAgentType)
}

func TestLoadConfigInvalid(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "augment:\n  lanes: -1\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "log:\n  level: verbose\n"))
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "Explicitly given file must exist")
}

func TestInitLogger(t *testing.T) {
	assert.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "json"}))
	assert.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "console"}))
	assert.Error(t, InitLogger(LogConfig{Level: "loud", Format: "console"}))
}
