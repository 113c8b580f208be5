package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tsxmod/tsxmod/internal/config"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))

	// An explicit path that does not exist is an error; only search-path
	// misses fall back to defaults.
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tsxmod.yaml")

	content, err := yaml.Marshal(map[string]any{
		"dialect": "typescript",
		"apply": map[string]any{
			"show_diff":     true,
			"max_file_size": "512 KB",
		},
		"telemetry": map[string]any{
			"log_level":    "debug",
			"sample_ratio": 0.1,
		},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "typescript", cfg.Dialect)
	assert.True(t, cfg.Apply.ShowDiff)
	assert.Equal(t, uint64(512_000), cfg.MaxFileSizeBytes())
	assert.Equal(t, "debug", cfg.Telemetry.LogLevel)
	assert.InEpsilon(t, 0.1, cfg.Telemetry.SampleRatio, 1e-9)
}

func TestLoadConfig_InvalidValueRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tsxmod.yaml")

	require.NoError(t, os.WriteFile(path, []byte("dialect: cobol\n"), 0o600))

	_, err := config.LoadConfig(path)
	require.ErrorIs(t, err, config.ErrInvalidDialect)
}
