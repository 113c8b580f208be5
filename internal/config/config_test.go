package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsxmod/tsxmod/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Dialect: "tsx",
		Apply: config.ApplyConfig{
			ShowDiff:    true,
			MaxFileSize: "2 MB",
		},
		MCP: config.MCPConfig{
			MetricsAddr: ":9090",
		},
		Telemetry: config.TelemetryConfig{
			Environment: "dev",
			SampleRatio: 0.25,
			LogLevel:    "debug",
		},
	}
}

func TestValidate_ValidConfig_NoError(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidate_ZeroConfig_NoError(t *testing.T) {
	t.Parallel()

	cfg := config.Config{}
	require.NoError(t, cfg.Validate())
}

func TestValidate_InvalidDialect_ReturnsError(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Dialect = "cobol"

	err := cfg.Validate()
	assert.ErrorIs(t, err, config.ErrInvalidDialect)
}

func TestValidate_InvalidMaxFileSize_ReturnsError(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Apply.MaxFileSize = "lots"

	err := cfg.Validate()
	assert.ErrorIs(t, err, config.ErrInvalidMaxFileSize)
}

func TestValidate_InvalidSampleRatio_ReturnsError(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Telemetry.SampleRatio = 1.5

	err := cfg.Validate()
	assert.ErrorIs(t, err, config.ErrInvalidSampleRatio)
}

func TestValidate_InvalidLogLevel_ReturnsError(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Telemetry.LogLevel = "loud"

	err := cfg.Validate()
	assert.ErrorIs(t, err, config.ErrInvalidLogLevel)
}

func TestMaxFileSizeBytes_Default(t *testing.T) {
	t.Parallel()

	cfg := config.Config{}

	assert.Equal(t, uint64(1_000_000), cfg.MaxFileSizeBytes())
}

func TestMaxFileSizeBytes_Configured(t *testing.T) {
	t.Parallel()

	cfg := config.Config{Apply: config.ApplyConfig{MaxFileSize: "64 KB"}}

	assert.Equal(t, uint64(64_000), cfg.MaxFileSizeBytes())
}
