package config_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsxmod/tsxmod/internal/config"
	"github.com/tsxmod/tsxmod/pkg/observability"
)

func TestObservabilityConfig_ZeroConfigKeepsDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.Config{}
	obs := cfg.ObservabilityConfig(observability.ModeCLI, "1.2.3")

	def := observability.DefaultConfig()

	assert.Equal(t, def.ServiceName, obs.ServiceName)
	assert.Equal(t, "1.2.3", obs.ServiceVersion)
	assert.Equal(t, observability.ModeCLI, obs.Mode)
	assert.Equal(t, def.LogLevel, obs.LogLevel)
	assert.Empty(t, obs.OTLPEndpoint)
}

func TestObservabilityConfig_OverridesApplied(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		Telemetry: config.TelemetryConfig{
			Environment:  "staging",
			OTLPEndpoint: "collector:4317",
			OTLPHeaders:  "x-team=platform,x-tier=1",
			OTLPInsecure: true,
			DebugTrace:   true,
			SampleRatio:  0.5,
			TraceVerbose: true,
			LogLevel:     "warn",
			LogJSON:      true,
		},
	}

	obs := cfg.ObservabilityConfig(observability.ModeMCP, "dev")

	assert.Equal(t, "staging", obs.Environment)
	assert.Equal(t, "collector:4317", obs.OTLPEndpoint)
	assert.Equal(t, map[string]string{"x-team": "platform", "x-tier": "1"}, obs.OTLPHeaders)
	assert.True(t, obs.OTLPInsecure)
	assert.True(t, obs.DebugTrace)
	assert.InEpsilon(t, 0.5, obs.SampleRatio, 1e-9)
	assert.True(t, obs.TraceVerbose)
	assert.Equal(t, slog.LevelWarn, obs.LogLevel)
	assert.True(t, obs.LogJSON)
	assert.Equal(t, observability.ModeMCP, obs.Mode)
}

func TestObservabilityConfig_UnknownLogLevelKeepsDefault(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		Telemetry: config.TelemetryConfig{LogLevel: "loud"},
	}

	obs := cfg.ObservabilityConfig(observability.ModeCLI, "")

	assert.Equal(t, observability.DefaultConfig().LogLevel, obs.LogLevel)
}
