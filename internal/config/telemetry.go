package config

import (
	"log/slog"

	"github.com/tsxmod/tsxmod/pkg/observability"
)

// override sets *dst = value when value is not the zero value of its type.
// Zero values are skipped, letting the destination keep its built-in default.
func override[T comparable](dst *T, value T) {
	var zero T
	if value != zero {
		*dst = value
	}
}

// logLevels maps config log level names to slog severities.
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ObservabilityConfig builds an observability.Config for the given run mode,
// starting from observability defaults and overriding only the settings
// this config explicitly sets.
func (c *Config) ObservabilityConfig(mode observability.AppMode, version string) observability.Config {
	obs := observability.DefaultConfig()
	obs.Mode = mode
	obs.ServiceVersion = version

	tel := c.Telemetry

	override(&obs.Environment, tel.Environment)
	override(&obs.OTLPEndpoint, tel.OTLPEndpoint)
	override(&obs.OTLPInsecure, tel.OTLPInsecure)
	override(&obs.DebugTrace, tel.DebugTrace)
	override(&obs.SampleRatio, tel.SampleRatio)
	override(&obs.TraceVerbose, tel.TraceVerbose)
	override(&obs.LogJSON, tel.LogJSON)

	if tel.OTLPHeaders != "" {
		obs.OTLPHeaders = observability.ParseOTLPHeaders(tel.OTLPHeaders)
	}

	level, known := logLevels[tel.LogLevel]
	if known {
		obs.LogLevel = level
	}

	return obs
}
