// Package config loads and validates tsxmod configuration from file,
// environment variables, and built-in defaults.
package config

import (
	"errors"

	"github.com/dustin/go-humanize"

	"github.com/tsxmod/tsxmod/pkg/jsx"
)

// Config is the top-level configuration struct for tsxmod.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Dialect   string          `mapstructure:"dialect"`
	Apply     ApplyConfig     `mapstructure:"apply"`
	MCP       MCPConfig       `mapstructure:"mcp"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ApplyConfig holds defaults for the apply command.
type ApplyConfig struct {
	InPlace     bool   `mapstructure:"in_place"`
	ShowDiff    bool   `mapstructure:"show_diff"`
	MaxFileSize string `mapstructure:"max_file_size"`
}

// MCPConfig holds MCP server settings.
type MCPConfig struct {
	MetricsAddr string `mapstructure:"metrics_addr"`
}

// TelemetryConfig holds tracing, metrics, and logging settings.
type TelemetryConfig struct {
	Environment  string  `mapstructure:"environment"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPHeaders  string  `mapstructure:"otlp_headers"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	DebugTrace   bool    `mapstructure:"debug_trace"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
	TraceVerbose bool    `mapstructure:"trace_verbose"`
	LogLevel     string  `mapstructure:"log_level"`
	LogJSON      bool    `mapstructure:"log_json"`
}

// Default configuration values.
const (
	// DefaultDialect is the grammar used when no dialect is configured.
	DefaultDialect = string(jsx.DialectTSX)
	// DefaultApplyMaxFileSize is the largest source file apply accepts.
	DefaultApplyMaxFileSize = "1 MB"
	// DefaultTelemetryLogLevel is the minimum log severity.
	DefaultTelemetryLogLevel = "info"
	// DefaultTelemetrySampleRatio of zero defers to the OTel SDK default sampler.
	DefaultTelemetrySampleRatio = 0.0
)

// sampleRatioMax is the upper bound for the trace sampling ratio.
const sampleRatioMax = 1.0

// Sentinel errors for configuration validation.
var (
	// ErrInvalidDialect indicates the dialect is not a supported grammar.
	ErrInvalidDialect = errors.New("dialect must be one of javascript, typescript, tsx")
	// ErrInvalidMaxFileSize indicates the apply file size limit is unparseable.
	ErrInvalidMaxFileSize = errors.New("apply.max_file_size must be a byte size like \"1 MB\"")
	// ErrInvalidSampleRatio indicates the sampling ratio is out of range.
	ErrInvalidSampleRatio = errors.New("telemetry.sample_ratio must be between 0 and 1")
	// ErrInvalidLogLevel indicates the log level is not a known severity.
	ErrInvalidLogLevel = errors.New("telemetry.log_level must be one of debug, info, warn, error")
)

// validLogLevels enumerates accepted telemetry.log_level values.
var validLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if c.Dialect != "" {
		switch jsx.Dialect(c.Dialect) {
		case jsx.DialectJavaScript, jsx.DialectTypeScript, jsx.DialectTSX:
		default:
			return ErrInvalidDialect
		}
	}

	if c.Apply.MaxFileSize != "" {
		_, parseErr := humanize.ParseBytes(c.Apply.MaxFileSize)
		if parseErr != nil {
			return ErrInvalidMaxFileSize
		}
	}

	return c.validateTelemetry()
}

func (c *Config) validateTelemetry() error {
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > sampleRatioMax {
		return ErrInvalidSampleRatio
	}

	if c.Telemetry.LogLevel != "" {
		_, known := validLogLevels[c.Telemetry.LogLevel]
		if !known {
			return ErrInvalidLogLevel
		}
	}

	return nil
}

// MaxFileSizeBytes returns the apply file size limit in bytes.
// Validate must have been called first; an unset limit returns the default.
func (c *Config) MaxFileSizeBytes() uint64 {
	raw := c.Apply.MaxFileSize
	if raw == "" {
		raw = DefaultApplyMaxFileSize
	}

	limit, err := humanize.ParseBytes(raw)
	if err != nil {
		limit, _ = humanize.ParseBytes(DefaultApplyMaxFileSize)
	}

	return limit
}
