package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/tsxmod/tsxmod/pkg/observability"
)

func jsonLogger(buf *bytes.Buffer, cfg observability.Config) *slog.Logger {
	cfg.LogJSON = true
	cfg.LogLevel = slog.LevelDebug

	return observability.NewLogger(buf, cfg)
}

func TestNewLogger_InjectsTraceContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := jsonLogger(&buf, observability.Config{
		ServiceName: "test-svc",
		Environment: "test",
		Mode:        observability.ModeCLI,
	})

	// Create a span context with known trace and span IDs.
	traceID, err := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	require.NoError(t, err)

	spanID, err := trace.SpanIDFromHex("0102030405060708")
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	logger.InfoContext(ctx, "test message")

	var record map[string]any

	err = json.Unmarshal(buf.Bytes(), &record)
	require.NoError(t, err)

	assert.Equal(t, "0102030405060708090a0b0c0d0e0f10", record["trace_id"])
	assert.Equal(t, "0102030405060708", record["span_id"])
	assert.Equal(t, "test-svc", record["service"])
	assert.Equal(t, "test", record["env"])
	assert.Equal(t, "cli", record["mode"])
}

func TestNewLogger_NoTraceContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := jsonLogger(&buf, observability.Config{
		ServiceName: "tsxmod",
		Mode:        observability.ModeMCP,
	})

	logger.InfoContext(context.Background(), "no span")

	var record map[string]any

	err := json.Unmarshal(buf.Bytes(), &record)
	require.NoError(t, err)

	// No trace_id or span_id should be present without an active span.
	_, hasTraceID := record["trace_id"]
	assert.False(t, hasTraceID)

	// Service and mode should still be present; env is omitted when unset.
	assert.Equal(t, "tsxmod", record["service"])
	assert.Equal(t, "mcp", record["mode"])

	_, hasEnv := record["env"]
	assert.False(t, hasEnv)
}

func TestNewLogger_TextForCLI(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := observability.NewLogger(&buf, observability.Config{
		ServiceName: "tsxmod",
		Mode:        observability.ModeCLI,
	})

	logger.InfoContext(context.Background(), "applied batch", slog.Int("operations", 3))

	out := buf.String()
	assert.Contains(t, out, "msg=\"applied batch\"")
	assert.Contains(t, out, "operations=3")
	assert.Contains(t, out, "service=tsxmod")
}

func TestNewLogger_WithGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := jsonLogger(&buf, observability.Config{
		ServiceName: "tsxmod",
		Mode:        observability.ModeCLI,
	})

	grouped := logger.WithGroup("batch")
	grouped.InfoContext(context.Background(), "operation done", slog.String("op", "add_state"))

	var record map[string]any

	err := json.Unmarshal(buf.Bytes(), &record)
	require.NoError(t, err)

	// Service attrs should stay at the top level.
	assert.Equal(t, "tsxmod", record["service"])

	// Grouped attrs should be nested.
	batch, ok := record["batch"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "add_state", batch["op"])
}

func TestNewLogger_WithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := jsonLogger(&buf, observability.Config{
		ServiceName: "tsxmod",
		Mode:        observability.ModeCLI,
	})

	withAttrs := logger.With(slog.String("op", "wrap_element"))
	withAttrs.InfoContext(context.Background(), "started")

	var record map[string]any

	err := json.Unmarshal(buf.Bytes(), &record)
	require.NoError(t, err)

	assert.Equal(t, "wrap_element", record["op"])
	assert.Equal(t, "tsxmod", record["service"])
}
