package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/codes"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// MetricsEndpoint builds the /metrics scrape handler for the MCP server's
// sidecar listener. Each call owns an independent Prometheus registry, so
// restarting the listener never trips duplicate-collector registration.
// Scrapes are traced through tracer so collector pulls show up alongside
// tool-call spans.
func MetricsEndpoint(tracer trace.Tracer) (http.Handler, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	// The exporter only collects when attached to a MeterProvider as a reader.
	_ = sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))

	return traceScrapes(tracer, promhttp.HandlerFor(registry, promhttp.HandlerOpts{})), nil
}

// traceScrapes wraps the scrape handler in one span per pull. Prometheus
// never sends trace context, so every scrape is its own root span; a scrape
// that promhttp fails with a 5xx marks the span as errored.
func traceScrapes(tracer trace.Tracer, next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, hr *http.Request) {
		ctx, span := tracer.Start(hr.Context(), hr.Method+" "+hr.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(semconv.HTTPRequestMethodKey.String(hr.Method)),
		)
		defer span.End()

		rec := &scrapeRecorder{ResponseWriter: rw, status: http.StatusOK}
		next.ServeHTTP(rec, hr.WithContext(ctx))

		span.SetAttributes(semconv.HTTPResponseStatusCode(rec.status))

		if rec.status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(rec.status))
		}
	})
}

// scrapeRecorder captures the status code the scrape handler reports.
type scrapeRecorder struct {
	http.ResponseWriter

	status int
}

func (sr *scrapeRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}
