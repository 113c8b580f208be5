package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsxmod/tsxmod/internal/config"
	"github.com/tsxmod/tsxmod/pkg/mcp"
	"github.com/tsxmod/tsxmod/pkg/observability"
	"github.com/tsxmod/tsxmod/pkg/version"
)

// metricsReadHeaderTimeout bounds slow-header clients on the metrics listener.
const metricsReadHeaderTimeout = 5 * time.Second

// metricsShutdownTimeout bounds the metrics listener drain on exit.
const metricsShutdownTimeout = 2 * time.Second

// MCPCommand holds configuration for the MCP server command.
type MCPCommand struct {
	debug       bool
	metricsAddr string
}

// NewMCPCommand creates the MCP server command.
func NewMCPCommand() *cobra.Command {
	mc := &MCPCommand{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The MCP server exposes tsxmod transformations as tools that AI agents
can discover and invoke:
  - tsx_apply: Apply a batch of structural operations to source code
  - tsx_inspect: Report imports, state hooks, and located declarations
  - tsx_check: Check source code for syntax issues
  - tsx_new: Originate a provider, store, or extracted component`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          mc.run,
	}

	cmd.Flags().BoolVar(&mc.debug, "debug", false, "Enable debug logging to stderr")
	cmd.Flags().StringVar(&mc.metricsAddr, "metrics-addr", "", "Serve Prometheus /metrics on this address (e.g. :9090)")

	return cmd
}

func (mc *MCPCommand) run(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	providers, err := mc.initObservability(cfg)
	if err != nil {
		return err
	}

	defer func() {
		shutdownErr := providers.Shutdown(context.Background())
		if shutdownErr != nil {
			providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
		}
	}()

	red, redErr := observability.NewREDMetrics(providers.Meter)
	if redErr != nil {
		return redErr
	}

	metricsAddr := mc.metricsAddr
	if metricsAddr == "" {
		metricsAddr = cfg.MCP.MetricsAddr
	}

	if metricsAddr != "" {
		stopMetrics, metricsErr := mc.serveMetrics(metricsAddr, providers)
		if metricsErr != nil {
			return metricsErr
		}

		defer stopMetrics()
	}

	deps := mcp.ServerDeps{Logger: providers.Logger, Metrics: red, Tracer: providers.Tracer}

	srv := mcp.NewServer(deps)

	return srv.Run(cmd.Context())
}

func (mc *MCPCommand) initObservability(cfg *config.Config) (observability.Providers, error) {
	obsCfg := cfg.ObservabilityConfig(observability.ModeMCP, version.Version)
	obsCfg.LogJSON = true

	// Environment variables trump the config file for collector wiring.
	if endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); endpoint != "" {
		obsCfg.OTLPEndpoint = endpoint
		obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))
		obsCfg.OTLPInsecure = os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true"
	}

	if mc.debug {
		obsCfg.LogLevel = slog.LevelDebug
		obsCfg.DebugTrace = true
	}

	return observability.Init(obsCfg)
}

// serveMetrics starts a Prometheus scrape endpoint and returns its stopper.
func (mc *MCPCommand) serveMetrics(addr string, providers observability.Providers) (func(), error) {
	handler, err := observability.MetricsEndpoint(providers.Tracer)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}

	go func() {
		serveErr := srv.ListenAndServe()
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			providers.Logger.Error("metrics listener failed", "addr", addr, "error", serveErr)
		}
	}()

	providers.Logger.Info("metrics listener started", "addr", addr)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()

		shutdownErr := srv.Shutdown(ctx)
		if shutdownErr != nil {
			providers.Logger.Warn("metrics listener shutdown failed", "error", shutdownErr)
		}
	}, nil
}
