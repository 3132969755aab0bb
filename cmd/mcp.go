package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/agenda/internal/config"
	"github.com/teemow/agenda/internal/instrumentation"
	"github.com/teemow/agenda/internal/logging"
	"github.com/teemow/agenda/internal/prompts"
	"github.com/teemow/agenda/internal/resources"
	"github.com/teemow/agenda/internal/server"
	"github.com/teemow/agenda/internal/tools/calendar_tools"
	"github.com/teemow/agenda/internal/tools/time_tools"
)

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server (default: true)
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

func newMCPCmd() *cobra.Command {
	var (
		debugMode  bool
		transport  string
		listenAddr string
		// Metrics server configuration
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server exposing calendar,
reminder and timezone tools for AI assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - sse: Server-Sent Events over HTTP
  - streamable-http: Streamable HTTP transport

The server is read-only: it never modifies events or reminders.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			metricsConfig := MetricsConfig{
				Enabled: metricsEnabled,
				Addr:    metricsAddr,
			}
			return runMCP(transport, listenAddr, debugMode, metricsConfig)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport type: stdio, sse or streamable-http")
	cmd.Flags().StringVar(&listenAddr, "listen-addr", ":8080", "HTTP server address (for sse and streamable-http transports)")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use AGENDA_METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "Metrics server address. Can also use AGENDA_METRICS_ADDR env var.")

	return cmd
}

func runMCP(transport, listenAddr string, debugMode bool, metricsConfig MetricsConfig) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load metrics config from environment if not set via flags
	if !metricsConfig.Enabled {
		if os.Getenv("AGENDA_METRICS_ENABLED") == "true" {
			metricsConfig.Enabled = true
		}
	}
	if metricsConfig.Addr == "" || metricsConfig.Addr == ":9090" {
		if addr := os.Getenv("AGENDA_METRICS_ADDR"); addr != "" {
			metricsConfig.Addr = addr
		}
	}

	cfg, err := config.Load(configPath, nil)
	if err != nil {
		return err
	}
	if debugMode {
		cfg.LogLevel = "debug"
	}
	logger := logging.Setup(cfg.LogLevel)

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			if transport != "stdio" {
				log.Printf("Error during instrumentation shutdown: %v", err)
			}
		}
	}()

	serverContext, err := server.NewServerContext(shutdownCtx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}

	// Start metrics server if enabled and not in stdio mode
	var metricsServer *server.MetricsServer
	if transport != "stdio" && metricsConfig.Enabled && provider.Enabled() {
		var err error
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsConfig.Addr,
			Enabled:                 true,
			InstrumentationProvider: provider,
			HealthChecker:           server.NewHealthChecker(serverContext),
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		// Use ready channel to confirm metrics server started successfully
		metricsReady := make(chan struct{})
		metricsErr := make(chan error, 1)
		go func() {
			if err := metricsServer.StartWithReadySignal(metricsReady); err != nil && err != http.ErrServerClosed {
				metricsErr <- err
			}
			close(metricsErr)
		}()

		// Wait for metrics server to be ready or fail
		select {
		case <-metricsReady:
			log.Printf("Metrics server started on %s", metricsServer.Addr())
		case err := <-metricsErr:
			return fmt.Errorf("metrics server failed to start: %w", err)
		case <-time.After(5 * time.Second):
			return fmt.Errorf("metrics server startup timed out")
		}
	}

	// Wire instrumentation into the server context
	if provider.Enabled() {
		serverContext.SetMetrics(provider.Metrics())
		serverContext.SetAuditLogger(instrumentation.NewAuditLoggerWithConfig(nil, instrConfig.AuditLogging))
	}

	defer func() {
		if metricsServer != nil {
			shutdownTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownTimeout); err != nil {
				log.Printf("Error during metrics server shutdown: %v", err)
			}
		}
		if err := serverContext.Shutdown(); err != nil {
			if transport != "stdio" {
				log.Printf("Error during shutdown: %v", err)
			}
		}
	}()

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer("agenda", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false), // Subscribe and listChanged
		mcpserver.WithPromptCapabilities(false),
	)

	// Register all tools, resources and prompts
	if err := registerAll(mcpSrv, serverContext); err != nil {
		return err
	}

	// Start the appropriate server based on transport type
	switch transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	case "sse":
		logger.Info("starting MCP server", logging.Transport(transport), "addr", listenAddr)
		sseSrv := mcpserver.NewSSEServer(mcpSrv)
		return runHTTPTransport(shutdownCtx, listenAddr, sseSrv.Start, sseSrv.Shutdown)
	case "streamable-http":
		logger.Info("starting MCP server", logging.Transport(transport), "addr", listenAddr)
		httpSrv := mcpserver.NewStreamableHTTPServer(mcpSrv)
		return runHTTPTransport(shutdownCtx, listenAddr, httpSrv.Start, httpSrv.Shutdown)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, sse, streamable-http)", transport)
	}
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

// runHTTPTransport runs an HTTP-based MCP transport until the context is
// cancelled, then shuts it down with a bounded timeout.
func runHTTPTransport(ctx context.Context, addr string, start func(string) error, shutdown func(context.Context) error) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := start(addr); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdown(shutdownTimeout); err != nil {
			return fmt.Errorf("error during server shutdown: %w", err)
		}
		return nil
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("server stopped with error: %w", err)
		}
		return nil
	}
}

// registerAll registers all MCP tools, resources and prompts
// Extracted to avoid duplication with generate_docs.go
func registerAll(mcpSrv *mcpserver.MCPServer, ctx *server.ServerContext) error {
	// Define all registrations
	type registration struct {
		name     string
		register func() error
	}

	registrations := []registration{
		{
			name: "Calendar",
			register: func() error {
				return calendar_tools.RegisterCalendarTools(mcpSrv, ctx)
			},
		},
		{
			name: "Time",
			register: func() error {
				return time_tools.RegisterTimeTools(mcpSrv, ctx)
			},
		},
		{
			name: "Schema Resources",
			register: func() error {
				return resources.RegisterSchemaResources(mcpSrv)
			},
		},
		{
			name: "Prompts",
			register: func() error {
				return prompts.RegisterDailyAgendaPrompt(mcpSrv, ctx)
			},
		},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s: %w", reg.name, err)
		}
	}

	return nil
}
