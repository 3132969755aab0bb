// Package instrumentation provides OpenTelemetry instrumentation for the
// agenda MCP server and CLI.
//
// This package enables production-grade observability through:
//   - OpenTelemetry metrics for MCP tools, store queries, and rendering
//   - Distributed tracing for tool invocations and backend calls
//   - Prometheus metrics export via /metrics endpoint on dedicated port
//   - OTLP export support for modern observability platforms
//
// # Metrics
//
// The package exposes the following metric categories:
//
// Server/HTTP Metrics:
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//   - active_sessions: Gauge of active MCP sessions
//
// Calendar Store Metrics:
//   - store_queries_total: Counter of store queries by backend, domain, status
//   - store_query_duration_seconds: Histogram of store query durations
//   - store_authorization_total: Counter of authorization requests by domain and result
//
// MCP Tool Metrics:
//   - mcp_tool_invocations_total: Counter of MCP tool invocations by tool name and status
//   - mcp_tool_duration_seconds: Histogram of MCP tool execution durations
//   - mcp_tool_errors_total: Counter of failed MCP tool invocations by tool name
//
// Rendering Metrics:
//   - render_duration_seconds: Histogram of markdown render durations by renderer
//
// # Tracing
//
// Distributed tracing spans are created for:
//   - MCP tool invocations (tool.<name>)
//   - Store operations (store.<backend>.<operation>)
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - AGENDA_INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - AGENDA_METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - AGENDA_TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: agenda)
//
// # Example Usage
//
//	// Initialize instrumentation
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
//		ServiceName:    "agenda",
//		ServiceVersion: "0.1.0",
//		Enabled:        true,
//	})
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	// Get metrics recorder
//	recorder := provider.Metrics()
//
//	// Record a store query
//	recorder.RecordStoreQuery(ctx, "caldav", "events", "success", time.Since(start))
//
//	// Record an MCP tool invocation
//	recorder.RecordToolInvocation(ctx, "get_events", "success", time.Since(start))
package instrumentation
