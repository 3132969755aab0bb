package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys - using constants for consistency and DRY
const (
	// Common attributes (reused across metrics)
	attrMethod         = "method"
	attrPath           = "path"
	attrStatus         = "status"
	attrBackend        = "backend"
	attrDomain         = "domain"
	attrResult         = "result"
	attrTool           = "tool"
	attrRenderer       = "renderer"
	attrCalendarFilter = "calendar_filter"
)

// Metrics provides methods for recording observability metrics.
type Metrics struct {
	// HTTP metrics
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram
	activeSessions      metric.Int64UpDownCounter

	// Calendar store metrics
	storeQueriesTotal       metric.Int64Counter
	storeQueryDuration      metric.Float64Histogram
	storeAuthorizationTotal metric.Int64Counter

	// MCP Tool metrics
	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram
	toolErrorsTotal      metric.Int64Counter

	// Rendering metrics
	renderDuration metric.Float64Histogram

	// Configuration
	// detailedLabels controls whether optional extra labels are included
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The detailedLabels parameter controls whether optional extra labels are included.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{
		detailedLabels: detailedLabels,
	}

	var err error

	// HTTP Metrics
	m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	m.activeSessions, err = meter.Int64UpDownCounter(
		"active_sessions",
		metric.WithDescription("Number of active MCP sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create active_sessions gauge: %w", err)
	}

	// Calendar Store Metrics
	m.storeQueriesTotal, err = meter.Int64Counter(
		"store_queries_total",
		metric.WithDescription("Total number of calendar store queries"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create store_queries_total counter: %w", err)
	}

	m.storeQueryDuration, err = meter.Float64Histogram(
		"store_query_duration_seconds",
		metric.WithDescription("Calendar store query duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create store_query_duration_seconds histogram: %w", err)
	}

	m.storeAuthorizationTotal, err = meter.Int64Counter(
		"store_authorization_total",
		metric.WithDescription("Total number of calendar store authorization requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create store_authorization_total counter: %w", err)
	}

	// MCP Tool Metrics
	m.toolInvocationsTotal, err = meter.Int64Counter(
		"mcp_tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_invocations_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"mcp_tool_duration_seconds",
		metric.WithDescription("MCP tool execution duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_duration_seconds histogram: %w", err)
	}

	m.toolErrorsTotal, err = meter.Int64Counter(
		"mcp_tool_errors_total",
		metric.WithDescription("Total number of failed MCP tool invocations"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_errors_total counter: %w", err)
	}

	// Rendering Metrics
	m.renderDuration, err = meter.Float64Histogram(
		"render_duration_seconds",
		metric.WithDescription("Markdown render duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create render_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records an HTTP request with method, path, status code, and duration.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	}

	m.httpRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.httpRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordStoreQuery records a calendar store query with backend, domain,
// status, and duration.
//
// Parameters:
//   - backend: Store backend name ("caldav" or "google")
//   - domain: Queried domain ("events", "reminders", "calendars")
//   - status: Result status ("success" or "error")
//   - duration: Time taken for the query
func (m *Metrics) RecordStoreQuery(ctx context.Context, backend, domain, status string, duration time.Duration) {
	m.RecordStoreQueryWithFilter(ctx, backend, domain, status, 0, duration)
}

// RecordStoreQueryWithFilter records a calendar store query including the
// size of the calendar-name filter it was issued with. The filter size is
// bucketed and only attached as a label when detailed labels are enabled.
func (m *Metrics) RecordStoreQueryWithFilter(ctx context.Context, backend, domain, status string, filterSize int, duration time.Duration) {
	if m.storeQueriesTotal == nil || m.storeQueryDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrBackend, backend),
		attribute.String(attrDomain, domain),
		attribute.String(attrStatus, status),
	}

	// Only add the extra label if explicitly enabled
	if m.detailedLabels && filterSize > 0 {
		attrs = append(attrs, attribute.String(attrCalendarFilter, CalendarFilterBucket(filterSize)))
	}

	m.storeQueriesTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.storeQueryDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordAuthorization records a store authorization request outcome.
//
// Parameters:
//   - domain: Authorized domain ("events" or "reminders")
//   - result: Outcome ("granted", "denied", "timeout", "error")
func (m *Metrics) RecordAuthorization(ctx context.Context, domain, result string) {
	if m.storeAuthorizationTotal == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrDomain, domain),
		attribute.String(attrResult, result),
	}

	m.storeAuthorizationTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordToolInvocation records an MCP tool invocation with tool name, status,
// and duration. Invocations with status "error" also increment the tool error
// counter.
//
// Parameters:
//   - toolName: Name of the MCP tool (e.g., "get_events", "list_calendars")
//   - status: Result status ("success" or "error")
//   - duration: Time taken for the tool execution
func (m *Metrics) RecordToolInvocation(ctx context.Context, toolName, status string, duration time.Duration) {
	if m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}

	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))

	if status == StatusError && m.toolErrorsTotal != nil {
		m.toolErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrTool, toolName)))
	}
}

// RecordRender records a markdown render with renderer name and duration.
//
// Parameters:
//   - renderer: Renderer name ("agenda" or "calendar_list")
//   - duration: Time taken for the render
func (m *Metrics) RecordRender(ctx context.Context, renderer string, duration time.Duration) {
	if m.renderDuration == nil {
		return // Instrumentation not initialized
	}

	m.renderDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(attribute.String(attrRenderer, renderer)))
}

// IncrementActiveSessions increments the active sessions counter.
func (m *Metrics) IncrementActiveSessions(ctx context.Context) {
	if m.activeSessions == nil {
		return // Instrumentation not initialized
	}

	m.activeSessions.Add(ctx, 1)
}

// DecrementActiveSessions decrements the active sessions counter.
func (m *Metrics) DecrementActiveSessions(ctx context.Context) {
	if m.activeSessions == nil {
		return // Instrumentation not initialized
	}

	m.activeSessions.Add(ctx, -1)
}
