package instrumentation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// ToolInvocation captures all information about a tool invocation for audit
// logging. This provides a comprehensive audit trail for all MCP tool calls.
//
// # Privacy Considerations
//
// The Params field may contain calendar names and search terms. When logging,
// consider:
//   - Using LogAttrs for general operational logs (params omitted)
//   - Only logging params in audit-specific log streams
//   - Ensuring audit logs have appropriate access controls
type ToolInvocation struct {
	// Tool name
	Tool string

	// InvocationID uniquely identifies this invocation. It is the audit
	// correlation key when no trace context is available (stdio transport
	// without a tracing exporter).
	InvocationID string

	// Target information for the calendar store
	Backend   string // Store backend name (caldav, google)
	Domain    string // Queried domain (events, reminders, calendars)
	Operation string // Operation type (query, list, fetch, search, render)

	// Params is a flattened summary of the tool arguments.
	Params string

	// Execution details
	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Error     string

	// Tracing context
	TraceID string
	SpanID  string
}

// Status returns "success" or "error" based on the Success field.
func (ti *ToolInvocation) Status() string {
	if ti.Success {
		return StatusSuccess
	}
	return StatusError
}

// LogAttrs returns slog attributes for structured logging.
// This provides a consistent set of fields for all tool invocation logs.
//
// # Cardinality
//
// Params are omitted here; the trace ID identifies the invocation, falling
// back to the generated invocation ID. For full audit logging, use
// LogAuditAttrs.
func (ti *ToolInvocation) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("tool", ti.Tool),
		slog.Duration("duration", ti.Duration),
		slog.Bool("success", ti.Success),
	}

	// Add optional fields only if present
	if ti.Backend != "" {
		attrs = append(attrs, slog.String("backend", ti.Backend))
	}
	if ti.Domain != "" {
		attrs = append(attrs, slog.String("domain", ti.Domain))
	}
	if ti.Operation != "" {
		attrs = append(attrs, slog.String("operation", ti.Operation))
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ti.TraceID))
	} else if ti.InvocationID != "" {
		attrs = append(attrs, slog.String("invocation_id", ti.InvocationID))
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String("error", ti.Error))
	}

	return attrs
}

// LogAuditAttrs returns slog attributes for full audit logging.
// This includes the tool parameters for compliance/audit purposes.
//
// # Security Warning
//
// This method includes tool parameters (calendar names, search terms).
// Ensure audit logs are:
//   - Stored securely with appropriate access controls
//   - Not exposed to general monitoring dashboards
//   - Retained according to compliance requirements
func (ti *ToolInvocation) LogAuditAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("tool", ti.Tool),
		slog.String("invocation_id", ti.InvocationID),
		slog.Duration("duration", ti.Duration),
		slog.Bool("success", ti.Success),
	}

	// Add all optional fields
	if ti.Backend != "" {
		attrs = append(attrs, slog.String("backend", ti.Backend))
	}
	if ti.Domain != "" {
		attrs = append(attrs, slog.String("domain", ti.Domain))
	}
	if ti.Operation != "" {
		attrs = append(attrs, slog.String("operation", ti.Operation))
	}
	if ti.Params != "" {
		attrs = append(attrs, slog.String("params", ti.Params))
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ti.TraceID))
	}
	if ti.SpanID != "" {
		attrs = append(attrs, slog.String("span_id", ti.SpanID))
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String("error", ti.Error))
	}

	return attrs
}

// NewToolInvocation creates a new ToolInvocation with timing started and a
// fresh invocation ID. Call Complete() when the tool operation finishes.
func NewToolInvocation(tool string) *ToolInvocation {
	return &ToolInvocation{
		Tool:         tool,
		InvocationID: uuid.NewString(),
		StartTime:    time.Now(),
	}
}

// WithBackend sets the store backend name.
func (ti *ToolInvocation) WithBackend(backend string) *ToolInvocation {
	ti.Backend = backend
	return ti
}

// WithStore sets the store domain and operation.
func (ti *ToolInvocation) WithStore(domain, operation string) *ToolInvocation {
	ti.Domain = domain
	ti.Operation = operation
	return ti
}

// WithParams sets the flattened tool parameter summary.
func (ti *ToolInvocation) WithParams(params string) *ToolInvocation {
	ti.Params = params
	return ti
}

// WithSpanContext extracts trace context from the current span.
func (ti *ToolInvocation) WithSpanContext(ctx context.Context) *ToolInvocation {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		ti.TraceID = span.SpanContext().TraceID().String()
		ti.SpanID = span.SpanContext().SpanID().String()
	}
	return ti
}

// Complete marks the invocation as completed and calculates duration.
// Returns the same ToolInvocation for method chaining.
func (ti *ToolInvocation) Complete(success bool, err error) *ToolInvocation {
	ti.Duration = time.Since(ti.StartTime)
	ti.Success = success
	if err != nil {
		ti.Error = err.Error()
	}
	return ti
}

// CompleteWithError marks the invocation as failed with the given error.
func (ti *ToolInvocation) CompleteWithError(err error) *ToolInvocation {
	return ti.Complete(false, err)
}

// CompleteSuccess marks the invocation as successful.
func (ti *ToolInvocation) CompleteSuccess() *ToolInvocation {
	return ti.Complete(true, nil)
}

// AuditLogger provides structured audit logging for tool invocations.
// It wraps slog.Logger with convenience methods for logging tool operations.
type AuditLogger struct {
	logger        *slog.Logger
	includeParams bool
	enabled       bool
}

// NewAuditLogger creates a new AuditLogger with the given slog.Logger.
// By default, tool parameters are not included in logs.
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:        logger,
		includeParams: false,
		enabled:       true,
	}
}

// NewAuditLoggerWithConfig creates a new AuditLogger with the given configuration.
func NewAuditLoggerWithConfig(logger *slog.Logger, config AuditLoggingConfig) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:        logger,
		includeParams: config.IncludeParams,
		enabled:       config.Enabled,
	}
}

// SetIncludeParams sets whether to include tool parameters in audit logs.
func (al *AuditLogger) SetIncludeParams(include bool) {
	al.includeParams = include
}

// SetEnabled sets whether audit logging is enabled.
func (al *AuditLogger) SetEnabled(enabled bool) {
	al.enabled = enabled
}

// LogToolInvocation logs a tool invocation using the standard log attributes.
// This is suitable for general operational logging with cardinality controls.
// If the logger is configured with IncludeParams, full parameter summaries
// are logged; otherwise only the tool name and outcome are used.
func (al *AuditLogger) LogToolInvocation(ti *ToolInvocation) {
	if !al.enabled {
		return
	}

	// Choose between full and parameter-free logging based on configuration
	var attrs []slog.Attr
	if al.includeParams {
		attrs = ti.LogAuditAttrs()
	} else {
		attrs = ti.LogAttrs()
	}

	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}

	if ti.Success {
		al.logger.Info("tool_executed", args...)
	} else {
		al.logger.Warn("tool_failed", args...)
	}
}

// LogToolAudit logs a tool invocation with full audit details.
// This includes tool parameters for compliance/audit purposes.
// SECURITY: Ensure audit logs are routed to secure storage with appropriate
// access controls.
//
// Note: This method respects the enabled flag but always includes parameters
// when called, regardless of the IncludeParams configuration. Use
// LogToolInvocation for configuration-aware logging.
func (al *AuditLogger) LogToolAudit(ti *ToolInvocation) {
	if !al.enabled {
		return
	}

	attrs := ti.LogAuditAttrs()
	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}

	al.logger.Info("tool_audit", args...)
}
