package instrumentation

import (
	"context"
	"errors"
	"log/slog"
	"testing"
)

// Test constants to reduce string repetition and satisfy goconst
const (
	testParams        = "from=2025-06-01 to=2025-06-07"
	testTraceID       = "abc123def456"
	testSpanID        = "span789"
	testToolEvents    = "get_events"
	testToolReminders = "get_reminders"
	testToolCalendars = "list_calendars"
)

func TestToolInvocation_NewAndComplete(t *testing.T) {
	ti := NewToolInvocation(testToolEvents)

	// Verify initial state
	if ti.Tool != testToolEvents {
		t.Errorf("Tool = %q, want %q", ti.Tool, testToolEvents)
	}
	if ti.StartTime.IsZero() {
		t.Error("StartTime should not be zero")
	}
	if ti.InvocationID == "" {
		t.Error("InvocationID should be assigned on creation")
	}

	// Complete the invocation - duration should be calculated from StartTime
	ti.CompleteSuccess()

	if !ti.Success {
		t.Error("Success should be true")
	}
	// Duration is calculated from StartTime, so it should be >= 0
	// We don't check for > 0 as the test may complete instantly
	if ti.Duration < 0 {
		t.Error("Duration should not be negative")
	}
	if ti.Error != "" {
		t.Errorf("Error should be empty, got %q", ti.Error)
	}
}

func TestToolInvocation_UniqueInvocationIDs(t *testing.T) {
	a := NewToolInvocation(testToolEvents)
	b := NewToolInvocation(testToolEvents)

	if a.InvocationID == b.InvocationID {
		t.Errorf("expected distinct invocation IDs, both were %q", a.InvocationID)
	}
}

func TestToolInvocation_CompleteWithError(t *testing.T) {
	ti := NewToolInvocation(testToolReminders)
	err := errors.New("authorization denied")

	ti.CompleteWithError(err)

	if ti.Success {
		t.Error("Success should be false")
	}
	if ti.Error != "authorization denied" {
		t.Errorf("Error = %q, want %q", ti.Error, "authorization denied")
	}
}

func TestToolInvocation_WithBackend(t *testing.T) {
	ti := NewToolInvocation(testToolEvents)
	ti.WithBackend(BackendCalDAV)

	if ti.Backend != BackendCalDAV {
		t.Errorf("Backend = %q, want %q", ti.Backend, BackendCalDAV)
	}
}

func TestToolInvocation_WithStore(t *testing.T) {
	ti := NewToolInvocation(testToolEvents)
	ti.WithStore(DomainEvents, OperationQuery)

	if ti.Domain != DomainEvents {
		t.Errorf("Domain = %q, want %q", ti.Domain, DomainEvents)
	}
	if ti.Operation != OperationQuery {
		t.Errorf("Operation = %q, want %q", ti.Operation, OperationQuery)
	}
}

func TestToolInvocation_WithParams(t *testing.T) {
	ti := NewToolInvocation(testToolEvents)
	ti.WithParams(testParams)

	if ti.Params != testParams {
		t.Errorf("Params = %q, want %q", ti.Params, testParams)
	}
}

func TestToolInvocation_Status(t *testing.T) {
	ti := NewToolInvocation("test")

	ti.Success = true
	if status := ti.Status(); status != StatusSuccess {
		t.Errorf("Status() = %q, want %q", status, StatusSuccess)
	}

	ti.Success = false
	if status := ti.Status(); status != StatusError {
		t.Errorf("Status() = %q, want %q", status, StatusError)
	}
}

func TestToolInvocation_LogAttrs(t *testing.T) {
	ti := NewToolInvocation(testToolCalendars)
	ti.WithBackend(BackendCalDAV).
		WithStore(DomainCalendars, OperationList).
		CompleteSuccess()
	ti.TraceID = testTraceID

	attrs := ti.LogAttrs()

	// Verify we have the expected attributes
	attrMap := make(map[string]slog.Attr)
	for _, attr := range attrs {
		attrMap[attr.Key] = attr
	}

	// Check required attributes
	requiredKeys := []string{"tool", "duration", "success"}
	for _, key := range requiredKeys {
		if _, ok := attrMap[key]; !ok {
			t.Errorf("Missing required attribute: %s", key)
		}
	}

	// Check store-related attributes
	if backend := attrMap["backend"].Value.String(); backend != BackendCalDAV {
		t.Errorf("backend = %q, want %q", backend, BackendCalDAV)
	}
	if domain := attrMap["domain"].Value.String(); domain != DomainCalendars {
		t.Errorf("domain = %q, want %q", domain, DomainCalendars)
	}
	if operation := attrMap["operation"].Value.String(); operation != OperationList {
		t.Errorf("operation = %q, want %q", operation, OperationList)
	}

	// Trace ID wins over the invocation ID fallback
	if traceID := attrMap["trace_id"].Value.String(); traceID != testTraceID {
		t.Errorf("trace_id = %q, want %q", traceID, testTraceID)
	}
	if _, ok := attrMap["invocation_id"]; ok {
		t.Error("invocation_id should not be present when trace_id is set")
	}
}

func TestToolInvocation_LogAttrs_WithError(t *testing.T) {
	ti := NewToolInvocation(testToolReminders)
	ti.WithBackend(BackendCalDAV).
		CompleteWithError(errors.New("test error"))

	attrs := ti.LogAttrs()

	attrMap := make(map[string]slog.Attr)
	for _, attr := range attrs {
		attrMap[attr.Key] = attr
	}

	// Check error attribute is present
	if _, ok := attrMap["error"]; !ok {
		t.Error("Missing error attribute")
	}
	if errVal := attrMap["error"].Value.String(); errVal != "test error" {
		t.Errorf("error = %q, want %q", errVal, "test error")
	}
}

func TestToolInvocation_LogAttrs_MinimalFields(t *testing.T) {
	ti := NewToolInvocation(testToolEvents)
	ti.CompleteSuccess()

	attrs := ti.LogAttrs()

	// Verify minimal attributes are present
	attrMap := make(map[string]slog.Attr)
	for _, attr := range attrs {
		attrMap[attr.Key] = attr
	}

	// These should NOT be present when not set
	if _, ok := attrMap["backend"]; ok {
		t.Error("backend should not be present when empty")
	}
	if _, ok := attrMap["domain"]; ok {
		t.Error("domain should not be present when empty")
	}
	if _, ok := attrMap["operation"]; ok {
		t.Error("operation should not be present when empty")
	}

	// Without a trace the invocation ID serves as the correlation key
	if _, ok := attrMap["trace_id"]; ok {
		t.Error("trace_id should not be present when empty")
	}
	if _, ok := attrMap["invocation_id"]; !ok {
		t.Error("invocation_id should be present when trace_id is empty")
	}
}

func TestToolInvocation_LogAttrs_OmitsParams(t *testing.T) {
	ti := NewToolInvocation(testToolEvents)
	ti.WithParams(testParams).CompleteSuccess()

	attrs := ti.LogAttrs()

	attrMap := make(map[string]slog.Attr)
	for _, attr := range attrs {
		attrMap[attr.Key] = attr
	}

	// Parameters carry calendar names and search terms; the standard
	// attributes must never include them
	if _, ok := attrMap["params"]; ok {
		t.Error("params should not be present in standard log attributes")
	}
}

func TestToolInvocation_LogAuditAttrs(t *testing.T) {
	ti := NewToolInvocation(testToolCalendars)
	ti.WithBackend(BackendCalDAV).
		WithStore(DomainCalendars, OperationList).
		WithParams(testParams).
		CompleteSuccess()
	ti.TraceID = testTraceID
	ti.SpanID = testSpanID

	attrs := ti.LogAuditAttrs()

	// Verify we have the expected attributes
	attrMap := make(map[string]slog.Attr)
	for _, attr := range attrs {
		attrMap[attr.Key] = attr
	}

	// Check that full values are present
	if params := attrMap["params"].Value.String(); params != testParams {
		t.Errorf("params = %q, want %q", params, testParams)
	}
	if invocationID := attrMap["invocation_id"].Value.String(); invocationID != ti.InvocationID {
		t.Errorf("invocation_id = %q, want %q", invocationID, ti.InvocationID)
	}

	// Check trace context
	if traceID := attrMap["trace_id"].Value.String(); traceID != testTraceID {
		t.Errorf("trace_id = %q, want %q", traceID, testTraceID)
	}
	if spanID := attrMap["span_id"].Value.String(); spanID != testSpanID {
		t.Errorf("span_id = %q, want %q", spanID, testSpanID)
	}
}

func TestToolInvocation_LogAuditAttrs_WithError(t *testing.T) {
	ti := NewToolInvocation(testToolReminders)
	ti.WithBackend(BackendCalDAV).
		CompleteWithError(errors.New("audit error"))

	attrs := ti.LogAuditAttrs()

	attrMap := make(map[string]slog.Attr)
	for _, attr := range attrs {
		attrMap[attr.Key] = attr
	}

	// Check error attribute is present
	if _, ok := attrMap["error"]; !ok {
		t.Error("Missing error attribute")
	}
}

func TestToolInvocation_LogAuditAttrs_MinimalFields(t *testing.T) {
	ti := NewToolInvocation(testToolEvents)
	ti.CompleteSuccess()

	attrs := ti.LogAuditAttrs()

	attrMap := make(map[string]slog.Attr)
	for _, attr := range attrs {
		attrMap[attr.Key] = attr
	}

	// These should NOT be present when not set
	if _, ok := attrMap["backend"]; ok {
		t.Error("backend should not be present when empty")
	}
	if _, ok := attrMap["operation"]; ok {
		t.Error("operation should not be present when empty")
	}
	if _, ok := attrMap["params"]; ok {
		t.Error("params should not be present when empty")
	}
}

func TestToolInvocation_MethodChaining(t *testing.T) {
	ti := NewToolInvocation(testToolEvents).
		WithBackend(BackendCalDAV).
		WithStore(DomainEvents, OperationQuery).
		WithParams(testParams).
		CompleteSuccess()

	if ti.Tool != testToolEvents {
		t.Errorf("Tool = %q, want %q", ti.Tool, testToolEvents)
	}
	if ti.Backend != BackendCalDAV {
		t.Errorf("Backend = %q, want %q", ti.Backend, BackendCalDAV)
	}
	if ti.Domain != DomainEvents {
		t.Errorf("Domain = %q, want %q", ti.Domain, DomainEvents)
	}
	if ti.Params != testParams {
		t.Errorf("Params = %q, want %q", ti.Params, testParams)
	}
	if !ti.Success {
		t.Error("Success should be true")
	}
}

func TestAuditLogger_New(t *testing.T) {
	// Test with nil logger (should use default)
	al := NewAuditLogger(nil)
	if al.logger == nil {
		t.Error("logger should not be nil when created with nil")
	}

	// Test with custom logger
	logger := slog.Default()
	al = NewAuditLogger(logger)
	if al.logger != logger {
		t.Error("logger should be the provided logger")
	}
}

func TestAuditLogger_NewWithConfig(t *testing.T) {
	al := NewAuditLoggerWithConfig(slog.Default(), AuditLoggingConfig{
		Enabled:       false,
		IncludeParams: true,
	})

	if al.enabled {
		t.Error("enabled should be false")
	}
	if !al.includeParams {
		t.Error("includeParams should be true")
	}
}

func TestAuditLogger_LogToolInvocation_Success(t *testing.T) {
	// This test verifies the method runs without panic
	al := NewAuditLogger(slog.Default())
	ti := NewToolInvocation(testToolEvents).
		WithBackend(BackendCalDAV).
		WithStore(DomainEvents, OperationQuery).
		CompleteSuccess()

	// Should not panic
	al.LogToolInvocation(ti)
}

func TestAuditLogger_LogToolInvocation_Failure(t *testing.T) {
	// This test verifies the method runs without panic for failures
	al := NewAuditLogger(slog.Default())
	ti := NewToolInvocation(testToolReminders).
		WithBackend(BackendCalDAV).
		CompleteWithError(errors.New("test error"))

	// Should not panic
	al.LogToolInvocation(ti)
}

func TestAuditLogger_LogToolInvocation_Disabled(t *testing.T) {
	al := NewAuditLogger(slog.Default())
	al.SetEnabled(false)

	ti := NewToolInvocation(testToolEvents).CompleteSuccess()

	// Should not panic and should not log
	al.LogToolInvocation(ti)
	al.LogToolAudit(ti)
}

func TestAuditLogger_LogToolAudit(t *testing.T) {
	// This test verifies the method runs without panic
	al := NewAuditLogger(slog.Default())
	ti := NewToolInvocation(testToolCalendars).
		WithBackend(BackendCalDAV).
		WithStore(DomainCalendars, OperationList).
		WithParams(testParams).
		CompleteSuccess()
	ti.TraceID = testTraceID

	// Should not panic
	al.LogToolAudit(ti)
}

func TestToolInvocation_WithSpanContext_NoSpan(t *testing.T) {
	ctx := context.Background()
	ti := NewToolInvocation("test").WithSpanContext(ctx)

	if ti.TraceID != "" {
		t.Errorf("TraceID = %q, want empty string", ti.TraceID)
	}
	if ti.SpanID != "" {
		t.Errorf("SpanID = %q, want empty string", ti.SpanID)
	}
}

func TestToolInvocation_Complete_NilError(t *testing.T) {
	ti := NewToolInvocation("test")
	ti.Complete(true, nil)

	if ti.Error != "" {
		t.Errorf("Error = %q, want empty string", ti.Error)
	}
}

func TestToolInvocation_Complete_WithError(t *testing.T) {
	ti := NewToolInvocation("test")
	ti.Complete(false, errors.New("some error"))

	if ti.Success {
		t.Error("Success should be false")
	}
	if ti.Error != "some error" {
		t.Errorf("Error = %q, want %q", ti.Error, "some error")
	}
}
