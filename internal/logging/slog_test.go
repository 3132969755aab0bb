package logging

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		level        string
		debugEnabled bool
		infoEnabled  bool
	}{
		{"debug", true, true},
		{"DEBUG", true, true},
		{"info", false, true},
		{"warn", false, false},
		{"error", false, false},
		{"", false, true},
		{"bogus", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := Setup(tt.level)
			if logger == nil {
				t.Fatal("Setup returned nil")
			}
			ctx := context.Background()
			if got := logger.Enabled(ctx, slog.LevelDebug); got != tt.debugEnabled {
				t.Errorf("debug enabled = %v, want %v", got, tt.debugEnabled)
			}
			if got := logger.Enabled(ctx, slog.LevelInfo); got != tt.infoEnabled {
				t.Errorf("info enabled = %v, want %v", got, tt.infoEnabled)
			}
		})
	}
}

func TestWithOperation(t *testing.T) {
	logger := slog.Default()
	result := WithOperation(logger, "test_operation")
	if result == nil {
		t.Error("WithOperation returned nil")
	}
}

func TestWithTool(t *testing.T) {
	logger := slog.Default()
	result := WithTool(logger, "test_tool")
	if result == nil {
		t.Error("WithTool returned nil")
	}
}

func TestWithDomain(t *testing.T) {
	logger := slog.Default()
	result := WithDomain(logger, "events")
	if result == nil {
		t.Error("WithDomain returned nil")
	}
}

func TestWithBackend(t *testing.T) {
	logger := slog.Default()
	result := WithBackend(logger, "caldav")
	if result == nil {
		t.Error("WithBackend returned nil")
	}
}

func TestWithTransport(t *testing.T) {
	logger := slog.Default()
	result := WithTransport(logger, "stdio")
	if result == nil {
		t.Error("WithTransport returned nil")
	}
}

func TestOperationAttr(t *testing.T) {
	attr := Operation("test_op")
	if attr.Key != KeyOperation {
		t.Errorf("Operation key = %q, want %q", attr.Key, KeyOperation)
	}
	if attr.Value.String() != "test_op" {
		t.Errorf("Operation value = %q, want %q", attr.Value.String(), "test_op")
	}
}

func TestDomainAttr(t *testing.T) {
	attr := Domain("reminders")
	if attr.Key != KeyDomain {
		t.Errorf("Domain key = %q, want %q", attr.Key, KeyDomain)
	}
	if attr.Value.String() != "reminders" {
		t.Errorf("Domain value = %q, want %q", attr.Value.String(), "reminders")
	}
}

func TestBackendAttr(t *testing.T) {
	attr := Backend("google")
	if attr.Key != KeyBackend {
		t.Errorf("Backend key = %q, want %q", attr.Key, KeyBackend)
	}
	if attr.Value.String() != "google" {
		t.Errorf("Backend value = %q, want %q", attr.Value.String(), "google")
	}
}

func TestCalendarAttr(t *testing.T) {
	attr := Calendar("Work")
	if attr.Key != KeyCalendar {
		t.Errorf("Calendar key = %q, want %q", attr.Key, KeyCalendar)
	}
	if attr.Value.String() != "Work" {
		t.Errorf("Calendar value = %q, want %q", attr.Value.String(), "Work")
	}
}

func TestTransportAttr(t *testing.T) {
	attr := Transport("sse")
	if attr.Key != KeyTransport {
		t.Errorf("Transport key = %q, want %q", attr.Key, KeyTransport)
	}
	if attr.Value.String() != "sse" {
		t.Errorf("Transport value = %q, want %q", attr.Value.String(), "sse")
	}
}

func TestToolAttr(t *testing.T) {
	attr := Tool("get_events")
	if attr.Key != KeyTool {
		t.Errorf("Tool key = %q, want %q", attr.Key, KeyTool)
	}
	if attr.Value.String() != "get_events" {
		t.Errorf("Tool value = %q, want %q", attr.Value.String(), "get_events")
	}
}

func TestStatusAttr(t *testing.T) {
	attr := Status(StatusSuccess)
	if attr.Key != KeyStatus {
		t.Errorf("Status key = %q, want %q", attr.Key, KeyStatus)
	}
	if attr.Value.String() != StatusSuccess {
		t.Errorf("Status value = %q, want %q", attr.Value.String(), StatusSuccess)
	}
}

func TestDurationAttr(t *testing.T) {
	attr := Duration(1500 * time.Millisecond)
	if attr.Key != KeyDuration {
		t.Errorf("Duration key = %q, want %q", attr.Key, KeyDuration)
	}
	if attr.Value.String() != "1.5s" {
		t.Errorf("Duration value = %q, want %q", attr.Value.String(), "1.5s")
	}
}

func TestErr(t *testing.T) {
	// Test with error
	err := errors.New("test error")
	attr := Err(err)
	if attr.Key != KeyError {
		t.Errorf("Err key = %q, want %q", attr.Key, KeyError)
	}
	if attr.Value.String() != "test error" {
		t.Errorf("Err value = %q, want %q", attr.Value.String(), "test error")
	}

	// Test with nil - should return an empty group that slog will omit
	attr = Err(nil)
	// Empty Group has empty key
	if attr.Key != "" {
		t.Errorf("Err(nil) key = %q, want empty string (empty group)", attr.Key)
	}
}

func TestAnonymizeEmail(t *testing.T) {
	tests := []struct {
		email    string
		wantLen  int  // Expected length of result (0 for empty)
		hasValue bool // Whether result should have a value
	}{
		{"jane@example.com", 21, true}, // "user:" + 16 hex chars
		{"user@gmail.com", 21, true},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			result := AnonymizeEmail(tt.email)
			if tt.hasValue {
				if len(result) != tt.wantLen {
					t.Errorf("AnonymizeEmail(%q) length = %d, want %d", tt.email, len(result), tt.wantLen)
				}
				if result[:5] != "user:" {
					t.Errorf("AnonymizeEmail(%q) should start with 'user:', got %q", tt.email, result)
				}
			} else {
				if result != "" {
					t.Errorf("AnonymizeEmail(%q) = %q, want empty string", tt.email, result)
				}
			}
		})
	}

	// Test deterministic hashing
	hash1 := AnonymizeEmail("test@example.com")
	hash2 := AnonymizeEmail("test@example.com")
	if hash1 != hash2 {
		t.Error("AnonymizeEmail should return deterministic results")
	}

	// Test different emails produce different hashes
	hash3 := AnonymizeEmail("other@example.com")
	if hash1 == hash3 {
		t.Error("Different emails should produce different hashes")
	}
}

func TestUserHash(t *testing.T) {
	attr := UserHash("jane@example.com")
	if attr.Key != KeyUserHash {
		t.Errorf("UserHash key = %q, want %q", attr.Key, KeyUserHash)
	}
	if len(attr.Value.String()) != 21 {
		t.Errorf("UserHash value length = %d, want 21", len(attr.Value.String()))
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		token    string
		expected string
	}{
		{"", "<empty>"},
		{"abc123", "[token:6 chars]"},
		{"a_very_long_token_string", "[token:24 chars]"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := SanitizeToken(tt.token)
			if result != tt.expected {
				t.Errorf("SanitizeToken(%q) = %q, want %q", tt.token, result, tt.expected)
			}
		})
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		email    string
		expected string
	}{
		{"jane@example.com", "example.com"},
		{"user@gmail.com", "gmail.com"},
		{"invalid", ""},
		{"", ""},
		{"@", ""},
		{"user@", ""},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			result := ExtractDomain(tt.email)
			if result != tt.expected {
				t.Errorf("ExtractDomain(%q) = %q, want %q", tt.email, result, tt.expected)
			}
		})
	}
}

func TestEmailDomain(t *testing.T) {
	attr := EmailDomain("jane@example.com")
	if attr.Key != "user_domain" {
		t.Errorf("EmailDomain key = %q, want %q", attr.Key, "user_domain")
	}
	if attr.Value.String() != "example.com" {
		t.Errorf("EmailDomain value = %q, want %q", attr.Value.String(), "example.com")
	}
}

func TestStatusConstants(t *testing.T) {
	if StatusSuccess != "success" {
		t.Errorf("StatusSuccess = %q, want %q", StatusSuccess, "success")
	}
	if StatusError != "error" {
		t.Errorf("StatusError = %q, want %q", StatusError, "error")
	}
}
