package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teemow/agenda/internal/store"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "native timestamp", input: "2023-01-15 00:00:00 +0000", expected: "2023-01-15"},
		{name: "timestamp without offset", input: "2023-01-15 18:00:00", expected: "2023-01-15"},
		{name: "iso timestamp", input: "2023-01-15T09:30:00+00:00", expected: "2023-01-15"},
		{name: "date only", input: "2023-01-20", expected: "2023-01-20"},
		{name: "empty", input: "", expected: ""},
		{name: "unparseable stays unchanged", input: "not a valid date", expected: "not a valid date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDate(tt.input))
		})
	}
}

func TestFormatDate_Idempotent(t *testing.T) {
	for _, input := range []string{"2023-01-15 00:00:00 +0000", "not a valid date", ""} {
		once := FormatDate(input)
		if twice := FormatDate(once); twice != once {
			t.Errorf("FormatDate not idempotent for %q: %q != %q", input, twice, once)
		}
	}
}

func TestFormatTimeRange(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected string
	}{
		{
			name:     "full range",
			start:    "2023-01-15 09:30:00 +0000",
			end:      "2023-01-15 10:45:00 +0000",
			expected: "09:30 - 10:45",
		},
		{
			name:     "start only",
			start:    "2023-01-15 14:00:00 +0000",
			expected: "14:00",
		},
		{
			name:     "empty start ignores end",
			start:    "",
			end:      "2023-01-15 10:45:00 +0000",
			expected: "",
		},
		{
			name:     "both empty",
			expected: "",
		},
		{
			name:     "unparseable falls back to raw strings",
			start:    "invalid start",
			end:      "invalid end",
			expected: "invalid start - invalid end",
		},
		{
			name:     "unparseable start with empty end trims the separator",
			start:    "invalid start",
			expected: "invalid start",
		},
		{
			name:     "valid start with unparseable end falls back",
			start:    "2023-01-15 09:30:00 +0000",
			end:      "later",
			expected: "2023-01-15 09:30:00 +0000 - later",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTimeRange(tt.start, tt.end))
		})
	}
}

func TestSortEvents(t *testing.T) {
	events := []store.Event{
		{Title: "Event C", StartTime: strPtr("2023-01-15 14:00:00 +0000")},
		{Title: "Event A", StartTime: strPtr("2023-01-15 09:00:00 +0000")},
		{Title: "Event B", StartTime: strPtr("2023-01-15 12:30:00 +0000")},
		{Title: "Event D"},
	}

	sorted := SortEvents(events)

	// Events without a start time sort first since their key is "".
	want := []string{"Event D", "Event A", "Event B", "Event C"}
	for i, title := range want {
		if sorted[i].Title != title {
			t.Errorf("position %d: expected %s, got %s", i, title, sorted[i].Title)
		}
	}

	// Input order is untouched.
	if events[0].Title != "Event C" {
		t.Error("SortEvents mutated its input")
	}
}

func TestSortEvents_StableAndIdempotent(t *testing.T) {
	events := []store.Event{
		{Title: "First", StartTime: strPtr("2023-01-15 09:00:00 +0000")},
		{Title: "Second", StartTime: strPtr("2023-01-15 09:00:00 +0000")},
		{Title: "Third", StartTime: strPtr("2023-01-15 09:00:00 +0000")},
	}

	once := SortEvents(events)
	twice := SortEvents(once)

	for i := range once {
		if once[i].Title != events[i].Title {
			t.Errorf("equal keys reordered at %d: %s", i, once[i].Title)
		}
		if twice[i].Title != once[i].Title {
			t.Errorf("second sort changed order at %d: %s", i, twice[i].Title)
		}
	}
}

func TestSortReminders(t *testing.T) {
	reminders := []store.Reminder{
		{Title: "Task C", Completed: true, DueDate: strPtr("2023-01-20")},
		{Title: "Task A", Completed: false, DueDate: strPtr("2023-01-15")},
		{Title: "Task B", Completed: false, DueDate: strPtr("2023-01-25")},
		{Title: "Task D", Completed: true, DueDate: strPtr("2023-01-10")},
	}

	sorted := SortReminders(reminders)

	// Incomplete first, then by due date within each group.
	want := []string{"Task A", "Task B", "Task D", "Task C"}
	for i, title := range want {
		if sorted[i].Title != title {
			t.Errorf("position %d: expected %s, got %s", i, title, sorted[i].Title)
		}
	}
}

func TestSortReminders_NoDueDateFirst(t *testing.T) {
	reminders := []store.Reminder{
		{Title: "Dated", DueDate: strPtr("2023-01-15")},
		{Title: "Undated"},
	}

	sorted := SortReminders(reminders)

	if sorted[0].Title != "Undated" {
		t.Errorf("expected undated reminder first, got %s", sorted[0].Title)
	}
}

func TestSortCalendars(t *testing.T) {
	calendars := []store.Calendar{
		{Title: "Work"},
		{Title: "Birthdays"},
		{Title: "Personal"},
	}

	sorted := SortCalendars(calendars)

	want := []string{"Birthdays", "Personal", "Work"}
	for i, title := range want {
		if sorted[i].Title != title {
			t.Errorf("position %d: expected %s, got %s", i, title, sorted[i].Title)
		}
	}
	if calendars[0].Title != "Work" {
		t.Error("SortCalendars mutated its input")
	}
}

func strPtr(s string) *string { return &s }
