package store

import (
	"errors"
	"strings"
)

// ErrEmptySearchTerm is returned when a search term is empty or blank.
var ErrEmptySearchTerm = errors.New("Search term cannot be empty.")

// Search filters the envelope down to events and reminders containing term,
// compared case-insensitively. Events match on title, notes and location;
// reminders match on title and notes. The error fields of the envelope are
// carried over untouched.
func Search(envelope Envelope, term string) (Envelope, error) {
	if strings.TrimSpace(term) == "" {
		return Envelope{}, ErrEmptySearchTerm
	}

	result := Envelope{
		Events:         []Event{},
		Reminders:      []Reminder{},
		EventsError:    envelope.EventsError,
		RemindersError: envelope.RemindersError,
	}

	for _, ev := range envelope.Events {
		if containsFold(ev.Title, term) ||
			containsFold(deref(ev.Notes), term) ||
			containsFold(deref(ev.Location), term) {
			result.Events = append(result.Events, ev)
		}
	}

	for _, r := range envelope.Reminders {
		if containsFold(r.Title, term) || containsFold(deref(r.Notes), term) {
			result.Reminders = append(result.Reminders, r)
		}
	}

	return result, nil
}

// containsFold reports whether substr occurs in s ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
