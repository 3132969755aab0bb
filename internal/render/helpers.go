package render

import (
	"sort"
	"strings"
	"time"

	"github.com/teemow/agenda/internal/store"
)

// timestampLayouts are tried in order when parsing stored timestamp
// strings. The first entry is the native store format after its " +0000"
// suffix has been rewritten to an offset.
var timestampLayouts = []string{
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.ReplaceAll(s, " +0000", "+00:00")
	var err error
	for _, layout := range timestampLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// FormatDate reduces a stored timestamp string to YYYY-MM-DD. Empty input
// yields an empty string; input that fails to parse is returned unchanged.
func FormatDate(s string) string {
	if s == "" {
		return ""
	}
	t, err := parseTimestamp(s)
	if err != nil {
		return s
	}
	return t.Format("2006-01-02")
}

// FormatTimeRange renders start and end timestamps as "HH:MM - HH:MM", or
// just "HH:MM" when the end is absent. An empty start yields an empty
// string regardless of the end. If either side fails to parse, both raw
// strings are joined with " - " and trimmed of stray separators.
func FormatTimeRange(start, end string) string {
	if start == "" {
		return ""
	}

	startT, startErr := parseTimestamp(start)
	var endT time.Time
	var endErr error
	if end != "" {
		endT, endErr = parseTimestamp(end)
	}
	if startErr != nil || endErr != nil {
		return strings.Trim(start+" - "+end, " -")
	}

	if end == "" {
		return startT.Format("15:04")
	}
	return startT.Format("15:04") + " - " + endT.Format("15:04")
}

// SortEvents returns the events ordered by start time, ascending. Events
// without a start time sort first. The input slice is left untouched.
func SortEvents(events []store.Event) []store.Event {
	sorted := make([]store.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return eventSortKey(sorted[i]) < eventSortKey(sorted[j])
	})
	return sorted
}

func eventSortKey(ev store.Event) string {
	if ev.StartTime == nil {
		return ""
	}
	return *ev.StartTime
}

// SortReminders returns the reminders ordered by completion status
// (incomplete first), then by due date. Reminders without a due date sort
// first within their group. The input slice is left untouched.
func SortReminders(reminders []store.Reminder) []store.Reminder {
	sorted := make([]store.Reminder, len(reminders))
	copy(sorted, reminders)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Completed != sorted[j].Completed {
			return !sorted[i].Completed
		}
		return reminderSortKey(sorted[i]) < reminderSortKey(sorted[j])
	})
	return sorted
}

func reminderSortKey(r store.Reminder) string {
	if r.DueDate == nil {
		return ""
	}
	return *r.DueDate
}

// SortCalendars returns the calendars ordered by title. The input slice is
// left untouched.
func SortCalendars(calendars []store.Calendar) []store.Calendar {
	sorted := make([]store.Calendar, len(calendars))
	copy(sorted, calendars)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Title < sorted[j].Title
	})
	return sorted
}
