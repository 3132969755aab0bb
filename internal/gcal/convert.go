package gcal

import (
	"strconv"
	"time"

	calendar "google.golang.org/api/calendar/v3"
	tasks "google.golang.org/api/tasks/v1"

	"github.com/teemow/agenda/internal/store"
)

// defaultTaskListColor is the hex color assigned to task lists, which the
// Tasks API does not color itself.
const defaultTaskListColor = "#4285f4"

// entryTitle resolves the display name of a calendar list entry. A user
// override wins over the calendar's own summary.
func entryTitle(entry *calendar.CalendarListEntry) string {
	if entry.SummaryOverride != "" {
		return entry.SummaryOverride
	}
	return entry.Summary
}

// entryToCalendar converts a calendar list entry, decoding its background
// color into normalized channel floats.
func entryToCalendar(entry *calendar.CalendarListEntry) *store.RawCalendar {
	r, g, b := parseHexColor(entry.BackgroundColor)
	return &store.RawCalendar{
		Title: entryTitle(entry),
		Red:   r,
		Green: g,
		Blue:  b,
	}
}

// taskListToCalendar converts a task list into a reminder calendar.
func taskListToCalendar(tl *tasks.TaskList) *store.RawCalendar {
	r, g, b := parseHexColor(defaultTaskListColor)
	return &store.RawCalendar{
		Title: tl.Title,
		Red:   r,
		Green: g,
		Blue:  b,
	}
}

// parseHexColor decodes "#rrggbb" into channel floats in [0, 1].
// Unparseable input yields black.
func parseHexColor(s string) (r, g, b float64) {
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0
	}
	channel := func(hex string) float64 {
		v, err := strconv.ParseUint(hex, 16, 8)
		if err != nil {
			return 0
		}
		return float64(v) / 255
	}
	return channel(s[1:3]), channel(s[3:5]), channel(s[5:7])
}

// eventToRaw converts a Calendar API event owned by the named calendar.
// When the organizer also attends, the organizer shares the attendee's
// participant pointer so organizer detection can work by identity.
func eventToRaw(event *calendar.Event, calendarTitle string) *store.RawEvent {
	raw := &store.RawEvent{
		Title:        event.Summary,
		Location:     event.Location,
		Notes:        event.Description,
		AllDay:       event.Start != nil && event.Start.Date != "",
		Calendar:     calendarTitle,
		Availability: availabilityCode(event.Transparency),
	}

	raw.Start = parseEventTime(event.Start)
	raw.End = parseEventTime(event.End)

	if event.HangoutLink != "" {
		raw.URL = store.URLString(event.HangoutLink)
	} else if event.HtmlLink != "" {
		raw.URL = store.URLString(event.HtmlLink)
	}

	for _, att := range event.Attendees {
		p := attendeeToParticipant(att)
		raw.Participants = append(raw.Participants, p)
		if att.Organizer {
			raw.Organizer = p
		}
	}
	if raw.Organizer == nil && event.Organizer != nil {
		raw.Organizer = &store.RawParticipant{
			Name:   event.Organizer.DisplayName,
			Email:  event.Organizer.Email,
			Status: store.ValidCode(store.StatusAccepted),
			Type:   store.ValidCode(store.TypePerson),
			Role:   store.ValidCode(store.RoleChair),
		}
	}

	return raw
}

// attendeeToParticipant maps attendee flags onto native participant codes.
func attendeeToParticipant(att *calendar.EventAttendee) *store.RawParticipant {
	typ := store.TypePerson
	if att.Resource {
		typ = store.TypeResource
	}

	role := store.RoleRequired
	if att.Optional {
		role = store.RoleOptional
	}

	return &store.RawParticipant{
		Name:   att.DisplayName,
		Email:  att.Email,
		Status: store.ValidCode(responseStatusCode(att.ResponseStatus)),
		Type:   store.ValidCode(typ),
		Role:   store.ValidCode(role),
	}
}

// responseStatusCode maps an attendee response status onto the native
// participant status codes.
func responseStatusCode(status string) int {
	switch status {
	case "needsAction":
		return store.StatusPending
	case "accepted":
		return store.StatusAccepted
	case "declined":
		return store.StatusDeclined
	case "tentative":
		return store.StatusTentative
	default:
		return store.StatusUnknown
	}
}

// availabilityCode maps event transparency onto the native availability
// codes. Events block time unless marked transparent.
func availabilityCode(transparency string) int {
	if transparency == "transparent" {
		return store.AvailabilityFree
	}
	return store.AvailabilityBusy
}

// parseEventTime resolves either form of an event boundary: a dateTime
// for timed events or a bare date for all-day events.
func parseEventTime(edt *calendar.EventDateTime) *time.Time {
	if edt == nil {
		return nil
	}
	if edt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, edt.DateTime); err == nil {
			return &t
		}
		return nil
	}
	if edt.Date != "" {
		if t, err := time.Parse("2006-01-02", edt.Date); err == nil {
			return &t
		}
	}
	return nil
}

// taskToRaw converts a Tasks API task owned by the named list.
func taskToRaw(task *tasks.Task, listTitle string) *store.RawReminder {
	raw := &store.RawReminder{
		Title:     task.Title,
		Notes:     task.Notes,
		Completed: task.Status == "completed",
		Calendar:  listTitle,
	}
	if task.Due != "" {
		if t, err := time.Parse(time.RFC3339, task.Due); err == nil {
			raw.DueDate = &t
		}
	}
	return raw
}
