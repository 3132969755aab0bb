// Package render turns normalized calendar data into Markdown reports.
//
// Two templates cover the surface: the agenda report (events plus
// reminders) and the calendar list. Formatting helpers are wired in via
// template.FuncMap so callers can swap individual helpers, which the tests
// use to exercise the render failure path.
package render

import (
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/teemow/agenda/internal/logging"
	"github.com/teemow/agenda/internal/store"
)

const agendaTemplate = `{{- if .Events}}### Events
{{- range sortEvents .Events}}
{{eventLine .}}
{{- end}}
{{else if .EventsError}}### Events
Error: {{.EventsError}}
{{end}}
{{if .Reminders}}### Reminders
{{- range sortReminders .Reminders}}
{{reminderLine .}}
{{- end}}
{{else if .RemindersError}}### Reminders
Error: {{.RemindersError}}
{{end}}
{{- if .IsEmpty}}No events or reminders found for the specified criteria.{{end -}}
`

const calendarsTemplate = `{{- if .EventCalendars}}### Event Calendars
{{- range sortCalendars .EventCalendars}}
{{calendarLine .}}
{{- end}}
{{else if .EventsError}}### Event Calendars
Error: {{.EventsError}}
{{end}}
{{if .ReminderCalendars}}### Reminder Calendars
{{- range sortCalendars .ReminderCalendars}}
{{calendarLine .}}
{{- end}}
{{else if .RemindersError}}### Reminder Calendars
Error: {{.RemindersError}}
{{end}}
{{- if .IsEmpty}}No calendars found or access denied.{{end -}}
`

// Renderer renders agenda and calendar list reports.
type Renderer struct {
	log       *slog.Logger
	agenda    *template.Template
	calendars *template.Template
}

// Option configures a Renderer.
type Option func(*settings)

type settings struct {
	log   *slog.Logger
	funcs template.FuncMap
}

// WithLogger sets the logger used to report template failures.
func WithLogger(log *slog.Logger) Option {
	return func(s *settings) {
		if log != nil {
			s.log = log
		}
	}
}

// WithFuncs overrides individual template helpers. Unknown names are added
// alongside the defaults.
func WithFuncs(funcs template.FuncMap) Option {
	return func(s *settings) {
		for name, fn := range funcs {
			s.funcs[name] = fn
		}
	}
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	s := &settings{
		log: slog.Default(),
		funcs: template.FuncMap{
			"formatDate":      FormatDate,
			"formatTimeRange": FormatTimeRange,
			"sortEvents":      SortEvents,
			"sortReminders":   SortReminders,
			"sortCalendars":   SortCalendars,
			"eventLine":       eventLine,
			"reminderLine":    reminderLine,
			"calendarLine":    calendarLine,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	return &Renderer{
		log:       s.log,
		agenda:    template.Must(template.New("agenda").Funcs(s.funcs).Parse(agendaTemplate)),
		calendars: template.Must(template.New("calendars").Funcs(s.funcs).Parse(calendarsTemplate)),
	}
}

// Agenda renders the combined events and reminders report. Template
// failures are reported inline rather than returned, so callers always get
// something to show.
func (r *Renderer) Agenda(envelope store.Envelope) string {
	var sb strings.Builder
	if err := r.agenda.Execute(&sb, envelope); err != nil {
		r.log.Error("rendering agenda template", logging.Err(err))
		return fmt.Sprintf("Error rendering calendar data: %v", err)
	}
	return strings.TrimSpace(sb.String())
}

// CalendarList renders the calendar list report.
func (r *Renderer) CalendarList(calendars store.CalendarsEnvelope) string {
	var sb strings.Builder
	if err := r.calendars.Execute(&sb, calendars); err != nil {
		r.log.Error("rendering calendar list template", logging.Err(err))
		return fmt.Sprintf("Error rendering calendar list: %v", err)
	}
	return strings.TrimSpace(sb.String())
}

// eventLine renders a single event bullet.
func eventLine(ev store.Event) string {
	title := ev.Title
	if title == "" {
		title = "No Title"
	}
	calendar := ev.Calendar
	if calendar == "" {
		calendar = "Unknown Calendar"
	}

	var timeStr string
	if ev.AllDay {
		timeStr = "All Day"
	} else {
		timeStr = FormatTimeRange(deref(ev.StartTime), deref(ev.EndTime))
	}

	location := deref(ev.Location)
	conference := deref(ev.ConferenceURL)
	var locStr string
	switch {
	case location != "" && location == conference:
		locStr = " ([Join](" + conference + "))"
	case conference != "":
		locStr = " (" + location + " / [Join](" + conference + "))"
	case location != "":
		locStr = " (" + location + ")"
	}

	return fmt.Sprintf("- **%s** (%s%s) _%s_", title, timeStr, locStr, calendar)
}

// reminderLine renders a single reminder bullet with a completion checkbox.
func reminderLine(r store.Reminder) string {
	title := r.Title
	if title == "" {
		title = "No Title"
	}
	calendar := r.Calendar
	if calendar == "" {
		calendar = "Unknown Calendar"
	}

	var dueStr string
	if due := deref(r.DueDate); due != "" {
		dueStr = " (Due: " + FormatDate(due) + ")"
	}

	status := "[ ]"
	if r.Completed {
		status = "[x]"
	}

	return fmt.Sprintf("- %s **%s**%s _%s_", status, title, dueStr, calendar)
}

// calendarLine renders a single calendar bullet.
func calendarLine(c store.Calendar) string {
	return fmt.Sprintf("- %s (%s)", c.Title, c.Color)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
