package gcal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"github.com/teemow/agenda/internal/config"
	"github.com/teemow/agenda/internal/google"
	"github.com/teemow/agenda/internal/logging"
	"github.com/teemow/agenda/internal/store"
)

// Backend serves events from the Google Calendar API and reminders from
// the Google Tasks API.
type Backend struct {
	ctx      context.Context
	log      *slog.Logger
	calendar *calendar.Service
	tasks    *tasks.Service
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for query diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(b *Backend) {
		if log != nil {
			b.log = log
		}
	}
}

// New creates a Backend using OAuth credentials from cfg. Construction
// fails when no cached token exists; authorization probes report the
// actual grant state per domain.
func New(ctx context.Context, cfg config.GoogleConfig, opts ...Option) (*Backend, error) {
	auth := google.NewAuth(cfg.CredentialsFile, cfg.TokenFile)

	client, err := auth.HTTPClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating Google HTTP client: %w", err)
	}

	calendarSvc, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("creating Calendar service: %w", err)
	}

	tasksSvc, err := tasks.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("creating Tasks service: %w", err)
	}

	b := &Backend{
		ctx:      ctx,
		log:      slog.Default(),
		calendar: calendarSvc,
		tasks:    tasksSvc,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// AuthorizeEvents probes the Calendar API to verify the token grants
// calendar access. The probe runs off the calling goroutine and reports
// through cb.
func (b *Backend) AuthorizeEvents(cb store.AuthCallback) {
	go func() {
		_, err := b.calendar.CalendarList.List().MaxResults(1).Context(b.ctx).Do()
		cb(err == nil, err)
	}()
}

// AuthorizeReminders probes the Tasks API to verify the token grants
// tasks access.
func (b *Backend) AuthorizeReminders(cb store.AuthCallback) {
	go func() {
		_, err := b.tasks.Tasklists.List().MaxResults(1).Context(b.ctx).Do()
		cb(err == nil, err)
	}()
}

// ListCalendars returns the calendars of the requested domain: the
// calendar list for events, task lists for reminders.
func (b *Backend) ListCalendars(domain store.Domain) ([]*store.RawCalendar, error) {
	if domain == store.DomainReminders {
		lists, err := b.listTaskLists()
		if err != nil {
			return nil, err
		}
		calendars := make([]*store.RawCalendar, 0, len(lists))
		for _, tl := range lists {
			calendars = append(calendars, taskListToCalendar(tl))
		}
		return calendars, nil
	}

	entries, err := b.listCalendarEntries()
	if err != nil {
		return nil, err
	}
	calendars := make([]*store.RawCalendar, 0, len(entries))
	for _, entry := range entries {
		calendars = append(calendars, entryToCalendar(entry))
	}
	return calendars, nil
}

func (b *Backend) listCalendarEntries() ([]*calendar.CalendarListEntry, error) {
	var entries []*calendar.CalendarListEntry
	call := b.calendar.CalendarList.List().Context(b.ctx)
	err := call.Pages(b.ctx, func(page *calendar.CalendarList) error {
		entries = append(entries, page.Items...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing calendars: %w", err)
	}
	return entries, nil
}

func (b *Backend) listTaskLists() ([]*tasks.TaskList, error) {
	var lists []*tasks.TaskList
	call := b.tasks.Tasklists.List().Context(b.ctx)
	err := call.Pages(b.ctx, func(page *tasks.TaskLists) error {
		lists = append(lists, page.Items...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing task lists: %w", err)
	}
	return lists, nil
}

// eventsPredicate carries an events query until QueryEvents runs it.
type eventsPredicate struct {
	start, end time.Time
	calendars  []*store.RawCalendar
}

// remindersPredicate carries a reminders query until FetchReminders runs it.
type remindersPredicate struct {
	start, end       time.Time
	calendars        []*store.RawCalendar
	includeCompleted bool
}

// EventsPredicate builds an events query for the inclusive window.
func (b *Backend) EventsPredicate(start, end time.Time, calendars []*store.RawCalendar) store.Predicate {
	return &eventsPredicate{start: start, end: end, calendars: calendars}
}

// QueryEvents runs an events predicate against every selected calendar.
func (b *Backend) QueryEvents(p store.Predicate) ([]*store.RawEvent, error) {
	pred, ok := p.(*eventsPredicate)
	if !ok {
		return nil, fmt.Errorf("unexpected predicate type %T", p)
	}

	entries, err := b.listCalendarEntries()
	if err != nil {
		return nil, err
	}
	entries = selectEntries(entries, pred.calendars)

	var events []*store.RawEvent
	for _, entry := range entries {
		title := entryTitle(entry)
		call := b.calendar.Events.List(entry.Id).
			TimeMin(pred.start.Format(time.RFC3339)).
			TimeMax(pred.end.Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime").
			Context(b.ctx)

		err := call.Pages(b.ctx, func(page *calendar.Events) error {
			for _, item := range page.Items {
				events = append(events, eventToRaw(item, title))
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("listing events in %q: %w", title, err)
		}
	}
	return events, nil
}

// RemindersPredicate builds a reminders query for the inclusive window.
func (b *Backend) RemindersPredicate(start, end time.Time, calendars []*store.RawCalendar, includeCompleted bool) store.Predicate {
	return &remindersPredicate{
		start:            start,
		end:              end,
		calendars:        calendars,
		includeCompleted: includeCompleted,
	}
}

// FetchReminders runs a reminders predicate off the calling goroutine and
// delivers the result through cb. Errors are logged and reported as an
// empty result; the store treats a silent fetch as empty anyway.
func (b *Backend) FetchReminders(p store.Predicate, cb store.RemindersCallback) {
	pred, ok := p.(*remindersPredicate)
	if !ok {
		b.log.Error("unexpected reminders predicate", slog.String("type", fmt.Sprintf("%T", p)))
		cb(nil)
		return
	}

	go func() {
		reminders, err := b.fetchReminders(pred)
		if err != nil {
			b.log.Error("fetching reminders", logging.Err(err))
			cb(nil)
			return
		}
		cb(reminders)
	}()
}

func (b *Backend) fetchReminders(pred *remindersPredicate) ([]*store.RawReminder, error) {
	lists, err := b.listTaskLists()
	if err != nil {
		return nil, err
	}
	lists = selectTaskLists(lists, pred.calendars)

	var reminders []*store.RawReminder
	for _, tl := range lists {
		call := b.tasks.Tasks.List(tl.Id).
			DueMin(pred.start.Format(time.RFC3339)).
			DueMax(pred.end.Format(time.RFC3339)).
			Context(b.ctx)
		if pred.includeCompleted {
			// Completed tasks are hidden by default in the Tasks API.
			call = call.ShowCompleted(true).ShowHidden(true)
		}

		err := call.Pages(b.ctx, func(page *tasks.Tasks) error {
			for _, item := range page.Items {
				reminders = append(reminders, taskToRaw(item, tl.Title))
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("listing tasks in %q: %w", tl.Title, err)
		}
	}
	return reminders, nil
}

// selectEntries keeps the entries named by filter; a nil filter keeps all.
func selectEntries(entries []*calendar.CalendarListEntry, filter []*store.RawCalendar) []*calendar.CalendarListEntry {
	if filter == nil {
		return entries
	}
	wanted := filterTitles(filter)
	var selected []*calendar.CalendarListEntry
	for _, entry := range entries {
		if wanted[entryTitle(entry)] {
			selected = append(selected, entry)
		}
	}
	return selected
}

// selectTaskLists keeps the lists named by filter; a nil filter keeps all.
func selectTaskLists(lists []*tasks.TaskList, filter []*store.RawCalendar) []*tasks.TaskList {
	if filter == nil {
		return lists
	}
	wanted := filterTitles(filter)
	var selected []*tasks.TaskList
	for _, tl := range lists {
		if wanted[tl.Title] {
			selected = append(selected, tl)
		}
	}
	return selected
}

func filterTitles(filter []*store.RawCalendar) map[string]bool {
	wanted := make(map[string]bool, len(filter))
	for _, c := range filter {
		wanted[c.Title] = true
	}
	return wanted
}
