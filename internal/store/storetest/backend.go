// Package storetest provides a scriptable in-memory Backend for exercising
// the store facade and everything layered on top of it without a real
// calendar source.
package storetest

import (
	"time"

	"github.com/teemow/agenda/internal/store"
)

// EventsPredicate records the arguments of an EventsPredicate call.
type EventsPredicate struct {
	Start     time.Time
	End       time.Time
	Calendars []*store.RawCalendar
}

// RemindersPredicate records the arguments of a RemindersPredicate call.
type RemindersPredicate struct {
	Start            time.Time
	End              time.Time
	Calendars        []*store.RawCalendar
	IncludeCompleted bool
}

// Backend is a store.Backend whose behavior is scripted through its fields.
// The zero value denies all access and holds no data.
//
// Authorization callbacks are invoked synchronously unless the matching
// Silent flag is set, in which case the callback is retained so a test can
// fire it later (or never, to exercise timeouts).
type Backend struct {
	GrantEvents      bool
	GrantReminders   bool
	EventsAuthErr    error
	RemindersAuthErr error
	SilentEvents     bool
	SilentReminders  bool
	SilentFetch      bool

	EventCalendars    []*store.RawCalendar
	ReminderCalendars []*store.RawCalendar
	Events            []*store.RawEvent
	Reminders         []*store.RawReminder

	EventCalendarsErr    error
	ReminderCalendarsErr error
	EventsErr            error

	// Callbacks retained from the most recent calls, for tests that
	// complete them out of band.
	EventsAuthCallback    store.AuthCallback
	RemindersAuthCallback store.AuthCallback
	FetchCallback         store.RemindersCallback

	// Predicates recorded from the most recent calls.
	LastEventsPredicate    *EventsPredicate
	LastRemindersPredicate *RemindersPredicate
}

// NewAuthorized returns a Backend granting access to both domains.
func NewAuthorized() *Backend {
	return &Backend{GrantEvents: true, GrantReminders: true}
}

// AuthorizeEvents implements store.Backend.
func (b *Backend) AuthorizeEvents(cb store.AuthCallback) {
	b.EventsAuthCallback = cb
	if b.SilentEvents {
		return
	}
	cb(b.GrantEvents, b.EventsAuthErr)
}

// AuthorizeReminders implements store.Backend.
func (b *Backend) AuthorizeReminders(cb store.AuthCallback) {
	b.RemindersAuthCallback = cb
	if b.SilentReminders {
		return
	}
	cb(b.GrantReminders, b.RemindersAuthErr)
}

// ListCalendars implements store.Backend.
func (b *Backend) ListCalendars(domain store.Domain) ([]*store.RawCalendar, error) {
	if domain == store.DomainReminders {
		if b.ReminderCalendarsErr != nil {
			return nil, b.ReminderCalendarsErr
		}
		return b.ReminderCalendars, nil
	}
	if b.EventCalendarsErr != nil {
		return nil, b.EventCalendarsErr
	}
	return b.EventCalendars, nil
}

// EventsPredicate implements store.Backend.
func (b *Backend) EventsPredicate(start, end time.Time, calendars []*store.RawCalendar) store.Predicate {
	p := &EventsPredicate{Start: start, End: end, Calendars: calendars}
	b.LastEventsPredicate = p
	return p
}

// QueryEvents implements store.Backend. Events are filtered by the
// predicate's calendars; the time window is recorded but not applied, so
// tests control results purely through fixtures.
func (b *Backend) QueryEvents(predicate store.Predicate) ([]*store.RawEvent, error) {
	if b.EventsErr != nil {
		return nil, b.EventsErr
	}
	p, ok := predicate.(*EventsPredicate)
	if !ok || p.Calendars == nil {
		return b.Events, nil
	}

	allowed := calendarSet(p.Calendars)
	var matched []*store.RawEvent
	for _, ev := range b.Events {
		if allowed[ev.Calendar] {
			matched = append(matched, ev)
		}
	}
	return matched, nil
}

// RemindersPredicate implements store.Backend.
func (b *Backend) RemindersPredicate(start, end time.Time, calendars []*store.RawCalendar, includeCompleted bool) store.Predicate {
	p := &RemindersPredicate{Start: start, End: end, Calendars: calendars, IncludeCompleted: includeCompleted}
	b.LastRemindersPredicate = p
	return p
}

// FetchReminders implements store.Backend. Reminders are filtered by the
// predicate's calendars and completion flag and delivered synchronously
// unless SilentFetch is set.
func (b *Backend) FetchReminders(predicate store.Predicate, cb store.RemindersCallback) {
	b.FetchCallback = cb
	if b.SilentFetch {
		return
	}

	p, _ := predicate.(*RemindersPredicate)
	var allowed map[string]bool
	includeCompleted := true
	if p != nil {
		includeCompleted = p.IncludeCompleted
		if p.Calendars != nil {
			allowed = calendarSet(p.Calendars)
		}
	}

	var matched []*store.RawReminder
	for _, r := range b.Reminders {
		if !includeCompleted && r.Completed {
			continue
		}
		if allowed != nil && !allowed[r.Calendar] {
			continue
		}
		matched = append(matched, r)
	}
	cb(matched)
}

func calendarSet(calendars []*store.RawCalendar) map[string]bool {
	set := make(map[string]bool, len(calendars))
	for _, c := range calendars {
		set[c.Title] = true
	}
	return set
}
