package store

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/teemow/agenda/internal/logging"
)

const (
	// DefaultAuthTimeout bounds the wait for authorization callbacks.
	DefaultAuthTimeout = 10 * time.Second
	// DefaultFetchTimeout bounds the wait for a reminders fetch callback.
	DefaultFetchTimeout = 10 * time.Second
	// DefaultPollInterval is the sleep between completion checks.
	DefaultPollInterval = 100 * time.Millisecond
)

// Store retrieves events and reminders from a Backend and exposes them in
// normalized form. Authorization for both domains is requested once when
// the Store is created; the outcome is cached for the lifetime of the
// process and every query consults the cached flags.
type Store struct {
	backend Backend
	log     *slog.Logger
	norm    *Normalizer

	authTimeout  time.Duration
	fetchTimeout time.Duration
	pollInterval time.Duration
	sleep        func(time.Duration)
	now          func() time.Time

	eventsAuthorized    bool
	remindersAuthorized bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for progress and error reporting.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithAuthTimeout bounds the wait for authorization callbacks.
func WithAuthTimeout(d time.Duration) Option {
	return func(s *Store) { s.authTimeout = d }
}

// WithFetchTimeout bounds the wait for reminder fetch callbacks.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Store) { s.fetchTimeout = d }
}

// WithPollInterval sets the sleep between completion checks.
func WithPollInterval(d time.Duration) Option {
	return func(s *Store) { s.pollInterval = d }
}

// WithSleep replaces the sleep function used by the polling waits.
func WithSleep(fn func(time.Duration)) Option {
	return func(s *Store) {
		if fn != nil {
			s.sleep = fn
		}
	}
}

// WithClock replaces the clock used to resolve default date ranges.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) {
		if fn != nil {
			s.now = fn
		}
	}
}

// New creates a Store backed by backend and immediately requests access to
// both domains. It blocks until both authorization callbacks arrive or the
// auth timeout elapses; a timeout leaves the affected domains unauthorized
// rather than failing.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:      backend,
		log:          slog.Default(),
		authTimeout:  DefaultAuthTimeout,
		fetchTimeout: DefaultFetchTimeout,
		pollInterval: DefaultPollInterval,
		sleep:        time.Sleep,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.norm = NewNormalizer(s.log)
	s.requestAuthorization()
	return s
}

// EventsAuthorized reports whether calendar access was granted.
func (s *Store) EventsAuthorized() bool { return s.eventsAuthorized }

// RemindersAuthorized reports whether reminders access was granted.
func (s *Store) RemindersAuthorized() bool { return s.remindersAuthorized }

// requestAuthorization asks the backend for access to both domains and
// waits for the callbacks with a shared deadline. Grants that arrive after
// the deadline are lost for the lifetime of the Store.
func (s *Store) requestAuthorization() {
	events := newCompletion[bool]()
	reminders := newCompletion[bool]()

	s.log.Info("requesting access to calendars and reminders")

	s.backend.AuthorizeEvents(func(granted bool, err error) {
		if err != nil {
			s.log.Warn("event authorization error", logging.Err(err))
		}
		events.complete(granted)
	})
	s.backend.AuthorizeReminders(func(granted bool, err error) {
		if err != nil {
			s.log.Warn("reminder authorization error", logging.Err(err))
		}
		reminders.complete(granted)
	})

	s.log.Info("waiting for authorization responses")
	if !awaitAll(s.authTimeout, s.pollInterval, s.sleep, events, reminders) {
		s.log.Warn("timed out waiting for authorization")
	}

	s.eventsAuthorized, _ = events.result()
	s.remindersAuthorized, _ = reminders.result()

	if s.eventsAuthorized {
		s.log.Info("calendar access authorized")
	}
	if s.remindersAuthorized {
		s.log.Info("reminders access authorized")
	}
}

// GetCalendars lists the calendars of both domains. Unauthorized domains
// contribute an error message instead of a list.
func (s *Store) GetCalendars() CalendarsEnvelope {
	result := CalendarsEnvelope{
		EventCalendars:    []Calendar{},
		ReminderCalendars: []Calendar{},
	}

	if s.eventsAuthorized {
		cals, err := s.backend.ListCalendars(DomainEvents)
		if err != nil {
			s.log.Error("listing event calendars", logging.Err(err))
			result.EventsError = fmt.Sprintf("failed to list event calendars: %v", err)
		}
		for _, c := range cals {
			result.EventCalendars = append(result.EventCalendars, toCalendar(c, "Event"))
		}
	} else {
		result.EventsError = MsgCalendarNotAuthorized
	}

	if s.remindersAuthorized {
		cals, err := s.backend.ListCalendars(DomainReminders)
		if err != nil {
			s.log.Error("listing reminder calendars", logging.Err(err))
			result.RemindersError = fmt.Sprintf("failed to list reminder calendars: %v", err)
		}
		for _, c := range cals {
			result.ReminderCalendars = append(result.ReminderCalendars, toCalendar(c, "Reminder"))
		}
	} else {
		result.RemindersError = MsgRemindersNotAuthorized
	}

	return result
}

// QueryOptions narrow a combined query. The zero value means today's
// events plus incomplete reminders across all calendars.
type QueryOptions struct {
	// FromDate is the first day of the range. Zero means today.
	FromDate time.Time
	// ToDate is the last day of the range. Zero means FromDate.
	ToDate time.Time
	// Calendars restricts both domains to calendars with these titles. A
	// filter that matches nothing falls back to all calendars.
	Calendars []string
	// IncludeCompleted keeps completed reminders in the result.
	IncludeCompleted bool
	// AllDayOnly keeps only all-day events.
	AllDayOnly bool
	// BusyOnly keeps only events that block time.
	BusyOnly bool
}

// GetEventsAndReminders retrieves both domains for the given range. A
// domain that is unauthorized or fails to query contributes an error
// message; the other domain is still returned.
func (s *Store) GetEventsAndReminders(opts QueryOptions) Envelope {
	start, end := dateWindow(opts.FromDate, opts.ToDate, s.now())

	result := Envelope{
		Events:    []Event{},
		Reminders: []Reminder{},
	}

	if s.eventsAuthorized {
		events, err := s.queryEvents(start, end, opts)
		if err != nil {
			s.log.Error("querying events", logging.Err(err))
			result.EventsError = err.Error()
		} else {
			result.Events = events
		}
	} else {
		result.EventsError = MsgCalendarNotAuthorized
	}

	if s.remindersAuthorized {
		result.Reminders = s.queryReminders(start, end, opts)
	} else {
		result.RemindersError = MsgRemindersNotAuthorized
	}

	return result
}

func (s *Store) queryEvents(start, end time.Time, opts QueryOptions) ([]Event, error) {
	filter := s.resolveCalendarFilter(DomainEvents, opts.Calendars)
	predicate := s.backend.EventsPredicate(start, end, filter)
	raw, err := s.backend.QueryEvents(predicate)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}

	events := make([]Event, 0, len(raw))
	for _, ev := range raw {
		if opts.AllDayOnly && !ev.AllDay {
			continue
		}
		if opts.BusyOnly && ev.Availability != AvailabilityBusy {
			continue
		}
		events = append(events, s.norm.NormalizeEvent(ev))
	}
	return events, nil
}

// queryReminders fetches reminders through the one-shot callback contract.
// A fetch that never completes is logged and yields an empty list, never
// an error.
func (s *Store) queryReminders(start, end time.Time, opts QueryOptions) []Reminder {
	filter := s.resolveCalendarFilter(DomainReminders, opts.Calendars)
	predicate := s.backend.RemindersPredicate(start, end, filter, opts.IncludeCompleted)

	fetched := newCompletion[[]*RawReminder]()
	s.backend.FetchReminders(predicate, func(reminders []*RawReminder) {
		fetched.complete(reminders)
	})

	if !awaitAll(s.fetchTimeout, s.pollInterval, s.sleep, fetched) {
		s.log.Warn("timed out waiting for reminders")
	}

	reminders := []Reminder{}
	if raw, ok := fetched.result(); ok {
		for _, r := range raw {
			reminders = append(reminders, s.norm.NormalizeReminder(r))
		}
	}
	return reminders
}

// resolveCalendarFilter maps requested calendar titles to the domain's
// calendars. Filters are fail-open: no filter, a filter matching no
// calendar, or a failure listing calendars all resolve to nil, which
// backends treat as "all calendars".
func (s *Store) resolveCalendarFilter(domain Domain, titles []string) []*RawCalendar {
	if len(titles) == 0 {
		return nil
	}

	all, err := s.backend.ListCalendars(domain)
	if err != nil {
		s.log.Warn("listing calendars for filter", logging.Domain(string(domain)), logging.Err(err))
		return nil
	}

	wanted := make(map[string]bool, len(titles))
	for _, t := range titles {
		wanted[t] = true
	}

	var filtered []*RawCalendar
	for _, c := range all {
		if wanted[c.Title] {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return filtered
}

// toCalendar converts a native calendar, rendering its color components as
// a hex string.
func toCalendar(c *RawCalendar, typ string) Calendar {
	return Calendar{
		Title: c.Title,
		Color: fmt.Sprintf("#%02x%02x%02x", int(c.Red*255), int(c.Green*255), int(c.Blue*255)),
		Type:  typ,
	}
}

// dateWindow expands from/to dates into an inclusive range covering whole
// days in local time. A zero from means today; a zero to means from.
func dateWindow(from, to, now time.Time) (time.Time, time.Time) {
	if from.IsZero() {
		from = now
	}
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())

	if to.IsZero() {
		to = start
	}
	end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, to.Location())

	return start, end
}
