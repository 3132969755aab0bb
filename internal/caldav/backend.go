package caldav

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav/caldav"

	"github.com/teemow/agenda/internal/config"
	"github.com/teemow/agenda/internal/logging"
	"github.com/teemow/agenda/internal/store"
)

// basicAuthTransport adds Basic Auth and a User-Agent to every request.
type basicAuthTransport struct {
	username  string
	password  string
	transport http.RoundTripper
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(t.username, t.password)
	req.Header.Set("User-Agent", "agenda/1.0")
	return t.transport.RoundTrip(req)
}

// Backend serves events and reminders from a CalDAV server. Calendars
// holding VEVENT components feed the events domain, calendars holding
// VTODO components feed the reminders domain.
type Backend struct {
	ctx    context.Context
	log    *slog.Logger
	client *caldav.Client

	mu        sync.Mutex
	homeSet   string
	calendars []caldav.Calendar
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

// New creates a Backend for the server named by cfg. The connection is
// not probed here; authorization probes report whether the credentials
// actually work.
func New(ctx context.Context, cfg config.CalDAVConfig, opts ...Option) (*Backend, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("caldav: server URL not configured")
	}

	httpClient := &http.Client{
		Transport: &basicAuthTransport{
			username:  cfg.Username,
			password:  cfg.Password,
			transport: http.DefaultTransport,
		},
	}

	client, err := caldav.NewClient(httpClient, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("creating CalDAV client: %w", err)
	}

	b := &Backend{
		ctx:    ctx,
		log:    slog.Default(),
		client: client,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// discover walks current-user-principal and calendar-home-set to the
// server's calendar list. The result is memoized: both authorization
// probes and every query share one round of discovery.
func (b *Backend) discover(ctx context.Context) ([]caldav.Calendar, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.calendars != nil {
		return b.calendars, nil
	}

	principal, err := b.client.FindCurrentUserPrincipal(ctx)
	if err != nil {
		return nil, fmt.Errorf("finding current user principal: %w", err)
	}

	homeSet, err := b.client.FindCalendarHomeSet(ctx, principal)
	if err != nil {
		return nil, fmt.Errorf("finding calendar home set: %w", err)
	}

	calendars, err := b.client.FindCalendars(ctx, homeSet)
	if err != nil {
		return nil, fmt.Errorf("finding calendars: %w", err)
	}

	b.homeSet = homeSet
	b.calendars = calendars
	return calendars, nil
}

// AuthorizeEvents probes the server off the calling goroutine. A
// successful discovery means the credentials grant access.
func (b *Backend) AuthorizeEvents(cb store.AuthCallback) {
	go func() {
		_, err := b.discover(b.ctx)
		cb(err == nil, err)
	}()
}

// AuthorizeReminders probes the server off the calling goroutine. CalDAV
// carries both domains behind the same credentials, so the probe is the
// same discovery as for events.
func (b *Backend) AuthorizeReminders(cb store.AuthCallback) {
	go func() {
		_, err := b.discover(b.ctx)
		cb(err == nil, err)
	}()
}

// ListCalendars partitions the discovered calendars by supported
// component set: VEVENT calendars serve events, VTODO calendars serve
// reminders. A calendar advertising no component set counts for both.
func (b *Backend) ListCalendars(domain store.Domain) ([]*store.RawCalendar, error) {
	calendars, err := b.discover(b.ctx)
	if err != nil {
		return nil, err
	}

	var raw []*store.RawCalendar
	for _, cal := range calendars {
		if supportsComponent(&cal, domainComponent(domain)) {
			raw = append(raw, calendarToRaw(&cal))
		}
	}
	return raw, nil
}

func domainComponent(domain store.Domain) string {
	if domain == store.DomainReminders {
		return ical.CompToDo
	}
	return ical.CompEvent
}

// supportsComponent reports whether the calendar accepts the component.
// Servers that omit the supported-calendar-component-set property get
// the benefit of the doubt.
func supportsComponent(cal *caldav.Calendar, name string) bool {
	if len(cal.SupportedComponentSet) == 0 {
		return true
	}
	for _, comp := range cal.SupportedComponentSet {
		if comp == name {
			return true
		}
	}
	return false
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

// QueryEvents issues a calendar-query REPORT with a VEVENT time-range
// filter against every selected calendar.
func (b *Backend) QueryEvents(p store.Predicate) ([]*store.RawEvent, error) {
	pred, ok := p.(*eventsPredicate)
	if !ok {
		return nil, fmt.Errorf("unexpected predicate type %T", p)
	}

	selected, err := b.selectCalendars(store.DomainEvents, pred.calendars)
	if err != nil {
		return nil, err
	}

	var events []*store.RawEvent
	for _, cal := range selected {
		objects, err := b.query(cal.Path, ical.CompEvent, pred.start, pred.end)
		if err != nil {
			return nil, fmt.Errorf("querying events in %q: %w", calendarTitle(&cal), err)
		}
		title := calendarTitle(&cal)
		for _, obj := range objects {
			for _, comp := range components(obj.Data, ical.CompEvent) {
				events = append(events, eventToRaw(comp, title))
			}
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
// empty result.
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
	selected, err := b.selectCalendars(store.DomainReminders, pred.calendars)
	if err != nil {
		return nil, err
	}

	var reminders []*store.RawReminder
	for _, cal := range selected {
		objects, err := b.query(cal.Path, ical.CompToDo, pred.start, pred.end)
		if err != nil {
			return nil, fmt.Errorf("querying reminders in %q: %w", calendarTitle(&cal), err)
		}
		title := calendarTitle(&cal)
		for _, obj := range objects {
			for _, comp := range components(obj.Data, ical.CompToDo) {
				reminder := todoToRaw(comp, title)
				if reminder.Completed && !pred.includeCompleted {
					continue
				}
				reminders = append(reminders, reminder)
			}
		}
	}
	return reminders, nil
}

// query issues a calendar-query REPORT for one component kind within the
// time window.
func (b *Backend) query(calendarPath, compName string, start, end time.Time) ([]caldav.CalendarObject, error) {
	req := &caldav.CalendarQuery{
		CompRequest: caldav.CalendarCompRequest{
			Name:     ical.CompCalendar,
			AllProps: true,
			Comps: []caldav.CalendarCompRequest{{
				Name:     compName,
				AllProps: true,
			}},
		},
		CompFilter: caldav.CompFilter{
			Name: ical.CompCalendar,
			Comps: []caldav.CompFilter{{
				Name:  compName,
				Start: start,
				End:   end,
			}},
		},
	}
	return b.client.QueryCalendar(b.ctx, calendarPath, req)
}

// selectCalendars resolves the calendars of a domain, narrowed to the
// filter when one is set.
func (b *Backend) selectCalendars(domain store.Domain, filter []*store.RawCalendar) ([]caldav.Calendar, error) {
	calendars, err := b.discover(b.ctx)
	if err != nil {
		return nil, err
	}

	component := domainComponent(domain)
	var wanted map[string]bool
	if filter != nil {
		wanted = make(map[string]bool, len(filter))
		for _, c := range filter {
			wanted[c.Title] = true
		}
	}

	var selected []caldav.Calendar
	for _, cal := range calendars {
		if !supportsComponent(&cal, component) {
			continue
		}
		if wanted != nil && !wanted[calendarTitle(&cal)] {
			continue
		}
		selected = append(selected, cal)
	}
	return selected, nil
}

// components returns the top-level components of the given kind.
func components(cal *ical.Calendar, name string) []*ical.Component {
	if cal == nil {
		return nil
	}
	var comps []*ical.Component
	for _, child := range cal.Children {
		if child.Name == name {
			comps = append(comps, child)
		}
	}
	return comps
}
