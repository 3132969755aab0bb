package store

import "time"

// Domain identifies one of the two independently authorized data categories
// of a native calendar store.
type Domain string

const (
	// DomainEvents covers calendar events.
	DomainEvents Domain = "events"
	// DomainReminders covers reminders.
	DomainReminders Domain = "reminders"
)

// Availability codes as reported by native stores. Only AvailabilityBusy
// normalizes to "busy"; every other value normalizes to "free".
const (
	AvailabilityBusy      = 0
	AvailabilityFree      = 1
	AvailabilityTentative = 2
)

// Participant status codes as reported by native stores.
const (
	StatusUnknown   = 0
	StatusPending   = 1
	StatusAccepted  = 2
	StatusDeclined  = 3
	StatusTentative = 4
	StatusDelegated = 5
	StatusCompleted = 6
	StatusInProcess = 7
)

// Participant type codes.
const (
	TypeUnknown  = 0
	TypePerson   = 1
	TypeRoom     = 2
	TypeResource = 3
	TypeGroup    = 4
)

// Participant role codes.
const (
	RoleUnknown        = 0
	RoleRequired       = 1
	RoleOptional       = 2
	RoleChair          = 3
	RoleNonParticipant = 4
)

// AuthCallback receives the outcome of an asynchronous authorization
// request. It fires at most once.
type AuthCallback func(granted bool, err error)

// RemindersCallback receives the result of an asynchronous reminder fetch.
// It fires at most once.
type RemindersCallback func(reminders []*RawReminder)

// Predicate is an opaque, backend-specific query description. It is built by
// EventsPredicate or RemindersPredicate and consumed by QueryEvents or
// FetchReminders of the same backend.
type Predicate any

// Backend is the capability a native calendar store presents to the store.
// Implementations must not block inside the Authorize and Fetch methods;
// they deliver results through the callbacks while the store polls.
type Backend interface {
	// AuthorizeEvents requests access to calendar events.
	AuthorizeEvents(cb AuthCallback)

	// AuthorizeReminders requests access to reminders.
	AuthorizeReminders(cb AuthCallback)

	// ListCalendars returns all calendars of the given domain.
	ListCalendars(domain Domain) ([]*RawCalendar, error)

	// EventsPredicate builds a query for events between start and end,
	// inclusive. A nil calendars slice queries all calendars.
	EventsPredicate(start, end time.Time, calendars []*RawCalendar) Predicate

	// QueryEvents runs an events predicate synchronously.
	QueryEvents(p Predicate) ([]*RawEvent, error)

	// RemindersPredicate builds a query for reminders due between start and
	// end, inclusive. A nil calendars slice queries all calendars.
	RemindersPredicate(start, end time.Time, calendars []*RawCalendar, includeCompleted bool) Predicate

	// FetchReminders runs a reminders predicate, delivering the result
	// through cb.
	FetchReminders(p Predicate, cb RemindersCallback)
}

// Code is a native enum value that may be absent or non-numeric. Codes with
// Valid unset, and codes outside the known range, normalize to "unknown".
type Code struct {
	Value int
	Valid bool
}

// ValidCode wraps a present enum value.
func ValidCode(v int) Code {
	return Code{Value: v, Valid: true}
}

// RawCalendar is a backend's view of a calendar. Color channels are
// normalized floats in [0, 1].
type RawCalendar struct {
	Title string
	Red   float64
	Green float64
	Blue  float64
}

// RawParticipant is a backend's view of an event attendee or organizer.
type RawParticipant struct {
	Name   string
	Email  string
	Status Code
	Type   Code
	Role   Code
}

// RawEvent is a backend's view of an event. When the organizer also attends,
// Organizer must be the same pointer as the matching Participants entry:
// organizer detection works by identity, never by name or email equality.
type RawEvent struct {
	Title        string
	Location     string
	Notes        string
	Start        *time.Time
	End          *time.Time
	AllDay       bool
	Calendar     string
	URL          URLValue
	Availability int
	Participants []*RawParticipant
	Organizer    *RawParticipant
}

// RawReminder is a backend's view of a reminder.
type RawReminder struct {
	Title     string
	Notes     string
	DueDate   *time.Time
	Priority  int
	Completed bool
	Calendar  string
}

// URLValue is an event URL as delivered by a native store. Stores hand this
// field back in several shapes: a plain string, an object exposing its
// absolute form, or a sequence of such objects.
type URLValue interface {
	isURLValue()
}

// URLString is a URL already in string form.
type URLString string

func (URLString) isURLValue() {}

// URLRef is a native URL object. Absolute resolves the URL's absolute string
// form; resolving may panic inside a native bridge.
type URLRef struct {
	Absolute func() string
}

func (URLRef) isURLValue() {}

// URLList is a sequence of URL values. Only the first element is used.
type URLList []URLValue

func (URLList) isURLValue() {}
