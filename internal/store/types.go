package store

// Messages recorded in the envelope error fields when a domain is not
// authorized.
const (
	MsgCalendarNotAuthorized  = "Calendar access not authorized"
	MsgRemindersNotAuthorized = "Reminders access not authorized"
)

// Event is the normalized form of a calendar event. Nullable fields are
// pointers so they marshal to JSON null, matching the result schema.
type Event struct {
	Title         string        `json:"title"`
	Location      *string       `json:"location"`
	Notes         *string       `json:"notes"`
	StartTime     *string       `json:"start_time"`
	EndTime       *string       `json:"end_time"`
	AllDay        bool          `json:"all_day"`
	Calendar      string        `json:"calendar"`
	URL           *string       `json:"url"`
	Availability  string        `json:"availability"`
	ConferenceURL *string       `json:"conference_url"`
	Participants  []Participant `json:"participants"`
	HasOrganizer  bool          `json:"has_organizer"`
	Organizer     *Organizer    `json:"organizer"`
}

// Participant is a normalized event attendee.
type Participant struct {
	Name        string  `json:"name"`
	Email       *string `json:"email"`
	Status      string  `json:"status"`
	Type        string  `json:"type"`
	Role        string  `json:"role"`
	IsOrganizer bool    `json:"is_organizer"`
}

// Organizer identifies who organizes an event. Each field independently
// nulls out when the native store has no value for it.
type Organizer struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// Reminder is the normalized form of a reminder.
type Reminder struct {
	Title     string  `json:"title"`
	Notes     *string `json:"notes"`
	DueDate   *string `json:"due_date"`
	Priority  int     `json:"priority"`
	Completed bool    `json:"completed"`
	Calendar  string  `json:"calendar"`
}

// Calendar describes one calendar of either domain.
type Calendar struct {
	Title string `json:"title"`
	Color string `json:"color"`
	Type  string `json:"type"`
}

// Envelope is the combined query result. The two error fields are
// independent: a failure in one domain never blocks the other.
type Envelope struct {
	Events         []Event    `json:"events"`
	Reminders      []Reminder `json:"reminders"`
	EventsError    string     `json:"events_error,omitempty"`
	RemindersError string     `json:"reminders_error,omitempty"`
}

// EventsOnly reduces the envelope to its events domain.
func (e Envelope) EventsOnly() Envelope {
	return Envelope{Events: e.Events, EventsError: e.EventsError}
}

// RemindersOnly reduces the envelope to its reminders domain.
func (e Envelope) RemindersOnly() Envelope {
	return Envelope{Reminders: e.Reminders, RemindersError: e.RemindersError}
}

// IsEmpty reports whether the envelope carries no data and no errors.
func (e Envelope) IsEmpty() bool {
	return len(e.Events) == 0 && len(e.Reminders) == 0 &&
		e.EventsError == "" && e.RemindersError == ""
}

// EventsResult is the JSON shape of a single-domain events response.
type EventsResult struct {
	Events      []Event `json:"events"`
	EventsError string  `json:"events_error,omitempty"`
}

// RemindersResult is the JSON shape of a single-domain reminders response.
type RemindersResult struct {
	Reminders      []Reminder `json:"reminders"`
	RemindersError string     `json:"reminders_error,omitempty"`
}

// CalendarsEnvelope is the result of listing calendars across both domains.
type CalendarsEnvelope struct {
	EventCalendars    []Calendar `json:"event_calendars"`
	ReminderCalendars []Calendar `json:"reminder_calendars"`
	EventsError       string     `json:"events_error,omitempty"`
	RemindersError    string     `json:"reminders_error,omitempty"`
}

// IsEmpty reports whether no calendars and no errors are present.
func (c CalendarsEnvelope) IsEmpty() bool {
	return len(c.EventCalendars) == 0 && len(c.ReminderCalendars) == 0 &&
		c.EventsError == "" && c.RemindersError == ""
}
