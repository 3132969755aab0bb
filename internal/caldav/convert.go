package caldav

import (
	"hash/fnv"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav/caldav"

	"github.com/teemow/agenda/internal/store"
)

// calendarTitle resolves a calendar's display name, falling back to the
// last path segment for servers that omit the display name.
func calendarTitle(cal *caldav.Calendar) string {
	if cal.Name != "" {
		return cal.Name
	}
	return path.Base(strings.TrimSuffix(cal.Path, "/"))
}

// calendarToRaw converts a discovered calendar. CalDAV servers do not
// reliably expose calendar colors, so a stable color is derived from the
// title instead.
func calendarToRaw(cal *caldav.Calendar) *store.RawCalendar {
	title := calendarTitle(cal)
	r, g, b := titleColor(title)
	return &store.RawCalendar{
		Title: title,
		Red:   r,
		Green: g,
		Blue:  b,
	}
}

// titleColor hashes a title into normalized RGB channels. The same title
// always maps to the same color.
func titleColor(title string) (r, g, b float64) {
	h := fnv.New32a()
	h.Write([]byte(title))
	sum := h.Sum32()
	return float64(sum>>16&0xff) / 255,
		float64(sum>>8&0xff) / 255,
		float64(sum&0xff) / 255
}

// eventToRaw converts a VEVENT owned by the named calendar. When the
// organizer address matches an attendee, the organizer shares the
// attendee's participant pointer so organizer detection can work by
// identity.
func eventToRaw(comp *ical.Component, calendarTitle string) *store.RawEvent {
	raw := &store.RawEvent{
		Title:        propText(comp, ical.PropSummary),
		Location:     propText(comp, ical.PropLocation),
		Notes:        propText(comp, ical.PropDescription),
		Calendar:     calendarTitle,
		Availability: availabilityCode(propText(comp, ical.PropTransparency)),
	}

	raw.Start, raw.AllDay = propTime(comp, ical.PropDateTimeStart)
	raw.End, _ = propTime(comp, ical.PropDateTimeEnd)

	if url := propText(comp, ical.PropURL); url != "" {
		raw.URL = store.URLString(url)
	}

	attendees := comp.Props.Values(ical.PropAttendee)
	for i := range attendees {
		raw.Participants = append(raw.Participants, attendeeToParticipant(&attendees[i]))
	}

	if org := comp.Props.Get(ical.PropOrganizer); org != nil {
		address := mailtoAddress(org.Value)
		for _, p := range raw.Participants {
			if strings.EqualFold(p.Email, address) {
				raw.Organizer = p
				break
			}
		}
		if raw.Organizer == nil {
			raw.Organizer = &store.RawParticipant{
				Name:   org.Params.Get(ical.ParamCommonName),
				Email:  address,
				Status: store.ValidCode(store.StatusAccepted),
				Type:   store.ValidCode(store.TypePerson),
				Role:   store.ValidCode(store.RoleChair),
			}
		}
	}

	return raw
}

// attendeeToParticipant maps ATTENDEE parameters onto native codes.
func attendeeToParticipant(prop *ical.Prop) *store.RawParticipant {
	return &store.RawParticipant{
		Name:   prop.Params.Get(ical.ParamCommonName),
		Email:  mailtoAddress(prop.Value),
		Status: store.ValidCode(partStatCode(prop.Params.Get(ical.ParamParticipationStatus))),
		Type:   store.ValidCode(userTypeCode(prop.Params.Get(ical.ParamCalendarUserType))),
		Role:   store.ValidCode(roleCode(prop.Params.Get(ical.ParamRole))),
	}
}

// partStatCode maps a PARTSTAT parameter onto the native participant
// status codes. The default for a missing parameter is NEEDS-ACTION.
func partStatCode(partStat string) int {
	switch strings.ToUpper(partStat) {
	case "", "NEEDS-ACTION":
		return store.StatusPending
	case "ACCEPTED":
		return store.StatusAccepted
	case "DECLINED":
		return store.StatusDeclined
	case "TENTATIVE":
		return store.StatusTentative
	case "DELEGATED":
		return store.StatusDelegated
	case "COMPLETED":
		return store.StatusCompleted
	case "IN-PROCESS":
		return store.StatusInProcess
	default:
		return store.StatusUnknown
	}
}

// userTypeCode maps a CUTYPE parameter onto the native participant type
// codes. The default for a missing parameter is INDIVIDUAL.
func userTypeCode(cuType string) int {
	switch strings.ToUpper(cuType) {
	case "", "INDIVIDUAL":
		return store.TypePerson
	case "ROOM":
		return store.TypeRoom
	case "RESOURCE":
		return store.TypeResource
	case "GROUP":
		return store.TypeGroup
	default:
		return store.TypeUnknown
	}
}

// roleCode maps a ROLE parameter onto the native participant role codes.
// The default for a missing parameter is REQ-PARTICIPANT.
func roleCode(role string) int {
	switch strings.ToUpper(role) {
	case "", "REQ-PARTICIPANT":
		return store.RoleRequired
	case "OPT-PARTICIPANT":
		return store.RoleOptional
	case "CHAIR":
		return store.RoleChair
	case "NON-PARTICIPANT":
		return store.RoleNonParticipant
	default:
		return store.RoleUnknown
	}
}

// availabilityCode maps TRANSP onto the native availability codes.
// Events block time unless marked transparent.
func availabilityCode(transparency string) int {
	if strings.EqualFold(transparency, "TRANSPARENT") {
		return store.AvailabilityFree
	}
	return store.AvailabilityBusy
}

// todoToRaw converts a VTODO owned by the named calendar.
func todoToRaw(comp *ical.Component, calendarTitle string) *store.RawReminder {
	raw := &store.RawReminder{
		Title:    propText(comp, ical.PropSummary),
		Notes:    propText(comp, ical.PropDescription),
		Calendar: calendarTitle,
	}

	raw.DueDate, _ = propTime(comp, ical.PropDue)

	if p := comp.Props.Get(ical.PropPriority); p != nil {
		if v, err := strconv.Atoi(p.Value); err == nil {
			raw.Priority = v
		}
	}

	status := strings.ToUpper(propText(comp, ical.PropStatus))
	raw.Completed = status == "COMPLETED" || comp.Props.Get(ical.PropCompleted) != nil

	return raw
}

// propText reads a text property, tolerating escape errors by falling
// back to the raw value.
func propText(comp *ical.Component, name string) string {
	p := comp.Props.Get(name)
	if p == nil {
		return ""
	}
	text, err := p.Text()
	if err != nil {
		return p.Value
	}
	return text
}

// propTime reads a date-time property. The second return reports whether
// the property carries a bare DATE value, which marks all-day events.
func propTime(comp *ical.Component, name string) (*time.Time, bool) {
	p := comp.Props.Get(name)
	if p == nil {
		return nil, false
	}
	t, err := p.DateTime(time.UTC)
	if err != nil {
		return nil, false
	}
	return &t, p.ValueType() == ical.ValueDate
}

// mailtoAddress strips the mailto scheme from a calendar user address.
func mailtoAddress(value string) string {
	if len(value) >= 7 && strings.EqualFold(value[:7], "mailto:") {
		return value[7:]
	}
	return value
}
