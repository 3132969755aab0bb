package store

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/teemow/agenda/internal/logging"
)

// nativeTimestampLayout is the description format native stores use for
// timestamps: "2023-01-15 09:00:00 +0000", always UTC.
const nativeTimestampLayout = "2006-01-02 15:04:05 +0000"

// participantStatusNames maps native participant status codes to labels.
var participantStatusNames = map[int]string{
	0: "unknown",
	1: "pending",
	2: "accepted",
	3: "declined",
	4: "tentative",
	5: "delegated",
	6: "completed",
	7: "in-process",
}

// participantTypeNames maps native participant type codes to labels.
var participantTypeNames = map[int]string{
	0: "unknown",
	1: "person",
	2: "room",
	3: "resource",
	4: "group",
}

// participantRoleNames maps native participant role codes to labels.
var participantRoleNames = map[int]string{
	0: "unknown",
	1: "required",
	2: "optional",
	3: "chair",
	4: "non-participant",
}

// conferenceDomains mark an event URL as a meeting link when contained in
// its lower-cased form.
var conferenceDomains = []string{"zoom.us", "meet.google", "teams.microsoft", "webex", "bluejeans"}

// conferencePatterns are tried in order against event notes; the first
// pattern that matches anywhere wins and later patterns are not consulted.
var conferencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`https?://[a-zA-Z0-9.-]+\.zoom\.us/[^\s<>"]+`),
	regexp.MustCompile(`https?://meet\.google\.com/[^\s<>"]+`),
	regexp.MustCompile(`https?://teams\.microsoft\.com/[^\s<>"]+`),
	regexp.MustCompile(`https?://[a-zA-Z0-9.-]+\.webex\.com/[^\s<>"]+`),
}

// Normalizer converts native store objects into their normalized forms.
type Normalizer struct {
	log *slog.Logger
}

// NewNormalizer returns a Normalizer reporting conversion problems to log.
// A nil log falls back to slog.Default().
func NewNormalizer(log *slog.Logger) *Normalizer {
	if log == nil {
		log = slog.Default()
	}
	return &Normalizer{log: log}
}

// NormalizeEvent converts a native event into its normalized form.
func (n *Normalizer) NormalizeEvent(raw *RawEvent) Event {
	participants := make([]Participant, 0, len(raw.Participants))
	for _, att := range raw.Participants {
		name := att.Name
		if name == "" {
			name = "Unknown"
		}
		participants = append(participants, Participant{
			Name:        name,
			Email:       optional(att.Email),
			Status:      codeName(att.Status, participantStatusNames),
			Type:        codeName(att.Type, participantTypeNames),
			Role:        codeName(att.Role, participantRoleNames),
			IsOrganizer: raw.Organizer != nil && att == raw.Organizer,
		})
	}

	urlStr := n.resolveURL(raw.URL)
	conferenceURL := findConferenceURL(urlStr, raw.Notes)

	location := raw.Location
	if location == "" && conferenceURL != "" {
		location = conferenceURL
	}

	availability := "free"
	if raw.Availability == AvailabilityBusy {
		availability = "busy"
	}

	ev := Event{
		Title:         raw.Title,
		Location:      optional(location),
		Notes:         optional(raw.Notes),
		StartTime:     nativeTimestamp(raw.Start),
		EndTime:       nativeTimestamp(raw.End),
		AllDay:        raw.AllDay,
		Calendar:      raw.Calendar,
		URL:           optional(urlStr),
		Availability:  availability,
		ConferenceURL: optional(conferenceURL),
		Participants:  participants,
		HasOrganizer:  raw.Organizer != nil,
	}
	if org := raw.Organizer; org != nil {
		ev.Organizer = &Organizer{
			Name:  optional(org.Name),
			Email: optional(org.Email),
		}
	}
	return ev
}

// NormalizeReminder converts a native reminder into its normalized form.
func (n *Normalizer) NormalizeReminder(raw *RawReminder) Reminder {
	return Reminder{
		Title:     raw.Title,
		Notes:     optional(raw.Notes),
		DueDate:   nativeTimestamp(raw.DueDate),
		Priority:  raw.Priority,
		Completed: raw.Completed,
		Calendar:  raw.Calendar,
	}
}

// resolveURL flattens the URL union into a string. Panics raised by native
// accessors are recovered, logged and degraded to an absent URL.
func (n *Normalizer) resolveURL(v URLValue) (s string) {
	defer func() {
		if r := recover(); r != nil {
			n.log.Error("converting event URL", logging.Err(fmt.Errorf("%v", r)))
			s = ""
		}
	}()
	return flattenURL(v)
}

func flattenURL(v URLValue) string {
	switch u := v.(type) {
	case nil:
		return ""
	case URLString:
		return string(u)
	case URLRef:
		if u.Absolute == nil {
			return ""
		}
		return u.Absolute()
	case URLList:
		if len(u) == 0 {
			return ""
		}
		return flattenURL(u[0])
	default:
		return ""
	}
}

// findConferenceURL detects a meeting link, preferring the event URL over
// links embedded in the notes.
func findConferenceURL(urlStr, notes string) string {
	if urlStr != "" {
		lower := strings.ToLower(urlStr)
		for _, domain := range conferenceDomains {
			if strings.Contains(lower, domain) {
				return urlStr
			}
		}
	}
	if notes != "" {
		for _, pattern := range conferencePatterns {
			if match := pattern.FindString(notes); match != "" {
				return match
			}
		}
	}
	return ""
}

// codeName resolves a native code against a lookup table. Absent,
// non-numeric and out-of-range codes all resolve to "unknown".
func codeName(c Code, names map[int]string) string {
	if !c.Valid {
		return "unknown"
	}
	if name, ok := names[c.Value]; ok {
		return name
	}
	return "unknown"
}

// nativeTimestamp renders a native date in its description format.
func nativeTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(nativeTimestampLayout)
	return &s
}

// optional maps empty strings to absent values.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
