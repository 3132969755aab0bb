package caldav

import (
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav/caldav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/agenda/internal/store"
)

func TestCalendarTitle(t *testing.T) {
	named := &caldav.Calendar{Path: "/calendars/user/work/", Name: "Work"}
	assert.Equal(t, "Work", calendarTitle(named))

	unnamed := &caldav.Calendar{Path: "/calendars/user/work/"}
	assert.Equal(t, "work", calendarTitle(unnamed))
}

func TestTitleColor_Deterministic(t *testing.T) {
	r1, g1, b1 := titleColor("Work")
	r2, g2, b2 := titleColor("Work")
	assert.Equal(t, r1, r2)
	assert.Equal(t, g1, g2)
	assert.Equal(t, b1, b2)

	for _, v := range []float64{r1, g1, b1} {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestSupportsComponent(t *testing.T) {
	events := &caldav.Calendar{SupportedComponentSet: []string{ical.CompEvent}}
	assert.True(t, supportsComponent(events, ical.CompEvent))
	assert.False(t, supportsComponent(events, ical.CompToDo))

	unadvertised := &caldav.Calendar{}
	assert.True(t, supportsComponent(unadvertised, ical.CompEvent))
	assert.True(t, supportsComponent(unadvertised, ical.CompToDo))
}

func TestEventToRaw(t *testing.T) {
	comp := ical.NewComponent(ical.CompEvent)
	comp.Props.SetText(ical.PropSummary, "Standup")
	comp.Props.SetText(ical.PropLocation, "Room 1")
	comp.Props.SetText(ical.PropDescription, "daily sync")
	comp.Props.SetText(ical.PropURL, "https://zoom.us/j/123456")
	comp.Props.SetDateTime(ical.PropDateTimeStart, time.Date(2023, 1, 15, 9, 0, 0, 0, time.UTC))
	comp.Props.SetDateTime(ical.PropDateTimeEnd, time.Date(2023, 1, 15, 9, 15, 0, 0, time.UTC))

	raw := eventToRaw(comp, "Work")

	assert.Equal(t, "Standup", raw.Title)
	assert.Equal(t, "Room 1", raw.Location)
	assert.Equal(t, "daily sync", raw.Notes)
	assert.Equal(t, "Work", raw.Calendar)
	assert.False(t, raw.AllDay)
	assert.Equal(t, store.AvailabilityBusy, raw.Availability)
	assert.Equal(t, store.URLString("https://zoom.us/j/123456"), raw.URL)

	require.NotNil(t, raw.Start)
	assert.Equal(t, time.Date(2023, 1, 15, 9, 0, 0, 0, time.UTC), raw.Start.UTC())
	require.NotNil(t, raw.End)
	assert.Equal(t, time.Date(2023, 1, 15, 9, 15, 0, 0, time.UTC), raw.End.UTC())
}

func TestEventToRaw_AllDay(t *testing.T) {
	comp := ical.NewComponent(ical.CompEvent)
	comp.Props.SetText(ical.PropSummary, "Holiday")

	start := ical.NewProp(ical.PropDateTimeStart)
	start.Params.Set(ical.ParamValue, string(ical.ValueDate))
	start.Value = "20230115"
	comp.Props.Set(start)

	raw := eventToRaw(comp, "Personal")

	assert.True(t, raw.AllDay)
	require.NotNil(t, raw.Start)
	assert.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), raw.Start.UTC())
}

func TestEventToRaw_Transparency(t *testing.T) {
	busy := ical.NewComponent(ical.CompEvent)
	assert.Equal(t, store.AvailabilityBusy, eventToRaw(busy, "Work").Availability)

	free := ical.NewComponent(ical.CompEvent)
	free.Props.SetText(ical.PropTransparency, "TRANSPARENT")
	assert.Equal(t, store.AvailabilityFree, eventToRaw(free, "Work").Availability)
}

func TestEventToRaw_OrganizerSharesAttendeePointer(t *testing.T) {
	comp := ical.NewComponent(ical.CompEvent)
	comp.Props.SetText(ical.PropSummary, "Planning")

	alice := ical.NewProp(ical.PropAttendee)
	alice.Value = "mailto:alice@example.com"
	alice.Params.Set(ical.ParamCommonName, "Alice")
	alice.Params.Set(ical.ParamParticipationStatus, "ACCEPTED")
	comp.Props.Add(alice)

	bob := ical.NewProp(ical.PropAttendee)
	bob.Value = "mailto:bob@example.com"
	comp.Props.Add(bob)

	organizer := ical.NewProp(ical.PropOrganizer)
	organizer.Value = "mailto:ALICE@example.com"
	comp.Props.Add(organizer)

	raw := eventToRaw(comp, "Work")

	require.Len(t, raw.Participants, 2)
	require.NotNil(t, raw.Organizer)
	assert.Same(t, raw.Participants[0], raw.Organizer)
}

func TestEventToRaw_OrganizerNotAttending(t *testing.T) {
	comp := ical.NewComponent(ical.CompEvent)

	bob := ical.NewProp(ical.PropAttendee)
	bob.Value = "mailto:bob@example.com"
	comp.Props.Add(bob)

	organizer := ical.NewProp(ical.PropOrganizer)
	organizer.Value = "mailto:alice@example.com"
	organizer.Params.Set(ical.ParamCommonName, "Alice")
	comp.Props.Add(organizer)

	raw := eventToRaw(comp, "Work")

	require.NotNil(t, raw.Organizer)
	assert.Equal(t, "alice@example.com", raw.Organizer.Email)
	assert.Equal(t, "Alice", raw.Organizer.Name)
	assert.Equal(t, store.ValidCode(store.RoleChair), raw.Organizer.Role)
	for _, p := range raw.Participants {
		assert.NotSame(t, p, raw.Organizer)
	}
}

func TestPartStatCode(t *testing.T) {
	tests := []struct {
		partStat string
		want     int
	}{
		{"", store.StatusPending},
		{"NEEDS-ACTION", store.StatusPending},
		{"accepted", store.StatusAccepted},
		{"DECLINED", store.StatusDeclined},
		{"TENTATIVE", store.StatusTentative},
		{"DELEGATED", store.StatusDelegated},
		{"COMPLETED", store.StatusCompleted},
		{"IN-PROCESS", store.StatusInProcess},
		{"X-CUSTOM", store.StatusUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, partStatCode(tt.partStat), "partstat %q", tt.partStat)
	}
}

func TestUserTypeCode(t *testing.T) {
	tests := []struct {
		cuType string
		want   int
	}{
		{"", store.TypePerson},
		{"INDIVIDUAL", store.TypePerson},
		{"ROOM", store.TypeRoom},
		{"RESOURCE", store.TypeResource},
		{"GROUP", store.TypeGroup},
		{"UNKNOWN", store.TypeUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, userTypeCode(tt.cuType), "cutype %q", tt.cuType)
	}
}

func TestRoleCode(t *testing.T) {
	tests := []struct {
		role string
		want int
	}{
		{"", store.RoleRequired},
		{"REQ-PARTICIPANT", store.RoleRequired},
		{"OPT-PARTICIPANT", store.RoleOptional},
		{"CHAIR", store.RoleChair},
		{"NON-PARTICIPANT", store.RoleNonParticipant},
		{"X-OTHER", store.RoleUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, roleCode(tt.role), "role %q", tt.role)
	}
}

func TestTodoToRaw(t *testing.T) {
	comp := ical.NewComponent(ical.CompToDo)
	comp.Props.SetText(ical.PropSummary, "Buy groceries")
	comp.Props.SetText(ical.PropDescription, "milk, bread")
	comp.Props.SetText(ical.PropPriority, "1")
	comp.Props.SetDateTime(ical.PropDue, time.Date(2023, 1, 20, 18, 0, 0, 0, time.UTC))

	raw := todoToRaw(comp, "Chores")

	assert.Equal(t, "Buy groceries", raw.Title)
	assert.Equal(t, "milk, bread", raw.Notes)
	assert.Equal(t, 1, raw.Priority)
	assert.Equal(t, "Chores", raw.Calendar)
	assert.False(t, raw.Completed)
	require.NotNil(t, raw.DueDate)
	assert.Equal(t, time.Date(2023, 1, 20, 18, 0, 0, 0, time.UTC), raw.DueDate.UTC())
}

func TestTodoToRaw_Completed(t *testing.T) {
	byStatus := ical.NewComponent(ical.CompToDo)
	byStatus.Props.SetText(ical.PropStatus, "COMPLETED")
	assert.True(t, todoToRaw(byStatus, "Chores").Completed)

	byTimestamp := ical.NewComponent(ical.CompToDo)
	byTimestamp.Props.SetDateTime(ical.PropCompleted, time.Date(2023, 1, 10, 12, 0, 0, 0, time.UTC))
	assert.True(t, todoToRaw(byTimestamp, "Chores").Completed)

	open := ical.NewComponent(ical.CompToDo)
	open.Props.SetText(ical.PropStatus, "NEEDS-ACTION")
	assert.False(t, todoToRaw(open, "Chores").Completed)
}

func TestMailtoAddress(t *testing.T) {
	assert.Equal(t, "alice@example.com", mailtoAddress("mailto:alice@example.com"))
	assert.Equal(t, "alice@example.com", mailtoAddress("MAILTO:alice@example.com"))
	assert.Equal(t, "alice@example.com", mailtoAddress("alice@example.com"))
}
