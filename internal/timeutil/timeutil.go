// Package timeutil provides the date parsing and timezone arithmetic used by
// the CLI flags and the time tools: strict YYYY-MM-DD parsing, current-time
// snapshots in arbitrary IANA zones, wall-clock conversion between zones, and
// a catalog of common timezones grouped by region.
//
// Formats for ConvertTimezone are given in strftime notation ("%Y-%m-%d
// %H:%M:%S") and translated to Go reference layouts internally, so callers
// keep the conventional format syntax on the wire.
package timeutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// FormatHint names the accepted timezone syntax. It accompanies every
// invalid-zone InputError.
const FormatHint = "Use IANA timezone names like 'America/New_York' or 'Europe/London'"

// DefaultFormat is the strftime format assumed by ConvertTimezone when the
// caller does not supply one.
const DefaultFormat = "%Y-%m-%d %H:%M:%S"

// InputError reports invalid user input (a timezone name or datetime string)
// together with a hint describing the accepted form. Its JSON form is the
// two-field error object returned by the time tools.
type InputError struct {
	Message string `json:"error"`
	Hint    string `json:"valid_format"`
}

func (e *InputError) Error() string { return e.Message }

// ParseDate parses a strict YYYY-MM-DD date string at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("Invalid date format: %s. Use YYYY-MM-DD.", s)
	}
	return t, nil
}

// CurrentTime is a snapshot of a single instant, broken down in one zone.
type CurrentTime struct {
	Date          DateParts `json:"date"`
	Time          TimeParts `json:"time"`
	Timezone      ZoneParts `json:"timezone"`
	ISODateTime   string    `json:"iso_datetime"`
	UnixTimestamp int64     `json:"unix_timestamp"`
}

// DateParts is the calendar-date portion of a CurrentTime.
type DateParts struct {
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	Day     int    `json:"day"`
	Weekday string `json:"weekday"`
	ISODate string `json:"iso_date"`
}

// TimeParts is the clock portion of a CurrentTime.
type TimeParts struct {
	Hour    int    `json:"hour"`
	Minute  int    `json:"minute"`
	Second  int    `json:"second"`
	ISOTime string `json:"iso_time"`
}

// ZoneParts identifies the zone a CurrentTime was rendered in.
type ZoneParts struct {
	Name           string  `json:"name"`
	UTCOffset      string  `json:"utc_offset"`
	UTCOffsetHours float64 `json:"utc_offset_hours"`
}

// CurrentDateTime reports the current date and time. With an empty timezone
// it uses the system's local zone; otherwise the zone must be a valid IANA
// name, and an unknown one returns an *InputError.
func CurrentDateTime(timezone string) (*CurrentTime, error) {
	return currentDateTimeAt(time.Now(), timezone)
}

func currentDateTimeAt(now time.Time, timezone string) (*CurrentTime, error) {
	local := now
	name := ""
	if timezone == "" {
		name, _ = now.Zone()
		if name == "" {
			name = now.Location().String()
		}
	} else {
		loc, err := loadZone(timezone)
		if err != nil {
			return nil, invalidZone("timezone", timezone, err)
		}
		local = now.In(loc)
		name = timezone
	}

	_, offset := local.Zone()
	return &CurrentTime{
		Date: DateParts{
			Year:    local.Year(),
			Month:   int(local.Month()),
			Day:     local.Day(),
			Weekday: local.Weekday().String(),
			ISODate: local.Format("2006-01-02"),
		},
		Time: TimeParts{
			Hour:    local.Hour(),
			Minute:  local.Minute(),
			Second:  local.Second(),
			ISOTime: local.Format("15:04:05"),
		},
		Timezone: ZoneParts{
			Name:           name,
			UTCOffset:      local.Format("-0700"),
			UTCOffsetHours: float64(offset) / 3600,
		},
		ISODateTime:   local.Format("2006-01-02T15:04:05-07:00"),
		UnixTimestamp: local.Unix(),
	}, nil
}

// Conversion is the result of re-expressing one wall-clock time in another
// zone.
type Conversion struct {
	Original    ConversionInput `json:"original"`
	Converted   ConvertedTime   `json:"converted"`
	OffsetHours float64         `json:"offset_hours"`
}

// ConversionInput echoes the datetime as it was supplied.
type ConversionInput struct {
	DateTime    string `json:"datetime"`
	Timezone    string `json:"timezone"`
	ISODateTime string `json:"iso_datetime"`
}

// ConvertedTime is the same instant expressed in the target zone.
type ConvertedTime struct {
	DateTime    string `json:"datetime"`
	Timezone    string `json:"timezone"`
	ISODateTime string `json:"iso_datetime"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

// ConvertTimezone interprets value as a wall-clock time in fromZone and
// re-expresses it in toZone. The format parameter is strftime notation and
// defaults to DefaultFormat; the converted datetime is rendered with the same
// format. Bad input is reported as an *InputError carrying a usage hint.
func ConvertTimezone(value, fromZone, toZone, format string) (*Conversion, error) {
	if format == "" {
		format = DefaultFormat
	}
	layout := goLayout(format)

	parsed, err := time.Parse(layout, value)
	if err != nil {
		return nil, &InputError{
			Message: fmt.Sprintf("Invalid datetime format: %v", err),
			Hint:    fmt.Sprintf("Use format: %s", format),
		}
	}

	srcLoc, err := loadZone(fromZone)
	if err != nil {
		return nil, invalidZone("source timezone", fromZone, err)
	}
	tgtLoc, err := loadZone(toZone)
	if err != nil {
		return nil, invalidZone("target timezone", toZone, err)
	}

	// Keep the parsed wall-clock fields and re-anchor them in the source
	// zone; any offset present in the input string is discarded.
	source := time.Date(parsed.Year(), parsed.Month(), parsed.Day(),
		parsed.Hour(), parsed.Minute(), parsed.Second(), parsed.Nanosecond(), srcLoc)
	target := source.In(tgtLoc)

	_, srcOffset := source.Zone()
	_, tgtOffset := target.Zone()

	return &Conversion{
		Original: ConversionInput{
			DateTime:    value,
			Timezone:    fromZone,
			ISODateTime: source.Format("2006-01-02T15:04:05-07:00"),
		},
		Converted: ConvertedTime{
			DateTime:    target.Format(layout),
			Timezone:    toZone,
			ISODateTime: target.Format("2006-01-02T15:04:05-07:00"),
			Date:        target.Format("2006-01-02"),
			Time:        target.Format("15:04:05"),
		},
		OffsetHours: float64(tgtOffset)/3600 - float64(srcOffset)/3600,
	}, nil
}

func loadZone(name string) (*time.Location, error) {
	if name == "" {
		return nil, errors.New("empty timezone name")
	}
	return time.LoadLocation(name)
}

func invalidZone(kind, name string, err error) *InputError {
	return &InputError{
		Message: fmt.Sprintf("Invalid %s: %s. Error: %v", kind, name, err),
		Hint:    FormatHint,
	}
}

// strftimeConversions maps strftime directives to Go reference-layout
// fragments. Directives without a Go equivalent pass through unchanged and
// surface as parse errors if the input does not match them literally.
var strftimeConversions = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'p': "PM",
	'a': "Mon",
	'A': "Monday",
	'b': "Jan",
	'B': "January",
	'z': "-0700",
	'Z': "MST",
	'%': "%",
}

func goLayout(format string) string {
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 >= len(format) {
			b.WriteByte(c)
			continue
		}
		i++
		if repl, ok := strftimeConversions[format[i]]; ok {
			b.WriteString(repl)
		} else {
			b.WriteByte('%')
			b.WriteByte(format[i])
		}
	}
	return b.String()
}
