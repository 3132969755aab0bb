package common

import (
	"fmt"
	"time"

	"github.com/teemow/agenda/internal/store"
	"github.com/teemow/agenda/internal/timeutil"
)

// DateArg reads an optional YYYY-MM-DD argument. A missing or empty value
// yields the zero time without error.
func DateArg(args map[string]interface{}, key string) (time.Time, error) {
	val, ok := args[key].(string)
	if !ok || val == "" {
		return time.Time{}, nil
	}
	t, err := timeutil.ParseDate(val)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %v", key, err)
	}
	return t, nil
}

// StringArg reads an optional string argument, returning "" when absent.
func StringArg(args map[string]interface{}, key string) string {
	val, _ := args[key].(string)
	return val
}

// BoolArg reads an optional boolean argument, returning false when absent.
func BoolArg(args map[string]interface{}, key string) bool {
	val, _ := args[key].(bool)
	return val
}

// StringListArg reads an optional list-of-strings argument. JSON decoding
// hands list arguments over as []interface{}; non-string elements are
// skipped. A missing argument yields nil, which callers treat as "all".
func StringListArg(args map[string]interface{}, key string) []string {
	switch val := args[key].(type) {
	case []string:
		return val
	case []interface{}:
		var out []string
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// QueryOptionsFromArgs assembles store query options from the shared tool
// arguments: from_date, to_date, calendars, all_day_only, busy_only and
// include_completed.
func QueryOptionsFromArgs(args map[string]interface{}) (store.QueryOptions, error) {
	fromDate, err := DateArg(args, "from_date")
	if err != nil {
		return store.QueryOptions{}, err
	}
	toDate, err := DateArg(args, "to_date")
	if err != nil {
		return store.QueryOptions{}, err
	}

	return store.QueryOptions{
		FromDate:         fromDate,
		ToDate:           toDate,
		Calendars:        StringListArg(args, "calendars"),
		AllDayOnly:       BoolArg(args, "all_day_only"),
		BusyOnly:         BoolArg(args, "busy_only"),
		IncludeCompleted: BoolArg(args, "include_completed"),
	}, nil
}
