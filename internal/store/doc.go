// Package store implements the event and reminder retrieval pipeline: it
// authorizes against a native calendar backend, issues date-ranged queries
// with calendar-name filtering, and normalizes the heterogeneous native
// objects into stable result shapes.
//
// The native store is abstracted behind the Backend interface. Authorization
// and reminder fetches complete asynchronously through callbacks; the store
// drives a bounded polling wait loop around them (100ms cadence, 10s timeout
// by default). Authorization runs exactly once, when the store is built, and
// the outcome is cached for the life of the process.
//
// Failure handling is asymmetric on purpose: an authorization timeout fails
// closed and surfaces as an error message in the result envelope, while a
// reminder-fetch timeout degrades to an empty list with only a log line.
// Calendar-name filters that match nothing fail open and query everything.
//
// Example usage:
//
//	backend, err := caldav.New(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	st := store.New(backend)
//	envelope := st.GetEventsAndReminders(store.QueryOptions{
//	    Calendars: []string{"Work"},
//	})
package store
