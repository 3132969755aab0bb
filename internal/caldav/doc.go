// Package caldav implements the calendar store backend over a CalDAV
// server. Events come from VEVENT components and reminders from VTODO
// components, discovered through the server's calendar home set.
package caldav
