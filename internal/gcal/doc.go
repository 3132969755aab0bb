// Package gcal implements the calendar store backend on top of the Google
// Calendar and Google Tasks APIs.
//
// Events come from calendar/v3 with single-event expansion; reminders map
// onto tasks/v1 task lists. Both domains authorize through a shared OAuth
// token, but each is probed independently so a missing Tasks grant does
// not block calendar access.
package gcal
