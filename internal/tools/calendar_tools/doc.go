// Package calendar_tools registers the MCP tools for querying calendar
// events and reminders: get_events, get_reminders, list_calendars,
// get_today_summary and search.
package calendar_tools
