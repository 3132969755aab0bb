// Package time_tools registers the MCP timezone utilities:
// get_current_time, convert_timezone and list_timezones.
package time_tools
