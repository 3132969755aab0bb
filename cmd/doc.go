// Package cmd implements the command-line interface for agenda.
//
// This package provides the following commands:
//   - events: List calendar events for a date range
//   - reminders: List reminders for a date range
//   - all: List events and reminders together
//   - calendars: List event and reminder calendars
//   - today: Show today's combined agenda
//   - search: Search events and reminders by term
//   - schema: Print the JSON schema of query results
//   - mcp: Start the MCP server to provide tools for AI assistants
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The today command is the default command when no subcommand is specified.
// When the binary is installed as agenda-mcp, the mcp command runs instead.
package cmd
