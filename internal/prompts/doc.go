// Package prompts registers the MCP prompts exposed by the agenda
// server.
package prompts
