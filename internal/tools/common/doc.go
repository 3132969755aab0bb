// Package common provides shared plumbing for MCP tool handlers: the
// instrumented handler wrapper and argument parsing helpers.
package common
