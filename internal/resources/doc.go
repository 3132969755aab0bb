// Package resources registers the MCP resources exposed by the agenda
// server. Currently this is the result schema, which lets clients
// introspect the JSON shape of event and reminder results.
package resources
