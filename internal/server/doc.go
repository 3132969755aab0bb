// Package server provides the shared MCP server state for the agenda
// application.
//
// ServerContext owns the configuration, the lazily constructed calendar
// store, and the renderer. The store is built on first use because its
// construction blocks until the configured backend resolves
// authorization for both the events and reminders domains.
//
// MetricsServer serves Prometheus metrics on a dedicated port, keeping
// operational metrics off the main MCP transport. HealthChecker provides
// liveness and readiness handlers for Kubernetes probes.
package server
