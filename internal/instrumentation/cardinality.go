package instrumentation

// Cardinality management helpers for metrics.
// These functions reduce high-cardinality label values to prevent metrics explosion.
//
// # Warning
//
// High cardinality in metrics can cause:
// - Increased memory usage in Prometheus/metrics backends
// - Slower query performance
// - Higher storage costs
//
// Calendar names are user-defined and unbounded; never record them as metric
// labels. Filter sizes are recorded as buckets instead.

// CalendarFilterBucket buckets a calendar-name filter size into a bounded
// label set.
//
// Example:
//
//	CalendarFilterBucket(0)  // "all" (no filter)
//	CalendarFilterBucket(1)  // "1"
//	CalendarFilterBucket(3)  // "2-5"
//	CalendarFilterBucket(9)  // "6+"
func CalendarFilterBucket(size int) string {
	switch {
	case size <= 0:
		return "all"
	case size == 1:
		return "1"
	case size <= 5:
		return "2-5"
	default:
		return "6+"
	}
}

// Common operation types for store spans and audit logs.
// Status and Result constants are defined in config.go.
const (
	OperationAuthorize = "authorize"
	OperationList      = "list"
	OperationQuery     = "query"
	OperationFetch     = "fetch"
	OperationSearch    = "search"
	OperationRender    = "render"
)
