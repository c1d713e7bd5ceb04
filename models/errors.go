package models

import "errors"

// Error taxonomy surfaced by the triage, aggregation and query engines.
// Callers classify with errors.Is; every wrapped error names the offending
// field or report id so the presentation layer can render a specific message.
var (
	// ErrValidation marks malformed input: empty location, unknown
	// severity filter, unrecognized status value.
	ErrValidation = errors.New("validation failed")

	// ErrClassification marks an unreachable or timed-out classifier.
	// No report is persisted on this path.
	ErrClassification = errors.New("classification failed")

	// ErrAuthorization marks a non-admin attempting a status change.
	ErrAuthorization = errors.New("administrative privilege required")

	// ErrNotFound marks an operation on a non-existent report id.
	ErrNotFound = errors.New("report not found")

	// ErrStore marks an underlying persistence failure.
	ErrStore = errors.New("report store failure")

	// ErrDataIntegrity marks a stored report that violates an invariant,
	// e.g. an unrecognized severity encountered during aggregation.
	// Aggregation aborts rather than silently under-counting.
	ErrDataIntegrity = errors.New("data integrity violation")
)
