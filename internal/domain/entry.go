package domain

import "time"

// Provenance records how a time entry came to exist.
type Provenance string

const (
	ProvenanceManual Provenance = "manual"
	ProvenanceTimer  Provenance = "timer"
)

// TimeEntry is a committed span of time against one activity. Immutable once
// stored, except for duration edits through the explicit update operation.
type TimeEntry struct {
	ID         string
	ActivityID string
	StartedAt  time.Time // always UTC
	Duration   time.Duration
	Provenance Provenance
}

// NewTimeEntry is the insert shape for a time entry; the store assigns the id.
type NewTimeEntry struct {
	ActivityID string
	StartedAt  time.Time
	Duration   time.Duration
	Provenance Provenance
}
