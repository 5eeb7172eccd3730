package domain

import "time"

// IntervalKind distinguishes tracked work from breaks within a session.
type IntervalKind string

const (
	IntervalWork  IntervalKind = "work"
	IntervalBreak IntervalKind = "break"
)

// Interval is one contiguous work or break segment produced by a timer.
// Intervals are session-scoped and only become TimeEntries at review commit.
type Interval struct {
	ActivityID string
	Kind       IntervalKind
	Start      time.Time
	// End is zero while the interval is still open. Once set it is >= Start.
	End time.Time
	// Included marks the interval for commit; defaults to true when closed.
	Included bool
	// Override replaces the measured duration when the user edits it in review.
	Override *time.Duration
}

// Open reports whether the interval is still running.
func (iv Interval) Open() bool {
	return iv.End.IsZero()
}

// Duration returns the effective duration: the user override when present,
// otherwise End - Start. Open intervals report zero; live elapsed time is the
// accumulator's business.
func (iv Interval) Duration() time.Duration {
	if iv.Override != nil {
		return *iv.Override
	}
	if iv.Open() {
		return 0
	}
	return iv.End.Sub(iv.Start)
}
