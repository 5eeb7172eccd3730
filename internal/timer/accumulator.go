package timer

import (
	"time"

	"stint/internal/domain"
)

// Accumulator tracks the running/paused segments of one activity timer for
// the life of a single timer instance. It is a pure state machine: every
// transition takes an explicit "now", so it stays correct even if no display
// refresh ever happens before End.
type Accumulator struct {
	activityID string
	state      domain.TimerState
	openKind   domain.IntervalKind
	openStart  time.Time
	closed     []domain.Interval
}

// NewAccumulator starts a timer for the activity. The timer begins Running
// with an open work interval at now.
func NewAccumulator(activityID string, now time.Time) *Accumulator {
	return &Accumulator{
		activityID: activityID,
		state:      domain.TimerRunning,
		openKind:   domain.IntervalWork,
		openStart:  now,
	}
}

// ActivityID returns the activity this timer belongs to.
func (a *Accumulator) ActivityID() string { return a.activityID }

// State returns the current timer state.
func (a *Accumulator) State() domain.TimerState { return a.state }

// Pause closes the open work interval and opens a break interval.
func (a *Accumulator) Pause(now time.Time) error {
	if a.state != domain.TimerRunning {
		return &domain.TransitionError{ActivityID: a.activityID, Op: "pause", State: a.state}
	}
	a.closeOpen(now)
	a.state = domain.TimerPaused
	a.openKind = domain.IntervalBreak
	a.openStart = now
	return nil
}

// Resume closes the open break interval and opens a new work interval.
func (a *Accumulator) Resume(now time.Time) error {
	if a.state != domain.TimerPaused {
		return &domain.TransitionError{ActivityID: a.activityID, Op: "resume", State: a.state}
	}
	a.closeOpen(now)
	a.state = domain.TimerRunning
	a.openKind = domain.IntervalWork
	a.openStart = now
	return nil
}

// End closes whatever interval is open and returns every closed interval.
// End is terminal; any further transition fails.
func (a *Accumulator) End(now time.Time) ([]domain.Interval, error) {
	if a.state == domain.TimerEnded {
		return nil, &domain.TransitionError{ActivityID: a.activityID, Op: "end", State: a.state}
	}
	a.closeOpen(now)
	a.state = domain.TimerEnded
	return a.Intervals(), nil
}

// OpenElapsed returns the live elapsed time of the currently open interval,
// or zero once ended.
func (a *Accumulator) OpenElapsed(now time.Time) time.Duration {
	if a.state == domain.TimerEnded {
		return 0
	}
	return clampedSince(a.openStart, now)
}

// WorkElapsed returns total active work time: closed work intervals plus the
// open interval when it is a work interval. Breaks never count.
func (a *Accumulator) WorkElapsed(now time.Time) time.Duration {
	total := a.kindTotal(domain.IntervalWork)
	if a.state == domain.TimerRunning {
		total += clampedSince(a.openStart, now)
	}
	return total
}

// BreakElapsed returns total break time, including the open break interval
// while paused.
func (a *Accumulator) BreakElapsed(now time.Time) time.Duration {
	total := a.kindTotal(domain.IntervalBreak)
	if a.state == domain.TimerPaused {
		total += clampedSince(a.openStart, now)
	}
	return total
}

// Intervals returns a copy of the closed intervals accumulated so far.
func (a *Accumulator) Intervals() []domain.Interval {
	out := make([]domain.Interval, len(a.closed))
	copy(out, a.closed)
	return out
}

func (a *Accumulator) kindTotal(kind domain.IntervalKind) time.Duration {
	var total time.Duration
	for _, iv := range a.closed {
		if iv.Kind == kind {
			total += iv.Duration()
		}
	}
	return total
}

func (a *Accumulator) closeOpen(now time.Time) {
	end := now
	// Invariant: an interval's end is never before its start, even if the
	// sampled clock went backwards.
	if end.Before(a.openStart) {
		end = a.openStart
	}
	a.closed = append(a.closed, domain.Interval{
		ActivityID: a.activityID,
		Kind:       a.openKind,
		Start:      a.openStart,
		End:        end,
		Included:   true,
	})
}

func clampedSince(start, now time.Time) time.Duration {
	if now.Before(start) {
		return 0
	}
	return now.Sub(start)
}
