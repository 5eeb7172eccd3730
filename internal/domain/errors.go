package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidStateTransition   = errors.New("invalid timer state transition")
	ErrMixedModeConflict        = errors.New("session timer mode conflict")
	ErrUnknownActivityInSession = errors.New("activity is not part of the session")
	ErrAlreadyCommitted         = errors.New("review already committed")
	ErrNoHistoryForCountdown    = errors.New("no historical average for countdown")
	ErrTimerAlreadyRunning      = errors.New("timer already running for activity")
	ErrActivityNotFound         = errors.New("activity not found")
	ErrEntryNotFound            = errors.New("time entry not found")
	ErrNotAHabit                = errors.New("activity is not configured as a habit")
	ErrDuplicateSiblingName     = errors.New("an activity with that name already exists under the same parent")
)

// TimerState is the lifecycle state of one activity's interval accumulator.
type TimerState string

const (
	TimerRunning TimerState = "running"
	TimerPaused  TimerState = "paused"
	TimerEnded   TimerState = "ended"
)

// TransitionError reports a rejected timer transition with enough context for
// the caller to present a message. It unwraps to ErrInvalidStateTransition.
type TransitionError struct {
	ActivityID string
	Op         string
	State      TimerState
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("activity %s: cannot %s while %s", e.ActivityID, e.Op, e.State)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}
