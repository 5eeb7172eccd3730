package timer

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"stint/internal/domain"
	"stint/internal/logging"
)

// Mode is the timer mode shared by every timer in a session.
type Mode string

const (
	ModeStandard  Mode = "standard"
	ModeCountdown Mode = "countdown"
)

// TargetSource supplies countdown targets from historical data.
// ok is false when the activity has no history.
type TargetSource interface {
	AverageFor(ctx context.Context, activityID string) (time.Duration, bool, error)
}

// Engine owns at most one active session per process. All mutations are
// serialized through its mutex; concurrency exists only between the activity
// timers inside the session.
type Engine struct {
	mu      sync.Mutex
	targets TargetSource
	session *session

	// nowFunc is sampled on every transition and snapshot; overridable in tests.
	nowFunc func() time.Time
}

type session struct {
	mode      Mode
	timers    map[string]*Accumulator
	countdown map[string]time.Duration
	started   time.Time
}

// NewEngine creates a session engine backed by the given target source.
func NewEngine(targets TargetSource) *Engine {
	return &Engine{targets: targets, nowFunc: time.Now}
}

// StartResult reports which activities actually started and which were
// skipped with a soft warning.
type StartResult struct {
	Started []string
	Skipped []SkippedActivity
}

// SkippedActivity is a non-fatal per-activity start failure.
type SkippedActivity struct {
	ActivityID string
	Reason     error
}

// TimerStatus is a read-only snapshot of one timer for display. It is pure
// data; any visual cue for OverTarget belongs to the presentation layer.
type TimerStatus struct {
	ActivityID string
	State      domain.TimerState
	Mode       Mode
	Elapsed    time.Duration // current open interval
	WorkTotal  time.Duration
	BreakTotal time.Duration
	Target     time.Duration // countdown only
	Remaining  time.Duration // negative once over target
	OverTarget bool
}

// StartSession starts timers for the given activities. When a session is
// already active the activities join it, provided the mode matches; a
// different mode fails with ErrMixedModeConflict. In countdown mode an
// activity with no history is skipped with a warning rather than failing the
// whole start.
func (e *Engine) StartSession(ctx context.Context, activityIDs []string, mode Mode) (StartResult, error) {
	if mode != ModeStandard && mode != ModeCountdown {
		return StartResult{}, fmt.Errorf("unknown timer mode %q", mode)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil && e.session.mode != mode {
		return StartResult{}, fmt.Errorf("session already active in %s mode: %w", e.session.mode, domain.ErrMixedModeConflict)
	}

	now := e.nowFunc()
	if e.session == nil {
		e.session = &session{
			mode:      mode,
			timers:    make(map[string]*Accumulator),
			countdown: make(map[string]time.Duration),
			started:   now,
		}
	}

	var result StartResult
	for _, id := range activityIDs {
		if _, running := e.session.timers[id]; running {
			result.Skipped = append(result.Skipped, SkippedActivity{ActivityID: id, Reason: domain.ErrTimerAlreadyRunning})
			continue
		}
		if mode == ModeCountdown {
			target, ok, err := e.targets.AverageFor(ctx, id)
			if err != nil {
				return result, fmt.Errorf("countdown target for %s: %w", id, err)
			}
			if !ok {
				logging.Logger.Warn("Skipping countdown, no history", "activity", id)
				result.Skipped = append(result.Skipped, SkippedActivity{ActivityID: id, Reason: domain.ErrNoHistoryForCountdown})
				continue
			}
			e.session.countdown[id] = target
		}
		e.session.timers[id] = NewAccumulator(id, now)
		result.Started = append(result.Started, id)
	}

	// A start that added nothing leaves no session behind.
	if len(e.session.timers) == 0 {
		e.session = nil
	}
	logging.Logger.Info("Session timers started",
		"mode", string(mode), "started", len(result.Started), "skipped", len(result.Skipped))
	return result, nil
}

// PauseActivity pauses one timer in the session.
func (e *Engine) PauseActivity(activityID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	acc, err := e.timerFor(activityID)
	if err != nil {
		return err
	}
	return acc.Pause(e.nowFunc())
}

// ResumeActivity resumes one paused timer in the session.
func (e *Engine) ResumeActivity(activityID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	acc, err := e.timerFor(activityID)
	if err != nil {
		return err
	}
	return acc.Resume(e.nowFunc())
}

// EndActivity ends one timer, removes it from the session, and returns its
// closed intervals for review. The session stays active for the remaining
// timers; ending the last one clears the session.
func (e *Engine) EndActivity(activityID string) ([]domain.Interval, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	acc, err := e.timerFor(activityID)
	if err != nil {
		return nil, err
	}
	intervals, err := acc.End(e.nowFunc())
	if err != nil {
		return nil, err
	}
	delete(e.session.timers, activityID)
	delete(e.session.countdown, activityID)
	if len(e.session.timers) == 0 {
		e.session = nil
	}
	return intervals, nil
}

// EndSession ends every remaining timer, aggregates all closed intervals
// into one reviewable list ordered by activity then start, and clears the
// session. With no active session it returns an empty list.
func (e *Engine) EndSession() ([]domain.Interval, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return nil, nil
	}

	now := e.nowFunc()
	var all []domain.Interval
	for _, acc := range e.session.timers {
		intervals, err := acc.End(now)
		if err != nil {
			// Timers are session-owned and ended exactly once here.
			return nil, fmt.Errorf("ending timer %s: %w", acc.ActivityID(), err)
		}
		all = append(all, intervals...)
	}
	e.session = nil

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].ActivityID != all[j].ActivityID {
			return all[i].ActivityID < all[j].ActivityID
		}
		return all[i].Start.Before(all[j].Start)
	})
	logging.Logger.Info("Session ended", "intervals", len(all))
	return all, nil
}

// Active reports whether a session is in progress.
func (e *Engine) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session != nil
}

// Mode returns the active session's timer mode.
func (e *Engine) Mode() (Mode, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return "", false
	}
	return e.session.mode, true
}

// Snapshot samples every timer for display. Snapshots only read time; they
// never mutate accumulator state, so a display loop can be cancelled at any
// point without corrupting accounting.
func (e *Engine) Snapshot() []TimerStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return nil
	}

	now := e.nowFunc()
	statuses := make([]TimerStatus, 0, len(e.session.timers))
	for id, acc := range e.session.timers {
		st := TimerStatus{
			ActivityID: id,
			State:      acc.State(),
			Mode:       e.session.mode,
			Elapsed:    acc.OpenElapsed(now),
			WorkTotal:  acc.WorkElapsed(now),
			BreakTotal: acc.BreakElapsed(now),
		}
		if target, ok := e.session.countdown[id]; ok {
			st.Target = target
			st.Remaining = target - st.WorkTotal
			st.OverTarget = st.Remaining < 0
		}
		statuses = append(statuses, st)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].ActivityID < statuses[j].ActivityID })
	return statuses
}

func (e *Engine) timerFor(activityID string) (*Accumulator, error) {
	if e.session == nil {
		return nil, fmt.Errorf("no active session: %w", domain.ErrUnknownActivityInSession)
	}
	acc, ok := e.session.timers[activityID]
	if !ok {
		return nil, fmt.Errorf("activity %s: %w", activityID, domain.ErrUnknownActivityInSession)
	}
	return acc, nil
}
