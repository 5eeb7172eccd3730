package services

import (
	"context"
	"fmt"

	"stint/internal/domain"
	"stint/internal/logging"
	"stint/internal/ports"
)

// TrackerHighlightThreshold is the fraction of numeric-goal attainment above
// which a tracker day header is highlighted.
const TrackerHighlightThreshold = 0.70

// HabitService records daily habit values with per-kind accumulation.
type HabitService struct {
	activities ports.ActivityReader
	logs       ports.HabitLogReader
	writer     ports.HabitLogWriter
}

// NewHabitService creates a new HabitService
func NewHabitService(activities ports.ActivityReader, logs ports.HabitLogReader, writer ports.HabitLogWriter) *HabitService {
	return &HabitService{activities: activities, logs: logs, writer: writer}
}

// Log records a value for one habit on one day. Numeric values accumulate
// onto the existing log, percentage values accumulate and clamp at 100, and
// binary values replace the log outright. Returns the stored value.
func (s *HabitService) Log(ctx context.Context, activityID string, day domain.Day, value float64) (float64, error) {
	activity, err := s.activities.GetActivity(ctx, activityID)
	if err != nil {
		return 0, err
	}
	if !activity.IsHabit() {
		return 0, fmt.Errorf("activity %s: %w", activityID, domain.ErrNotAHabit)
	}
	kind := activity.Habit.Kind
	if err := domain.ValidateHabitValue(kind, value); err != nil {
		return 0, err
	}

	existing, logged, err := s.logs.HabitLog(ctx, activityID, day)
	if err != nil {
		return 0, err
	}

	stored := value
	if logged {
		switch kind {
		case domain.HabitNumeric:
			stored = existing + value
		case domain.HabitPercentage:
			stored = existing + value
			if stored > 100 {
				stored = 100
			}
		case domain.HabitBinary:
			stored = value
		}
	}

	if err := s.writer.UpsertHabitLog(ctx, activityID, day, stored); err != nil {
		return 0, err
	}
	logging.Logger.Debug("Habit logged",
		"activity", activityID, "day", string(day), "value", stored)
	return stored, nil
}

// Clear removes the log for one habit and day, restoring the "no data" state.
func (s *HabitService) Clear(ctx context.Context, activityID string, day domain.Day) error {
	return s.writer.ClearHabitLog(ctx, activityID, day)
}

// HabitStatus is one habit's standing on a given day.
type HabitStatus struct {
	Activity domain.Activity
	// Value is the logged value; meaningful only when Logged is true.
	Value  float64
	Logged bool
	Done   bool
}

// Streak reports global habit streaks in days.
type Streak struct {
	Current int
	Longest int
}

// HabitAnalytics derives completion, streaks, and heatmap intensity from
// habit logs. All evaluations filter habits by their configuration day, so
// adding a habit today never retroactively breaks past streaks.
type HabitAnalytics struct {
	activities ports.ActivityReader
	logs       ports.HabitLogReader
}

// NewHabitAnalytics creates a new HabitAnalytics
func NewHabitAnalytics(activities ports.ActivityReader, logs ports.HabitLogReader) *HabitAnalytics {
	return &HabitAnalytics{activities: activities, logs: logs}
}

// CompletionStatus returns every habit configured on or before the day, in
// habit order, with its logged value and completion for that day.
func (a *HabitAnalytics) CompletionStatus(ctx context.Context, day domain.Day) ([]HabitStatus, error) {
	habits, err := a.habitsAsOf(ctx, day)
	if err != nil {
		return nil, err
	}

	statuses := make([]HabitStatus, 0, len(habits))
	for _, habit := range habits {
		value, logged, err := a.logs.HabitLog(ctx, habit.ID, day)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, HabitStatus{
			Activity: habit,
			Value:    value,
			Logged:   logged,
			Done:     habitDone(habit.Habit, value, logged),
		})
	}
	return statuses, nil
}

// GlobalDailyStreak computes the current and longest runs of consecutive days
// on which every applicable habit was completed. The current streak walks
// calendar days backward from the as-of day and breaks at the first day that
// fails, the as-of day included.
func (a *HabitAnalytics) GlobalDailyStreak(ctx context.Context, asOf domain.Day) (Streak, error) {
	habits, err := a.habitsAsOf(ctx, asOf)
	if err != nil {
		return Streak{}, err
	}
	if len(habits) == 0 {
		return Streak{}, nil
	}

	earliest, ok, err := a.logs.EarliestHabitLogDay(ctx)
	if err != nil {
		return Streak{}, err
	}
	if !ok {
		return Streak{}, nil
	}

	logs, err := a.logs.HabitLogsInRange(ctx, earliest, asOf)
	if err != nil {
		return Streak{}, err
	}

	var streak Streak
	run := 0
	for day := earliest; !day.After(asOf); day = day.AddDays(1) {
		if a.dayComplete(habits, logs, day) {
			run++
			if run > streak.Longest {
				streak.Longest = run
			}
		} else {
			run = 0
		}
	}

	day := asOf
	for !day.Before(earliest) && a.dayComplete(habits, logs, day) {
		streak.Current++
		day = day.AddDays(-1)
	}
	if streak.Current > streak.Longest {
		streak.Longest = streak.Current
	}

	logging.Logger.Debug("Computed global streak",
		"as_of", string(asOf), "current", streak.Current, "longest", streak.Longest)
	return streak, nil
}

// HeatmapIntensity returns the mean per-habit fractional score over the
// habits logged on the day. Habits without a log that day are excluded from
// the mean, not scored as zero; ok is false when nothing was logged at all,
// which renders differently from a logged-but-zero day.
func (a *HabitAnalytics) HeatmapIntensity(ctx context.Context, day domain.Day) (float64, bool, error) {
	habits, err := a.habitsAsOf(ctx, day)
	if err != nil {
		return 0, false, err
	}
	if len(habits) == 0 {
		return 0, false, nil
	}

	logs, err := a.logs.HabitLogsInRange(ctx, day, day)
	if err != nil {
		return 0, false, err
	}

	logged := 0
	var sum float64
	for _, habit := range habits {
		value, ok := logs[domain.LogKey{ActivityID: habit.ID, Day: day}]
		if !ok {
			continue
		}
		logged++
		sum += habitScore(habit.Habit, value)
	}
	if logged == 0 {
		return 0, false, nil
	}
	return sum / float64(logged), true, nil
}

// ExceedsThreshold reports whether the day's average attainment across
// numeric habits with goals clears TrackerHighlightThreshold. Habits without
// a log contribute zero attainment; a day with no goal habits never clears.
func (a *HabitAnalytics) ExceedsThreshold(ctx context.Context, day domain.Day) (bool, error) {
	habits, err := a.habitsAsOf(ctx, day)
	if err != nil {
		return false, err
	}

	logs, err := a.logs.HabitLogsInRange(ctx, day, day)
	if err != nil {
		return false, err
	}

	goalHabits := 0
	var attained float64
	for _, habit := range habits {
		cfg := habit.Habit
		if cfg.Kind != domain.HabitNumeric || cfg.Goal == nil {
			continue
		}
		goalHabits++
		value, ok := logs[domain.LogKey{ActivityID: habit.ID, Day: day}]
		if !ok {
			continue
		}
		ratio := value / *cfg.Goal
		if ratio > 1 {
			ratio = 1
		}
		attained += ratio
	}
	if goalHabits == 0 {
		return false, nil
	}
	return attained/float64(goalHabits) > TrackerHighlightThreshold, nil
}

// habitsAsOf returns habits configured on or before the day, in habit order.
func (a *HabitAnalytics) habitsAsOf(ctx context.Context, day domain.Day) ([]domain.Activity, error) {
	all, err := a.activities.ListHabits(ctx)
	if err != nil {
		return nil, err
	}
	habits := make([]domain.Activity, 0, len(all))
	for _, h := range all {
		if h.Habit == nil || h.Habit.ConfiguredOn.After(day) {
			continue
		}
		habits = append(habits, h)
	}
	return habits, nil
}

// dayComplete reports whether every habit applicable on the day was done.
// A day on which no habit was applicable does not count as complete.
func (a *HabitAnalytics) dayComplete(habits []domain.Activity, logs map[domain.LogKey]float64, day domain.Day) bool {
	applicable := 0
	for _, habit := range habits {
		if habit.Habit.ConfiguredOn.After(day) {
			continue
		}
		applicable++
		value, ok := logs[domain.LogKey{ActivityID: habit.ID, Day: day}]
		if !habitDone(habit.Habit, value, ok) {
			return false
		}
	}
	return applicable > 0
}

// habitDone applies the per-kind completion rule. An unlogged habit is never
// done. A goalless numeric habit completes on any explicit log, even zero.
func habitDone(cfg *domain.HabitConfig, value float64, logged bool) bool {
	if !logged {
		return false
	}
	switch cfg.Kind {
	case domain.HabitBinary:
		return value >= 1
	case domain.HabitPercentage:
		return value >= 100
	case domain.HabitNumeric:
		if cfg.Goal != nil {
			return value >= *cfg.Goal
		}
		return true
	}
	return false
}

// habitScore maps a logged value to a fractional heatmap score in [0,1].
func habitScore(cfg *domain.HabitConfig, value float64) float64 {
	switch cfg.Kind {
	case domain.HabitBinary:
		if value >= 1 {
			return 1
		}
		return 0
	case domain.HabitPercentage:
		return value / 100
	case domain.HabitNumeric:
		if cfg.Goal != nil {
			score := value / *cfg.Goal
			if score > 1 {
				score = 1
			}
			return score
		}
		return 1
	}
	return 0
}
