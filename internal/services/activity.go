package services

import (
	"context"
	"fmt"
	"time"

	"stint/internal/domain"
	"stint/internal/logging"
	"stint/internal/ports"
)

// ActivityService manages the activity tree and habit configuration.
type ActivityService struct {
	reader ports.ActivityReader
	writer ports.ActivityWriter
}

// NewActivityService creates a new ActivityService
func NewActivityService(reader ports.ActivityReader, writer ports.ActivityWriter) *ActivityService {
	return &ActivityService{reader: reader, writer: writer}
}

// Create adds an activity under the given parent (nil for root).
func (s *ActivityService) Create(ctx context.Context, name string, parentID *string) (*domain.Activity, error) {
	if err := domain.ValidateActivityName(name); err != nil {
		return nil, err
	}
	activity, err := s.writer.CreateActivity(ctx, name, parentID)
	if err != nil {
		return nil, err
	}
	logging.Logger.Info("Activity created", "id", activity.ID, "name", name)
	return activity, nil
}

// Rename changes an activity's display name.
func (s *ActivityService) Rename(ctx context.Context, id, name string) error {
	if err := domain.ValidateActivityName(name); err != nil {
		return err
	}
	return s.writer.RenameActivity(ctx, id, name)
}

// Delete removes an activity and everything beneath it, including entries and
// habit logs.
func (s *ActivityService) Delete(ctx context.Context, id string) error {
	if err := s.writer.DeleteActivity(ctx, id); err != nil {
		return err
	}
	logging.Logger.Info("Activity deleted", "id", id)
	return nil
}

// Resolve finds an activity by id first, then by unique name.
func (s *ActivityService) Resolve(ctx context.Context, ref string) (*domain.Activity, error) {
	activity, err := s.reader.GetActivity(ctx, ref)
	if err == nil {
		return activity, nil
	}
	return s.reader.GetActivityByName(ctx, ref)
}

// Tree returns the full activity tree in display order.
func (s *ActivityService) Tree(ctx context.Context) ([]domain.Activity, error) {
	return s.reader.ListActivities(ctx)
}

// MoveSiblings applies a new ordering among the children of one parent.
func (s *ActivityService) MoveSiblings(ctx context.Context, parentID *string, orderedIDs []string) error {
	return s.writer.ReorderSiblings(ctx, parentID, orderedIDs)
}

// ConfigureHabit marks an activity as a habit from today onward. The habit is
// appended to the end of the tracker order.
func (s *ActivityService) ConfigureHabit(ctx context.Context, id string, kind domain.HabitKind, unit string, goal *float64) error {
	cfg := domain.HabitConfig{
		Kind:         kind,
		Unit:         unit,
		Goal:         goal,
		ConfiguredOn: domain.Today(),
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	habits, err := s.reader.ListHabits(ctx)
	if err != nil {
		return err
	}
	cfg.Position = len(habits)
	if err := s.writer.SetHabitConfig(ctx, id, &cfg); err != nil {
		return err
	}
	logging.Logger.Info("Habit configured", "id", id, "kind", string(kind))
	return nil
}

// RemoveHabit clears the habit configuration, keeping the activity and its
// time entries. Past habit logs stay in place for history.
func (s *ActivityService) RemoveHabit(ctx context.Context, id string) error {
	return s.writer.SetHabitConfig(ctx, id, nil)
}

// ReorderHabits applies a new tracker ordering across all habits.
func (s *ActivityService) ReorderHabits(ctx context.Context, orderedIDs []string) error {
	return s.writer.ReorderHabits(ctx, orderedIDs)
}

// Habits lists habit-configured activities in tracker order.
func (s *ActivityService) Habits(ctx context.Context) ([]domain.Activity, error) {
	return s.reader.ListHabits(ctx)
}

// EntryService manages committed time entries outside the review flow.
type EntryService struct {
	activities ports.ActivityReader
	reader     ports.EntryReader
	writer     ports.EntryWriter
}

// NewEntryService creates a new EntryService
func NewEntryService(activities ports.ActivityReader, reader ports.EntryReader, writer ports.EntryWriter) *EntryService {
	return &EntryService{activities: activities, reader: reader, writer: writer}
}

// AddManual records a hand-entered time entry.
func (s *EntryService) AddManual(ctx context.Context, activityID string, startedAt domain.Day, duration int64) (string, error) {
	if duration <= 0 {
		return "", fmt.Errorf("entry duration must be positive")
	}
	if _, err := s.activities.GetActivity(ctx, activityID); err != nil {
		return "", err
	}
	id, err := s.writer.InsertTimeEntry(ctx, domain.NewTimeEntry{
		ActivityID: activityID,
		StartedAt:  startedAt.Time().UTC(),
		Duration:   minutes(duration),
		Provenance: domain.ProvenanceManual,
	})
	if err != nil {
		return "", err
	}
	logging.Logger.Info("Manual entry added", "id", id, "activity", activityID)
	return id, nil
}

// EditDuration changes a committed entry's duration in minutes.
func (s *EntryService) EditDuration(ctx context.Context, id string, duration int64) error {
	if duration <= 0 {
		return fmt.Errorf("entry duration must be positive")
	}
	return s.writer.UpdateTimeEntryDuration(ctx, id, minutes(duration))
}

// Delete removes a committed entry.
func (s *EntryService) Delete(ctx context.Context, id string) error {
	return s.writer.DeleteTimeEntry(ctx, id)
}

// ForActivity lists every entry for an activity, earliest first.
func (s *EntryService) ForActivity(ctx context.Context, activityID string) ([]domain.TimeEntry, error) {
	return s.reader.ListTimeEntries(ctx, activityID)
}

// ForDay lists every entry whose start falls on the local day.
func (s *EntryService) ForDay(ctx context.Context, day domain.Day) ([]domain.TimeEntry, error) {
	return s.reader.ListEntriesForDay(ctx, day)
}

func minutes(n int64) time.Duration {
	return time.Duration(n) * time.Minute
}
