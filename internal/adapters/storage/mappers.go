package storage

import (
	"time"

	"stint/internal/domain"
)

// activityModelToDomain converts an ActivityModel (GORM) to domain.Activity
func activityModelToDomain(m ActivityModel, habit *HabitConfigModel) domain.Activity {
	activity := domain.Activity{
		ID:       m.ID,
		Name:     m.Name,
		ParentID: m.ParentID,
		Position: m.Position,
	}
	if habit != nil {
		activity.Habit = &domain.HabitConfig{
			Kind:         domain.HabitKind(habit.Kind),
			Unit:         habit.Unit,
			Goal:         habit.Goal,
			ConfiguredOn: domain.Day(habit.ConfiguredOn),
			Position:     habit.Position,
		}
	}
	return activity
}

// habitConfigToModel converts a domain.HabitConfig to HabitConfigModel (GORM)
func habitConfigToModel(activityID string, cfg domain.HabitConfig) HabitConfigModel {
	return HabitConfigModel{
		ActivityID:   activityID,
		ConfiguredOn: string(cfg.ConfiguredOn),
		Goal:         cfg.Goal,
		Kind:         string(cfg.Kind),
		Position:     cfg.Position,
		Unit:         cfg.Unit,
	}
}

// entryModelToDomain converts a TimeEntryModel (GORM) to domain.TimeEntry
func entryModelToDomain(m TimeEntryModel) domain.TimeEntry {
	return domain.TimeEntry{
		ID:         m.ID,
		ActivityID: m.ActivityID,
		StartedAt:  m.StartedAt.UTC(),
		Duration:   time.Duration(m.DurationNS),
		Provenance: domain.Provenance(m.Provenance),
	}
}

// newEntryToModel converts a domain.NewTimeEntry to TimeEntryModel (GORM)
func newEntryToModel(id string, e domain.NewTimeEntry) TimeEntryModel {
	return TimeEntryModel{
		ID:         id,
		ActivityID: e.ActivityID,
		DurationNS: int64(e.Duration),
		Provenance: string(e.Provenance),
		StartedAt:  e.StartedAt.UTC(),
	}
}
