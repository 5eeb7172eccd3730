package ports

import (
	"context"
	"time"

	"stint/internal/domain"
)

// ActivityReader reads the activity tree
type ActivityReader interface {
	GetActivity(ctx context.Context, id string) (*domain.Activity, error)
	// GetActivityByName resolves a unique display name; ambiguous names fail.
	GetActivityByName(ctx context.Context, name string) (*domain.Activity, error)
	// ListActivities returns the whole tree ordered by parent, then position.
	ListActivities(ctx context.Context) ([]domain.Activity, error)
	// ListHabits returns habit-configured activities in habit order.
	ListHabits(ctx context.Context) ([]domain.Activity, error)
}

// ActivityWriter creates, renames, deletes, and reorders activities
type ActivityWriter interface {
	CreateActivity(ctx context.Context, name string, parentID *string) (*domain.Activity, error)
	RenameActivity(ctx context.Context, id, name string) error
	// DeleteActivity cascades to descendant activities, their time entries,
	// and their habit logs.
	DeleteActivity(ctx context.Context, id string) error
	ReorderSiblings(ctx context.Context, parentID *string, orderedIDs []string) error
	// SetHabitConfig sets or clears (nil) the habit configuration.
	SetHabitConfig(ctx context.Context, id string, cfg *domain.HabitConfig) error
	ReorderHabits(ctx context.Context, orderedIDs []string) error
}

// EntryReader reads committed time entries
type EntryReader interface {
	// ListTimeEntries returns all entries for an activity ordered by start.
	ListTimeEntries(ctx context.Context, activityID string) ([]domain.TimeEntry, error)
	// ListEntriesForDay returns every entry whose start falls on the local day.
	ListEntriesForDay(ctx context.Context, day domain.Day) ([]domain.TimeEntry, error)
}

// EntryWriter creates and edits committed time entries
type EntryWriter interface {
	InsertTimeEntry(ctx context.Context, entry domain.NewTimeEntry) (string, error)
	// InsertTimeEntries writes the whole batch in one transaction: either all
	// entries become durable or none do.
	InsertTimeEntries(ctx context.Context, entries []domain.NewTimeEntry) ([]string, error)
	UpdateTimeEntryDuration(ctx context.Context, id string, duration time.Duration) error
	DeleteTimeEntry(ctx context.Context, id string) error
}

// HabitLogReader reads habit logs
type HabitLogReader interface {
	// HabitLog returns the logged value for one habit and day; ok is false
	// when no log exists (distinct from a logged zero).
	HabitLog(ctx context.Context, activityID string, day domain.Day) (float64, bool, error)
	HabitLogsInRange(ctx context.Context, from, to domain.Day) (map[domain.LogKey]float64, error)
	// EarliestHabitLogDay bounds historical scans; ok is false when no habit
	// has ever been logged.
	EarliestHabitLogDay(ctx context.Context) (domain.Day, bool, error)
}

// HabitLogWriter writes habit logs
type HabitLogWriter interface {
	// UpsertHabitLog stores the daily value as given; accumulation semantics
	// live in the habit service, not the store.
	UpsertHabitLog(ctx context.Context, activityID string, day domain.Day, value float64) error
	ClearHabitLog(ctx context.Context, activityID string, day domain.Day) error
}

// TimeStore is the composite persistence contract
type TimeStore interface {
	ActivityReader
	ActivityWriter
	EntryReader
	EntryWriter
	HabitLogReader
	HabitLogWriter
	Close() error
}
