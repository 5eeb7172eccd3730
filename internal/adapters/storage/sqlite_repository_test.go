package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stint/internal/domain"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "stint.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestCreateAndGetActivity(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.CreateActivity(ctx, "Deep work", nil)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := repo.GetActivity(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Deep work", got.Name)
	assert.Nil(t, got.ParentID)
	assert.False(t, got.IsHabit())

	byName, err := repo.GetActivityByName(ctx, "Deep work")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	_, err = repo.GetActivity(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestCreateActivity_DuplicateSiblingName(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	parent, err := repo.CreateActivity(ctx, "Work", nil)
	require.NoError(t, err)

	_, err = repo.CreateActivity(ctx, "Email", &parent.ID)
	require.NoError(t, err)
	_, err = repo.CreateActivity(ctx, "Email", &parent.ID)
	assert.ErrorIs(t, err, domain.ErrDuplicateSiblingName)

	// Same name under a different parent is fine
	_, err = repo.CreateActivity(ctx, "Email", nil)
	require.NoError(t, err)
}

func TestCreateActivity_PositionsAppend(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.CreateActivity(ctx, "First", nil)
	require.NoError(t, err)
	second, err := repo.CreateActivity(ctx, "Second", nil)
	require.NoError(t, err)
	assert.Less(t, first.Position, second.Position)

	require.NoError(t, repo.ReorderSiblings(ctx, nil, []string{second.ID, first.ID}))
	activities, err := repo.ListActivities(ctx)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, "Second", activities[0].Name)
}

func TestRenameActivity(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a, err := repo.CreateActivity(ctx, "Old", nil)
	require.NoError(t, err)
	_, err = repo.CreateActivity(ctx, "Taken", nil)
	require.NoError(t, err)

	require.NoError(t, repo.RenameActivity(ctx, a.ID, "New"))
	got, err := repo.GetActivity(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)

	assert.ErrorIs(t, repo.RenameActivity(ctx, a.ID, "Taken"), domain.ErrDuplicateSiblingName)
	assert.ErrorIs(t, repo.RenameActivity(ctx, "missing", "X"), domain.ErrActivityNotFound)
}

func TestDeleteActivity_CascadesToSubtreeEntriesAndLogs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	root, err := repo.CreateActivity(ctx, "Work", nil)
	require.NoError(t, err)
	child, err := repo.CreateActivity(ctx, "Email", &root.ID)
	require.NoError(t, err)
	grandchild, err := repo.CreateActivity(ctx, "Inbox zero", &child.ID)
	require.NoError(t, err)
	other, err := repo.CreateActivity(ctx, "Reading", nil)
	require.NoError(t, err)

	_, err = repo.InsertTimeEntry(ctx, domain.NewTimeEntry{
		ActivityID: grandchild.ID,
		StartedAt:  time.Now().UTC(),
		Duration:   time.Hour,
		Provenance: domain.ProvenanceManual,
	})
	require.NoError(t, err)
	require.NoError(t, repo.SetHabitConfig(ctx, child.ID, &domain.HabitConfig{
		Kind:         domain.HabitBinary,
		ConfiguredOn: domain.Today(),
	}))
	require.NoError(t, repo.UpsertHabitLog(ctx, child.ID, domain.Today(), 1))

	require.NoError(t, repo.DeleteActivity(ctx, root.ID))

	_, err = repo.GetActivity(ctx, grandchild.ID)
	assert.ErrorIs(t, err, domain.ErrActivityNotFound)

	entries, err := repo.ListTimeEntries(ctx, grandchild.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, logged, err := repo.HabitLog(ctx, child.ID, domain.Today())
	require.NoError(t, err)
	assert.False(t, logged)

	// Unrelated activity survives
	_, err = repo.GetActivity(ctx, other.ID)
	assert.NoError(t, err)
}

func TestHabitConfigRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a, err := repo.CreateActivity(ctx, "Read", nil)
	require.NoError(t, err)

	goal := 20.0
	cfg := domain.HabitConfig{
		Kind:         domain.HabitNumeric,
		Unit:         "pages",
		Goal:         &goal,
		ConfiguredOn: domain.Day("2026-08-01"),
		Position:     0,
	}
	require.NoError(t, repo.SetHabitConfig(ctx, a.ID, &cfg))

	got, err := repo.GetActivity(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, got.IsHabit())
	assert.Equal(t, domain.HabitNumeric, got.Habit.Kind)
	assert.Equal(t, "pages", got.Habit.Unit)
	require.NotNil(t, got.Habit.Goal)
	assert.Equal(t, 20.0, *got.Habit.Goal)
	assert.Equal(t, domain.Day("2026-08-01"), got.Habit.ConfiguredOn)

	habits, err := repo.ListHabits(ctx)
	require.NoError(t, err)
	require.Len(t, habits, 1)

	// Clearing the config keeps the activity
	require.NoError(t, repo.SetHabitConfig(ctx, a.ID, nil))
	got, err = repo.GetActivity(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, got.IsHabit())
}

func TestReorderHabits(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a, err := repo.CreateActivity(ctx, "A", nil)
	require.NoError(t, err)
	b, err := repo.CreateActivity(ctx, "B", nil)
	require.NoError(t, err)
	for i, id := range []string{a.ID, b.ID} {
		require.NoError(t, repo.SetHabitConfig(ctx, id, &domain.HabitConfig{
			Kind:         domain.HabitBinary,
			ConfiguredOn: domain.Today(),
			Position:     i,
		}))
	}

	require.NoError(t, repo.ReorderHabits(ctx, []string{b.ID, a.ID}))
	habits, err := repo.ListHabits(ctx)
	require.NoError(t, err)
	require.Len(t, habits, 2)
	assert.Equal(t, b.ID, habits[0].ID)

	assert.ErrorIs(t, repo.ReorderHabits(ctx, []string{"missing"}), domain.ErrNotAHabit)
}

func TestTimeEntries_RoundTripAndDayWindow(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a, err := repo.CreateActivity(ctx, "Work", nil)
	require.NoError(t, err)

	day := domain.Day("2026-08-28")
	morning := day.Time().Add(9 * time.Hour)
	id, err := repo.InsertTimeEntry(ctx, domain.NewTimeEntry{
		ActivityID: a.ID,
		StartedAt:  morning,
		Duration:   90 * time.Minute,
		Provenance: domain.ProvenanceTimer,
	})
	require.NoError(t, err)

	// An entry on the next day stays outside the window
	_, err = repo.InsertTimeEntry(ctx, domain.NewTimeEntry{
		ActivityID: a.ID,
		StartedAt:  day.AddDays(1).Time().Add(time.Hour),
		Duration:   time.Hour,
		Provenance: domain.ProvenanceManual,
	})
	require.NoError(t, err)

	entries, err := repo.ListEntriesForDay(ctx, day)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ID)
	assert.Equal(t, 90*time.Minute, entries[0].Duration)
	assert.Equal(t, domain.ProvenanceTimer, entries[0].Provenance)

	all, err := repo.ListTimeEntries(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestInsertTimeEntries_Batch(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a, err := repo.CreateActivity(ctx, "A", nil)
	require.NoError(t, err)
	b, err := repo.CreateActivity(ctx, "B", nil)
	require.NoError(t, err)

	ids, err := repo.InsertTimeEntries(ctx, []domain.NewTimeEntry{
		{ActivityID: a.ID, StartedAt: time.Now().UTC(), Duration: time.Hour, Provenance: domain.ProvenanceTimer},
		{ActivityID: b.ID, StartedAt: time.Now().UTC(), Duration: time.Minute, Provenance: domain.ProvenanceTimer},
	})
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	empty, err := repo.InsertTimeEntries(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUpdateAndDeleteTimeEntry(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a, err := repo.CreateActivity(ctx, "Work", nil)
	require.NoError(t, err)
	id, err := repo.InsertTimeEntry(ctx, domain.NewTimeEntry{
		ActivityID: a.ID,
		StartedAt:  time.Now().UTC(),
		Duration:   time.Hour,
		Provenance: domain.ProvenanceManual,
	})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateTimeEntryDuration(ctx, id, 30*time.Minute))
	entries, err := repo.ListTimeEntries(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, entries[0].Duration)

	require.NoError(t, repo.DeleteTimeEntry(ctx, id))
	assert.ErrorIs(t, repo.DeleteTimeEntry(ctx, id), domain.ErrEntryNotFound)
	assert.ErrorIs(t, repo.UpdateTimeEntryDuration(ctx, id, time.Minute), domain.ErrEntryNotFound)
}

func TestHabitLogs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a, err := repo.CreateActivity(ctx, "Floss", nil)
	require.NoError(t, err)

	_, _, err = repo.EarliestHabitLogDay(ctx)
	require.NoError(t, err)

	day1 := domain.Day("2026-08-25")
	day2 := domain.Day("2026-08-26")

	require.NoError(t, repo.UpsertHabitLog(ctx, a.ID, day1, 1))
	require.NoError(t, repo.UpsertHabitLog(ctx, a.ID, day2, 0))
	// Upsert replaces
	require.NoError(t, repo.UpsertHabitLog(ctx, a.ID, day2, 1))

	value, logged, err := repo.HabitLog(ctx, a.ID, day2)
	require.NoError(t, err)
	require.True(t, logged)
	assert.Equal(t, 1.0, value)

	_, logged, err = repo.HabitLog(ctx, a.ID, domain.Day("2026-08-27"))
	require.NoError(t, err)
	assert.False(t, logged, "absence of a log is distinct from a logged zero")

	logs, err := repo.HabitLogsInRange(ctx, day1, day2)
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	earliest, ok, err := repo.EarliestHabitLogDay(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, day1, earliest)

	require.NoError(t, repo.ClearHabitLog(ctx, a.ID, day1))
	_, logged, err = repo.HabitLog(ctx, a.ID, day1)
	require.NoError(t, err)
	assert.False(t, logged)

	assert.ErrorIs(t, repo.UpsertHabitLog(ctx, "missing", day1, 1), domain.ErrActivityNotFound)
}
