package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stint/internal/domain"
)

// fakeActivityWriter records writer calls against a fakeActivityReader.
type fakeActivityWriter struct {
	reader     *fakeActivityReader
	habitOrder []string
}

func (f *fakeActivityWriter) CreateActivity(ctx context.Context, name string, parentID *string) (*domain.Activity, error) {
	activity := domain.Activity{ID: name, Name: name, ParentID: parentID, Position: len(f.reader.activities)}
	f.reader.activities = append(f.reader.activities, activity)
	return &activity, nil
}

func (f *fakeActivityWriter) RenameActivity(ctx context.Context, id, name string) error {
	for i := range f.reader.activities {
		if f.reader.activities[i].ID == id {
			f.reader.activities[i].Name = name
			return nil
		}
	}
	return domain.ErrActivityNotFound
}

func (f *fakeActivityWriter) DeleteActivity(ctx context.Context, id string) error { return nil }

func (f *fakeActivityWriter) ReorderSiblings(ctx context.Context, parentID *string, orderedIDs []string) error {
	return nil
}

func (f *fakeActivityWriter) SetHabitConfig(ctx context.Context, id string, cfg *domain.HabitConfig) error {
	for i := range f.reader.activities {
		if f.reader.activities[i].ID == id {
			f.reader.activities[i].Habit = cfg
			return nil
		}
	}
	return domain.ErrActivityNotFound
}

func (f *fakeActivityWriter) ReorderHabits(ctx context.Context, orderedIDs []string) error {
	f.habitOrder = orderedIDs
	return nil
}

func TestActivityService_CreateValidatesName(t *testing.T) {
	reader := &fakeActivityReader{}
	service := NewActivityService(reader, &fakeActivityWriter{reader: reader})

	_, err := service.Create(context.Background(), "   ", nil)
	assert.Error(t, err)

	activity, err := service.Create(context.Background(), "Reading", nil)
	require.NoError(t, err)
	assert.Equal(t, "Reading", activity.Name)
}

func TestActivityService_ConfigureHabitAppendsToTrackerOrder(t *testing.T) {
	reader := &fakeActivityReader{activities: []domain.Activity{
		{ID: "existing", Name: "existing", Habit: &domain.HabitConfig{Kind: domain.HabitBinary, Position: 0}},
		{ID: "reading", Name: "reading"},
	}}
	service := NewActivityService(reader, &fakeActivityWriter{reader: reader})

	goal := 20.0
	require.NoError(t, service.ConfigureHabit(context.Background(), "reading", domain.HabitNumeric, "pages", &goal))

	activity, err := service.Resolve(context.Background(), "reading")
	require.NoError(t, err)
	require.True(t, activity.IsHabit())
	assert.Equal(t, 1, activity.Habit.Position, "new habit goes to the end")
	assert.Equal(t, domain.Today(), activity.Habit.ConfiguredOn)
}

func TestActivityService_ConfigureHabitRejectsInvalidConfig(t *testing.T) {
	reader := &fakeActivityReader{activities: []domain.Activity{{ID: "a", Name: "a"}}}
	service := NewActivityService(reader, &fakeActivityWriter{reader: reader})

	goal := -5.0
	err := service.ConfigureHabit(context.Background(), "a", domain.HabitNumeric, "", &goal)
	assert.Error(t, err)

	err = service.ConfigureHabit(context.Background(), "a", domain.HabitBinary, "pages", nil)
	assert.Error(t, err, "unit is only valid for numeric habits")
}

func TestEntryService_AddManual(t *testing.T) {
	store := &fakeEntryStore{}
	reader := &fakeActivityReader{activities: []domain.Activity{{ID: "a", Name: "a"}}}
	service := NewEntryService(reader, store, store)
	ctx := context.Background()

	day := domain.Day("2026-08-28")
	id, err := service.AddManual(ctx, "a", day, 45)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.Len(t, store.entries, 1)
	assert.Equal(t, 45*time.Minute, store.entries[0].Duration)
	assert.Equal(t, domain.ProvenanceManual, store.entries[0].Provenance)

	_, err = service.AddManual(ctx, "a", day, 0)
	assert.Error(t, err)
	_, err = service.AddManual(ctx, "missing", day, 10)
	assert.ErrorIs(t, err, domain.ErrActivityNotFound)
}
