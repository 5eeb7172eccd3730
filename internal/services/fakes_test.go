package services

import (
	"context"
	"fmt"
	"time"

	"stint/internal/domain"
)

// fakeEntryStore is an in-memory EntryReader/EntryWriter.
type fakeEntryStore struct {
	entries   []domain.TimeEntry
	nextID    int
	insertErr error
}

func (f *fakeEntryStore) ListTimeEntries(ctx context.Context, activityID string) ([]domain.TimeEntry, error) {
	var out []domain.TimeEntry
	for _, e := range f.entries {
		if e.ActivityID == activityID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEntryStore) ListEntriesForDay(ctx context.Context, day domain.Day) ([]domain.TimeEntry, error) {
	var out []domain.TimeEntry
	for _, e := range f.entries {
		if domain.DayOf(e.StartedAt) == day {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEntryStore) InsertTimeEntry(ctx context.Context, entry domain.NewTimeEntry) (string, error) {
	ids, err := f.InsertTimeEntries(ctx, []domain.NewTimeEntry{entry})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

func (f *fakeEntryStore) InsertTimeEntries(ctx context.Context, entries []domain.NewTimeEntry) ([]string, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		f.nextID++
		id := fmt.Sprintf("entry-%d", f.nextID)
		f.entries = append(f.entries, domain.TimeEntry{
			ID:         id,
			ActivityID: e.ActivityID,
			StartedAt:  e.StartedAt,
			Duration:   e.Duration,
			Provenance: e.Provenance,
		})
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeEntryStore) UpdateTimeEntryDuration(ctx context.Context, id string, duration time.Duration) error {
	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries[i].Duration = duration
			return nil
		}
	}
	return domain.ErrEntryNotFound
}

func (f *fakeEntryStore) DeleteTimeEntry(ctx context.Context, id string) error {
	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrEntryNotFound
}

// fakeActivityReader serves a fixed activity list.
type fakeActivityReader struct {
	activities []domain.Activity
}

func (f *fakeActivityReader) GetActivity(ctx context.Context, id string) (*domain.Activity, error) {
	for _, a := range f.activities {
		if a.ID == id {
			copied := a
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("activity %s: %w", id, domain.ErrActivityNotFound)
}

func (f *fakeActivityReader) GetActivityByName(ctx context.Context, name string) (*domain.Activity, error) {
	for _, a := range f.activities {
		if a.Name == name {
			copied := a
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("activity %q: %w", name, domain.ErrActivityNotFound)
}

func (f *fakeActivityReader) ListActivities(ctx context.Context) ([]domain.Activity, error) {
	return append([]domain.Activity(nil), f.activities...), nil
}

func (f *fakeActivityReader) ListHabits(ctx context.Context) ([]domain.Activity, error) {
	var habits []domain.Activity
	for _, a := range f.activities {
		if a.IsHabit() {
			habits = append(habits, a)
		}
	}
	return habits, nil
}

// fakeHabitLogStore is an in-memory HabitLogReader/HabitLogWriter.
type fakeHabitLogStore struct {
	logs map[domain.LogKey]float64
}

func newFakeHabitLogStore() *fakeHabitLogStore {
	return &fakeHabitLogStore{logs: make(map[domain.LogKey]float64)}
}

func (f *fakeHabitLogStore) HabitLog(ctx context.Context, activityID string, day domain.Day) (float64, bool, error) {
	value, ok := f.logs[domain.LogKey{ActivityID: activityID, Day: day}]
	return value, ok, nil
}

func (f *fakeHabitLogStore) HabitLogsInRange(ctx context.Context, from, to domain.Day) (map[domain.LogKey]float64, error) {
	out := make(map[domain.LogKey]float64)
	for key, value := range f.logs {
		if !key.Day.Before(from) && !key.Day.After(to) {
			out[key] = value
		}
	}
	return out, nil
}

func (f *fakeHabitLogStore) EarliestHabitLogDay(ctx context.Context) (domain.Day, bool, error) {
	var earliest domain.Day
	found := false
	for key := range f.logs {
		if !found || key.Day.Before(earliest) {
			earliest = key.Day
			found = true
		}
	}
	return earliest, found, nil
}

func (f *fakeHabitLogStore) UpsertHabitLog(ctx context.Context, activityID string, day domain.Day, value float64) error {
	f.logs[domain.LogKey{ActivityID: activityID, Day: day}] = value
	return nil
}

func (f *fakeHabitLogStore) ClearHabitLog(ctx context.Context, activityID string, day domain.Day) error {
	delete(f.logs, domain.LogKey{ActivityID: activityID, Day: day})
	return nil
}
