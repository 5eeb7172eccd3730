package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stint/internal/domain"
)

func entryAt(activityID string, minutes int) domain.TimeEntry {
	return domain.TimeEntry{
		ActivityID: activityID,
		StartedAt:  time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		Duration:   time.Duration(minutes) * time.Minute,
		Provenance: domain.ProvenanceTimer,
	}
}

func TestAverageFor_NoDataIsDistinctFromZero(t *testing.T) {
	store := &fakeEntryStore{}
	estimator := NewAverageEstimator(store)

	avg, ok, err := estimator.AverageFor(context.Background(), "fresh")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, time.Duration(0), avg)

	// A zero-duration entry is history, not "no data"
	store.entries = []domain.TimeEntry{entryAt("zeroed", 0)}
	avg, ok, err = estimator.AverageFor(context.Background(), "zeroed")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Duration(0), avg)
}

func TestAverageFor_MeanOverAllEntries(t *testing.T) {
	store := &fakeEntryStore{entries: []domain.TimeEntry{
		entryAt("a", 30),
		entryAt("a", 60),
		{ActivityID: "a", StartedAt: time.Now().UTC(), Duration: 45 * time.Minute, Provenance: domain.ProvenanceManual},
	}}
	estimator := NewAverageEstimator(store)

	avg, ok, err := estimator.AverageFor(context.Background(), "a")
	require.NoError(t, err)
	require.True(t, ok)
	// Manual and timer entries both count
	assert.Equal(t, 45*time.Minute, avg)
}

func TestAveragesFor_SkipsActivitiesWithoutHistory(t *testing.T) {
	store := &fakeEntryStore{entries: []domain.TimeEntry{
		entryAt("a", 30),
		entryAt("b", 10),
		entryAt("b", 20),
	}}
	estimator := NewAverageEstimator(store)

	averages, err := estimator.AveragesFor(context.Background(), []string{"a", "b", "fresh"})
	require.NoError(t, err)
	assert.Equal(t, map[string]time.Duration{
		"a": 30 * time.Minute,
		"b": 15 * time.Minute,
	}, averages)
	_, present := averages["fresh"]
	assert.False(t, present)
}
