package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stint/internal/domain"
)

func habitActivity(id string, kind domain.HabitKind, goal *float64, configuredOn domain.Day) domain.Activity {
	return domain.Activity{
		ID:   id,
		Name: id,
		Habit: &domain.HabitConfig{
			Kind:         kind,
			Goal:         goal,
			ConfiguredOn: configuredOn,
		},
	}
}

func goalOf(v float64) *float64 { return &v }

const (
	day1 = domain.Day("2026-08-25")
	day2 = domain.Day("2026-08-26")
	day3 = domain.Day("2026-08-27")
)

func TestLog_AccumulationPerKind(t *testing.T) {
	activities := &fakeActivityReader{activities: []domain.Activity{
		habitActivity("read", domain.HabitNumeric, goalOf(20), day1),
		habitActivity("stretch", domain.HabitPercentage, nil, day1),
		habitActivity("floss", domain.HabitBinary, nil, day1),
	}}
	logs := newFakeHabitLogStore()
	service := NewHabitService(activities, logs, logs)
	ctx := context.Background()

	// Numeric values accumulate
	stored, err := service.Log(ctx, "read", day1, 8)
	require.NoError(t, err)
	assert.Equal(t, 8.0, stored)
	stored, err = service.Log(ctx, "read", day1, 5)
	require.NoError(t, err)
	assert.Equal(t, 13.0, stored)

	// Percentage accumulates and clamps at 100
	_, err = service.Log(ctx, "stretch", day1, 75)
	require.NoError(t, err)
	stored, err = service.Log(ctx, "stretch", day1, 50)
	require.NoError(t, err)
	assert.Equal(t, 100.0, stored)

	// Binary replaces
	_, err = service.Log(ctx, "floss", day1, 1)
	require.NoError(t, err)
	stored, err = service.Log(ctx, "floss", day1, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stored)
}

func TestLog_Validation(t *testing.T) {
	activities := &fakeActivityReader{activities: []domain.Activity{
		{ID: "plain", Name: "plain"},
		habitActivity("stretch", domain.HabitPercentage, nil, day1),
	}}
	logs := newFakeHabitLogStore()
	service := NewHabitService(activities, logs, logs)
	ctx := context.Background()

	_, err := service.Log(ctx, "plain", day1, 1)
	assert.ErrorIs(t, err, domain.ErrNotAHabit)

	_, err = service.Log(ctx, "stretch", day1, 33)
	assert.Error(t, err, "percentage values must land on the 25-step grid")

	_, err = service.Log(ctx, "missing", day1, 1)
	assert.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestCompletionStatus_PerKindRules(t *testing.T) {
	activities := &fakeActivityReader{activities: []domain.Activity{
		habitActivity("floss", domain.HabitBinary, nil, day1),
		habitActivity("stretch", domain.HabitPercentage, nil, day1),
		habitActivity("read", domain.HabitNumeric, goalOf(20), day1),
		habitActivity("walk", domain.HabitNumeric, nil, day1),
	}}
	logs := newFakeHabitLogStore()
	ctx := context.Background()
	require.NoError(t, logs.UpsertHabitLog(ctx, "floss", day1, 1))
	require.NoError(t, logs.UpsertHabitLog(ctx, "stretch", day1, 75))
	require.NoError(t, logs.UpsertHabitLog(ctx, "read", day1, 20))
	require.NoError(t, logs.UpsertHabitLog(ctx, "walk", day1, 0))

	analytics := NewHabitAnalytics(activities, logs)
	statuses, err := analytics.CompletionStatus(ctx, day1)
	require.NoError(t, err)
	require.Len(t, statuses, 4)

	byID := make(map[string]HabitStatus)
	for _, st := range statuses {
		byID[st.Activity.ID] = st
	}
	assert.True(t, byID["floss"].Done)
	assert.False(t, byID["stretch"].Done, "75% is progress, not completion")
	assert.True(t, byID["read"].Done, "goal met exactly")
	assert.True(t, byID["walk"].Done, "a goalless numeric habit completes on any explicit log")
	assert.True(t, byID["walk"].Logged)
}

func TestGlobalDailyStreak(t *testing.T) {
	activities := &fakeActivityReader{activities: []domain.Activity{
		habitActivity("floss", domain.HabitBinary, nil, day1),
		habitActivity("read", domain.HabitNumeric, goalOf(10), day1),
	}}
	logs := newFakeHabitLogStore()
	ctx := context.Background()

	// day1: both done; day2: one missed; day3: both done
	require.NoError(t, logs.UpsertHabitLog(ctx, "floss", day1, 1))
	require.NoError(t, logs.UpsertHabitLog(ctx, "read", day1, 12))
	require.NoError(t, logs.UpsertHabitLog(ctx, "floss", day2, 1))
	require.NoError(t, logs.UpsertHabitLog(ctx, "floss", day3, 1))
	require.NoError(t, logs.UpsertHabitLog(ctx, "read", day3, 10))

	analytics := NewHabitAnalytics(activities, logs)
	streak, err := analytics.GlobalDailyStreak(ctx, day3)
	require.NoError(t, err)
	assert.Equal(t, 1, streak.Current, "day2 broke the run")
	assert.Equal(t, 1, streak.Longest)
}

func TestGlobalDailyStreak_IncompleteAsOfDayBreaks(t *testing.T) {
	activities := &fakeActivityReader{activities: []domain.Activity{
		habitActivity("floss", domain.HabitBinary, nil, day1),
	}}
	logs := newFakeHabitLogStore()
	ctx := context.Background()
	require.NoError(t, logs.UpsertHabitLog(ctx, "floss", day1, 1))
	require.NoError(t, logs.UpsertHabitLog(ctx, "floss", day2, 1))
	// day3 not logged: the walk back from day3 breaks immediately

	analytics := NewHabitAnalytics(activities, logs)
	streak, err := analytics.GlobalDailyStreak(ctx, day3)
	require.NoError(t, err)
	assert.Zero(t, streak.Current)
	assert.Equal(t, 2, streak.Longest)
}

func TestGlobalDailyStreak_PartialAsOfDayResetsToZero(t *testing.T) {
	activities := &fakeActivityReader{activities: []domain.Activity{
		habitActivity("floss", domain.HabitBinary, nil, day1),
		habitActivity("read", domain.HabitNumeric, goalOf(10), day1),
	}}
	logs := newFakeHabitLogStore()
	ctx := context.Background()

	// day1: both done; day2: floss done but read at half goal
	require.NoError(t, logs.UpsertHabitLog(ctx, "floss", day1, 1))
	require.NoError(t, logs.UpsertHabitLog(ctx, "read", day1, 10))
	require.NoError(t, logs.UpsertHabitLog(ctx, "floss", day2, 1))
	require.NoError(t, logs.UpsertHabitLog(ctx, "read", day2, 5))

	analytics := NewHabitAnalytics(activities, logs)
	streak, err := analytics.GlobalDailyStreak(ctx, day2)
	require.NoError(t, err)
	assert.Zero(t, streak.Current, "the streak breaks at the first failing day, day2 included")
	assert.Equal(t, 1, streak.Longest)

	// Finishing read on day3 starts a fresh run of one
	require.NoError(t, logs.UpsertHabitLog(ctx, "floss", day3, 1))
	require.NoError(t, logs.UpsertHabitLog(ctx, "read", day3, 12))
	streak, err = analytics.GlobalDailyStreak(ctx, day3)
	require.NoError(t, err)
	assert.Equal(t, 1, streak.Current)
}

func TestGlobalDailyStreak_ConfiguredOnFiltersRetroactively(t *testing.T) {
	// "read" only exists from day3; day1/day2 must be judged on "floss" alone
	activities := &fakeActivityReader{activities: []domain.Activity{
		habitActivity("floss", domain.HabitBinary, nil, day1),
		habitActivity("read", domain.HabitNumeric, goalOf(10), day3),
	}}
	logs := newFakeHabitLogStore()
	ctx := context.Background()
	require.NoError(t, logs.UpsertHabitLog(ctx, "floss", day1, 1))
	require.NoError(t, logs.UpsertHabitLog(ctx, "floss", day2, 1))
	require.NoError(t, logs.UpsertHabitLog(ctx, "floss", day3, 1))
	require.NoError(t, logs.UpsertHabitLog(ctx, "read", day3, 15))

	analytics := NewHabitAnalytics(activities, logs)
	streak, err := analytics.GlobalDailyStreak(ctx, day3)
	require.NoError(t, err)
	assert.Equal(t, 3, streak.Current)
	assert.Equal(t, 3, streak.Longest)
}

func TestGlobalDailyStreak_NoHabitsOrNoLogs(t *testing.T) {
	logs := newFakeHabitLogStore()
	analytics := NewHabitAnalytics(&fakeActivityReader{}, logs)

	streak, err := analytics.GlobalDailyStreak(context.Background(), day1)
	require.NoError(t, err)
	assert.Zero(t, streak.Current)
	assert.Zero(t, streak.Longest)

	analytics = NewHabitAnalytics(&fakeActivityReader{activities: []domain.Activity{
		habitActivity("floss", domain.HabitBinary, nil, day1),
	}}, logs)
	streak, err = analytics.GlobalDailyStreak(context.Background(), day1)
	require.NoError(t, err)
	assert.Zero(t, streak.Current)
}

func TestHeatmapIntensity_NoDataDistinctFromZero(t *testing.T) {
	activities := &fakeActivityReader{activities: []domain.Activity{
		habitActivity("floss", domain.HabitBinary, nil, day1),
		habitActivity("read", domain.HabitNumeric, goalOf(10), day1),
	}}
	logs := newFakeHabitLogStore()
	ctx := context.Background()
	analytics := NewHabitAnalytics(activities, logs)

	// No logs at all: no data
	_, ok, err := analytics.HeatmapIntensity(ctx, day1)
	require.NoError(t, err)
	assert.False(t, ok)

	// Logged but scored zero: zero intensity, still data
	require.NoError(t, logs.UpsertHabitLog(ctx, "floss", day1, 0))
	intensity, ok, err := analytics.HeatmapIntensity(ctx, day1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0.0, intensity)

	// Scores are fractional: 0.0 for floss, 5/10 for read, averaged over the
	// two logged habits
	require.NoError(t, logs.UpsertHabitLog(ctx, "read", day1, 5))
	intensity, ok, err = analytics.HeatmapIntensity(ctx, day1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0.25, intensity)
}

func TestHeatmapIntensity_UnloggedHabitsExcludedFromMean(t *testing.T) {
	activities := &fakeActivityReader{activities: []domain.Activity{
		habitActivity("floss", domain.HabitBinary, nil, day1),
		habitActivity("read", domain.HabitNumeric, goalOf(10), day1),
	}}
	logs := newFakeHabitLogStore()
	ctx := context.Background()
	analytics := NewHabitAnalytics(activities, logs)

	// Only read is logged, at goal: the unlogged habit doesn't drag the mean
	require.NoError(t, logs.UpsertHabitLog(ctx, "read", day1, 10))
	intensity, ok, err := analytics.HeatmapIntensity(ctx, day1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1.0, intensity)
}

func TestExceedsThreshold(t *testing.T) {
	activities := &fakeActivityReader{activities: []domain.Activity{
		habitActivity("read", domain.HabitNumeric, goalOf(20), day1),
		habitActivity("run", domain.HabitNumeric, goalOf(5), day1),
		habitActivity("floss", domain.HabitBinary, nil, day1), // never counts
	}}
	logs := newFakeHabitLogStore()
	ctx := context.Background()
	analytics := NewHabitAnalytics(activities, logs)

	// read at goal (1.0), run unlogged (0.0): average 0.5
	require.NoError(t, logs.UpsertHabitLog(ctx, "read", day1, 20))
	over, err := analytics.ExceedsThreshold(ctx, day1)
	require.NoError(t, err)
	assert.False(t, over)

	// run at 4/5 (0.8): average 0.9 > 0.70
	require.NoError(t, logs.UpsertHabitLog(ctx, "run", day1, 4))
	over, err = analytics.ExceedsThreshold(ctx, day1)
	require.NoError(t, err)
	assert.True(t, over)
}

func TestExceedsThreshold_AttainmentCapsAtGoal(t *testing.T) {
	activities := &fakeActivityReader{activities: []domain.Activity{
		habitActivity("read", domain.HabitNumeric, goalOf(10), day1),
		habitActivity("run", domain.HabitNumeric, goalOf(10), day1),
	}}
	logs := newFakeHabitLogStore()
	ctx := context.Background()
	analytics := NewHabitAnalytics(activities, logs)

	// Overshooting one habit can't carry an unlogged one: 1.0 + 0.0 over 2 = 0.5
	require.NoError(t, logs.UpsertHabitLog(ctx, "read", day1, 50))
	over, err := analytics.ExceedsThreshold(ctx, day1)
	require.NoError(t, err)
	assert.False(t, over)
}

func TestExceedsThreshold_NoGoalHabits(t *testing.T) {
	activities := &fakeActivityReader{activities: []domain.Activity{
		habitActivity("floss", domain.HabitBinary, nil, day1),
	}}
	analytics := NewHabitAnalytics(activities, newFakeHabitLogStore())

	over, err := analytics.ExceedsThreshold(context.Background(), day1)
	require.NoError(t, err)
	assert.False(t, over)
}
