package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"stint/internal/domain"
	"stint/internal/logging"
	"stint/internal/ports"
)

// DeviationThreshold is the relative difference from the historical average
// beyond which a committed total is flagged for the user.
const DeviationThreshold = 0.10

// Review holds the intervals of a finished session while the user adjusts
// them. It is single-use: one Commit, then the review is spent.
type Review struct {
	items     []ReviewItem
	committed bool
}

// ReviewItem is one closed interval under review.
type ReviewItem struct {
	Interval domain.Interval
}

// CommitResult reports what a commit wrote and how it compares to history.
type CommitResult struct {
	// EntryIDs are the ids of the inserted time entries.
	EntryIDs []string
	// Totals is the committed work duration per activity.
	Totals map[string]time.Duration
	// Deviates flags activities whose total differs from the historical
	// average (sampled before the insert) by more than DeviationThreshold.
	Deviates map[string]bool
}

// NewReview starts a review over the closed intervals of a session.
func NewReview(intervals []domain.Interval) *Review {
	items := make([]ReviewItem, 0, len(intervals))
	for _, iv := range intervals {
		items = append(items, ReviewItem{Interval: iv})
	}
	return &Review{items: items}
}

// Items returns the current review list.
func (r *Review) Items() []ReviewItem {
	out := make([]ReviewItem, len(r.items))
	copy(out, r.items)
	return out
}

// SetIncluded marks whether the interval at index participates in the commit.
func (r *Review) SetIncluded(index int, included bool) error {
	if err := r.check(index); err != nil {
		return err
	}
	r.items[index].Interval.Included = included
	return nil
}

// OverrideDuration replaces the measured duration of the interval at index.
func (r *Review) OverrideDuration(index int, d time.Duration) error {
	if err := r.check(index); err != nil {
		return err
	}
	if d < 0 {
		return fmt.Errorf("override duration must be non-negative, got %s", d)
	}
	r.items[index].Interval.Override = &d
	return nil
}

// Remove drops the interval at index from the review entirely.
func (r *Review) Remove(index int) error {
	if err := r.check(index); err != nil {
		return err
	}
	r.items = append(r.items[:index], r.items[index+1:]...)
	return nil
}

// Committed reports whether the review has already been committed.
func (r *Review) Committed() bool {
	return r.committed
}

// Commit writes one time entry per activity, summing that activity's included
// work intervals, in a single atomic batch. The entry start is the earliest
// included work interval start. Break intervals and excluded intervals never
// persist. A review with nothing included commits successfully and writes
// nothing; either way the review is spent afterwards.
//
// Historical averages are sampled before the insert so the deviation flags
// compare the new totals against history that does not yet contain them.
func (r *Review) Commit(ctx context.Context, store ports.EntryWriter, estimator *AverageEstimator) (CommitResult, error) {
	if r.committed {
		return CommitResult{}, domain.ErrAlreadyCommitted
	}

	totals := make(map[string]time.Duration)
	starts := make(map[string]time.Time)
	for _, item := range r.items {
		iv := item.Interval
		if !iv.Included || iv.Kind != domain.IntervalWork {
			continue
		}
		totals[iv.ActivityID] += iv.Duration()
		if start, ok := starts[iv.ActivityID]; !ok || iv.Start.Before(start) {
			starts[iv.ActivityID] = iv.Start
		}
	}

	activityIDs := make([]string, 0, len(totals))
	for id := range totals {
		activityIDs = append(activityIDs, id)
	}
	sort.Strings(activityIDs)

	result := CommitResult{
		Totals:   totals,
		Deviates: make(map[string]bool, len(totals)),
	}
	if len(activityIDs) == 0 {
		r.committed = true
		logging.Logger.Info("Review committed with no included work intervals")
		return result, nil
	}

	averages, err := estimator.AveragesFor(ctx, activityIDs)
	if err != nil {
		return CommitResult{}, fmt.Errorf("sampling averages before commit: %w", err)
	}

	entries := make([]domain.NewTimeEntry, 0, len(activityIDs))
	for _, id := range activityIDs {
		entries = append(entries, domain.NewTimeEntry{
			ActivityID: id,
			StartedAt:  starts[id].UTC(),
			Duration:   totals[id],
			Provenance: domain.ProvenanceTimer,
		})
	}

	ids, err := store.InsertTimeEntries(ctx, entries)
	if err != nil {
		return CommitResult{}, fmt.Errorf("committing review entries: %w", err)
	}
	result.EntryIDs = ids
	r.committed = true

	for _, id := range activityIDs {
		avg, ok := averages[id]
		if !ok || avg <= 0 {
			continue
		}
		diff := totals[id] - avg
		if diff < 0 {
			diff = -diff
		}
		if float64(diff)/float64(avg) > DeviationThreshold {
			result.Deviates[id] = true
		}
	}

	logging.Logger.Info("Review committed",
		"entries", len(ids), "deviating", len(result.Deviates))
	return result, nil
}

func (r *Review) check(index int) error {
	if r.committed {
		return domain.ErrAlreadyCommitted
	}
	if index < 0 || index >= len(r.items) {
		return fmt.Errorf("review item %d out of range", index)
	}
	return nil
}
