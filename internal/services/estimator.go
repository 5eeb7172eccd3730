package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"stint/internal/logging"
	"stint/internal/ports"
)

// averageConcurrency bounds parallel per-activity history reads
const averageConcurrency = 4

// AverageEstimator computes historical mean durations per activity.
// "No history" is reported distinctly from a zero average.
type AverageEstimator struct {
	entries ports.EntryReader
}

// NewAverageEstimator creates a new AverageEstimator
func NewAverageEstimator(entries ports.EntryReader) *AverageEstimator {
	return &AverageEstimator{entries: entries}
}

// AverageFor returns the mean duration across every committed entry for the
// activity. ok is false when the activity has no entries at all.
func (e *AverageEstimator) AverageFor(ctx context.Context, activityID string) (time.Duration, bool, error) {
	entries, err := e.entries.ListTimeEntries(ctx, activityID)
	if err != nil {
		logging.Logger.Warn("Failed to list entries for average", "activity", activityID, "error", err)
		return 0, false, err
	}
	if len(entries) == 0 {
		return 0, false, nil
	}

	var total time.Duration
	for _, entry := range entries {
		total += entry.Duration
	}
	return total / time.Duration(len(entries)), true, nil
}

// AveragesFor computes averages for many activities concurrently. Activities
// without history are absent from the result map.
func (e *AverageEstimator) AveragesFor(ctx context.Context, activityIDs []string) (map[string]time.Duration, error) {
	var mu sync.Mutex
	averages := make(map[string]time.Duration, len(activityIDs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(averageConcurrency)
	for _, id := range activityIDs {
		g.Go(func() error {
			avg, ok, err := e.AverageFor(ctx, id)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			mu.Lock()
			averages[id] = avg
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return averages, nil
}
