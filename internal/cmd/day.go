package cmd

import (
	"context"
	"fmt"
	"sort"
	"time"

	"stint/internal/domain"
	"stint/internal/ui"
)

// DayCmd shows one day's entries and habit completion
type DayCmd struct {
	Day string `arg:"" optional:"" help:"Day to show (YYYY-MM-DD, default today)"`
}

// Run executes the day command
func (s *DayCmd) Run(cli *CLI) error {
	ctx := context.Background()

	day := domain.Today()
	if s.Day != "" {
		var err error
		day, err = domain.ParseDay(s.Day)
		if err != nil {
			return err
		}
	}

	entries, err := cli.Container.EntryService.ForDay(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to list entries: %w", err)
	}

	fmt.Printf("── %s ──\n", day)
	if len(entries) == 0 {
		fmt.Println("No time entries")
	} else {
		totals := make(map[string]time.Duration)
		order := make([]string, 0, len(entries))
		var total time.Duration
		for _, entry := range entries {
			if _, seen := totals[entry.ActivityID]; !seen {
				order = append(order, entry.ActivityID)
			}
			totals[entry.ActivityID] += entry.Duration
			total += entry.Duration
		}
		sort.Strings(order)
		for _, activityID := range order {
			activity, err := cli.Container.ActivityService.Resolve(ctx, activityID)
			name := activityID
			if err == nil {
				name = activity.Name
			}
			fmt.Printf("  %-24s %s\n", name, totals[activityID].Round(time.Minute))
		}
		fmt.Printf("  %-24s %s\n", "total", total.Round(time.Minute))
	}

	statuses, err := cli.Container.Analytics.CompletionStatus(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to compute habit status: %w", err)
	}
	if len(statuses) > 0 {
		highlighted, err := cli.Container.Analytics.ExceedsThreshold(ctx, day)
		if err != nil {
			return err
		}
		fmt.Println(ui.RenderHabitStatus(day, statuses, highlighted))
	}
	return nil
}
