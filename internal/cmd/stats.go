package cmd

import (
	"context"
	"fmt"
	"time"

	"stint/internal/domain"
)

// StatsCmd shows historical average durations per activity
type StatsCmd struct {
	Activity string `arg:"" optional:"" help:"Limit to one activity (id or unique name)"`
}

// Run executes the stats command
func (s *StatsCmd) Run(cli *CLI) error {
	ctx := context.Background()
	container := cli.Container

	var activities []domain.Activity
	if s.Activity != "" {
		activity, err := container.ActivityService.Resolve(ctx, s.Activity)
		if err != nil {
			return err
		}
		activities = []domain.Activity{*activity}
	} else {
		var err error
		activities, err = container.ActivityService.Tree(ctx)
		if err != nil {
			return fmt.Errorf("failed to list activities: %w", err)
		}
	}
	if len(activities) == 0 {
		fmt.Println("No activities yet")
		return nil
	}

	ids := make([]string, 0, len(activities))
	for _, a := range activities {
		ids = append(ids, a.ID)
	}

	averages, err := container.Estimator.AveragesFor(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to compute averages: %w", err)
	}

	for _, a := range activities {
		avg, ok := averages[a.ID]
		if !ok {
			fmt.Printf("  %-24s no data\n", a.Name)
			continue
		}
		fmt.Printf("  %-24s avg %s\n", a.Name, avg.Round(time.Minute))
	}
	return nil
}
