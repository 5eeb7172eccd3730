package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stint/internal/domain"
	"stint/internal/ui"
)

// HabitsCmd logs habits and inspects streaks
type HabitsCmd struct {
	Clear   HabitsClearCmd   `cmd:"clear" help:"Remove a habit log for a day"`
	Heatmap HabitsHeatmapCmd `cmd:"heatmap" help:"Render a completion heatmap"`
	Log     HabitsLogCmd     `cmd:"log" help:"Log a habit value for a day"`
	Status  HabitsStatusCmd  `cmd:"status" help:"Show habit completion for a day" default:"1"`
	Streak  HabitsStreakCmd  `cmd:"streak" help:"Show the global daily streak"`
}

// HabitsLogCmd records a habit value
type HabitsLogCmd struct {
	Activity string  `arg:"" help:"Habit activity (id or unique name)"`
	Value    float64 `arg:"" help:"Value to log (binary: 0/1, percentage: steps of 25, numeric: amount)"`
	Day      string  `help:"Day to log for (YYYY-MM-DD, default today)" default:""`
}

// Run executes the log command
func (s *HabitsLogCmd) Run(cli *CLI) error {
	ctx := context.Background()
	activity, err := cli.Container.ActivityService.Resolve(ctx, s.Activity)
	if err != nil {
		return err
	}

	day := domain.Today()
	if s.Day != "" {
		day, err = domain.ParseDay(s.Day)
		if err != nil {
			return err
		}
	}

	stored, err := cli.Container.HabitService.Log(ctx, activity.ID, day, s.Value)
	if err != nil {
		return fmt.Errorf("failed to log habit: %w", err)
	}
	fmt.Printf("'%s' on %s: %g\n", activity.Name, day, stored)
	return nil
}

// HabitsClearCmd removes a habit log
type HabitsClearCmd struct {
	Activity string `arg:"" help:"Habit activity (id or unique name)"`
	Day      string `help:"Day to clear (YYYY-MM-DD, default today)" default:""`
}

// Run executes the clear command
func (s *HabitsClearCmd) Run(cli *CLI) error {
	ctx := context.Background()
	activity, err := cli.Container.ActivityService.Resolve(ctx, s.Activity)
	if err != nil {
		return err
	}

	day := domain.Today()
	if s.Day != "" {
		day, err = domain.ParseDay(s.Day)
		if err != nil {
			return err
		}
	}

	if err := cli.Container.HabitService.Clear(ctx, activity.ID, day); err != nil {
		return fmt.Errorf("failed to clear habit log: %w", err)
	}
	fmt.Printf("Cleared '%s' on %s\n", activity.Name, day)
	return nil
}

// HabitsStatusCmd shows completion for a day
type HabitsStatusCmd struct {
	Day string `help:"Day to show (YYYY-MM-DD, default today)" default:""`
}

// Run executes the status command
func (s *HabitsStatusCmd) Run(cli *CLI) error {
	ctx := context.Background()

	day := domain.Today()
	if s.Day != "" {
		var err error
		day, err = domain.ParseDay(s.Day)
		if err != nil {
			return err
		}
	}

	statuses, err := cli.Container.Analytics.CompletionStatus(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to compute habit status: %w", err)
	}
	if len(statuses) == 0 {
		fmt.Println("No habits configured. Add one with: stint activities habit <activity>")
		return nil
	}

	highlighted, err := cli.Container.Analytics.ExceedsThreshold(ctx, day)
	if err != nil {
		return err
	}
	fmt.Println(ui.RenderHabitStatus(day, statuses, highlighted))
	return nil
}

// HabitsStreakCmd shows the global streak
type HabitsStreakCmd struct{}

// Run executes the streak command
func (s *HabitsStreakCmd) Run(cli *CLI) error {
	streak, err := cli.Container.Analytics.GlobalDailyStreak(context.Background(), domain.Today())
	if err != nil {
		return fmt.Errorf("failed to compute streak: %w", err)
	}
	fmt.Printf("Current streak: %d day(s)\nLongest streak: %d day(s)\n", streak.Current, streak.Longest)
	return nil
}

// HabitsHeatmapCmd renders completion intensity over a date range
type HabitsHeatmapCmd struct {
	Weeks int `help:"Number of trailing weeks to render" default:"12"`
}

// Run executes the heatmap command
func (s *HabitsHeatmapCmd) Run(cli *CLI) error {
	ctx := context.Background()
	today := domain.Today()
	from := today.AddDays(-7*s.Weeks + 1)

	intensities := make(map[domain.Day]ui.HeatmapCell)
	for day := from; !day.After(today); day = day.AddDays(1) {
		intensity, ok, err := cli.Container.Analytics.HeatmapIntensity(ctx, day)
		if err != nil {
			return fmt.Errorf("failed to compute heatmap: %w", err)
		}
		intensities[day] = ui.HeatmapCell{Intensity: intensity, HasData: ok}
	}

	weekStart := time.Monday
	if cli.settings != nil && strings.EqualFold(cli.settings.WeekStart, "sunday") {
		weekStart = time.Sunday
	}
	fmt.Println(ui.RenderHeatmap(from, today, intensities, weekStart))
	return nil
}
