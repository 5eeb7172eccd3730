package cmd

import (
	"context"
	"fmt"

	"stint/internal/domain"
)

// EntriesCmd manages committed time entries
type EntriesCmd struct {
	Add  EntriesAddCmd  `cmd:"add" help:"Add a manual time entry"`
	Del  EntriesDelCmd  `cmd:"del" help:"Delete a time entry"`
	Edit EntriesEditCmd `cmd:"edit" help:"Edit a time entry's duration"`
	List EntriesListCmd `cmd:"list" help:"List time entries for an activity" default:"1"`
}

// EntriesListCmd lists entries for an activity
type EntriesListCmd struct {
	Activity string `arg:"" help:"Activity (id or unique name)"`
}

// Run executes the list command
func (s *EntriesListCmd) Run(cli *CLI) error {
	ctx := context.Background()
	activity, err := cli.Container.ActivityService.Resolve(ctx, s.Activity)
	if err != nil {
		return err
	}
	entries, err := cli.Container.EntryService.ForActivity(ctx, activity.ID)
	if err != nil {
		return fmt.Errorf("failed to list entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Printf("No entries for '%s'\n", activity.Name)
		return nil
	}
	for _, entry := range entries {
		fmt.Printf("%s  %s  %-8s %s\n",
			entry.ID,
			entry.StartedAt.Local().Format("2006-01-02 15:04"),
			entry.Duration.Round(0),
			entry.Provenance)
	}
	return nil
}

// EntriesAddCmd adds a manual time entry
type EntriesAddCmd struct {
	Activity string `arg:"" help:"Activity (id or unique name)"`
	Minutes  int64  `arg:"" help:"Duration in minutes"`
	Day      string `help:"Day the entry belongs to (YYYY-MM-DD, default today)" default:""`
}

// Run executes the add command
func (s *EntriesAddCmd) Run(cli *CLI) error {
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

	id, err := cli.Container.EntryService.AddManual(ctx, activity.ID, day, s.Minutes)
	if err != nil {
		return fmt.Errorf("failed to add entry: %w", err)
	}
	fmt.Printf("Entry %s added: %dm on %s for '%s'\n", id, s.Minutes, day, activity.Name)
	return nil
}

// EntriesEditCmd changes an entry's duration
type EntriesEditCmd struct {
	ID      string `arg:"" help:"Entry id"`
	Minutes int64  `arg:"" help:"New duration in minutes"`
}

// Run executes the edit command
func (s *EntriesEditCmd) Run(cli *CLI) error {
	if err := cli.Container.EntryService.EditDuration(context.Background(), s.ID, s.Minutes); err != nil {
		return fmt.Errorf("failed to edit entry: %w", err)
	}
	fmt.Printf("Entry %s updated to %dm\n", s.ID, s.Minutes)
	return nil
}

// EntriesDelCmd deletes an entry
type EntriesDelCmd struct {
	ID string `arg:"" help:"Entry id"`
}

// Run executes the del command
func (s *EntriesDelCmd) Run(cli *CLI) error {
	if err := cli.Container.EntryService.Delete(context.Background(), s.ID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	fmt.Printf("Entry %s deleted\n", s.ID)
	return nil
}
