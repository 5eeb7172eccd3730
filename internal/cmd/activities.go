package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"stint/internal/domain"
)

// ActivitiesCmd manages the activity tree
type ActivitiesCmd struct {
	Add    ActivitiesAddCmd    `cmd:"add" help:"Add a new activity"`
	Del    ActivitiesDelCmd    `cmd:"del" help:"Delete an activity and everything beneath it"`
	Habit  ActivitiesHabitCmd  `cmd:"habit" help:"Configure or clear habit tracking for an activity"`
	List   ActivitiesListCmd   `cmd:"list" help:"List the activity tree" default:"1"`
	Move   ActivitiesMoveCmd   `cmd:"move" aliases:"mv" help:"Reorder an activity among its siblings"`
	Rename ActivitiesRenameCmd `cmd:"rename" help:"Rename an activity"`
}

// ActivitiesAddCmd adds a new activity
type ActivitiesAddCmd struct {
	Name   string `arg:"" help:"Name of the activity to add"`
	Parent string `help:"Parent activity (id or unique name)" default:""`
}

// Run executes the add command
func (s *ActivitiesAddCmd) Run(cli *CLI) error {
	ctx := context.Background()
	container := cli.Container

	var parentID *string
	if s.Parent != "" {
		parent, err := container.ActivityService.Resolve(ctx, s.Parent)
		if err != nil {
			return fmt.Errorf("failed to resolve parent: %w", err)
		}
		parentID = &parent.ID
	}

	activity, err := container.ActivityService.Create(ctx, s.Name, parentID)
	if err != nil {
		return fmt.Errorf("failed to add activity: %w", err)
	}

	fmt.Printf("Activity '%s' added (%s)\n", activity.Name, activity.ID)
	return nil
}

// ActivitiesListCmd prints the activity tree
type ActivitiesListCmd struct{}

// Run executes the list command
func (s *ActivitiesListCmd) Run(cli *CLI) error {
	ctx := context.Background()
	activities, err := cli.Container.ActivityService.Tree(ctx)
	if err != nil {
		return fmt.Errorf("failed to list activities: %w", err)
	}
	if len(activities) == 0 {
		fmt.Println("No activities yet. Add one with: stint activities add <name>")
		return nil
	}

	children := make(map[string][]domain.Activity)
	for _, a := range activities {
		key := ""
		if a.ParentID != nil {
			key = *a.ParentID
		}
		children[key] = append(children[key], a)
	}
	printTree(children, "", 0)
	return nil
}

func printTree(children map[string][]domain.Activity, parentKey string, depth int) {
	for _, a := range children[parentKey] {
		marker := ""
		if a.IsHabit() {
			marker = " [habit]"
		}
		fmt.Printf("%s%s%s  (%s)\n", strings.Repeat("  ", depth), a.Name, marker, a.ID)
		printTree(children, a.ID, depth+1)
	}
}

// ActivitiesRenameCmd renames an activity
type ActivitiesRenameCmd struct {
	Activity string `arg:"" help:"Activity to rename (id or unique name)"`
	Name     string `arg:"" help:"New name"`
}

// Run executes the rename command
func (s *ActivitiesRenameCmd) Run(cli *CLI) error {
	ctx := context.Background()
	activity, err := cli.Container.ActivityService.Resolve(ctx, s.Activity)
	if err != nil {
		return err
	}
	if err := cli.Container.ActivityService.Rename(ctx, activity.ID, s.Name); err != nil {
		return fmt.Errorf("failed to rename activity: %w", err)
	}
	fmt.Printf("Activity renamed to '%s'\n", s.Name)
	return nil
}

// ActivitiesDelCmd deletes an activity subtree
type ActivitiesDelCmd struct {
	Activity string `arg:"" help:"Activity to delete (id or unique name)"`
	Force    bool   `help:"Skip the confirmation prompt" short:"f"`
}

// Run executes the del command
func (s *ActivitiesDelCmd) Run(cli *CLI) error {
	ctx := context.Background()
	activity, err := cli.Container.ActivityService.Resolve(ctx, s.Activity)
	if err != nil {
		return err
	}

	if !s.Force {
		var confirmed bool
		prompt := huh.NewConfirm().
			Title(fmt.Sprintf("Delete '%s'?", activity.Name)).
			Description("Removes all nested activities, time entries, and habit logs.").
			Value(&confirmed)
		if err := prompt.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := cli.Container.ActivityService.Delete(ctx, activity.ID); err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	fmt.Printf("Activity '%s' deleted\n", activity.Name)
	return nil
}

// ActivitiesMoveCmd repositions an activity among its siblings
type ActivitiesMoveCmd struct {
	Activity string `arg:"" help:"Activity to move (id or unique name)"`
	Position int    `arg:"" help:"New zero-based position among siblings"`
}

// Run executes the move command
func (s *ActivitiesMoveCmd) Run(cli *CLI) error {
	ctx := context.Background()
	container := cli.Container

	activity, err := container.ActivityService.Resolve(ctx, s.Activity)
	if err != nil {
		return err
	}

	all, err := container.ActivityService.Tree(ctx)
	if err != nil {
		return err
	}

	var siblings []string
	for _, a := range all {
		if sameParent(a.ParentID, activity.ParentID) && a.ID != activity.ID {
			siblings = append(siblings, a.ID)
		}
	}

	pos := s.Position
	if pos < 0 {
		pos = 0
	}
	if pos > len(siblings) {
		pos = len(siblings)
	}
	ordered := make([]string, 0, len(siblings)+1)
	ordered = append(ordered, siblings[:pos]...)
	ordered = append(ordered, activity.ID)
	ordered = append(ordered, siblings[pos:]...)

	if err := container.ActivityService.MoveSiblings(ctx, activity.ParentID, ordered); err != nil {
		return fmt.Errorf("failed to move activity: %w", err)
	}
	fmt.Printf("Activity '%s' moved to position %d\n", activity.Name, pos)
	return nil
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// ActivitiesHabitCmd configures habit tracking
type ActivitiesHabitCmd struct {
	Activity string  `arg:"" help:"Activity to configure (id or unique name)"`
	Kind     string  `help:"Habit kind" enum:"binary,percentage,numeric,none" default:"binary"`
	Unit     string  `help:"Unit label for numeric habits (e.g. pages)" default:""`
	Goal     float64 `help:"Daily goal for numeric habits (0 = no goal)" default:"0"`
}

// Run executes the habit command
func (s *ActivitiesHabitCmd) Run(cli *CLI) error {
	ctx := context.Background()
	container := cli.Container

	activity, err := container.ActivityService.Resolve(ctx, s.Activity)
	if err != nil {
		return err
	}

	if s.Kind == "none" {
		if err := container.ActivityService.RemoveHabit(ctx, activity.ID); err != nil {
			return fmt.Errorf("failed to clear habit config: %w", err)
		}
		fmt.Printf("'%s' is no longer tracked as a habit\n", activity.Name)
		return nil
	}

	var goal *float64
	if s.Goal > 0 {
		goal = &s.Goal
	}
	if err := container.ActivityService.ConfigureHabit(ctx, activity.ID, domain.HabitKind(s.Kind), s.Unit, goal); err != nil {
		return fmt.Errorf("failed to configure habit: %w", err)
	}
	fmt.Printf("'%s' is now a %s habit\n", activity.Name, s.Kind)
	return nil
}
