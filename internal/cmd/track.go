package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"stint/internal/config"
	"stint/internal/domain"
	"stint/internal/lockfile"
	"stint/internal/services"
	"stint/internal/timer"
	"stint/internal/ui"
)

// TrackCmd starts timers for one or more activities and reviews the session
type TrackCmd struct {
	Activities []string `arg:"" optional:"" help:"Activities to track (id or unique name)"`
	Countdown  bool     `help:"Count down against each activity's historical average" short:"c"`
}

// Run executes the track command
func (s *TrackCmd) Run(cli *CLI) error {
	ctx := context.Background()
	container := cli.Container

	if len(s.Activities) == 0 {
		return fmt.Errorf("nothing to track: pass at least one activity (see 'stint activities list')")
	}

	// Only one live tracking process per machine; entries committed from two
	// processes at once would double-count time.
	lock, err := lockfile.Acquire(filepath.Join(config.GetHomeDir(), "track.lock"))
	if err != nil {
		if errors.Is(err, lockfile.ErrHeld) {
			return fmt.Errorf("another stint tracking session is already running")
		}
		return err
	}
	defer lock.Release()

	names := make(map[string]string)
	ids := make([]string, 0, len(s.Activities))
	for _, ref := range s.Activities {
		activity, err := container.ActivityService.Resolve(ctx, ref)
		if err != nil {
			return err
		}
		ids = append(ids, activity.ID)
		names[activity.ID] = activity.Name
	}

	mode := timer.ModeStandard
	if s.Countdown {
		mode = timer.ModeCountdown
	}

	result, err := container.Engine.StartSession(ctx, ids, mode)
	if err != nil {
		return err
	}
	for _, skipped := range result.Skipped {
		if errors.Is(skipped.Reason, domain.ErrNoHistoryForCountdown) {
			fmt.Printf("Warning: '%s' has no history yet, skipping countdown for it\n", names[skipped.ActivityID])
		} else {
			fmt.Printf("Warning: skipping '%s': %v\n", names[skipped.ActivityID], skipped.Reason)
		}
	}
	if len(result.Started) == 0 {
		return fmt.Errorf("no timers started")
	}

	dashboard := ui.NewDashboard(container.Engine, names)
	program := tea.NewProgram(dashboard, tea.WithAltScreen())
	finalModel, err := program.Run()
	if err != nil {
		// Don't leave timers running behind a dead screen.
		container.Engine.EndSession()
		return fmt.Errorf("dashboard failed: %w", err)
	}
	done := finalModel.(*ui.DashboardModel)
	if done.Err != nil {
		return done.Err
	}
	if len(done.Intervals) == 0 {
		fmt.Println("Session ended with no intervals")
		return nil
	}

	review := services.NewReview(done.Intervals)
	commit := func(r *services.Review) (services.CommitResult, error) {
		return r.Commit(ctx, container.Store(), container.Estimator)
	}

	reviewModel := ui.NewReview(review, names, commit)
	reviewProgram := tea.NewProgram(reviewModel, tea.WithAltScreen())
	finalReview, err := reviewProgram.Run()
	if err != nil {
		return fmt.Errorf("review failed: %w", err)
	}
	reviewed := finalReview.(*ui.ReviewModel)
	if !reviewed.Committed {
		fmt.Println("Review discarded, nothing committed")
		return nil
	}

	fmt.Println(ui.RenderCommitResult(reviewed.Result, names))
	return nil
}
