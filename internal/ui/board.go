package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"stint/internal/domain"
	"stint/internal/services"
)

// boardRefreshInterval is how often the status board re-reads storage.
const boardRefreshInterval = 30 * time.Second

type boardTickMsg time.Time

func boardTick() tea.Cmd {
	return tea.Tick(boardRefreshInterval, func(t time.Time) tea.Msg {
		return boardTickMsg(t)
	})
}

// BoardModel is a read-only daily status board: today's committed time per
// activity, the habit tracker, and the global streak. It is served over SSH
// and refreshes itself; it never writes.
type BoardModel struct {
	activities *services.ActivityService
	entries    *services.EntryService
	analytics  *services.HabitAnalytics

	day      domain.Day
	body     string
	errMsg   string
	OnClosed func()
}

// NewBoard creates a status board over read services.
func NewBoard(activities *services.ActivityService, entries *services.EntryService, analytics *services.HabitAnalytics) *BoardModel {
	return &BoardModel{
		activities: activities,
		entries:    entries,
		analytics:  analytics,
	}
}

func (m *BoardModel) Init() tea.Cmd {
	m.refresh()
	return boardTick()
}

func (m *BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardTickMsg:
		m.refresh()
		return m, boardTick()
	case tea.QuitMsg:
		if m.OnClosed != nil {
			m.OnClosed()
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if msg.String() == "r" {
			m.refresh()
		}
	}
	return m, nil
}

func (m *BoardModel) refresh() {
	ctx := context.Background()
	m.day = domain.Today()
	m.errMsg = ""

	var b strings.Builder

	entries, err := m.entries.ForDay(ctx, m.day)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	if len(entries) == 0 {
		b.WriteString(dimStyle.Render("No time entries today"))
		b.WriteString("\n")
	} else {
		totals := make(map[string]time.Duration)
		order := make([]string, 0)
		var total time.Duration
		for _, entry := range entries {
			if _, seen := totals[entry.ActivityID]; !seen {
				order = append(order, entry.ActivityID)
			}
			totals[entry.ActivityID] += entry.Duration
			total += entry.Duration
		}
		for _, id := range order {
			name := id
			if activity, err := m.activities.Resolve(ctx, id); err == nil {
				name = activity.Name
			}
			b.WriteString(fmt.Sprintf("  %-24s %s\n", name, formatDuration(totals[id])))
		}
		b.WriteString(fmt.Sprintf("  %-24s %s\n", "total", formatDuration(total)))
	}
	b.WriteString("\n")

	statuses, err := m.analytics.CompletionStatus(ctx, m.day)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	if len(statuses) > 0 {
		highlighted, err := m.analytics.ExceedsThreshold(ctx, m.day)
		if err != nil {
			m.errMsg = err.Error()
			return
		}
		b.WriteString(RenderHabitStatus(m.day, statuses, highlighted))
		b.WriteString("\n\n")

		streak, err := m.analytics.GlobalDailyStreak(ctx, m.day)
		if err != nil {
			m.errMsg = err.Error()
			return
		}
		b.WriteString(fmt.Sprintf("Streak: %d day(s), longest %d\n", streak.Current, streak.Longest))
	}

	m.body = b.String()
}

func (m *BoardModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("stint — %s", m.day)))
	b.WriteString("\n\n")
	b.WriteString(m.body)
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("r refresh · q quit"))
	return b.String()
}
