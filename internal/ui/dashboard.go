package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stint/internal/domain"
	"stint/internal/logging"
	"stint/internal/timer"
)

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	runningStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	pausedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	overTargetStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// tickMsg drives the periodic display refresh. The accumulators stay correct
// regardless of tick cadence; this only affects how often the screen redraws.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// DashboardModel is the live tracking screen. It polls the session engine for
// read-only snapshots and issues pause/resume/end commands from key presses.
type DashboardModel struct {
	engine *timer.Engine
	names  map[string]string
	keys   dashboardKeyMap
	help   help.Model

	cursor   int
	statuses []timer.TimerStatus
	errMsg   string

	// Intervals carries the session's closed intervals out of the program
	// once the session ends.
	Intervals []domain.Interval
	Err       error
}

// NewDashboard creates the tracking dashboard over an active session.
func NewDashboard(engine *timer.Engine, names map[string]string) *DashboardModel {
	return &DashboardModel{
		engine: engine,
		names:  names,
		keys:   defaultDashboardKeys(),
		help:   help.New(),
	}
}

func (m *DashboardModel) Init() tea.Cmd {
	m.statuses = m.engine.Snapshot()
	return tick()
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.statuses = m.engine.Snapshot()
		if len(m.statuses) == 0 {
			// Every timer was ended individually; nothing left to show.
			return m, tea.Quit
		}
		if m.cursor >= len(m.statuses) {
			m.cursor = len(m.statuses) - 1
		}
		return m, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.statuses)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Pause):
			m.command(func(id string) error { return m.engine.PauseActivity(id) })
		case key.Matches(msg, m.keys.Resume):
			m.command(func(id string) error { return m.engine.ResumeActivity(id) })
		case key.Matches(msg, m.keys.End):
			m.endSelected()
			if !m.engine.Active() {
				return m, tea.Quit
			}
		case key.Matches(msg, m.keys.Quit):
			intervals, err := m.engine.EndSession()
			if err != nil {
				m.Err = err
			}
			m.Intervals = append(m.Intervals, intervals...)
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		m.statuses = m.engine.Snapshot()
	}
	return m, nil
}

func (m *DashboardModel) command(fn func(id string) error) {
	if m.cursor >= len(m.statuses) {
		return
	}
	m.errMsg = ""
	if err := fn(m.statuses[m.cursor].ActivityID); err != nil {
		m.errMsg = err.Error()
		logging.Logger.Debug("Timer command rejected", "error", err)
	}
}

func (m *DashboardModel) endSelected() {
	if m.cursor >= len(m.statuses) {
		return
	}
	m.errMsg = ""
	intervals, err := m.engine.EndActivity(m.statuses[m.cursor].ActivityID)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.Intervals = append(m.Intervals, intervals...)
}

func (m *DashboardModel) View() string {
	var b strings.Builder

	mode, _ := m.engine.Mode()
	b.WriteString(titleStyle.Render(fmt.Sprintf("Tracking (%s)", mode)))
	b.WriteString("\n\n")

	for i, st := range m.statuses {
		name := m.names[st.ActivityID]
		if name == "" {
			name = st.ActivityID
		}

		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		var state string
		switch st.State {
		case domain.TimerRunning:
			state = runningStyle.Render("● running")
		case domain.TimerPaused:
			state = pausedStyle.Render("◐ paused")
		default:
			state = dimStyle.Render("○ " + string(st.State))
		}

		line := fmt.Sprintf("%s%-20s %s  work %s  break %s",
			cursor, name, state,
			formatDuration(st.WorkTotal), formatDuration(st.BreakTotal))

		if st.Mode == timer.ModeCountdown {
			if st.OverTarget {
				line += overTargetStyle.Render(fmt.Sprintf("  over target by %s", formatDuration(-st.Remaining)))
			} else {
				line += dimStyle.Render(fmt.Sprintf("  %s left", formatDuration(st.Remaining)))
			}
		}

		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
