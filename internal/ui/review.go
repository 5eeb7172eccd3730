package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"stint/internal/domain"
	"stint/internal/services"
)

var (
	excludedStyle  = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("241"))
	breakStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	deviationStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	doneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// CommitFunc runs the review commit against storage.
type CommitFunc func(review *services.Review) (services.CommitResult, error)

// ReviewModel is the post-session review screen: include/exclude intervals,
// override durations, then commit everything in one batch.
type ReviewModel struct {
	review *services.Review
	names  map[string]string
	commit CommitFunc
	keys   reviewKeyMap
	help   help.Model

	cursor  int
	editing bool
	form    *huh.Form
	minutes string
	errMsg  string

	// Result is set once the commit succeeds.
	Result    services.CommitResult
	Committed bool
	Err       error
}

// NewReview creates the review screen for a finished session.
func NewReview(review *services.Review, names map[string]string, commit CommitFunc) *ReviewModel {
	return &ReviewModel{
		review: review,
		names:  names,
		commit: commit,
		keys:   defaultReviewKeys(),
		help:   help.New(),
	}
}

func (m *ReviewModel) Init() tea.Cmd {
	return nil
}

func (m *ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	items := m.review.Items()
	m.errMsg = ""

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Toggle):
		if m.cursor < len(items) {
			if err := m.review.SetIncluded(m.cursor, !items[m.cursor].Interval.Included); err != nil {
				m.errMsg = err.Error()
			}
		}
	case key.Matches(keyMsg, m.keys.Remove):
		if m.cursor < len(items) {
			if err := m.review.Remove(m.cursor); err != nil {
				m.errMsg = err.Error()
			} else if m.cursor > 0 {
				m.cursor--
			}
		}
	case key.Matches(keyMsg, m.keys.Edit):
		if m.cursor < len(items) {
			m.startEdit(items[m.cursor])
			return m, m.form.Init()
		}
	case key.Matches(keyMsg, m.keys.Commit):
		result, err := m.commit(m.review)
		if err != nil {
			m.Err = err
			m.errMsg = err.Error()
			return m, nil
		}
		m.Result = result
		m.Committed = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Discard):
		return m, tea.Quit
	}
	return m, nil
}

func (m *ReviewModel) startEdit(item services.ReviewItem) {
	m.minutes = strconv.Itoa(int(item.Interval.Duration().Round(time.Minute) / time.Minute))
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Duration (minutes)").
				Description("Replaces the measured duration for this interval").
				Value(&m.minutes).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 0 {
						return fmt.Errorf("enter a non-negative whole number of minutes")
					}
					return nil
				}),
		),
	)
	m.editing = true
}

func (m *ReviewModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.editing = false
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.editing = false
		n, err := strconv.Atoi(strings.TrimSpace(m.minutes))
		if err == nil {
			if err := m.review.OverrideDuration(m.cursor, time.Duration(n)*time.Minute); err != nil {
				m.errMsg = err.Error()
			}
		}
		return m, nil
	}
	return m, cmd
}

func (m *ReviewModel) View() string {
	if m.editing {
		return m.form.View()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Review session"))
	b.WriteString("\n\n")

	items := m.review.Items()
	if len(items) == 0 {
		b.WriteString(dimStyle.Render("Nothing to review"))
		b.WriteString("\n")
	}

	for i, item := range items {
		iv := item.Interval
		name := m.names[iv.ActivityID]
		if name == "" {
			name = iv.ActivityID
		}

		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		duration := formatDuration(iv.Duration())
		if iv.Override != nil {
			duration += " (edited)"
		}
		line := fmt.Sprintf("%s%-20s %-6s %s  %s",
			cursor, name, iv.Kind, iv.Start.Local().Format("15:04"), duration)

		switch {
		case iv.Kind == domain.IntervalBreak:
			line = breakStyle.Render(line)
		case !iv.Included:
			line = excludedStyle.Render(line)
		case i == m.cursor:
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
	b.WriteString(dimStyle.Render("Breaks are shown for context and never committed."))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// RenderCommitResult summarizes a committed review for the terminal.
func RenderCommitResult(result services.CommitResult, names map[string]string) string {
	if len(result.Totals) == 0 {
		return dimStyle.Render("Nothing committed")
	}

	ids := make([]string, 0, len(result.Totals))
	for id := range result.Totals {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	noun := "entries"
	if len(result.EntryIDs) == 1 {
		noun = "entry"
	}

	var b strings.Builder
	b.WriteString(doneStyle.Render(fmt.Sprintf("Committed %d %s", len(result.EntryIDs), noun)))
	b.WriteString("\n")
	for _, id := range ids {
		name := names[id]
		if name == "" {
			name = id
		}
		line := fmt.Sprintf("  %-20s %s", name, formatDuration(result.Totals[id]))
		if result.Deviates[id] {
			line += deviationStyle.Render("  deviates >10% from your average")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
