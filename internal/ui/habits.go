package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"stint/internal/domain"
	"stint/internal/services"
)

var (
	habitDoneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	habitUndoneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	habitHeaderStyle    = lipgloss.NewStyle().Bold(true)
	highlightDayStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	heatmapLevelColors  = []string{"238", "22", "28", "34", "40"}
	heatmapNoDataSymbol = "·"
)

// RenderHabitStatus renders one day's habit tracker column. The day header is
// highlighted when numeric goal attainment clears the tracker threshold.
func RenderHabitStatus(day domain.Day, statuses []services.HabitStatus, highlighted bool) string {
	var b strings.Builder

	header := fmt.Sprintf("Habits %s", day)
	if highlighted {
		header = highlightDayStyle.Render(header + " ★")
	} else {
		header = habitHeaderStyle.Render(header)
	}
	b.WriteString(header)
	b.WriteString("\n")

	for _, st := range statuses {
		mark := habitUndoneStyle.Render("✗")
		if st.Done {
			mark = habitDoneStyle.Render("✓")
		}

		value := "—"
		if st.Logged {
			switch st.Activity.Habit.Kind {
			case domain.HabitBinary:
				if st.Value >= 1 {
					value = "yes"
				} else {
					value = "no"
				}
			case domain.HabitPercentage:
				value = fmt.Sprintf("%g%%", st.Value)
			case domain.HabitNumeric:
				value = fmt.Sprintf("%g", st.Value)
				if st.Activity.Habit.Unit != "" {
					value += " " + st.Activity.Habit.Unit
				}
				if st.Activity.Habit.Goal != nil {
					value += fmt.Sprintf(" / %g", *st.Activity.Habit.Goal)
				}
			}
		}

		b.WriteString(fmt.Sprintf("  %s %-20s %s\n", mark, st.Activity.Name, value))
	}
	return strings.TrimRight(b.String(), "\n")
}

// HeatmapCell is one day in the completion heatmap. HasData distinguishes a
// day with zero completions from a day with no logs at all.
type HeatmapCell struct {
	Intensity float64
	HasData   bool
}

// RenderHeatmap renders weekly columns of daily completion intensity, one row
// per weekday, oldest week on the left. weekStart controls which weekday heads
// the column.
func RenderHeatmap(from, to domain.Day, cells map[domain.Day]HeatmapCell, weekStart time.Weekday) string {
	// Align the first column to the week-start day on or before "from".
	start := from
	for start.Time().Weekday() != weekStart {
		start = start.AddDays(-1)
	}

	weekdays := make([]string, 7)
	for row := 0; row < 7; row++ {
		weekdays[row] = time.Weekday((int(weekStart) + row) % 7).String()[:3]
	}
	var b strings.Builder

	for row := 0; row < 7; row++ {
		b.WriteString(dimStyle.Render(weekdays[row]))
		b.WriteString(" ")
		for week := start; !week.After(to); week = week.AddDays(7) {
			day := week.AddDays(row)
			if day.Before(from) || day.After(to) {
				b.WriteString(" ")
				continue
			}
			cell, ok := cells[day]
			if !ok || !cell.HasData {
				b.WriteString(dimStyle.Render(heatmapNoDataSymbol))
				continue
			}
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(heatmapColor(cell.Intensity))).
				Render("■"))
		}
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("%s … %s   · no data, ■ intensity", from, to)))
	return b.String()
}

// heatmapColor buckets an intensity in [0,1] into the color scale. A zero
// intensity still gets the darkest bucket so it reads as "logged, none done".
func heatmapColor(intensity float64) string {
	if intensity < 0 {
		intensity = 0
	}
	if intensity > 1 {
		intensity = 1
	}
	idx := int(intensity * float64(len(heatmapLevelColors)-1))
	return heatmapLevelColors[idx]
}
