package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	tableWidth := int(float64(m.width) * 0.6)
	detailsWidth := m.width - tableWidth - 4

	header := titleStyle.Render(m.title)
	main := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderTablePanel(tableWidth),
		m.renderDetailsPanel(detailsWidth),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, main, m.renderHelpBar())
}

// panelHeight is what is left after the header and help bar
func (m Model) panelHeight() int {
	helpLines := 1
	if m.help.ShowAll {
		helpLines = 5
	}
	return max(m.height-3-helpLines, 3)
}

// renderTablePanel renders the process table
func (m Model) renderTablePanel(width int) string {
	height := m.panelHeight()
	var sb strings.Builder

	sb.WriteString(headerStyle.Render(fmt.Sprintf("  %-10s %s", "PID", "NAME")))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Foreground(colorFrame).Render(strings.Repeat("─", max(width-4, 0))))
	sb.WriteString("\n")

	switch {
	case m.monitor != nil && m.monitor.Bypassed():
		sb.WriteString(m.centered(width, "Process check skipped (bypass enabled)"))
	case len(m.records) == 0:
		sb.WriteString(m.centered(width, "No render processes running"))
	default:
		rows := min(len(m.records), max(height-2, 1))
		start := 0
		if m.cursorIndex >= rows {
			start = m.cursorIndex - rows + 1
		}
		for i := start; i < start+rows; i++ {
			sb.WriteString(m.renderTableRow(i, width-4))
			if i < start+rows-1 {
				sb.WriteString("\n")
			}
		}
	}

	return panelStyle.Width(width).Height(height).Render(sb.String())
}

func (m Model) centered(width int, text string) string {
	return lipgloss.NewStyle().
		Foreground(colorDim).
		Width(max(width-4, 0)).
		Align(lipgloss.Center).
		Render(text)
}

// renderTableRow renders a single process row
func (m Model) renderTableRow(idx int, width int) string {
	p := m.records[idx]
	isSelected := m.selected[p.PID]
	isCursor := idx == m.cursorIndex

	marker := "  "
	switch {
	case isCursor && isSelected:
		marker = tableMultiSelectStyle.Render("▸ ")
	case isCursor:
		marker = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("> ")
	case isSelected:
		marker = tableMultiSelectStyle.Render("• ")
	}

	row := marker + fmt.Sprintf("%-10s %s", p.PID, p.Name)
	if isCursor {
		row = tableSelectedStyle.Width(width).Render(row)
	}
	return row
}

// renderHelpBar renders the bottom help/status bar
func (m Model) renderHelpBar() string {
	var status string
	switch {
	case m.paused:
		status = pausedStyle.Render("⏸ PAUSED")
	case m.refreshing:
		status = refreshingStyle.Render("↻ refreshing...")
	default:
		status = statusDescStyle.Render("updated " + formatTimeSince(m.lastRefresh, time.Now()))
	}
	if count := m.selectedCount(); count > 0 {
		status += statusDescStyle.Render(fmt.Sprintf(" | %d selected", count))
	}
	if m.notice != "" {
		status += statusDescStyle.Render(" | " + m.notice)
	}

	left := m.help.View(m.keys)
	spacing := max(m.width-lipgloss.Width(left)-lipgloss.Width(status)-2, 1)

	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", spacing) + status)
}

// formatTimeSince formats how long ago t was, relative to now
func formatTimeSince(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := now.Sub(t)
	if d < time.Second {
		return "just now"
	}
	return fmt.Sprintf("%ds ago", int(d.Seconds()))
}
