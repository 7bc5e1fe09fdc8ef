package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderDetailsPanel renders the right-side panel: the current process,
// snapshot state and the outcome of the last kill.
func (m Model) renderDetailsPanel(width int) string {
	height := m.panelHeight()
	inner := max(width-4, 0)

	var sections []string

	if p := m.currentProcess(); p != nil {
		sections = append(sections, detailsTitleStyle.Render("PID "+p.PID))
		sections = append(sections, m.renderDetailSection("NAME", p.Name, inner))
	} else {
		sections = append(sections, detailsTitleStyle.Render("No selection"))
	}

	if m.monitor != nil {
		state := "idle"
		switch {
		case m.monitor.Bypassed():
			state = "bypassed"
		case m.monitor.IsActive():
			state = fmt.Sprintf("active, %d processes", len(m.records))
		}
		sections = append(sections, m.renderDetailSection("SNAPSHOT", state, inner))
	}

	if m.err != nil {
		sections = append(sections, detailsLabelStyle.Render("ERROR")+"\n"+errorStyle.Width(inner).Render(m.err.Error()))
	}

	if r := m.killResults; r != nil {
		sections = append(sections, m.renderKillSection(*r, inner))
	}

	return panelStyle.Width(width).Height(height).Render(strings.Join(sections, "\n\n"))
}

// renderDetailSection renders a labeled section
func (m Model) renderDetailSection(label, value string, width int) string {
	return detailsLabelStyle.Render(label) + "\n" + detailsValueStyle.Width(width).Render(value)
}

func (m Model) renderKillSection(r killResultMsg, width int) string {
	lines := []string{detailsLabelStyle.Render("LAST KILL")}
	for _, pid := range r.killed {
		lines = append(lines, killedStyle.Render("✓ "+pid+" killed"))
	}
	for _, pid := range r.skipped {
		lines = append(lines, skippedStyle.Render("- "+pid+" skipped (no longer running)"))
	}

	failed := make([]string, 0, len(r.failed))
	for pid := range r.failed {
		failed = append(failed, pid)
	}
	sort.Strings(failed)
	for _, pid := range failed {
		lines = append(lines, errorStyle.Width(width).Render(fmt.Sprintf("✗ %s: %v", pid, r.failed[pid])))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
