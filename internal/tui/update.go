package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pranshuparmar/renderwatch/internal/monitor"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if m.paused || m.refreshing {
			return m, tickCmd(m.interval)
		}
		m.refreshing = true
		return m, tea.Batch(m.snapshotCmd(), tickCmd(m.interval))

	case snapshotMsg:
		m.refreshing = false
		m.lastRefresh = time.Now()
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		if msg.monitor != nil {
			m.monitor = msg.monitor
			m.records = msg.monitor.Records()
		}
		m.pruneSelection()
		return m, nil

	case killResultMsg:
		m.killResults = &msg
		for _, pid := range msg.killed {
			delete(m.selected, pid)
		}
		m.refreshing = true
		return m, m.snapshotCmd()

	case ConfigReloadedMsg:
		if msg.Snapshot != nil {
			m.snapshot = msg.Snapshot
		}
		if msg.Interval > 0 {
			m.interval = msg.Interval
		}
		m.notice = "config reloaded"
		m.refreshing = true
		return m, m.snapshotCmd()
	}

	return m, nil
}

// pruneSelection drops selections for PIDs gone from the snapshot and
// keeps the cursor in range.
func (m *Model) pruneSelection() {
	live := make(map[string]bool, len(m.records))
	for _, r := range m.records {
		live[r.PID] = true
	}
	for pid := range m.selected {
		if !live[pid] {
			delete(m.selected, pid)
		}
	}
	if m.cursorIndex >= len(m.records) {
		m.cursorIndex = max(len(m.records)-1, 0)
	}
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursorIndex > 0 {
			m.cursorIndex--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursorIndex < len(m.records)-1 {
			m.cursorIndex++
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if p := m.currentProcess(); p != nil {
			if m.selected[p.PID] {
				delete(m.selected, p.PID)
			} else {
				m.selected[p.PID] = true
			}
			if m.cursorIndex < len(m.records)-1 {
				m.cursorIndex++
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.SelectAll):
		for _, p := range m.records {
			m.selected[p.PID] = true
		}
		return m, nil

	case key.Matches(msg, m.keys.DeselectAll):
		m.selected = make(map[string]bool)
		return m, nil

	case key.Matches(msg, m.keys.Kill):
		return m.handleKill()

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.refreshing {
			return m, nil
		}
		m.refreshing = true
		return m, m.snapshotCmd()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

// handleKill kills selected processes, or the current one if none are selected
func (m Model) handleKill() (tea.Model, tea.Cmd) {
	if m.monitor == nil {
		return m, nil
	}

	pids := make([]string, 0)
	if m.selectedCount() > 0 {
		for _, p := range m.records {
			if m.selected[p.PID] {
				pids = append(pids, p.PID)
			}
		}
	} else if p := m.currentProcess(); p != nil {
		pids = append(pids, p.PID)
	}

	if len(pids) == 0 {
		return m, nil
	}
	return m, killCmd(m.ctx, m.monitor, m.logger, pids)
}

// killCmd validates and kills each pid through the monitor
func killCmd(ctx context.Context, mon *monitor.Monitor, logger *slog.Logger, pids []string) tea.Cmd {
	return func() tea.Msg {
		result := killResultMsg{failed: make(map[string]error)}
		for _, pid := range pids {
			_, killed, err := mon.Kill(ctx, pid)
			switch {
			case err != nil:
				// Includes *monitor.KillError, which carries the kill command's output.
				logger.Debug("Kill failed", "pid", pid, "error", err)
				result.failed[pid] = err
			case killed:
				result.killed = append(result.killed, pid)
			default:
				result.skipped = append(result.skipped, pid)
			}
		}
		return result
	}
}
