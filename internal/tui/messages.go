package tui

import (
	"time"

	"github.com/pranshuparmar/renderwatch/internal/monitor"
)

// tickMsg signals a refresh tick
type tickMsg time.Time

// snapshotMsg carries a freshly constructed monitor
type snapshotMsg struct {
	monitor *monitor.Monitor
	err     error
}

// killResultMsg reports the outcome of a kill request
type killResultMsg struct {
	killed  []string
	skipped []string
	failed  map[string]error
}

// ConfigReloadedMsg swaps the snapshot source and interval while running.
// Send it with tea.Program.Send after the config file changes.
type ConfigReloadedMsg struct {
	Snapshot SnapshotFunc
	Interval time.Duration
}
