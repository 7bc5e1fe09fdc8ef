// Package tui implements the `renderwatch watch` dashboard: a live list of
// render processes with validate-before-kill.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pranshuparmar/renderwatch/internal/logging"
	"github.com/pranshuparmar/renderwatch/internal/monitor"
	"github.com/pranshuparmar/renderwatch/pkg/model"
)

// DefaultInterval is used when Config.Interval is not positive.
const DefaultInterval = 2 * time.Second

// SnapshotFunc takes a fresh process snapshot.
type SnapshotFunc func(ctx context.Context) (*monitor.Monitor, error)

// Config configures the dashboard.
type Config struct {
	Snapshot SnapshotFunc
	Interval time.Duration
	// Title is shown in the header bar.
	Title string
}

// Model is the bubbletea model for the dashboard
type Model struct {
	ctx      context.Context
	keys     KeyMap
	help     help.Model
	logger   *slog.Logger
	snapshot SnapshotFunc
	interval time.Duration
	title    string

	monitor     *monitor.Monitor
	records     []model.ProcessRecord
	cursorIndex int
	selected    map[string]bool

	paused      bool
	refreshing  bool
	lastRefresh time.Time
	killResults *killResultMsg
	notice      string
	err         error

	width  int
	height int
}

// New creates the dashboard model. ctx bounds every command it runs.
func New(ctx context.Context, cfg Config) Model {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	title := cfg.Title
	if title == "" {
		title = "renderwatch"
	}
	return Model{
		ctx:      ctx,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		logger:   logging.GetLogger("tui"),
		snapshot: cfg.Snapshot,
		interval: interval,
		title:    title,
		selected: make(map[string]bool),
	}
}

// NewProgram wraps m in a full-screen program bound to m's context.
func NewProgram(m Model, opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(m.ctx)}, opts...)
	return tea.NewProgram(m, opts...)
}

// Init starts the first snapshot and the refresh ticker
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.snapshotCmd(), tickCmd(m.interval))
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) snapshotCmd() tea.Cmd {
	snapshot, ctx := m.snapshot, m.ctx
	return func() tea.Msg {
		if snapshot == nil {
			return snapshotMsg{}
		}
		mon, err := snapshot(ctx)
		return snapshotMsg{monitor: mon, err: err}
	}
}

// currentProcess returns the record under the cursor
func (m Model) currentProcess() *model.ProcessRecord {
	if m.cursorIndex < 0 || m.cursorIndex >= len(m.records) {
		return nil
	}
	return &m.records[m.cursorIndex]
}

func (m Model) selectedCount() int {
	return len(m.selected)
}
