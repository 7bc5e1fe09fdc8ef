package tui

import "github.com/charmbracelet/lipgloss"

// Palette. The accent follows the After Effects icon.
var (
	colorAccent  = lipgloss.Color("#9999FF")
	colorInfo    = lipgloss.Color("#38BDF8")
	colorOK      = lipgloss.Color("#4ADE80")
	colorWarn    = lipgloss.Color("#FBBF24")
	colorFail    = lipgloss.Color("#F87171")
	colorDim     = lipgloss.Color("#71717A")
	colorFrame   = lipgloss.Color("#3F3F46")
	colorCursor  = lipgloss.Color("#312E81")
	colorBright  = lipgloss.Color("#F4F4F5")
	colorBarBack = lipgloss.Color("#18181B")
)

// Header and panels.
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBarBack).Background(colorAccent).Padding(0, 1)

	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorFrame).Padding(0, 1)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorInfo)
)

// Process table rows.
var (
	tableSelectedStyle    = lipgloss.NewStyle().Background(colorCursor).Foreground(colorBright)
	tableMultiSelectStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
)

// Details panel.
var (
	detailsTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1)
	detailsLabelStyle = lipgloss.NewStyle().Foreground(colorDim)
	detailsValueStyle = lipgloss.NewStyle().Foreground(colorBright)
	killedStyle       = lipgloss.NewStyle().Foreground(colorOK)
	skippedStyle      = lipgloss.NewStyle().Foreground(colorWarn)
	errorStyle        = lipgloss.NewStyle().Foreground(colorFail).Bold(true)
)

// Status bar.
var (
	statusBarStyle  = lipgloss.NewStyle().Background(colorBarBack).Padding(0, 1)
	statusDescStyle = lipgloss.NewStyle().Foreground(colorDim)
	pausedStyle     = lipgloss.NewStyle().Foreground(colorWarn).Bold(true)
	refreshingStyle = lipgloss.NewStyle().Foreground(colorOK)
)
