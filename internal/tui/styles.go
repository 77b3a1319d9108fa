// Package tui renders the resonance page in the terminal with bubbletea.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("#8B5CF6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorBorder  = lipgloss.Color("#374151")
	colorWarning = lipgloss.Color("#FFC107")
	colorDanger  = lipgloss.Color("#E53935")
	colorSuccess = lipgloss.Color("#8BC34A")
)

// Styles holds every lipgloss style the page uses.
type Styles struct {
	Title     lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Input     lipgloss.Style
	Panel     lipgloss.Style
	Heading   lipgloss.Style
	Muted     lipgloss.Style
	Notice    lipgloss.Style
	Selected  lipgloss.Style
	Chat      lipgloss.Style
	Help      lipgloss.Style

	Safe    lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
}

// DefaultStyles returns the page's standard look.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(colorMuted),
		ActiveTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(colorAccent),
		Input:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(0, 1),
		Panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1),
		Heading:   lipgloss.NewStyle().Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(colorMuted),
		Notice:    lipgloss.NewStyle().Foreground(colorWarning).Bold(true),
		Selected:  lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		Chat:      lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(colorBorder).PaddingLeft(1),
		Help:      lipgloss.NewStyle().Foreground(colorMuted),
		Safe:      lipgloss.NewStyle().Foreground(colorSuccess),
		Warning:   lipgloss.NewStyle().Foreground(colorWarning),
		Danger:    lipgloss.NewStyle().Foreground(colorDanger).Bold(true),
	}
}
