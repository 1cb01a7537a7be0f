package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/simonbystrom/farmhand/internal/config"
)

// Styles holds every lipgloss style used by the watch view, built from the
// configured colors.
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Selected lipgloss.Style
	Ready    lipgloss.Style
	Starting lipgloss.Style
	Failed   lipgloss.Style
	Dimmed   lipgloss.Style
	Help     lipgloss.Style
	Border   lipgloss.Style
	Error    lipgloss.Style
}

// NewStyles builds the style set from the given colors.
func NewStyles(c config.Colors) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Title)).
			Padding(0, 1),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Header)),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(c.SelectedBG)).
			Foreground(lipgloss.Color(c.SelectedFG)),
		Ready: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Ready)).
			Bold(true),
		Starting: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Starting)),
		Failed: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Failed)).
			Bold(true),
		Dimmed: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Dimmed)),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Help)),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(c.Border)).
			Padding(0, 1),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Error)).
			Bold(true),
	}
}
