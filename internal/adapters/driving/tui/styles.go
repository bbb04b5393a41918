package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the pre-configured lipgloss styles for the live view.
type Styles struct {
	// Title style for the position header.
	Title lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Selected style for the highlighted service row.
	Selected lipgloss.Style

	// Warning style for degraded-state notices.
	Warning lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// StatusBar style for the bottom key help line.
	StatusBar lipgloss.Style
}

// DefaultStyles returns the default styling.
func DefaultStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#06B6D4")),

		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CDD6F4")),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086")),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#CDD6F4")).
			Background(lipgloss.Color("#7C3AED")),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F9E2AF")),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F38BA8")),

		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086")).
			Padding(0, 1),
	}
}
