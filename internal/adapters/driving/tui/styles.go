package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the pre-configured lipgloss styles for the watch
// surface.
type Styles struct {
	// Title style for the header line.
	Title lipgloss.Style

	// Muted style for the catalog path and the status line.
	Muted lipgloss.Style

	// Result style for resolved output lines.
	Result lipgloss.Style

	// Error style for reload failures.
	Error lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() *Styles {
	return &Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Result: lipgloss.NewStyle().PaddingLeft(2),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
	}
}
