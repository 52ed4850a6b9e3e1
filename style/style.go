// Package style provides small lipgloss rendering helpers for CLI and TUI output.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/watchtime-cli/watchtime/color"
)

// New returns an empty lipgloss.Style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg returns a renderer applying the given foreground color.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return New().Foreground(c).Render(s) }
}

var (
	Faint  = func(s string) string { return New().Faint(true).Render(s) }
	Bold   = func(s string) string { return New().Bold(true).Render(s) }
	Italic = func(s string) string { return New().Italic(true).Render(s) }
)

// Title renders a padded banner.
var Title = func(s string) string {
	return New().Foreground(color.New("230")).Background(color.New("62")).Padding(0, 1).Render(s)
}

// Box wraps content in a rounded border of the given color.
func Box(c lipgloss.Color) lipgloss.Style {
	return New().Border(lipgloss.RoundedBorder()).BorderForeground(c).Padding(1, 2).Margin(1, 0)
}
