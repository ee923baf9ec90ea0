// Package styles provides the shared lipgloss palette for UI
// components. Call Init with the configured theme name before
// rendering any UI.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color variables updated by Init / applyTheme.
var (
	Primary color.Color = DefaultTheme.Primary
	Accent  color.Color = DefaultTheme.Accent
	Success color.Color = DefaultTheme.Success
	Error   color.Color = DefaultTheme.Error
	Muted   color.Color = DefaultTheme.Muted
	Normal  color.Color = DefaultTheme.Normal
	Info    color.Color = DefaultTheme.Info
)

// Common styles, rebuilt when the theme changes.
var (
	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)
	AccentStyle  = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
	NormalStyle  = lipgloss.NewStyle().Foreground(Normal)
	InfoStyle    = lipgloss.NewStyle().Foreground(Info).Italic(true)
)

func applyTheme(t Theme) {
	Primary = t.Primary
	Accent = t.Accent
	Success = t.Success
	Error = t.Error
	Muted = t.Muted
	Normal = t.Normal
	Info = t.Info

	PrimaryStyle = lipgloss.NewStyle().Foreground(t.Primary)
	AccentStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(t.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(t.Error)
	MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
	NormalStyle = lipgloss.NewStyle().Foreground(t.Normal)
	InfoStyle = lipgloss.NewStyle().Foreground(t.Info).Italic(true)
}
