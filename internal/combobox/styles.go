package combobox

import (
	"charm.land/lipgloss/v2"

	"github.com/okessler/sugg/internal/ui/styles"
)

// Style functions that return styles based on the current theme.
// These are functions instead of variables to pick up theme changes.

func labelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Primary)
}

func toggleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(styles.Muted)
}

func placeholderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(styles.Muted).
		Italic(true)
}

func focusedOptionStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Accent)
}

func descriptionStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(styles.Muted)
}
