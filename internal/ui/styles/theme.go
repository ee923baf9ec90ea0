package styles

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for UI components.
type Theme struct {
	Primary color.Color // main accent color (titles, labels)
	Accent  color.Color // highlight color (focused rows)
	Success color.Color // positive outcomes (the picked word)
	Error   color.Color // error messages
	Muted   color.Color // placeholder/help text
	Normal  color.Color // standard text
	Info    color.Color // informational text
}

// Preset themes.
var (
	// DefaultTheme is the default color scheme.
	DefaultTheme = Theme{
		Primary: lipgloss.Color("62"),  // cyan/teal
		Accent:  lipgloss.Color("212"), // pink/magenta
		Success: lipgloss.Color("82"),  // green
		Error:   lipgloss.Color("196"), // red
		Muted:   lipgloss.Color("240"), // dark gray
		Normal:  lipgloss.Color("252"), // light gray
		Info:    lipgloss.Color("244"), // gray
	}

	// DraculaTheme is based on the Dracula color scheme.
	DraculaTheme = Theme{
		Primary: lipgloss.Color("#bd93f9"), // purple
		Accent:  lipgloss.Color("#ff79c6"), // pink
		Success: lipgloss.Color("#50fa7b"), // green
		Error:   lipgloss.Color("#ff5555"), // red
		Muted:   lipgloss.Color("#6272a4"), // comment
		Normal:  lipgloss.Color("#f8f8f2"), // foreground
		Info:    lipgloss.Color("#8be9fd"), // cyan
	}

	// NoneTheme renders without any colors (terminal defaults).
	// Formatting (bold/italic) is preserved.
	NoneTheme = Theme{
		Primary: lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Muted:   lipgloss.NoColor{},
		Normal:  lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
	}
)

var themes = map[string]Theme{
	"default": DefaultTheme,
	"dracula": DraculaTheme,
	"none":    NoneTheme,
}

var currentTheme = DefaultTheme

// Current returns the active theme.
func Current() Theme {
	return currentTheme
}

// ThemeNames returns the available preset names.
func ThemeNames() []string {
	return []string{"default", "dracula", "none"}
}

// Init selects the theme by name. Call after loading config and before
// displaying any UI. Unknown names warn on stderr and use the default.
func Init(name string) {
	theme, ok := themes[name]
	if !ok {
		if name != "" {
			fmt.Fprintf(os.Stderr, "Warning: unknown theme %q, using default (available: %s)\n",
				name, strings.Join(ThemeNames(), ", "))
		}
		theme = DefaultTheme
	}
	currentTheme = theme
	applyTheme(theme)
}
