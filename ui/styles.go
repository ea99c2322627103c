package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/webshoplabs/accesspanel/internal/prefs"
)

// palette is the terminal rendition of one contrast mode.
type palette struct {
	fg     lipgloss.Color
	bg     lipgloss.Color
	accent lipgloss.Color
}

func paletteFor(c prefs.Contrast) palette {
	switch c {
	case prefs.ContrastHigh:
		return palette{fg: lipgloss.Color("15"), bg: lipgloss.Color("0"), accent: lipgloss.Color("11")}
	case prefs.ContrastDark:
		return palette{fg: lipgloss.Color("252"), bg: lipgloss.Color("234"), accent: lipgloss.Color("39")}
	case prefs.ContrastInvert:
		return palette{fg: lipgloss.Color("0"), bg: lipgloss.Color("15"), accent: lipgloss.Color("27")}
	default:
		return palette{fg: lipgloss.Color("250"), bg: lipgloss.Color(""), accent: lipgloss.Color("35")}
	}
}

var (
	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1)

	liveRegionStyle = lipgloss.NewStyle().
			Italic(true)

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	controlStyle = lipgloss.NewStyle().
			Padding(0, 1)

	pressedStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true)

	focusedStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Reverse(true)

	disabledStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Faint(true)

	helpStyle = lipgloss.NewStyle().
			Faint(true).
			Padding(0, 1)
)
