package tui

import "github.com/charmbracelet/lipgloss"

// Palette. Green marks money and the selected month; red is reserved for
// badges and failures.
var (
	colorPrimary   = lipgloss.Color("#2ECC71")
	colorMuted     = lipgloss.Color("#666666")
	colorSubtle    = lipgloss.Color("#3B4252")
	colorFg        = lipgloss.Color("#E5E9F0")
	colorAccent    = lipgloss.Color("#88C0D0")
	colorHighlight = lipgloss.Color("#EBCB8B")
	colorWarning   = lipgloss.Color("#D08770")
	colorError     = lipgloss.Color("#BF616A")
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

var (
	activeTabStyle = fg(colorPrimary).Bold(true).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)
	inactiveTabStyle = fg(colorMuted).Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(0, 2)
	activePanelStyle = panelStyle.BorderForeground(colorPrimary).Padding(1, 2)

	// Running total under the header label.
	totalStyle    = fg(colorPrimary).Bold(true)
	titleStyle    = fg(colorFg).Bold(true)
	subtitleStyle = fg(colorMuted).Italic(true)

	accentStyle    = fg(colorAccent)
	successStyle   = fg(colorPrimary)
	warningStyle   = fg(colorWarning)
	errorStyle     = fg(colorError).Bold(true)
	mutedStyle     = fg(colorMuted)
	highlightStyle = fg(colorHighlight)

	// Count badge next to a segment name.
	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorError).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = fg(colorMuted).Padding(0, 1)

	selectedItemStyle = fg(colorPrimary).Bold(true)
	normalItemStyle   = fg(colorFg)
)
