package terminal

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("212")
	mutedColor  = lipgloss.Color("241")
	panelColor  = lipgloss.Color("236")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	subtitleStyle = lipgloss.NewStyle().Foreground(accentColor)
	bodyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	mutedStyle    = lipgloss.NewStyle().Foreground(mutedColor)
	dotStyle      = lipgloss.NewStyle().Foreground(accentColor)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true)

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)

	rowStyle        = lipgloss.NewStyle().Padding(0, 1)
	rowFocusedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(accentColor).
			Bold(true).
			Padding(0, 1)
)

// panelStyle returns the frame of a section. background is a #RRGGBB
// string from the config, or empty.
func panelStyle(width, height int, background string) lipgloss.Style {
	bg := panelColor
	if background != "" {
		bg = lipgloss.Color(background)
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Background(bg).
		Padding(1, 2)
}
