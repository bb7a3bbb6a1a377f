package ui

import "github.com/charmbracelet/lipgloss"

var (
	// ColorAlert is used for rotation and truncation markers.
	ColorAlert = lipgloss.Color("11") // bright yellow
	// ColorOK is used for the follow indicator.
	ColorOK = lipgloss.Color("10") // bright green
	// ColorStats is used for counter values in the stats panel.
	ColorStats = lipgloss.Color("14") // bright cyan
	// ColorMuted is used for de-emphasised text.
	ColorMuted = lipgloss.Color("240")
	// ColorError is used for the fatal error screen.
	ColorError = lipgloss.Color("9") // bright red

	// StyleTitle is the application title in the top-right corner.
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	// StylePath renders the followed path in the top bar.
	StylePath = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	// StyleDivider renders a full-width horizontal rule.
	StyleDivider = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleFollow marks the status bar while auto-scroll is on.
	StyleFollow = lipgloss.NewStyle().Bold(true).Foreground(ColorOK)

	// StyleAlert styles rotation / truncation statuses.
	StyleAlert = lipgloss.NewStyle().Bold(true).Foreground(ColorAlert)

	// StyleMatch highlights filter matches inside a line.
	StyleMatch = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("13"))

	// StyleLabel is used for section titles.
	StyleLabel = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorStats)

	// StyleHelp is the footer help bar.
	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleMuted renders de-emphasised text.
	StyleMuted = lipgloss.NewStyle().Foreground(ColorMuted)

	// StyleError renders the fatal error message.
	StyleError = lipgloss.NewStyle().Bold(true).Foreground(ColorError)

	// StyleOverlayBorder is the border around the stats panel.
	StyleOverlayBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorStats).
				Padding(0, 1)

	// StyleStatValue renders stat counter values.
	StyleStatValue = lipgloss.NewStyle().Foreground(ColorStats).Bold(true)

	// StyleStatLabel renders stat counter labels.
	StyleStatLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// StatusStyle returns the style for a tailer status name.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "rotated", "truncated":
		return StyleAlert
	case "updated":
		return StyleFollow
	default:
		return StyleMuted
	}
}
