package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#89B4FA")
	muted  = lipgloss.Color("#585B70")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B4BEFE"))

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#1E1E2E")).
		Background(lipgloss.Color("#CBA6F7"))

	selectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#1E1E2E")).
		Background(accent)

	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	stoppedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
	messageStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#F9E2AF"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6ADC8")).PaddingTop(1)

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(muted).
		Padding(1, 2)
)
