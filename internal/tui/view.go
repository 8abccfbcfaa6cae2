package tui

import "github.com/charmbracelet/lipgloss"

// View renders the TUI interface
func (m Model) View() string {
	topHeight, bottomHeight := m.panelHeights()

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderContainerListPanel(m.width, topHeight),
		m.renderLogPanel(m.width, bottomHeight),
	)
}
