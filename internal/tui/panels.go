package tui

import (
	"fmt"
	"strings"
)

// renderContainerListPanel renders the container list panel
func (m Model) renderContainerListPanel(width, height int) string {
	content := m.renderListPanelContent(width, height)
	return panelStyle.
		Width(max(width-4, 0)).
		Height(max(height-4, 0)).
		Render(content)
}

// renderListPanelContent renders the content of the container list panel
func (m Model) renderListPanelContent(width, height int) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("🐳 Containers") + "\n\n")

	if m.err != nil {
		s.WriteString(stoppedStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n")
		s.WriteString(helpStyle.Render("[R] retry  [q] quit"))
		return s.String()
	}

	if m.loading && len(m.containers) == 0 {
		s.WriteString("Loading...\n")
		return s.String()
	}

	running := 0
	for _, c := range m.containers {
		if c.Status == "running" {
			running++
		}
	}
	s.WriteString(fmt.Sprintf("%d total, %d running\n\n", len(m.containers), running))

	colWidth := max(width-12, 40)
	idWidth := 12
	statusWidth := 10
	nameWidth := int(float64(colWidth-idWidth-statusWidth) * 0.45)
	imageWidth := colWidth - idWidth - statusWidth - nameWidth

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s",
		nameWidth, "NAME",
		imageWidth, "IMAGE",
		statusWidth, "STATUS",
		idWidth, "ID")
	s.WriteString(headerStyle.Render(header) + "\n")

	// Keep the cursor on screen when the list is longer than the panel
	visible := max(height-12, 1)
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}

	for i := start; i < len(m.containers) && i < start+visible; i++ {
		container := m.containers[i]

		status := fmt.Sprintf("%-*s", statusWidth, truncate(container.Status, statusWidth))
		if container.Status == "running" {
			status = runningStyle.Render(status)
		} else {
			status = stoppedStyle.Render(status)
		}

		line := fmt.Sprintf("%-*s %-*s %s %-*s",
			nameWidth, truncate(container.Name, nameWidth),
			imageWidth, truncate(container.Image, imageWidth),
			status,
			idWidth, container.ID,
		)

		if i == m.cursor {
			s.WriteString(selectedStyle.Render("> " + line))
		} else {
			s.WriteString("  " + line)
		}
		s.WriteString("\n")
	}

	if m.message != "" {
		s.WriteString("\n" + messageStyle.Render(m.message) + "\n")
	}

	help := "\n[↑/k] up  [↓/j] down  [s] start  [x] stop  [l] logs  [R] refresh  [q] quit"
	s.WriteString(helpStyle.Render(help))

	return s.String()
}

// renderLogPanel renders the log panel
func (m Model) renderLogPanel(width, height int) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("📋 Logs") + "\n\n")

	c, ok := m.selected()
	switch {
	case !ok:
		s.WriteString("No container selected")
	case m.logsErr != nil:
		s.WriteString(fmt.Sprintf("Container: %s\n\n", c.Name))
		s.WriteString(stoppedStyle.Render(fmt.Sprintf("Error: %v", m.logsErr)))
	case len(m.logs) == 0:
		s.WriteString(fmt.Sprintf("Container: %s\n\n", c.Name))
		s.WriteString("No logs yet...")
	default:
		follow := ""
		if m.logsFollow {
			follow = " [follow]"
		}
		s.WriteString(fmt.Sprintf("Container: %s%s\n\n", c.Name, follow))
		s.WriteString(m.logsView.View() + "\n")
		s.WriteString(helpStyle.Render(fmt.Sprintf("%d lines  %3.f%%  PgUp/PgDown: scroll  Home/End",
			len(m.logs), m.logsView.ScrollPercent()*100)))
	}

	return panelStyle.
		Width(max(width-4, 0)).
		Height(max(height-4, 0)).
		Render(s.String())
}
