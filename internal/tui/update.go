package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rusenback/docker-gateway/internal/model"
)

// Update handles messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				return m, m.selectionChanged()
			}

		case "down", "j":
			if m.cursor < len(m.containers)-1 {
				m.cursor++
				return m, m.selectionChanged()
			}

		case "pgup":
			m.logsView.HalfViewUp()
			m.logsFollow = m.logsView.AtBottom()

		case "pgdown":
			m.logsView.HalfViewDown()
			m.logsFollow = m.logsView.AtBottom()

		case "home":
			m.logsView.GotoTop()
			m.logsFollow = false

		case "end":
			m.logsView.GotoBottom()
			m.logsFollow = true

		case "s":
			if c, ok := m.selected(); ok {
				m.message = "Starting " + c.Name + "..."
				return m, startContainer(m.client, c.ID)
			}

		case "x":
			if c, ok := m.selected(); ok {
				m.message = "Stopping " + c.Name + "..."
				return m, stopContainer(m.client, c.ID)
			}

		case "l":
			if c, ok := m.selected(); ok {
				return m, fetchLogs(m.client, c.ID)
			}

		case "R":
			m.loading = true
			m.message = "Refreshing..."
			return m, fetchContainers(m.client)
		}

	case tickMsg:
		return m, tea.Batch(fetchContainers(m.client), tickCmd())

	case containersMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if m.message == "Refreshing..." {
			m.message = ""
		}
		m.err = nil
		m.containers = msg.containers
		if m.cursor >= len(m.containers) {
			m.cursor = max(len(m.containers)-1, 0)
		}
		if c, ok := m.selected(); ok && c.ID != m.logsFor {
			return m, m.selectionChanged()
		}

	case logsMsg:
		// Drop answers for a container that is no longer selected
		if c, ok := m.selected(); !ok || c.ID != msg.id {
			return m, nil
		}
		m.logsFor = msg.id
		m.logsErr = msg.err
		if msg.err == nil {
			m.logs = model.SplitLogs(msg.text)
		}
		m.renderLogs()

	case actionMsg:
		if msg.err != nil {
			m.message = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.message = msg.message
		}
		cmds := []tea.Cmd{fetchContainers(m.client)}
		if c, ok := m.selected(); ok {
			cmds = append(cmds, fetchLogs(m.client, c.ID))
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// selectionChanged resets the log panel and fetches logs for the new selection
func (m *Model) selectionChanged() tea.Cmd {
	c, ok := m.selected()
	if !ok {
		return nil
	}
	if c.ID != m.logsFor {
		m.logs = nil
		m.logsErr = nil
		m.logsFor = c.ID
		m.logsFollow = true
		m.renderLogs()
	}
	return fetchLogs(m.client, c.ID)
}

// layout sizes the log viewport from the window dimensions
func (m *Model) layout() {
	_, logHeight := m.panelHeights()
	m.logsView.Width = max(m.width-8, 10)
	m.logsView.Height = max(logHeight-9, 3)
	m.renderLogs()
}

// renderLogs pushes the styled log lines into the viewport
func (m *Model) renderLogs() {
	lines := make([]string, len(m.logs))
	for i, entry := range m.logs {
		lines[i] = styleLogEntry(entry, m.logsView.Width)
	}
	m.logsView.SetContent(strings.Join(lines, "\n"))
	if m.logsFollow {
		m.logsView.GotoBottom()
	}
}

// panelHeights splits the window between the list and the log panel
func (m Model) panelHeights() (int, int) {
	top := int(float64(m.height) * 0.5)
	return top, m.height - top
}
