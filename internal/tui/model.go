package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rusenback/docker-gateway/internal/model"
)

// Gateway is the subset of the gateway API the dashboard needs
type Gateway interface {
	ListContainers(ctx context.Context) ([]model.ContainerSummary, error)
	StartContainer(ctx context.Context, id string) (string, error)
	StopContainer(ctx context.Context, id string) (string, error)
	ContainerLogs(ctx context.Context, id string) (string, error)
}

// Model represents the TUI application state
type Model struct {
	client     Gateway
	containers []model.ContainerSummary
	cursor     int
	err        error
	loading    bool
	message    string
	width      int
	height     int

	logs       []model.LogEntry
	logsFor    string // container id the logs belong to
	logsErr    error
	logsView   viewport.Model
	logsFollow bool
}

// Message types for Bubbletea update loop
type tickMsg time.Time

type containersMsg struct {
	containers []model.ContainerSummary
	err        error
}

type actionMsg struct {
	message string
	err     error
}

type logsMsg struct {
	id   string
	text string
	err  error
}

// NewModel creates a new TUI model
func NewModel(client Gateway) Model {
	return Model{
		client:     client,
		loading:    true,
		logsView:   viewport.New(0, 0),
		logsFollow: true,
	}
}

// Init initializes the model and returns initial commands
func (m Model) Init() tea.Cmd {
	return tea.Batch(fetchContainers(m.client), tickCmd())
}

// selected returns the container under the cursor
func (m Model) selected() (model.ContainerSummary, bool) {
	if m.cursor < 0 || m.cursor >= len(m.containers) {
		return model.ContainerSummary{}, false
	}
	return m.containers[m.cursor], true
}
