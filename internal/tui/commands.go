package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	refreshInterval = 2 * time.Second
	requestTimeout  = 30 * time.Second
)

// tickCmd creates a command that sends a tick message every 2 seconds
func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchContainers creates a command to fetch the container list
func fetchContainers(client Gateway) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		containers, err := client.ListContainers(ctx)
		return containersMsg{containers: containers, err: err}
	}
}

// fetchLogs creates a command to fetch the log tail of a container
func fetchLogs(client Gateway, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		text, err := client.ContainerLogs(ctx, id)
		return logsMsg{id: id, text: text, err: err}
	}
}

// startContainer creates a command to start a container
func startContainer(client Gateway, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		message, err := client.StartContainer(ctx, id)
		return actionMsg{message: message, err: err}
	}
}

// stopContainer creates a command to stop a container
func stopContainer(client Gateway, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		message, err := client.StopContainer(ctx, id)
		return actionMsg{message: message, err: err}
	}
}
