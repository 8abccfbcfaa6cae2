// cmd/gatewayctl/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rusenback/docker-gateway/internal/gatewayclient"
	"github.com/rusenback/docker-gateway/internal/tui"
)

func main() {
	_ = godotenv.Load()

	defaultURL := os.Getenv("GATEWAY_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8000"
	}
	url := flag.String("url", defaultURL, "gateway base URL including any root path")
	timeout := flag.Duration("timeout", 30*time.Second, "per-request timeout")
	flag.Parse()

	client := gatewayclient.New(*url, *timeout)

	p := tea.NewProgram(tui.NewModel(client), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
