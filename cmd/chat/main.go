package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"vogelgpt-backend/internal/client"
	"vogelgpt-backend/internal/config"
	"vogelgpt-backend/internal/tui"
)

func main() {
	api := client.NewAPI(config.ClientURL(), nil)

	p := tea.NewProgram(tui.New(api), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
