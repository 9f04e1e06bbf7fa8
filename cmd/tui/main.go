package main

import (
	"fmt"
	"os"

	"codeberg.org/placewise/server/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	env := os.Getenv("PLACEWISE_ENV")

	if env == "" {
		env = "development"
	}

	app := tui.NewApp(env)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("error running placewise: %v\n", err)
		os.Exit(1)
	}
}
