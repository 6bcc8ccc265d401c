// Package tui implements the interactive settings editor.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chargewatch/chargewatch/internal/models"
)

// Store is the settings persistence the editor works against.
type Store interface {
	Path() string
	Read() (*models.Settings, error)
	Save(settings *models.Settings)
}

// Run launches the settings editor.
func Run(store Store) error {
	p := tea.NewProgram(
		NewModel(store),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
