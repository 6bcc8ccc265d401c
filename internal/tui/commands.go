package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chargewatch/chargewatch/internal/models"
)

func loadSettingsCmd(store Store) tea.Cmd {
	return func() tea.Msg {
		settings, err := store.Read()
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to load settings: %w", err)}
		}
		return SettingsLoadedMsg{Settings: settings}
	}
}

func saveSettingsCmd(store Store, settings *models.Settings) tea.Cmd {
	return func() tea.Msg {
		if err := settings.Validate(); err != nil {
			return ErrorMsg{Err: err}
		}
		store.Save(settings)
		return SettingsSavedMsg{Settings: settings}
	}
}

func clearErrorCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(_ time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}

func clearSavedCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(_ time.Time) tea.Msg {
		return ClearSavedMsg{}
	})
}
