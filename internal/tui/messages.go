package tui

import "github.com/chargewatch/chargewatch/internal/models"

// SettingsLoadedMsg carries the settings read from disk.
type SettingsLoadedMsg struct {
	Settings *models.Settings
}

// SettingsSavedMsg signals the settings were written.
type SettingsSavedMsg struct {
	Settings *models.Settings
}

// ErrorMsg carries an error to display.
type ErrorMsg struct {
	Err error
}

// ClearErrorMsg clears the error display.
type ClearErrorMsg struct{}

// ClearSavedMsg clears the "Saved" indicator.
type ClearSavedMsg struct{}
