// Package tray implements the system tray icon and menu for the daemon.
package tray

import "github.com/chargewatch/chargewatch/internal/notify"

// DaemonState provides access to daemon state for the tray.
type DaemonState interface {
	Paused() bool
	SetPaused(paused bool)
	Monitoring() bool
	SettingsPath() string
	Announce(msg notify.Message) error
}
