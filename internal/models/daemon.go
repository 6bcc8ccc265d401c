package models

import "time"

// DaemonInfo represents the running daemon.
// This corresponds to daemon.yaml next to the settings file.
type DaemonInfo struct {
	Version   int           `yaml:"version"`
	PID       int           `yaml:"pid"`
	Interval  time.Duration `yaml:"interval"`
	Tray      bool          `yaml:"tray"`
	StartedAt time.Time     `yaml:"started_at"`
}

// NewDaemonInfo creates a new daemon info with current values.
func NewDaemonInfo(pid int, interval time.Duration, tray bool) *DaemonInfo {
	return &DaemonInfo{
		Version:   1,
		PID:       pid,
		Interval:  interval,
		Tray:      tray,
		StartedAt: time.Now().UTC(),
	}
}
