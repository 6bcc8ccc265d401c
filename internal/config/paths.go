// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// AppDirName is the name of the per-user chargewatch directory.
	AppDirName = "chargewatch"

	// LogsDirName is the name of the logs directory.
	LogsDirName = "logs"

	// DirEnv overrides the per-user chargewatch directory when set.
	DirEnv = "CHARGEWATCH_CONFIG_DIR"
)

// File names
const (
	DaemonFileName   = "daemon.yaml"
	SettingsFileName = "config.json"
)

// AppDir returns the per-user chargewatch directory
// (e.g. ~/.config/chargewatch on Linux).
func AppDir() (string, error) {
	if dir := os.Getenv(DirEnv); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppDirName), nil
}

// DaemonFile returns the path to the daemon.yaml file.
func DaemonFile() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DaemonFileName), nil
}

// SettingsFile returns the path to the config.json file.
func SettingsFile() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// LogsDir returns the path to the logs directory.
func LogsDir() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LogsDirName), nil
}

// EnsureAppDir creates the chargewatch directory if it doesn't exist.
func EnsureAppDir() error {
	dir, err := AppDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
