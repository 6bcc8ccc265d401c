package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/chargewatch/chargewatch/internal/models"
)

// SettingsStore reads and writes the settings JSON document.
// Writes are wholesale; the last write wins.
type SettingsStore struct {
	path   string
	logDir string
}

// StoreOption configures a SettingsStore.
type StoreOption func(*SettingsStore)

// WithLogDir sets the directory write failures are logged to.
func WithLogDir(dir string) StoreOption {
	return func(s *SettingsStore) {
		s.logDir = dir
	}
}

// NewSettingsStore creates a store for the settings file at path.
// Write failures are logged to a logs directory next to it unless WithLogDir is given.
func NewSettingsStore(path string, opts ...StoreOption) *SettingsStore {
	s := &SettingsStore{
		path:   path,
		logDir: filepath.Join(filepath.Dir(path), LogsDirName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultSettingsStore returns the store for the per-user config.json.
func DefaultSettingsStore() (*SettingsStore, error) {
	path, err := SettingsFile()
	if err != nil {
		return nil, err
	}
	logDir, err := LogsDir()
	if err != nil {
		return nil, err
	}
	return NewSettingsStore(path, WithLogDir(logDir)), nil
}

// Path returns the settings file path.
func (s *SettingsStore) Path() string {
	return s.path
}

// LogDir returns the directory write failures are logged to.
func (s *SettingsStore) LogDir() string {
	return s.logDir
}

// Read loads the settings. It fails if the file is missing, empty or corrupt.
func (s *SettingsStore) Read() (*models.Settings, error) {
	var settings models.Settings
	if err := LoadJSON(s.path, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// ReadOrDefault loads the settings, or returns defaults if the file doesn't exist.
func (s *SettingsStore) ReadOrDefault() (*models.Settings, error) {
	return LoadJSONOrDefault(s.path, models.NewSettings)
}

// Save overwrites the settings file with thresholds sorted ascending.
// Write errors are recorded in a timestamped log file and not returned.
func (s *SettingsStore) Save(settings *models.Settings) {
	if err := s.write(settings); err != nil {
		log.Printf("[settings] Failed to save settings: %v", err)
		if logPath, logErr := WriteErrorLog(s.logDir, err); logErr == nil {
			log.Printf("[settings] Error recorded in %s", logPath)
		}
	}
}

// EnsureDefaults writes default settings when the file is missing or empty.
// An existing non-empty file is left alone, even if it doesn't parse.
func (s *SettingsStore) EnsureDefaults() error {
	info, err := os.Stat(s.path)
	switch {
	case err == nil && info.Size() > 0:
		return nil
	case err != nil && !os.IsNotExist(err):
		return fmt.Errorf("failed to stat settings file: %w", err)
	}
	return s.write(models.NewSettings())
}

func (s *SettingsStore) write(settings *models.Settings) error {
	sorted := settings.Clone()
	sorted.SortLevels()
	if sorted.NotifyOnBatteryLevels == nil {
		sorted.NotifyOnBatteryLevels = []models.BatteryLevel{}
	}
	return SaveJSON(s.path, sorted)
}
