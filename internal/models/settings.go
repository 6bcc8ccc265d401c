package models

import (
	"fmt"
	"sort"
)

// BatteryLevel is a configured notification threshold.
type BatteryLevel struct {
	Level           int  `json:"level"`
	WhenCharging    bool `json:"whenCharging"`
	WhenDischarging bool `json:"whenDischarging"`
}

// Settings represents the user's notification settings.
// This corresponds to config.json in the per-user config directory.
type Settings struct {
	EnableNotifications   bool           `json:"enableNotifications"`
	EnableHighlighter     bool           `json:"enableHighlighter"`
	NotifyOnBatteryLevels []BatteryLevel `json:"notifyOnBatteryLevels"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		EnableNotifications: true,
		EnableHighlighter:   true,
		NotifyOnBatteryLevels: []BatteryLevel{
			{Level: 100, WhenCharging: true},
			{Level: 80, WhenCharging: true},
			{Level: 50, WhenDischarging: true},
			{Level: 30, WhenDischarging: true},
			{Level: 20, WhenDischarging: true},
		},
	}
}

// SortLevels orders thresholds ascending by level.
func (s *Settings) SortLevels() {
	sort.SliceStable(s.NotifyOnBatteryLevels, func(i, j int) bool {
		return s.NotifyOnBatteryLevels[i].Level < s.NotifyOnBatteryLevels[j].Level
	})
}

// FindLevel returns the threshold at the given level, or nil.
func (s *Settings) FindLevel(level int) *BatteryLevel {
	for i := range s.NotifyOnBatteryLevels {
		if s.NotifyOnBatteryLevels[i].Level == level {
			return &s.NotifyOnBatteryLevels[i]
		}
	}
	return nil
}

// AddLevel adds a threshold, replacing the scope of an existing one at the same level.
func (s *Settings) AddLevel(l BatteryLevel) {
	if existing := s.FindLevel(l.Level); existing != nil {
		existing.WhenCharging = l.WhenCharging
		existing.WhenDischarging = l.WhenDischarging
		return
	}
	s.NotifyOnBatteryLevels = append(s.NotifyOnBatteryLevels, l)
	s.SortLevels()
}

// RemoveLevel removes the threshold at the given level.
// Returns false if there was none.
func (s *Settings) RemoveLevel(level int) bool {
	for i, l := range s.NotifyOnBatteryLevels {
		if l.Level == level {
			s.NotifyOnBatteryLevels = append(s.NotifyOnBatteryLevels[:i], s.NotifyOnBatteryLevels[i+1:]...)
			return true
		}
	}
	return false
}

// Validate checks threshold levels are in 1..100 and unique.
func (s *Settings) Validate() error {
	seen := make(map[int]bool, len(s.NotifyOnBatteryLevels))
	for _, l := range s.NotifyOnBatteryLevels {
		if l.Level < 1 || l.Level > 100 {
			return fmt.Errorf("invalid battery level %d: must be between 1 and 100", l.Level)
		}
		if seen[l.Level] {
			return fmt.Errorf("duplicate battery level %d", l.Level)
		}
		seen[l.Level] = true
	}
	return nil
}

// Clone returns a deep copy.
func (s *Settings) Clone() *Settings {
	c := *s
	c.NotifyOnBatteryLevels = append([]BatteryLevel(nil), s.NotifyOnBatteryLevels...)
	return &c
}
