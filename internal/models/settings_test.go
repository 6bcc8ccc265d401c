package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsSortLevels(t *testing.T) {
	s := NewSettings()
	s.SortLevels()

	for i := 1; i < len(s.NotifyOnBatteryLevels); i++ {
		assert.Less(t, s.NotifyOnBatteryLevels[i-1].Level, s.NotifyOnBatteryLevels[i].Level)
	}
}

func TestSettingsAddAndRemoveLevel(t *testing.T) {
	s := &Settings{}

	s.AddLevel(BatteryLevel{Level: 60, WhenCharging: true})
	s.AddLevel(BatteryLevel{Level: 25, WhenDischarging: true})
	require.Len(t, s.NotifyOnBatteryLevels, 2)
	assert.Equal(t, 25, s.NotifyOnBatteryLevels[0].Level)

	// Same level replaces the scope
	s.AddLevel(BatteryLevel{Level: 60, WhenDischarging: true})
	require.Len(t, s.NotifyOnBatteryLevels, 2)
	l := s.FindLevel(60)
	require.NotNil(t, l)
	assert.False(t, l.WhenCharging)
	assert.True(t, l.WhenDischarging)

	assert.True(t, s.RemoveLevel(25))
	assert.False(t, s.RemoveLevel(25))
	assert.Nil(t, s.FindLevel(25))
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		levels  []BatteryLevel
		wantErr bool
	}{
		{name: "defaults", levels: NewSettings().NotifyOnBatteryLevels},
		{name: "empty", levels: nil},
		{name: "zero", levels: []BatteryLevel{{Level: 0}}, wantErr: true},
		{name: "above hundred", levels: []BatteryLevel{{Level: 101}}, wantErr: true},
		{name: "duplicate", levels: []BatteryLevel{{Level: 40}, {Level: 40}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&Settings{NotifyOnBatteryLevels: tt.levels}).Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSettingsClone(t *testing.T) {
	s := NewSettings()
	c := s.Clone()
	c.NotifyOnBatteryLevels[0].Level = 1

	assert.NotEqual(t, s.NotifyOnBatteryLevels[0].Level, c.NotifyOnBatteryLevels[0].Level)
}
