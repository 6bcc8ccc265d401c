package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chargewatch/chargewatch/internal/models"
)

func TestSettingsStoreRoundTrip(t *testing.T) {
	store := NewSettingsStore(filepath.Join(t.TempDir(), "chargewatch", "config.json"))

	in := &models.Settings{
		EnableNotifications: true,
		EnableHighlighter:   false,
		NotifyOnBatteryLevels: []models.BatteryLevel{
			{Level: 15, WhenDischarging: true},
			{Level: 85, WhenCharging: true, WhenDischarging: true},
		},
	}
	store.Save(in)

	out, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSettingsStoreSaveSortsLevels(t *testing.T) {
	store := NewSettingsStore(filepath.Join(t.TempDir(), "config.json"))

	in := &models.Settings{
		NotifyOnBatteryLevels: []models.BatteryLevel{
			{Level: 90, WhenCharging: true},
			{Level: 10, WhenDischarging: true},
			{Level: 40, WhenDischarging: true},
		},
	}
	store.Save(in)

	out, err := store.Read()
	require.NoError(t, err)
	levels := make([]int, 0, len(out.NotifyOnBatteryLevels))
	for _, l := range out.NotifyOnBatteryLevels {
		levels = append(levels, l.Level)
	}
	assert.Equal(t, []int{10, 40, 90}, levels)

	// Caller's copy is left untouched
	assert.Equal(t, 90, in.NotifyOnBatteryLevels[0].Level)
}

func TestSettingsStoreReadFailures(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content *string
	}{
		{name: "missing file"},
		{name: "empty file", content: ptr("")},
		{name: "corrupt file", content: ptr("{not json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".json")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0600))
			}
			_, err := NewSettingsStore(path).Read()
			assert.Error(t, err)
		})
	}
}

func TestSettingsStoreEmptyFileIsErrEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	_, err := NewSettingsStore(path).Read()
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestSettingsStoreEnsureDefaults(t *testing.T) {
	t.Run("creates missing file", func(t *testing.T) {
		store := NewSettingsStore(filepath.Join(t.TempDir(), "nested", "config.json"))
		require.NoError(t, store.EnsureDefaults())

		got, err := store.Read()
		require.NoError(t, err)
		want := models.NewSettings()
		want.SortLevels()
		assert.Equal(t, want, got)
	})

	t.Run("fills empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, nil, 0600))
		store := NewSettingsStore(path)

		require.NoError(t, store.EnsureDefaults())
		_, err := store.Read()
		assert.NoError(t, err)
	})

	t.Run("keeps existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		existing := `{"enableNotifications":false,"enableHighlighter":false,"notifyOnBatteryLevels":[]}`
		require.NoError(t, os.WriteFile(path, []byte(existing), 0600))
		store := NewSettingsStore(path)

		require.NoError(t, store.EnsureDefaults())
		got, err := store.Read()
		require.NoError(t, err)
		assert.False(t, got.EnableNotifications)
		assert.Empty(t, got.NotifyOnBatteryLevels)
	})
}

func TestSettingsStoreReadOrDefault(t *testing.T) {
	store := NewSettingsStore(filepath.Join(t.TempDir(), "config.json"))

	got, err := store.ReadOrDefault()
	require.NoError(t, err)
	assert.Equal(t, models.NewSettings(), got)
	assert.False(t, FileExists(store.Path()))
}

func TestSettingsStoreSaveFailureIsLogged(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	logDir := filepath.Join(dir, "logs")
	store := NewSettingsStore(filepath.Join(blocker, "config.json"), WithLogDir(logDir))

	assert.NotPanics(t, func() { store.Save(models.NewSettings()) })

	logs, err := ListErrorLogs(logDir)
	require.NoError(t, err)
	require.Len(t, logs, 1)

	data, err := os.ReadFile(logs[0])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[ERROR] "))
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}-[0-9a-f-]{36}\.log$`, filepath.Base(logs[0]))
}

func ptr(s string) *string { return &s }
