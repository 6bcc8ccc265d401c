package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case e := <-w.Events():
		return e
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for watcher event")
		return Event{}
	}
}

func TestWatcherSettingsChanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0600))

	w, err := New()
	require.NoError(t, err)
	defer w.Stop()
	require.NoError(t, w.Start(path))

	// Several quick writes collapse into one event
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`{"enableNotifications":false}`), 0600))
	}

	e := waitEvent(t, w)
	assert.Equal(t, EventSettingsChanged, e.Type)
	assert.Equal(t, path, e.Path)

	select {
	case extra := <-w.Events():
		t.Fatalf("unexpected extra event: %v", extra.Type)
	case <-time.After(3 * DefaultDebounce):
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	w, err := New()
	require.NoError(t, err)
	defer w.Stop()
	require.NoError(t, w.Start(path))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "daemon.yaml"), []byte("pid: 1"), 0644))

	select {
	case e := <-w.Events():
		t.Fatalf("unexpected event: %v", e.Type)
	case <-time.After(3 * DefaultDebounce):
	}
}

func TestWatcherSettingsRemoved(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0600))

	w, err := New()
	require.NoError(t, err)
	defer w.Stop()
	require.NoError(t, w.Start(path))

	require.NoError(t, os.Remove(path))
	assert.Equal(t, EventSettingsRemoved, waitEvent(t, w).Type)
}

func TestWatcherStopTwice(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Start(filepath.Join(t.TempDir(), "config.json")))

	assert.NotPanics(t, func() {
		w.Stop()
		w.Stop()
	})
}
