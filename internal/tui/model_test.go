package tui

import (
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chargewatch/chargewatch/internal/models"
)

type memStore struct {
	mu       sync.Mutex
	settings *models.Settings
	readErr  error
	saves    int
}

func (s *memStore) Path() string { return "/tmp/chargewatch/config.json" }

func (s *memStore) Read() (*models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	return s.settings.Clone(), nil
}

func (s *memStore) Save(settings *models.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings.Clone()
	s.saves++
}

func (s *memStore) saved() *models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Clone()
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEscape}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

// send feeds msgs through Update, discarding returned commands.
func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

// save presses s and delivers the result of the save command.
func save(t *testing.T, m Model) Model {
	t.Helper()
	next, cmd := m.Update(runes("s"))
	m = next.(Model)
	require.NotNil(t, cmd)
	return send(t, m, cmd())
}

func loadedModel(t *testing.T, s *models.Settings) (Model, *memStore) {
	t.Helper()
	store := &memStore{settings: s}
	m := NewModel(store)
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = send(t, m, m.Init()())
	require.True(t, m.form.Loaded())
	return m, store
}

func twoLevels() *models.Settings {
	return &models.Settings{
		EnableNotifications: true,
		EnableHighlighter:   true,
		NotifyOnBatteryLevels: []models.BatteryLevel{
			{Level: 80, WhenCharging: true},
			{Level: 20, WhenDischarging: true},
		},
	}
}

func TestModelLoadsSortedSettings(t *testing.T) {
	m, _ := loadedModel(t, twoLevels())

	got := m.form.Settings()
	assert.Equal(t, 20, got.NotifyOnBatteryLevels[0].Level)
	assert.Equal(t, 80, got.NotifyOnBatteryLevels[1].Level)
	assert.False(t, m.dirty)
}

func TestModelLoadError(t *testing.T) {
	store := &memStore{readErr: errors.New("boom")}
	m := send(t, NewModel(store), tea.WindowSizeMsg{Width: 80, Height: 24})
	m = send(t, m, m.Init()())

	require.Error(t, m.err)
	assert.Contains(t, m.err.Error(), "failed to load settings")
	assert.False(t, m.form.Loaded())
}

func TestModelToggleAndSave(t *testing.T) {
	m, store := loadedModel(t, twoLevels())

	m = send(t, m, keySpace)
	assert.False(t, m.form.Settings().EnableNotifications)
	assert.True(t, m.dirty)

	m = send(t, m, runes("j"), keyEnter)
	assert.False(t, m.form.Settings().EnableHighlighter)

	m = save(t, m)
	assert.False(t, m.dirty)
	assert.True(t, m.showSaved)
	assert.Equal(t, 1, store.saves)
	assert.False(t, store.saved().EnableNotifications)
	assert.False(t, store.saved().EnableHighlighter)
}

func TestModelLevelScopes(t *testing.T) {
	m, store := loadedModel(t, twoLevels())

	// Rows: notifications, highlighter, 20%, 80%
	m = send(t, m, runes("j"), runes("j"), runes("c"), runes("d"))
	m = save(t, m)

	l := store.saved().FindLevel(20)
	require.NotNil(t, l)
	assert.True(t, l.WhenCharging)
	assert.False(t, l.WhenDischarging)
}

func TestModelScopeKeysIgnoredOnToggleRows(t *testing.T) {
	m, _ := loadedModel(t, twoLevels())

	m = send(t, m, runes("c"), runes("d"))
	assert.False(t, m.dirty)
	assert.Equal(t, twoLevels().NotifyOnBatteryLevels[1], m.form.Settings().NotifyOnBatteryLevels[0])
}

func TestModelAddLevel(t *testing.T) {
	m, store := loadedModel(t, twoLevels())

	m = send(t, m, runes("a"))
	require.True(t, m.form.IsEditing())

	m = send(t, m, runes("4"), runes("5"), keyEnter)
	assert.False(t, m.form.IsEditing())
	assert.True(t, m.dirty)
	assert.Equal(t, levelRowOffset+1, m.form.Cursor())

	m = save(t, m)
	assert.Equal(t, &models.BatteryLevel{Level: 45, WhenCharging: true, WhenDischarging: true}, store.saved().FindLevel(45))
}

func TestModelAddLevelRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"zero", "0"},
		{"too high", "101"},
		{"not a number", "ab"},
		{"duplicate", "80"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := loadedModel(t, twoLevels())
			m = send(t, m, runes("a"), runes(tt.input), keyEnter)

			assert.Error(t, m.err)
			assert.True(t, m.form.IsEditing())
			assert.Len(t, m.form.Settings().NotifyOnBatteryLevels, 2)

			m = send(t, m, keyEsc)
			assert.False(t, m.form.IsEditing())
			assert.False(t, m.dirty)
		})
	}
}

func TestModelEditLevel(t *testing.T) {
	m, store := loadedModel(t, twoLevels())

	// Select 80% and change it to 90%
	m = send(t, m, runes("j"), runes("j"), runes("j"), keyEnter)
	require.True(t, m.form.IsEditing())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace}, runes("90"), keyEnter)
	require.NoError(t, m.err)

	m = save(t, m)
	saved := store.saved()
	assert.Nil(t, saved.FindLevel(80))
	assert.Equal(t, &models.BatteryLevel{Level: 90, WhenCharging: true}, saved.FindLevel(90))
}

func TestModelDeleteLevelConfirms(t *testing.T) {
	m, _ := loadedModel(t, twoLevels())

	m = send(t, m, runes("j"), runes("j"), runes("x"))
	assert.Equal(t, confirmDelete, m.confirmMode)

	m = send(t, m, runes("n"))
	assert.Len(t, m.form.Settings().NotifyOnBatteryLevels, 2)

	m = send(t, m, runes("x"), runes("y"))
	assert.Equal(t, confirmNone, m.confirmMode)
	assert.True(t, m.dirty)
	require.Len(t, m.form.Settings().NotifyOnBatteryLevels, 1)
	assert.Equal(t, 80, m.form.Settings().NotifyOnBatteryLevels[0].Level)
}

func TestModelDeleteIgnoredOnToggleRows(t *testing.T) {
	m, _ := loadedModel(t, twoLevels())

	m = send(t, m, runes("x"))
	assert.Equal(t, confirmNone, m.confirmMode)
}

func TestModelSaveRejectsInvalidSettings(t *testing.T) {
	s := twoLevels()
	s.NotifyOnBatteryLevels = append(s.NotifyOnBatteryLevels, models.BatteryLevel{Level: 20, WhenCharging: true})
	m, store := loadedModel(t, s)

	m = save(t, m)
	assert.Error(t, m.err)
	assert.Equal(t, 0, store.saves)
}

func TestModelQuit(t *testing.T) {
	m, _ := loadedModel(t, twoLevels())

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelQuitWithUnsavedChangesConfirms(t *testing.T) {
	m, _ := loadedModel(t, twoLevels())
	m = send(t, m, keySpace)

	next, cmd := m.Update(runes("q"))
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, confirmQuit, m.confirmMode)

	next, _ = m.Update(runes("n"))
	m = next.(Model)
	assert.Equal(t, confirmNone, m.confirmMode)

	next, _ = m.Update(keyEsc)
	m = next.(Model)
	_, cmd = m.Update(runes("y"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelHelpOverlay(t *testing.T) {
	m, _ := loadedModel(t, twoLevels())

	m = send(t, m, runes("?"))
	assert.True(t, m.showHelp)
	assert.Contains(t, ansi.Strip(m.View()), "Keyboard Shortcuts")

	// Keys don't reach the form while help is open
	m = send(t, m, keySpace)
	assert.False(t, m.dirty)

	m = send(t, m, keyEsc)
	assert.False(t, m.showHelp)
}

func TestModelView(t *testing.T) {
	m, _ := loadedModel(t, twoLevels())

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "chargewatch")
	assert.Contains(t, view, "Notifications:")
	assert.Contains(t, view, "[ON]")
	assert.Contains(t, view, " 20%")
	assert.Contains(t, view, "[x] discharging")
	assert.Contains(t, view, "q quit")
	assert.Len(t, strings.Split(view, "\n"), 24)
}

func TestModelViewTooSmall(t *testing.T) {
	m, _ := loadedModel(t, twoLevels())
	m = send(t, m, tea.WindowSizeMsg{Width: 30, Height: 10})

	assert.Contains(t, ansi.Strip(m.View()), "Terminal too small")
}
