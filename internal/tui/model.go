package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Minimum terminal size the editor renders in.
const (
	minWidth  = 48
	minHeight = 14
)

// Model is the root Bubbletea model for the settings editor.
type Model struct {
	store Store
	form  *SettingsForm

	// UI state
	width    int
	height   int
	showHelp bool
	dirty    bool

	// Confirm mode
	confirmMode int

	// Status display
	err       error
	showSaved bool
}

// NewModel creates the initial editor model.
func NewModel(store Store) Model {
	return Model{
		store: store,
		form:  NewSettingsForm(),
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return loadSettingsCmd(m.store)
}

// Update processes messages and returns an updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.form.SetSize(msg.Width - 4)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case SettingsLoadedMsg:
		m.form.Load(msg.Settings)
		m.dirty = false
		return m, nil

	case SettingsSavedMsg:
		m.dirty = false
		m.err = nil
		m.showSaved = true
		return m, clearSavedCmd()

	case ErrorMsg:
		m.err = msg.Err
		m.showSaved = false
		return m, clearErrorCmd()

	case ClearErrorMsg:
		m.err = nil
		return m, nil

	case ClearSavedMsg:
		m.showSaved = false
		return m, nil
	}

	return m, nil
}

// handleKey processes key events.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.confirmMode != confirmNone {
		return m.handleConfirmKey(msg)
	}

	if m.showHelp {
		if key.Matches(msg, globalKeys.Help) || msg.Type == tea.KeyEscape {
			m.showHelp = false
		}
		return nil
	}

	if m.form.IsEditing() {
		return m.handleEditKey(msg)
	}

	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}

	switch {
	case key.Matches(msg, globalKeys.Quit):
		if m.dirty {
			m.confirmMode = confirmQuit
			return nil
		}
		return tea.Quit

	case key.Matches(msg, globalKeys.Help):
		m.showHelp = true
		return nil

	case key.Matches(msg, globalKeys.Save):
		if !m.form.Loaded() {
			return nil
		}
		return saveSettingsCmd(m.store, m.form.Settings())
	}

	if !m.form.Loaded() {
		return nil
	}
	return m.handleSettingsKey(msg)
}

func (m *Model) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	changed := false

	switch {
	case key.Matches(msg, settingsKeys.Up):
		m.form.MoveUp()
	case key.Matches(msg, settingsKeys.Down):
		m.form.MoveDown()
	case key.Matches(msg, settingsKeys.Toggle):
		changed = m.form.Toggle()
	case key.Matches(msg, settingsKeys.Enter):
		if m.form.StartEdit() {
			return nil
		}
		changed = m.form.Toggle()
	case key.Matches(msg, settingsKeys.Charging):
		changed = m.form.ToggleCharging()
	case key.Matches(msg, settingsKeys.Discharging):
		changed = m.form.ToggleDischarging()
	case key.Matches(msg, settingsKeys.Add):
		m.form.StartAdd()
	case key.Matches(msg, settingsKeys.Delete):
		if m.form.currentLevel() != nil {
			m.confirmMode = confirmDelete
		}
	}

	if changed {
		m.dirty = true
	}
	return nil
}

func (m *Model) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		changed, err := m.form.FinishEdit()
		if err != nil {
			m.err = err
			return clearErrorCmd()
		}
		if changed {
			m.dirty = true
		}
		return nil
	case tea.KeyEscape:
		m.form.CancelEdit()
		return nil
	}

	ti := m.form.InputModel()
	newTI, cmd := ti.Update(msg)
	*ti = newTI
	return cmd
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, confirmKeys.Yes):
		mode := m.confirmMode
		m.confirmMode = confirmNone
		switch mode {
		case confirmQuit:
			return tea.Quit
		case confirmDelete:
			if m.form.DeleteCurrent() {
				m.dirty = true
			}
		}
	case key.Matches(msg, confirmKeys.No), key.Matches(msg, confirmKeys.Cancel):
		m.confirmMode = confirmNone
	}
	return nil
}

// View renders the editor.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	if m.width < minWidth || m.height < minHeight {
		sizeStr := fmt.Sprintf("%dx%d", m.width, m.height)
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(colorYellow).
			Render(lipgloss.JoinVertical(lipgloss.Center,
				"Terminal too small",
				lipgloss.NewStyle().Foreground(colorDim).Render(
					fmt.Sprintf("Need %dx%d, have ", minWidth, minHeight)+lipgloss.NewStyle().Bold(true).Render(sizeStr),
				),
			))
	}

	header := renderHeader(m.store.Path(), m.dirty, m.width)
	statusBar := renderStatusBar(&m, m.width)

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	body := lipgloss.NewStyle().
		Width(m.width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Padding(1, 2).
		Render(m.form.View())

	view := lipgloss.JoinVertical(lipgloss.Left, header, body, statusBar)

	if m.showHelp {
		view = placeOverlay(view, renderHelp(m.width), m.width, m.height)
	}
	return view
}
