package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/chargewatch/chargewatch/internal/models"
)

// Fixed rows above the level list.
const (
	rowNotifications = iota
	rowHighlighter
	levelRowOffset
)

// SettingsForm edits a copy of the settings.
type SettingsForm struct {
	settings *models.Settings
	cursor   int
	editing  bool
	adding   bool
	input    textinput.Model
	width    int
}

// NewSettingsForm creates a new settings form.
func NewSettingsForm() *SettingsForm {
	ti := textinput.New()
	ti.CharLimit = 4
	ti.Placeholder = "1-100"
	ti.Prompt = ""
	return &SettingsForm{
		input: ti,
	}
}

// Load replaces the form contents with a copy of settings.
func (s *SettingsForm) Load(settings *models.Settings) {
	s.settings = settings.Clone()
	s.settings.SortLevels()
	s.editing = false
	s.adding = false
	s.input.Blur()
	s.clampCursor()
}

// Loaded reports whether settings have been loaded.
func (s *SettingsForm) Loaded() bool {
	return s.settings != nil
}

// Settings returns a copy of the edited settings.
func (s *SettingsForm) Settings() *models.Settings {
	if s.settings == nil {
		return nil
	}
	return s.settings.Clone()
}

// SetSize updates dimensions.
func (s *SettingsForm) SetSize(width int) {
	s.width = width
	s.input.Width = 6
}

// Cursor returns the selected row.
func (s *SettingsForm) Cursor() int {
	return s.cursor
}

func (s *SettingsForm) rowCount() int {
	if s.settings == nil {
		return 0
	}
	return levelRowOffset + len(s.settings.NotifyOnBatteryLevels)
}

func (s *SettingsForm) clampCursor() {
	if n := s.rowCount(); s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// currentLevel returns the level under the cursor, or nil on a toggle row.
func (s *SettingsForm) currentLevel() *models.BatteryLevel {
	if s.settings == nil {
		return nil
	}
	i := s.cursor - levelRowOffset
	if i < 0 || i >= len(s.settings.NotifyOnBatteryLevels) {
		return nil
	}
	return &s.settings.NotifyOnBatteryLevels[i]
}

// MoveUp moves cursor up.
func (s *SettingsForm) MoveUp() {
	if !s.editing && s.cursor > 0 {
		s.cursor--
	}
}

// MoveDown moves cursor down.
func (s *SettingsForm) MoveDown() {
	if !s.editing && s.cursor < s.rowCount()-1 {
		s.cursor++
	}
}

// Toggle flips the boolean under the cursor. Returns false on level rows.
func (s *SettingsForm) Toggle() bool {
	if s.settings == nil {
		return false
	}
	switch s.cursor {
	case rowNotifications:
		s.settings.EnableNotifications = !s.settings.EnableNotifications
		return true
	case rowHighlighter:
		s.settings.EnableHighlighter = !s.settings.EnableHighlighter
		return true
	}
	return false
}

// ToggleCharging flips the charging scope of the selected level.
func (s *SettingsForm) ToggleCharging() bool {
	l := s.currentLevel()
	if l == nil {
		return false
	}
	l.WhenCharging = !l.WhenCharging
	return true
}

// ToggleDischarging flips the discharging scope of the selected level.
func (s *SettingsForm) ToggleDischarging() bool {
	l := s.currentLevel()
	if l == nil {
		return false
	}
	l.WhenDischarging = !l.WhenDischarging
	return true
}

// StartEdit begins inline editing of the selected level's percentage.
func (s *SettingsForm) StartEdit() bool {
	l := s.currentLevel()
	if l == nil {
		return false
	}
	s.editing = true
	s.adding = false
	s.input.SetValue(strconv.Itoa(l.Level))
	s.input.CursorEnd()
	s.input.Focus()
	return true
}

// StartAdd begins entering a new level.
func (s *SettingsForm) StartAdd() bool {
	if s.settings == nil {
		return false
	}
	s.editing = true
	s.adding = true
	s.input.SetValue("")
	s.input.Focus()
	return true
}

// FinishEdit confirms the current edit. New levels apply to both charging
// and discharging. An invalid value keeps the editor open.
func (s *SettingsForm) FinishEdit() (bool, error) {
	if !s.editing {
		return false, nil
	}

	raw := strings.TrimSuffix(strings.TrimSpace(s.input.Value()), "%")
	pct, err := strconv.Atoi(raw)
	if err != nil || pct < 1 || pct > 100 {
		return false, fmt.Errorf("invalid battery level %q (expected 1-100)", s.input.Value())
	}

	if s.adding {
		if s.settings.FindLevel(pct) != nil {
			return false, fmt.Errorf("level %d%% already exists", pct)
		}
		s.settings.AddLevel(models.BatteryLevel{Level: pct, WhenCharging: true, WhenDischarging: true})
		s.stopEditing()
		s.selectLevel(pct)
		return true, nil
	}

	l := s.currentLevel()
	if l == nil || l.Level == pct {
		s.stopEditing()
		return false, nil
	}
	if s.settings.FindLevel(pct) != nil {
		return false, fmt.Errorf("level %d%% already exists", pct)
	}
	l.Level = pct
	s.settings.SortLevels()
	s.stopEditing()
	s.selectLevel(pct)
	return true, nil
}

// CancelEdit cancels the current edit.
func (s *SettingsForm) CancelEdit() {
	s.stopEditing()
}

func (s *SettingsForm) stopEditing() {
	s.editing = false
	s.adding = false
	s.input.Blur()
}

func (s *SettingsForm) selectLevel(pct int) {
	for i, l := range s.settings.NotifyOnBatteryLevels {
		if l.Level == pct {
			s.cursor = levelRowOffset + i
			return
		}
	}
}

// DeleteCurrent removes the selected level.
func (s *SettingsForm) DeleteCurrent() bool {
	l := s.currentLevel()
	if l == nil {
		return false
	}
	s.settings.RemoveLevel(l.Level)
	s.clampCursor()
	return true
}

// IsEditing returns whether a level is being edited.
func (s *SettingsForm) IsEditing() bool {
	return s.editing
}

// InputModel returns the text input model for Update forwarding.
func (s *SettingsForm) InputModel() *textinput.Model {
	return &s.input
}

// View renders the settings form.
func (s *SettingsForm) View() string {
	if s.settings == nil {
		return lipgloss.NewStyle().Foreground(colorDim).Render("Loading settings...")
	}

	lines := []string{
		s.renderRow(rowNotifications, settingsLabelStyle.Render("Notifications:")+" "+toggleView(s.settings.EnableNotifications)),
		s.renderRow(rowHighlighter, settingsLabelStyle.Render("Highlighter:")+" "+toggleView(s.settings.EnableHighlighter)),
		"",
		sectionHeaderStyle.Render("Notify at"),
	}

	if len(s.settings.NotifyOnBatteryLevels) == 0 && !s.adding {
		lines = append(lines, hintStyle.Render("  No levels. Press a to add one."))
	}

	for i, l := range s.settings.NotifyOnBatteryLevels {
		row := levelRowOffset + i
		var pct string
		if s.editing && !s.adding && row == s.cursor {
			pct = s.input.View()
		} else {
			pct = s.levelView(l.Level)
		}
		line := "  " + lipgloss.NewStyle().Width(6).Render(pct) + "  " +
			scopeView("charging", l.WhenCharging) + "  " + scopeView("discharging", l.WhenDischarging)
		lines = append(lines, s.renderRow(row, line))
	}

	if s.adding {
		lines = append(lines, settingsCursorStyle.Width(s.width).Render("  "+settingsLabelStyle.Render("New level:")+" "+s.input.View()))
	}

	return strings.Join(lines, "\n")
}

func (s *SettingsForm) renderRow(row int, line string) string {
	if s.width > 0 {
		line = ansi.Truncate(line, s.width, "…")
	}
	if row == s.cursor && !s.adding {
		return settingsCursorStyle.Width(s.width).Render(line)
	}
	return line
}

func (s *SettingsForm) levelView(pct int) string {
	text := fmt.Sprintf("%3d%%", pct)
	if !s.settings.EnableHighlighter {
		return settingsValueStyle.Render(text)
	}
	return severityStyle(models.SeverityFor(pct)).Render(text)
}

func toggleView(on bool) string {
	if on {
		return settingsToggleOn.Render("[ON]")
	}
	return settingsToggleOff.Render("[OFF]")
}

func scopeView(label string, on bool) string {
	if on {
		return settingsToggleOn.Render("[x] " + label)
	}
	return hintStyle.Render("[ ] " + label)
}
