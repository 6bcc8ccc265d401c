package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// confirmMode values.
const (
	confirmNone   = 0
	confirmQuit   = 1
	confirmDelete = 2
)

func renderStatusBar(m *Model, width int) string {
	switch m.confirmMode {
	case confirmQuit:
		return renderConfirmBar("Unsaved changes. Quit without saving? (y/n)", width)
	case confirmDelete:
		return renderConfirmBar("Delete this level? (y/n)", width)
	}

	if m.err != nil {
		return renderErrorBar(m.err.Error(), width)
	}

	if m.showSaved {
		return renderSavedBar(width)
	}

	left := " " + getKeyHints(m)

	right := ""
	if m.dirty {
		right = lipgloss.NewStyle().Foreground(colorYellow).Bold(true).Render("Modified") + " "
	}

	if room := width - lipgloss.Width(right) - 1; lipgloss.Width(left) > room {
		left = ansi.Truncate(left, room, "…")
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return statusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func getKeyHints(m *Model) string {
	if m.showHelp {
		return keyHint("Esc", "close help")
	}
	if m.form.IsEditing() {
		return keyHint("Enter", "confirm") + "  " + keyHint("Esc", "cancel")
	}

	hints := keyHint("q", "quit") + "  " + keyHint("s", "save") + "  " + keyHint("?", "help") + "  " +
		keyHint("j/k", "navigate")
	if m.form.currentLevel() != nil {
		return hints + "  " + keyHint("Enter", "edit") + "  " + keyHint("c/d", "scope") + "  " +
			keyHint("a", "add") + "  " + keyHint("x", "delete")
	}
	return hints + "  " + keyHint("Space", "toggle") + "  " + keyHint("a", "add")
}

func keyHint(k, desc string) string {
	if k == "" {
		return hintStyle.Render(desc)
	}
	return keyStyle.Render(k) + " " + hintStyle.Render(desc)
}

func renderConfirmBar(msg string, width int) string {
	return statusBarStyle.
		Background(colorYellow).
		Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "0"}).
		Width(width).
		Render(" " + msg)
}

func renderErrorBar(msg string, width int) string {
	return statusBarStyle.
		Background(colorRed).
		Width(width).
		Render(" " + msg)
}

func renderSavedBar(width int) string {
	return statusBarStyle.
		Width(width).
		Render(" " + lipgloss.NewStyle().Foreground(colorGreen).Render("Saved"))
}
