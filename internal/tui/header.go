package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func renderHeader(path string, dirty bool, width int) string {
	dot := lipgloss.NewStyle().Foreground(colorGreen).Render("●")
	if dirty {
		dot = lipgloss.NewStyle().Foreground(colorYellow).Render("●")
	}
	name := lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Render("chargewatch")

	left := fmt.Sprintf(" %s %s  %s", dot, name, hintStyle.Render("settings"))

	right := ""
	if room := width - lipgloss.Width(left) - 3; room > 10 {
		if over := ansi.StringWidth(path) - room; over > 0 {
			path = ansi.TruncateLeft(path, over+1, "…")
		}
		right = hintStyle.Render(path) + " "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return headerStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
