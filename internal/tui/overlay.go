package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// placeOverlay draws box centered over a dimmed copy of base.
func placeOverlay(base, box string, width, height int) string {
	rows := strings.Split(base, "\n")
	for len(rows) < height {
		rows = append(rows, "")
	}
	for i, row := range rows {
		rows[i] = overlayDimStyle.Render(ansi.Strip(row))
	}

	boxRows := strings.Split(box, "\n")
	top := max(1, (height-len(boxRows))/2)
	left := max(1, (width-lipgloss.Width(box))/2)

	for i, line := range boxRows {
		r := top + i
		if r >= len(rows) {
			break
		}
		bg := rows[r]
		bgWidth := lipgloss.Width(bg)

		right := ""
		if end := left + lipgloss.Width(line); end < bgWidth {
			right = ansi.Cut(bg, end, bgWidth)
		}
		pad := ""
		if w := lipgloss.Width(bg); w < left {
			pad = strings.Repeat(" ", left-w)
		}
		rows[r] = ansi.Truncate(bg, left, "") + pad + "\033[0m" + line + "\033[0m" + right
	}

	return strings.Join(rows, "\n")
}
