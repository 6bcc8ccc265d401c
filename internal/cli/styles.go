package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/chargewatch/chargewatch/internal/models"
)

// Adaptive colors matching the TUI palette.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorOrange = lipgloss.AdaptiveColor{Light: "166", Dark: "208"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

// Semantic styles for CLI output.
var (
	styleBrand   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleVersion = lipgloss.NewStyle().Foreground(colorGreen)
	styleLabel   = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	styleHint    = lipgloss.NewStyle().Foreground(colorDim)
	styleCommand = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
)

// Toggle badge styles.
var (
	badgeOn  = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	badgeOff = lipgloss.NewStyle().Foreground(colorRed)
)

// Severity styles for the highlighted battery level.
var (
	levelNormal   = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	levelLow      = lipgloss.NewStyle().Bold(true).Foreground(colorOrange)
	levelCritical = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
)

func severityStyle(s models.Severity) lipgloss.Style {
	switch s {
	case models.SeverityCritical:
		return levelCritical
	case models.SeverityLow:
		return levelLow
	default:
		return levelNormal
	}
}

func onOff(v bool) string {
	if v {
		return badgeOn.Render("on")
	}
	return badgeOff.Render("off")
}
