package tray

import (
	_ "embed"

	"github.com/getlantern/systray"

	"github.com/chargewatch/chargewatch/internal/models"
)

var (
	//go:embed icons/battery.png
	iconData []byte

	//go:embed icons/battery-green.png
	iconGreen []byte

	//go:embed icons/battery-orange.png
	iconOrange []byte

	//go:embed icons/battery-red.png
	iconRed []byte
)

// iconFor returns the tray icon for a percentage and whether it is a
// monochrome template image. Without the highlighter the neutral template
// icon is always used.
func iconFor(percent int, highlight bool) ([]byte, bool) {
	if !highlight {
		return iconData, true
	}
	switch models.SeverityFor(percent) {
	case models.SeverityCritical:
		return iconRed, false
	case models.SeverityLow:
		return iconOrange, false
	default:
		return iconGreen, false
	}
}

// setIcon shows icon in the tray. macOS renders template images as a
// silhouette, so coloured icons go through SetIcon.
func setIcon(icon []byte, template bool) {
	if template {
		systray.SetTemplateIcon(icon, icon)
		return
	}
	systray.SetIcon(icon)
}
