package notify

import (
	"fmt"

	"github.com/chargewatch/chargewatch/internal/models"
)

// FullyCharged is shown when a charging battery reaches 100%.
func FullyCharged() Message {
	return Message{
		Title: "Fully charged",
		Body:  "Battery is fully charged 🎉",
	}
}

// ChargingReached is shown when a charging battery reaches a threshold.
func ChargingReached(level int) Message {
	return Message{
		Title: "Charging",
		Body:  fmt.Sprintf("You have reached %d%% 🎉", level),
	}
}

// DischargingReached is shown when a discharging battery drops to a threshold.
// The title follows the severity band of the threshold.
func DischargingReached(level int) Message {
	var title string
	switch models.SeverityFor(level) {
	case models.SeverityCritical:
		title = "Battery critical"
	case models.SeverityLow:
		title = "Battery low"
	default:
		title = "Battery"
	}
	return Message{
		Title: title,
		Body:  fmt.Sprintf("You are at %d%% 👀", level),
	}
}

// SettingsHint tells the user how to edit settings from the tray.
func SettingsHint(path string, monitoring bool) Message {
	state := "Notifications are on."
	if !monitoring {
		state = "Notifications are off."
	}
	return Message{
		Title: "chargewatch settings",
		Body:  fmt.Sprintf("%s Run `chargewatch settings` to edit %s", state, path),
	}
}
