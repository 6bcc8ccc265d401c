package monitor

import (
	"fmt"

	"github.com/chargewatch/chargewatch/internal/models"
	"github.com/chargewatch/chargewatch/internal/notify"
)

// AlertKind identifies which message an alert maps to.
type AlertKind int

// Alert kinds.
const (
	AlertFullyCharged AlertKind = iota
	AlertCharging
	AlertDischarging
)

// Alert is the threshold crossed between two readings.
type Alert struct {
	Kind  AlertKind
	Level int
}

// Message returns the notification text for the alert.
func (a Alert) Message() notify.Message {
	switch a.Kind {
	case AlertFullyCharged:
		return notify.FullyCharged()
	case AlertCharging:
		return notify.ChargingReached(a.Level)
	default:
		return notify.DischargingReached(a.Level)
	}
}

func (a Alert) String() string {
	switch a.Kind {
	case AlertFullyCharged:
		return "fully charged"
	case AlertCharging:
		return fmt.Sprintf("charging reached %d%%", a.Level)
	default:
		return fmt.Sprintf("discharging reached %d%%", a.Level)
	}
}

// Evaluate decides whether moving from prev to cur crosses a threshold.
//
// While charging, reaching 100% always reports AlertFullyCharged; otherwise
// the highest charging-scoped level in (prev, cur] is reported. While
// discharging, the lowest discharging-scoped level in [cur, prev) is
// reported. At most one alert is returned.
func Evaluate(prev, cur models.Reading, levels []models.BatteryLevel) (Alert, bool) {
	from, to := prev.Percent(), cur.Percent()
	if from == to && prev.Charging == cur.Charging {
		return Alert{}, false
	}

	if cur.Charging {
		if from < 100 && to >= 100 {
			return Alert{Kind: AlertFullyCharged, Level: 100}, true
		}
		best := -1
		for _, l := range levels {
			if l.WhenCharging && from < l.Level && l.Level <= to && l.Level > best {
				best = l.Level
			}
		}
		if best < 0 {
			return Alert{}, false
		}
		return Alert{Kind: AlertCharging, Level: best}, true
	}

	best := 101
	for _, l := range levels {
		if l.WhenDischarging && to <= l.Level && l.Level < from && l.Level < best {
			best = l.Level
		}
	}
	if best > 100 {
		return Alert{}, false
	}
	return Alert{Kind: AlertDischarging, Level: best}, true
}
