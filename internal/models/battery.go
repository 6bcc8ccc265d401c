package models

import "math"

// Reading is an instantaneous battery state as reported by the OS.
type Reading struct {
	Level    float64 // charge fraction, 0..1
	Charging bool
}

// Percent returns the level as a whole percentage, rounded and clamped to 0..100.
func (r Reading) Percent() int {
	p := int(math.Round(r.Level * 100))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// StateLabel returns "charging" or "discharging".
func (r Reading) StateLabel() string {
	if r.Charging {
		return "charging"
	}
	return "discharging"
}

// Severity is the colour band a battery percentage falls into.
type Severity int

const (
	SeverityNormal   Severity = iota // green, above 50%
	SeverityLow                      // orange, 30% to 50%
	SeverityCritical                 // red, below 30%
)

// SeverityFor returns the band for a percentage.
func SeverityFor(percent int) Severity {
	switch {
	case percent < 30:
		return SeverityCritical
	case percent <= 50:
		return SeverityLow
	default:
		return SeverityNormal
	}
}

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityLow:
		return "low"
	default:
		return "normal"
	}
}
