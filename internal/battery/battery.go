// Package battery reads the OS battery state.
package battery

import (
	"context"
	"errors"
	"fmt"

	"github.com/distatus/battery"

	"github.com/chargewatch/chargewatch/internal/models"
)

// ErrNoBattery is returned when the OS reports no usable battery.
var ErrNoBattery = errors.New("no battery found")

// Provider returns the current battery reading.
type Provider interface {
	Read(ctx context.Context) (models.Reading, error)
}

// Func adapts a function to a Provider.
type Func func(ctx context.Context) (models.Reading, error)

// Read calls f.
func (f Func) Read(ctx context.Context) (models.Reading, error) {
	return f(ctx)
}

// System reads all batteries the OS reports and combines them into one reading.
type System struct {
	getAll func() ([]*battery.Battery, error)
}

// NewSystem creates a provider backed by the OS battery APIs.
func NewSystem() *System {
	return &System{getAll: battery.GetAll}
}

// Read returns the combined charge fraction across batteries.
func (s *System) Read(ctx context.Context) (models.Reading, error) {
	if err := ctx.Err(); err != nil {
		return models.Reading{}, err
	}

	batteries, err := s.getAll()
	if err != nil && len(batteries) == 0 {
		return models.Reading{}, fmt.Errorf("failed to read battery status: %w", err)
	}
	// Per-battery errors come back positionally alongside the batteries
	var perBattery battery.Errors
	if err != nil {
		if errs, ok := err.(battery.Errors); ok {
			perBattery = errs
		}
	}

	return combine(batteries, perBattery)
}

func combine(batteries []*battery.Battery, errs battery.Errors) (models.Reading, error) {
	var current, full float64
	var charging, found bool

	for i, b := range batteries {
		if b == nil {
			continue
		}
		var err error
		if i < len(errs) {
			err = errs[i]
		}
		levelOK, stateOK := usableFields(err)
		if !levelOK || b.Full <= 0 {
			continue
		}
		found = true
		current += b.Current
		full += b.Full
		if !stateOK {
			continue
		}
		switch b.State.Raw {
		case battery.Charging, battery.Full:
			charging = true
		}
	}

	if !found {
		return models.Reading{}, ErrNoBattery
	}

	level := current / full
	if level > 1 {
		level = 1
	}
	return models.Reading{Level: level, Charging: charging}, nil
}

// usableFields reports whether a battery's charge and state can be trusted
// given its read error. A partial error only invalidates the fields it names.
func usableFields(err error) (levelOK, stateOK bool) {
	if err == nil {
		return true, true
	}

	var partial battery.ErrPartial
	switch e := err.(type) {
	case battery.ErrPartial:
		partial = e
	case *battery.ErrPartial:
		if e == nil {
			return true, true
		}
		partial = *e
	default:
		return false, false
	}
	return partial.Current == nil && partial.Full == nil, partial.State == nil
}
