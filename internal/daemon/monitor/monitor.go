// Package monitor polls the battery and raises notifications at configured thresholds.
package monitor

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/chargewatch/chargewatch/internal/battery"
	"github.com/chargewatch/chargewatch/internal/models"
	"github.com/chargewatch/chargewatch/internal/notify"
)

// DefaultInterval is the polling interval when none is configured.
const DefaultInterval = time.Second

// SettingsSource provides the current settings on each tick.
type SettingsSource interface {
	Read() (*models.Settings, error)
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithInterval sets the polling interval.
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithObserver registers a callback invoked with every reading whose
// percentage or charging state differs from the previous one.
func WithObserver(fn func(models.Reading)) Option {
	return func(m *Monitor) {
		m.observer = fn
	}
}

// Monitor watches the battery on a fixed interval.
type Monitor struct {
	provider battery.Provider
	settings SettingsSource
	notifier notify.Notifier
	interval time.Duration
	observer func(models.Reading)

	// Lifecycle
	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	// Last reading, written only by the polling goroutine
	stateMu sync.RWMutex
	prev    models.Reading
	hasPrev bool
}

// New creates a monitor. It does not poll until Start is called.
func New(provider battery.Provider, settings SettingsSource, notifier notify.Notifier, opts ...Option) *Monitor {
	m := &Monitor{
		provider: provider,
		settings: settings,
		notifier: notifier,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Interval returns the polling interval.
func (m *Monitor) Interval() time.Duration {
	return m.interval
}

// Start begins polling. The first reading only seeds the previous value.
// Calling Start on a running monitor is a no-op.
func (m *Monitor) Start(ctx context.Context) {
	m.runMu.Lock()
	defer m.runMu.Unlock()

	if m.cancel != nil {
		return
	}

	m.stateMu.Lock()
	m.hasPrev = false
	m.stateMu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	m.cancel = cancel
	m.done = done

	go m.run(ctx, done)
	log.Printf("[monitor] Polling every %s", m.interval)
}

// Stop halts polling and waits for the polling goroutine to exit.
func (m *Monitor) Stop() {
	m.runMu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.runMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	log.Println("[monitor] Polling stopped")
}

// Running reports whether the monitor is polling.
func (m *Monitor) Running() bool {
	m.runMu.Lock()
	defer m.runMu.Unlock()
	return m.cancel != nil
}

// Last returns the most recent reading, if any.
func (m *Monitor) Last() (models.Reading, bool) {
	m.stateMu.RLock()
	defer m.stateMu.RUnlock()
	return m.prev, m.hasPrev
}

func (m *Monitor) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		if err := m.Tick(ctx); err != nil && ctx.Err() == nil {
			log.Printf("[monitor] Tick failed: %v", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Tick performs one poll: read settings and battery, compare with the
// previous reading and notify if a threshold was crossed. It must not be
// called concurrently with itself or with a running monitor.
func (m *Monitor) Tick(ctx context.Context) error {
	settings, err := m.settings.Read()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	reading, err := m.provider.Read(ctx)
	if err != nil {
		return fmt.Errorf("failed to read battery: %w", err)
	}

	m.stateMu.Lock()
	prev, hadPrev := m.prev, m.hasPrev
	m.prev, m.hasPrev = reading, true
	m.stateMu.Unlock()

	changed := !hadPrev || prev.Percent() != reading.Percent() || prev.Charging != reading.Charging
	if changed && m.observer != nil {
		m.observer(reading)
	}

	if !hadPrev || !changed || !settings.EnableNotifications {
		return nil
	}

	alert, ok := Evaluate(prev, reading, settings.NotifyOnBatteryLevels)
	if !ok {
		return nil
	}

	log.Printf("[monitor] %s (%d%% → %d%%, %s)", alert, prev.Percent(), reading.Percent(), reading.StateLabel())
	if err := m.notifier.Notify(ctx, alert.Message()); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}
