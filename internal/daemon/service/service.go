// Package service wires the battery monitor, the settings store and the
// settings watcher into the running daemon.
package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chargewatch/chargewatch/internal/battery"
	"github.com/chargewatch/chargewatch/internal/config"
	"github.com/chargewatch/chargewatch/internal/daemon/monitor"
	"github.com/chargewatch/chargewatch/internal/daemon/watcher"
	"github.com/chargewatch/chargewatch/internal/models"
	"github.com/chargewatch/chargewatch/internal/notify"
)

// Options configures a Service.
type Options struct {
	Interval time.Duration
	Provider battery.Provider
	Notifier notify.Notifier

	// OnReading is called with each changed reading and whether the
	// highlighter is enabled.
	OnReading func(r models.Reading, highlight bool)

	// OnStateChange is called when polling starts or stops.
	OnStateChange func(monitoring bool)
}

// Service polls the battery while notifications are enabled and not paused.
type Service struct {
	store   *config.SettingsStore
	monitor *monitor.Monitor
	opts    Options

	highlight atomic.Bool

	// applyMu serializes start/stop decisions
	applyMu sync.Mutex

	mu     sync.Mutex
	ctx    context.Context
	paused bool
}

// New creates a service backed by the given settings store.
func New(store *config.SettingsStore, opts Options) *Service {
	if opts.Provider == nil {
		opts.Provider = battery.NewSystem()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.NewDesktop("")
	}

	s := &Service{store: store, opts: opts}
	s.monitor = monitor.New(opts.Provider, store, opts.Notifier,
		monitor.WithInterval(opts.Interval),
		monitor.WithObserver(s.observe),
	)
	return s
}

// Run applies the current settings and follows changes to the settings
// file until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if err := s.store.EnsureDefaults(); err != nil {
		return fmt.Errorf("failed to create default settings: %w", err)
	}

	w, err := watcher.New()
	if err != nil {
		return fmt.Errorf("failed to create settings watcher: %w", err)
	}
	if err := w.Start(s.store.Path()); err != nil {
		w.Stop()
		return fmt.Errorf("failed to watch settings: %w", err)
	}

	log.Printf("[service] Following %s, polling every %s", s.store.Path(), s.monitor.Interval())

	g, ctx := errgroup.WithContext(ctx)

	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()
	s.apply()

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case e := <-w.Events():
				log.Printf("[service] %s: %s", e.Type, e.Path)
				s.apply()
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		w.Stop()
		s.applyMu.Lock()
		s.monitor.Stop()
		s.applyMu.Unlock()
		s.notifyState()
		return nil
	})

	return g.Wait()
}

// Paused reports whether polling was paused by the user.
func (s *Service) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// SetPaused pauses or resumes polling.
func (s *Service) SetPaused(paused bool) {
	s.mu.Lock()
	s.paused = paused
	s.mu.Unlock()

	if paused {
		log.Println("[service] Paused by user")
	} else {
		log.Println("[service] Resumed by user")
	}
	s.apply()
}

// Monitoring reports whether the battery is being polled.
func (s *Service) Monitoring() bool {
	return s.monitor.Running()
}

// SettingsPath returns the settings file being followed.
func (s *Service) SettingsPath() string {
	return s.store.Path()
}

// Announce shows msg through the daemon's notifier.
func (s *Service) Announce(msg notify.Message) error {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}
	return s.opts.Notifier.Notify(ctx, msg)
}

// apply starts or stops polling to match the settings and pause state.
// A settings file that can't be read leaves the current state alone.
func (s *Service) apply() {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	s.mu.Lock()
	ctx, paused := s.ctx, s.paused
	s.mu.Unlock()

	if ctx == nil || ctx.Err() != nil {
		return
	}

	settings, err := s.store.Read()
	if err != nil {
		log.Printf("[service] Failed to read settings: %v", err)
		return
	}
	if prev := s.highlight.Swap(settings.EnableHighlighter); prev != settings.EnableHighlighter {
		if r, ok := s.monitor.Last(); ok {
			s.observe(r)
		}
	}

	if settings.EnableNotifications && !paused {
		s.monitor.Start(ctx)
	} else {
		s.monitor.Stop()
	}
	s.notifyState()
}

func (s *Service) observe(r models.Reading) {
	if s.opts.OnReading != nil {
		s.opts.OnReading(r, s.highlight.Load())
	}
}

func (s *Service) notifyState() {
	if s.opts.OnStateChange != nil {
		s.opts.OnStateChange(s.monitor.Running())
	}
}
