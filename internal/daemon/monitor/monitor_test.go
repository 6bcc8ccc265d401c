package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chargewatch/chargewatch/internal/battery"
	"github.com/chargewatch/chargewatch/internal/models"
	"github.com/chargewatch/chargewatch/internal/notify"
)

type staticSettings struct {
	settings *models.Settings
	err      error
}

func (s staticSettings) Read() (*models.Settings, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.settings.Clone(), nil
}

// scripted returns the given readings in order, repeating the last one.
type scripted struct {
	mu       sync.Mutex
	readings []models.Reading
	err      error
}

func (s *scripted) Read(context.Context) (models.Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return models.Reading{}, s.err
	}
	r := s.readings[0]
	if len(s.readings) > 1 {
		s.readings = s.readings[1:]
	}
	return r, nil
}

func settingsWith(enabled bool, levels ...models.BatteryLevel) staticSettings {
	return staticSettings{settings: &models.Settings{
		EnableNotifications:   enabled,
		NotifyOnBatteryLevels: levels,
	}}
}

func TestTickSequence(t *testing.T) {
	provider := &scripted{readings: []models.Reading{
		discharging(55), discharging(49), discharging(49), discharging(31), discharging(29),
	}}
	rec := &notify.Recorder{}
	var observed []int
	m := New(provider, settingsWith(true, fiftyThirty...), rec,
		WithObserver(func(r models.Reading) { observed = append(observed, r.Percent()) }))

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, m.Tick(ctx))
	}

	assert.Equal(t, []notify.Message{
		notify.DischargingReached(50),
		notify.DischargingReached(30),
	}, rec.Messages())
	// Unchanged readings are not observed
	assert.Equal(t, []int{55, 49, 31, 29}, observed)

	last, ok := m.Last()
	require.True(t, ok)
	assert.Equal(t, 29, last.Percent())
}

func TestTickFirstReadingOnlySeeds(t *testing.T) {
	provider := &scripted{readings: []models.Reading{discharging(30)}}
	rec := &notify.Recorder{}
	m := New(provider, settingsWith(true, fiftyThirty...), rec)

	require.NoError(t, m.Tick(context.Background()))
	assert.Empty(t, rec.Messages())
}

func TestTickNotificationsDisabled(t *testing.T) {
	provider := &scripted{readings: []models.Reading{discharging(51), discharging(50)}}
	rec := &notify.Recorder{}
	m := New(provider, settingsWith(false, fiftyThirty...), rec)

	ctx := context.Background()
	require.NoError(t, m.Tick(ctx))
	require.NoError(t, m.Tick(ctx))
	assert.Empty(t, rec.Messages())

	last, _ := m.Last()
	assert.Equal(t, 50, last.Percent())
}

func TestTickErrors(t *testing.T) {
	t.Run("battery", func(t *testing.T) {
		m := New(&scripted{err: battery.ErrNoBattery}, settingsWith(true), &notify.Recorder{})
		err := m.Tick(context.Background())
		assert.ErrorIs(t, err, battery.ErrNoBattery)
		_, ok := m.Last()
		assert.False(t, ok)
	})

	t.Run("settings", func(t *testing.T) {
		boom := errors.New("corrupt")
		m := New(&scripted{readings: []models.Reading{discharging(40)}}, staticSettings{err: boom}, &notify.Recorder{})
		err := m.Tick(context.Background())
		assert.ErrorIs(t, err, boom)
		_, ok := m.Last()
		assert.False(t, ok)
	})
}

func TestStartStop(t *testing.T) {
	provider := &scripted{readings: []models.Reading{
		charging(98), charging(99), charging(100),
	}}
	rec := &notify.Recorder{}
	m := New(provider, settingsWith(true), rec, WithInterval(5*time.Millisecond))

	ctx := context.Background()
	m.Start(ctx)
	m.Start(ctx) // no-op
	assert.True(t, m.Running())

	require.Eventually(t, func() bool {
		return len(rec.Messages()) == 1
	}, 2*time.Second, 5*time.Millisecond)

	// Readings stay at 100%, nothing more fires
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, []notify.Message{notify.FullyCharged()}, rec.Messages())

	m.Stop()
	m.Stop() // no-op
	assert.False(t, m.Running())
}

func TestStartReseedsAfterStop(t *testing.T) {
	provider := &scripted{readings: []models.Reading{discharging(60)}}
	rec := &notify.Recorder{}
	m := New(provider, settingsWith(true, fiftyThirty...), rec, WithInterval(5*time.Millisecond))

	m.Start(context.Background())
	require.Eventually(t, func() bool {
		_, ok := m.Last()
		return ok
	}, time.Second, time.Millisecond)
	m.Stop()

	// While stopped the battery drained past both thresholds
	provider.mu.Lock()
	provider.readings = []models.Reading{discharging(20)}
	provider.mu.Unlock()

	m.Start(context.Background())
	require.Eventually(t, func() bool {
		last, _ := m.Last()
		return last.Percent() == 20
	}, time.Second, time.Millisecond)
	m.Stop()

	assert.Empty(t, rec.Messages())
}

func TestWithIntervalIgnoresNonPositive(t *testing.T) {
	m := New(battery.Func(nil), settingsWith(true), &notify.Recorder{}, WithInterval(0))
	assert.Equal(t, DefaultInterval, m.Interval())
}
