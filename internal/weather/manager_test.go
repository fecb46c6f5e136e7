package weather

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/weather/internal/core/events/bus"
	"github.com/zeusync/weather/internal/core/scheduler"
	"github.com/zeusync/weather/internal/core/systems/physics"
	"github.com/zeusync/weather/internal/core/world"
)

func streams(byName map[string]Random) RandomSource {
	return func(stream string) Random {
		if r, ok := byName[stream]; ok {
			return r
		}
		return script()
	}
}

func TestManagerLifecycle(t *testing.T) {
	f := newFixture(physics.Vec3{})
	m, err := NewManager(DefaultConfig(), f.world, f.clock)
	require.NoError(t, err)

	require.NoError(t, m.Start())
	assert.ErrorIs(t, m.Start(), ErrAlreadyStarted)
	assert.Equal(t, 3, f.clock.Pending())

	f.clock.Advance(10)
	require.NoError(t, m.Stop())
	assert.Zero(t, f.clock.Pending())
	assert.ErrorIs(t, m.Stop(), ErrNotStarted)

	f.clock.Advance(10)
	assert.Equal(t, uint64(10), m.Rain().Stats().Polls)
}

func TestManagerRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Snow.Probability = -1
	_, err := NewManager(cfg, world.NewMemory(), scheduler.NewClock(nil))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewManager(DefaultConfig(), nil, scheduler.NewClock(nil))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestManagerSkipsDisabledPhenomena(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Snow.Enabled = false
	f := newFixture(physics.Vec3{Z: 2500})

	m, err := NewManager(cfg, f.world, f.clock, WithRandom(streams(map[string]Random{NameSnow: script(0)})))
	require.NoError(t, err)
	require.NoError(t, m.Start())
	f.clock.Advance(5)

	assert.Equal(t, 2, f.clock.Pending())
	assert.Equal(t, Inactive, m.Snow().State())
	assert.Zero(t, m.Snow().Stats().Polls)
}

func TestManagerMissingPlayerOnlyAffectsGatedPhenomena(t *testing.T) {
	f := newFixture(physics.Vec3{})
	f.world.Destroy(f.player.ID())

	m, err := NewManager(DefaultConfig(), f.world, f.clock, WithRandom(streams(map[string]Random{
		NameLightning: script(0),
		NameRain:      script(0),
		NameSnow:      script(0),
	})))
	require.NoError(t, err)
	require.NoError(t, m.Start())
	f.clock.Advance(1)

	snap := m.Snapshot()
	assert.Equal(t, Active, snap.Rain.State)
	assert.Equal(t, 5.0, snap.Rain.LightLevel)
	assert.Equal(t, Inactive, snap.Snow.State)
	assert.Equal(t, uint64(1), snap.Lightning.Stats.Skipped)
	assert.Equal(t, uint64(1), snap.Snow.Stats.Skipped)
	assert.Zero(t, f.clock.Panics())
}

func TestManagerSnapshotJSON(t *testing.T) {
	f := newFixture(physics.Vec3{Z: 2500})
	m, err := NewManager(DefaultConfig(), f.world, f.clock, WithRandom(streams(map[string]Random{
		NameSnow: script(0),
	})))
	require.NoError(t, err)
	require.NoError(t, m.Start())
	f.clock.Advance(1)

	raw, err := json.Marshal(m.Snapshot())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	snow := decoded["snow"].(map[string]any)
	assert.Equal(t, "active", snow["state"])
	assert.Equal(t, 5.0, snow["visibility"])
	assert.Equal(t, 1.0, decoded["tick"])
}

func TestManagerPublishesNotifications(t *testing.T) {
	b := bus.New()
	var got []Notification
	_, err := b.Subscribe(EventNotification, func(e bus.Event) error {
		got = append(got, e.Data().(Notification))
		return nil
	})
	require.NoError(t, err)

	f := newFixture(physics.Vec3{})
	m, err := NewManager(DefaultConfig(), f.world, f.clock,
		WithNotifier(NewBusNotifier(b, nil)),
		WithRandom(streams(map[string]Random{NameRain: script(0)})),
	)
	require.NoError(t, err)
	require.NoError(t, m.Start())
	f.clock.Advance(1)

	require.NotEmpty(t, got)
	assert.Equal(t, NameRain, got[0].Phenomenon)
	assert.Equal(t, "Rain has started!", got[0].Message)
	assert.Equal(t, scheduler.Ticks(1), got[0].Tick)
}

func TestManagerForcedStrikeUsesSharedWorld(t *testing.T) {
	f := newFixture(physics.Vec3{})
	f.world.SpawnWithID("oak", world.KindTree, "", physics.Vec3{X: 20})
	f.world.SpawnWithID("pine", world.KindTree, "", physics.Vec3{X: 260})

	m, err := NewManager(DefaultConfig(), f.world, f.clock, WithRandom(streams(map[string]Random{
		NameLightning: script(0.5, 0.5),
	})))
	require.NoError(t, err)

	res := m.Lightning().Strike(physics.Vec3{})
	assert.Len(t, res.Ignited, 2)
	assert.Equal(t, []string{"oak", "pine"}, f.world.BurningIDs())
	assert.Equal(t, uint64(2), m.Snapshot().Lightning.Stats.Ignitions)
}
