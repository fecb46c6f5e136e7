package weather

import (
	"fmt"

	"github.com/zeusync/weather/internal/core/observability/log"
	"github.com/zeusync/weather/internal/core/scheduler"
	"github.com/zeusync/weather/internal/core/world"
)

// State is the on/off state of one phenomenon.
type State uint8

const (
	Inactive State = iota
	Active
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case Active:
		return "active"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Stats are cumulative counters for one phenomenon.
type Stats struct {
	Polls   uint64 `json:"polls"`
	Skipped uint64 `json:"skipped"` // gate closed or no player
	Rolls   uint64 `json:"rolls"`
	// Triggers counts successful rolls.
	Triggers    uint64 `json:"triggers"`
	Starts      uint64 `json:"starts,omitempty"`
	Stops       uint64 `json:"stops,omitempty"`
	Intensified uint64 `json:"intensified,omitempty"`
	Strikes     uint64 `json:"strikes,omitempty"`
	Ignitions   uint64 `json:"ignitions,omitempty"`
	DamageTicks uint64 `json:"damage_ticks,omitempty"`
}

// Deps are the collaborators shared by all phenomena.
type Deps struct {
	World    world.World
	Biomes   world.BiomeLocator
	Notifier Notifier
	Logger   log.Log
	// PollInterval is how often each phenomenon rolls.
	PollInterval scheduler.Ticks
}

func (d Deps) withDefaults() Deps {
	if d.Biomes == nil {
		d.Biomes = world.DefaultThresholdBiomes()
	}
	if d.Notifier == nil {
		d.Notifier = NotifierFunc(func(Notification) {})
	}
	if d.Logger == nil {
		d.Logger = log.NewNop()
	}
	if d.PollInterval == 0 {
		d.PollInterval = 1
	}
	return d
}

// cycle is the shared poll-timer plumbing of every phenomenon.
type cycle struct {
	name  string
	deps  Deps
	sched scheduler.Scheduler
	poll  scheduler.Handle
}

func (c *cycle) now() scheduler.Ticks {
	if c.sched == nil {
		return 0
	}
	return c.sched.Now()
}

func (c *cycle) startPolling(s scheduler.Scheduler, tick func()) error {
	if c.poll != nil && c.poll.Active() {
		return fmt.Errorf("%s: %w", c.name, ErrAlreadyStarted)
	}
	c.sched = s
	c.poll = s.Every(c.deps.PollInterval, tick)
	c.deps.Logger.Debug("poll timer started", log.Uint64("interval", uint64(c.deps.PollInterval)))
	return nil
}

func (c *cycle) stopPolling() {
	cancel(c.poll)
	c.poll = nil
}

func (c *cycle) notify(msg string, sev Severity, actorID, eventID string) {
	c.deps.Notifier.Notify(Notification{
		Phenomenon: c.name,
		Message:    msg,
		Severity:   sev,
		Tick:       c.now(),
		ActorID:    actorID,
		EventID:    eventID,
	})
}

// player returns the valid player or ErrMissingPlayer.
func (c *cycle) player() (world.Actor, error) {
	p, ok := c.deps.World.Player()
	if !ok || !world.IsValid(p) {
		return nil, ErrMissingPlayer
	}
	return p, nil
}

func cancel(h scheduler.Handle) {
	if h != nil {
		h.Cancel()
	}
}
