package weather

import (
	"sync"

	"github.com/zeusync/weather/internal/core/scheduler"
	"github.com/zeusync/weather/internal/core/systems/physics"
	"github.com/zeusync/weather/internal/core/world"
)

// scripted replays fixed draws, then returns fallback forever.
type scripted struct {
	vals     []float64
	fallback float64
	used     int
}

func script(vals ...float64) *scripted {
	return &scripted{vals: vals, fallback: 0.999}
}

func (s *scripted) Float64() float64 {
	s.used++
	if len(s.vals) == 0 {
		return s.fallback
	}
	v := s.vals[0]
	s.vals = s.vals[1:]
	return v
}

// recorder collects notifications.
type recorder struct {
	mu    sync.Mutex
	notes []Notification
}

func (r *recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

func (r *recorder) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.notes))
	for _, n := range r.notes {
		out = append(out, n.Message)
	}
	return out
}

type fixture struct {
	world  *world.Memory
	clock  *scheduler.Clock
	notes  *recorder
	player world.Actor
}

func newFixture(playerPos physics.Vec3) *fixture {
	w := world.NewMemory()
	return &fixture{
		world:  w,
		clock:  scheduler.NewClock(nil),
		notes:  &recorder{},
		player: w.SpawnPlayer(playerPos, 1_000_000, false),
	}
}

func (f *fixture) deps() Deps {
	return Deps{World: f.world, Notifier: f.notes}
}
