package weather

import (
	"sync"
	"time"

	"github.com/zeusync/weather/internal/core/observability/log"
	"github.com/zeusync/weather/internal/core/scheduler"
	"github.com/zeusync/weather/internal/core/systems"
)

const NameRain = "rain"

var _ systems.System = (*Rain)(nil)

// RainSpawner is an optional World capability for mobs that only appear in rain.
type RainSpawner interface {
	SpawnRainMobs() int
}

// Rain darkens the world for a fixed duration. A successful roll while it is
// already raining intensifies the rain without changing state.
type Rain struct {
	cycle
	cfg RainConfig
	rng Random

	mu       sync.Mutex
	state    State
	duration scheduler.Handle
	stats    Stats
	metrics  systems.Metrics
}

func NewRain(cfg RainConfig, deps Deps, rng Random) *Rain {
	deps = deps.withDefaults()
	deps.Logger = deps.Logger.Named(NameRain)
	return &Rain{cycle: cycle{name: NameRain, deps: deps}, cfg: cfg, rng: rng}
}

func (r *Rain) Name() string { return NameRain }

func (r *Rain) Start(s scheduler.Scheduler) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.startPolling(s, r.Tick)
}

// Stop cancels polling and ends any rain in progress.
func (r *Rain) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopPolling()
	if r.state == Active {
		r.end()
	}
}

func (r *Rain) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// LightLevel is the rain light level while raining, the normal level otherwise.
func (r *Rain) LightLevel() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lightLevel()
}

func (r *Rain) lightLevel() float64 {
	if r.state == Active {
		return r.cfg.RainLight
	}
	return r.cfg.NormalLight
}

func (r *Rain) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *Rain) GetMetrics() systems.Metrics {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.metrics
}

func (r *Rain) Tick() {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer r.metrics.Observe(time.Now())

	r.stats.Polls++
	r.stats.Rolls++
	hit, draw := Roll(r.rng, r.cfg.Probability)
	if !hit {
		return
	}
	r.stats.Triggers++
	r.deps.Logger.Debug("rain rolled", log.Float64("draw", draw), log.String("state", r.state.String()))

	if r.state == Inactive {
		r.begin()
	} else {
		r.intensify()
	}
}

func (r *Rain) begin() {
	r.state = Active
	r.stats.Starts++
	r.notify("Rain has started!", SeverityInfo, "", "")
	r.deps.Logger.Info("rain started", log.Float64("light", r.lightLevel()))

	r.spawnMobs()
	if r.sched != nil {
		r.duration = r.sched.After(r.cfg.Duration, r.expire)
	}
}

func (r *Rain) intensify() {
	r.stats.Intensified++
	r.notify("Rain intensifies!", SeverityNotice, "", "")
}

func (r *Rain) spawnMobs() {
	r.notify("Rain mobs are spawning!", SeverityWarning, "", "")
	if sp, ok := r.deps.World.(RainSpawner); ok {
		n := sp.SpawnRainMobs()
		r.deps.Logger.Debug("rain mobs spawned", log.Int("count", n))
	}
}

func (r *Rain) expire() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == Active {
		r.end()
	}
}

// end must be called with mu held.
func (r *Rain) end() {
	cancel(r.duration)
	r.duration = nil
	r.state = Inactive
	r.stats.Stops++
	r.notify("Rain has stopped.", SeverityInfo, "", "")
	r.deps.Logger.Info("rain stopped", log.Float64("light", r.lightLevel()))
}
