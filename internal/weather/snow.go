package weather

import (
	"sync"
	"time"

	"github.com/zeusync/weather/internal/core/observability/log"
	"github.com/zeusync/weather/internal/core/scheduler"
	"github.com/zeusync/weather/internal/core/systems"
	"github.com/zeusync/weather/internal/core/world"
)

const NameSnow = "snow"

var _ systems.System = (*Snow)(nil)

// Snow only rolls while the player is in a snow biome. While snowing,
// visibility drops, mobs are frozen, and an unprotected player takes damage
// every damage interval.
type Snow struct {
	cycle
	cfg SnowConfig
	rng Random

	mu       sync.Mutex
	state    State
	damage   scheduler.Handle
	duration scheduler.Handle
	frozen   []world.Actor
	stats    Stats
	metrics  systems.Metrics
}

func NewSnow(cfg SnowConfig, deps Deps, rng Random) *Snow {
	deps = deps.withDefaults()
	deps.Logger = deps.Logger.Named(NameSnow)
	return &Snow{cycle: cycle{name: NameSnow, deps: deps}, cfg: cfg, rng: rng}
}

func (s *Snow) Name() string { return NameSnow }

func (s *Snow) Start(sched scheduler.Scheduler) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startPolling(sched, s.Tick)
}

// Stop cancels polling and ends any snow in progress, cancelling its timers.
func (s *Snow) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopPolling()
	if s.state == Active {
		s.end()
	}
}

func (s *Snow) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Visibility is the snow visibility while snowing, the normal level otherwise.
func (s *Snow) Visibility() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibility()
}

func (s *Snow) visibility() float64 {
	if s.state == Active {
		return s.cfg.SnowVisibility
	}
	return s.cfg.NormalVisibility
}

// FrozenMobs is the number of mobs this snow event froze.
func (s *Snow) FrozenMobs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frozen)
}

func (s *Snow) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *Snow) GetMetrics() systems.Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics
}

func (s *Snow) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.metrics.Observe(time.Now())

	s.stats.Polls++
	player, err := s.player()
	if err != nil {
		s.stats.Skipped++
		s.deps.Logger.Debug("poll skipped", log.Error(err))
		return
	}
	if s.deps.Biomes.BiomeAt(player.Position()) != world.BiomeSnow {
		s.stats.Skipped++
		return
	}

	s.stats.Rolls++
	hit, draw := Roll(s.rng, s.cfg.Probability)
	if !hit {
		return
	}
	s.stats.Triggers++
	s.deps.Logger.Debug("snow rolled", log.Float64("draw", draw), log.String("state", s.state.String()))
	if s.state == Inactive {
		s.begin()
	}
}

func (s *Snow) begin() {
	s.state = Active
	s.stats.Starts++
	s.notify("Snow has started!", SeverityInfo, "", "")
	s.deps.Logger.Info("snow started", log.Float64("visibility", s.visibility()))

	s.freezeMobs()
	if s.sched != nil {
		s.damage = s.sched.Every(s.cfg.DamageInterval, s.damagePlayer)
		s.duration = s.sched.After(s.cfg.Duration, s.expire)
	}
}

func (s *Snow) freezeMobs() {
	for _, mob := range s.deps.World.ActorsOfType(world.KindMob) {
		if !world.IsValid(mob) {
			s.deps.Logger.Debug("mob not frozen", log.Error(ErrInvalidActor))
			continue
		}
		s.deps.World.SetFrozen(mob, true)
		s.frozen = append(s.frozen, mob)
	}
	s.notify("All mobs are frozen by snow!", SeverityNotice, "", "")
}

func (s *Snow) thawMobs() {
	for _, mob := range s.frozen {
		if world.IsValid(mob) {
			s.deps.World.SetFrozen(mob, false)
		}
	}
	s.frozen = nil
}

func (s *Snow) damagePlayer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Active {
		return
	}
	player, err := s.player()
	if err != nil {
		return
	}
	if s.deps.World.HasWinterProtection(player) {
		return
	}
	s.deps.World.ApplyDamage(player, s.cfg.DamageAmount)
	s.stats.DamageTicks++
	s.notify("You are freezing! Wear winter clothes!", SeverityAlert, player.ID(), "")
}

func (s *Snow) expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Active {
		s.end()
	}
}

// end must be called with mu held.
func (s *Snow) end() {
	cancel(s.damage)
	cancel(s.duration)
	s.damage, s.duration = nil, nil
	s.thawMobs()
	s.state = Inactive
	s.stats.Stops++
	s.notify("Snow has stopped.", SeverityInfo, "", "")
	s.deps.Logger.Info("snow stopped", log.Float64("visibility", s.visibility()))
}
