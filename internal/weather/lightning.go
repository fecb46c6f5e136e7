package weather

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/zeusync/weather/internal/core/observability/log"
	"github.com/zeusync/weather/internal/core/scheduler"
	"github.com/zeusync/weather/internal/core/systems"
	"github.com/zeusync/weather/internal/core/systems/physics"
	"github.com/zeusync/weather/internal/core/world"
	"github.com/zeusync/weather/internal/weather/fire"
)

const NameLightning = "lightning"

var _ systems.System = (*Lightning)(nil)

var ignitionMessages = map[fire.Category]string{
	fire.CategoryTree:      "Tree ignited by lightning!",
	fire.CategoryDryGrass:  "Dry grass ignited by lightning!",
	fire.CategoryWoodBlock: "Wood block ignited by lightning!",
}

// Lightning rolls for a strike near the player each poll. A strike sets fire
// to flammable actors around the strike point and lets it spread.
type Lightning struct {
	cycle
	cfg    LightningConfig
	rng    Random
	engine *fire.Engine

	// mu makes strikes mutually exclusive: one completes before the next starts.
	mu      sync.Mutex
	active  atomic.Bool
	strike  string
	stats   Stats
	metrics systems.Metrics
}

// NewLightning builds the lightning phenomenon and its fire engine.
func NewLightning(cfg LightningConfig, deps Deps, rng Random) *Lightning {
	deps = deps.withDefaults()
	deps.Logger = deps.Logger.Named(NameLightning)
	l := &Lightning{
		cycle: cycle{name: NameLightning, deps: deps},
		cfg:   cfg,
		rng:   rng,
	}
	l.engine = fire.NewEngine(deps.World,
		fire.WithRadii(cfg.StrikeRadius, cfg.SpreadRadius),
		fire.WithNotify(l.onIgnition),
		fire.WithLogger(deps.Logger),
	)
	return l
}

func (l *Lightning) Name() string { return NameLightning }

func (l *Lightning) Start(s scheduler.Scheduler) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.startPolling(s, l.Tick)
}

func (l *Lightning) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopPolling()
}

// Active reports whether a strike is being resolved right now.
func (l *Lightning) Active() bool { return l.active.Load() }

func (l *Lightning) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

func (l *Lightning) GetMetrics() systems.Metrics {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.metrics
}

// Tick is one poll: skip outside lightning biomes, otherwise roll for a strike.
func (l *Lightning) Tick() {
	l.mu.Lock()
	defer l.mu.Unlock()
	defer l.metrics.Observe(time.Now())

	l.stats.Polls++
	player, err := l.player()
	if err != nil {
		l.stats.Skipped++
		l.deps.Logger.Debug("poll skipped", log.Error(err))
		return
	}
	pos := player.Position()
	if !l.allowedAt(pos) {
		l.stats.Skipped++
		return
	}

	l.stats.Rolls++
	hit, draw := Roll(l.rng, l.cfg.Probability)
	if !hit {
		return
	}
	l.stats.Triggers++
	l.deps.Logger.Debug("strike rolled", log.Float64("draw", draw))
	l.strikeNear(pos)
}

// Strike forces a strike near center regardless of biome or probability.
func (l *Lightning) Strike(center physics.Vec3) fire.Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.strikeNear(center)
}

// allowedAt is false in desert and snow biomes.
func (l *Lightning) allowedAt(p physics.Vec3) bool {
	switch l.deps.Biomes.BiomeAt(p) {
	case world.BiomeDesert, world.BiomeSnow:
		return false
	default:
		return true
	}
}

// strikeNear must be called with mu held.
func (l *Lightning) strikeNear(center physics.Vec3) fire.Result {
	l.active.Store(true)
	defer l.active.Store(false)

	offset := l.cfg.StrikeOffset
	point := center.Add(physics.Vec3{
		X: Uniform(l.rng, -offset, offset),
		Y: Uniform(l.rng, -offset, offset),
	})
	l.strike = uuid.NewString()
	l.stats.Strikes++
	l.notify("Lightning strike!", SeverityWarning, "", l.strike)

	res := l.engine.Strike(point)
	l.deps.Logger.Info("lightning strike resolved",
		log.String("event", l.strike),
		log.Float64("x", point.X),
		log.Float64("y", point.Y),
		log.Int("ignited", len(res.Ignited)),
		log.Int("examined", res.Examined),
	)
	l.strike = ""
	return res
}

// onIgnition runs inside a strike, with mu held.
func (l *Lightning) onIgnition(ig fire.Ignition) {
	l.stats.Ignitions++
	l.notify(ignitionMessages[ig.Category], SeverityWarning, ig.ActorID, l.strike)
}
