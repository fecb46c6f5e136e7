package weather

import (
	"fmt"
	"sync"

	"github.com/zeusync/weather/internal/core/observability/log"
	"github.com/zeusync/weather/internal/core/scheduler"
	"github.com/zeusync/weather/internal/core/systems"
	"github.com/zeusync/weather/internal/core/world"
)

// Manager owns the three phenomena for the lifetime of a level.
type Manager struct {
	mu      sync.Mutex
	cfg     Config
	sched   scheduler.Scheduler
	logger  log.Log
	started bool

	lightning *Lightning
	rain      *Rain
	snow      *Snow
	systems   []systems.System
}

type ManagerOption func(*managerOptions)

type managerOptions struct {
	biomes   world.BiomeLocator
	notifier Notifier
	logger   log.Log
	random   RandomSource
}

func WithBiomes(b world.BiomeLocator) ManagerOption {
	return func(o *managerOptions) { o.biomes = b }
}

func WithNotifier(n Notifier) ManagerOption {
	return func(o *managerOptions) { o.notifier = n }
}

func WithLogger(l log.Log) ManagerOption {
	return func(o *managerOptions) { o.logger = l }
}

// WithRandom replaces the seeded per-phenomenon streams.
func WithRandom(src RandomSource) ManagerOption {
	return func(o *managerOptions) { o.random = src }
}

// NewManager validates cfg and constructs all three phenomena. Biomes default
// to cfg.Biomes; randomness defaults to SeededSource(cfg.Seed).
func NewManager(cfg Config, w world.World, sched scheduler.Scheduler, opts ...ManagerOption) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if w == nil || sched == nil {
		return nil, fmt.Errorf("%w: world and scheduler are required", ErrInvalidConfig)
	}

	o := managerOptions{
		biomes: cfg.Biomes,
		logger: log.NewNop(),
		random: SeededSource(cfg.Seed),
	}
	for _, opt := range opts {
		opt(&o)
	}

	deps := Deps{
		World:        w,
		Biomes:       o.biomes,
		Notifier:     o.notifier,
		Logger:       o.logger.Named("weather"),
		PollInterval: cfg.PollInterval,
	}
	m := &Manager{
		cfg:       cfg,
		sched:     sched,
		logger:    deps.Logger,
		lightning: NewLightning(cfg.Lightning, deps, o.random(NameLightning)),
		rain:      NewRain(cfg.Rain, deps, o.random(NameRain)),
		snow:      NewSnow(cfg.Snow, deps, o.random(NameSnow)),
	}
	if cfg.Lightning.Enabled {
		m.systems = append(m.systems, m.lightning)
	}
	if cfg.Rain.Enabled {
		m.systems = append(m.systems, m.rain)
	}
	if cfg.Snow.Enabled {
		m.systems = append(m.systems, m.snow)
	}
	return m, nil
}

func (m *Manager) Lightning() *Lightning { return m.lightning }
func (m *Manager) Rain() *Rain           { return m.rain }
func (m *Manager) Snow() *Snow           { return m.snow }

// Start registers the poll timer of every enabled phenomenon.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return ErrAlreadyStarted
	}
	for i, s := range m.systems {
		if err := s.Start(m.sched); err != nil {
			for _, started := range m.systems[:i] {
				started.Stop()
			}
			return fmt.Errorf("start %s: %w", s.Name(), err)
		}
	}
	m.started = true

	names := make([]string, 0, len(m.systems))
	for _, s := range m.systems {
		names = append(names, s.Name())
	}
	m.logger.Info("weather started", log.Any("phenomena", names), log.Int64("seed", m.cfg.Seed))
	return nil
}

// Stop cancels every outstanding timer and returns all phenomena to inactive.
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.started {
		return ErrNotStarted
	}
	for _, s := range m.systems {
		s.Stop()
	}
	m.started = false
	m.logger.Info("weather stopped")
	return nil
}

// Snapshot is a point-in-time view of every phenomenon.
type Snapshot struct {
	Tick      scheduler.Ticks   `json:"tick"`
	Lightning LightningSnapshot `json:"lightning"`
	Rain      RainSnapshot      `json:"rain"`
	Snow      SnowSnapshot      `json:"snow"`
}

type LightningSnapshot struct {
	Enabled bool            `json:"enabled"`
	Active  bool            `json:"active"`
	Stats   Stats           `json:"stats"`
	Metrics systems.Metrics `json:"metrics"`
}

type RainSnapshot struct {
	Enabled    bool            `json:"enabled"`
	State      State           `json:"state"`
	LightLevel float64         `json:"light_level"`
	Stats      Stats           `json:"stats"`
	Metrics    systems.Metrics `json:"metrics"`
}

type SnowSnapshot struct {
	Enabled    bool            `json:"enabled"`
	State      State           `json:"state"`
	Visibility float64         `json:"visibility"`
	FrozenMobs int             `json:"frozen_mobs"`
	Stats      Stats           `json:"stats"`
	Metrics    systems.Metrics `json:"metrics"`
}

func (m *Manager) Snapshot() Snapshot {
	return Snapshot{
		Tick: m.sched.Now(),
		Lightning: LightningSnapshot{
			Enabled: m.cfg.Lightning.Enabled,
			Active:  m.lightning.Active(),
			Stats:   m.lightning.Stats(),
			Metrics: m.lightning.GetMetrics(),
		},
		Rain: RainSnapshot{
			Enabled:    m.cfg.Rain.Enabled,
			State:      m.rain.State(),
			LightLevel: m.rain.LightLevel(),
			Stats:      m.rain.Stats(),
			Metrics:    m.rain.GetMetrics(),
		},
		Snow: SnowSnapshot{
			Enabled:    m.cfg.Snow.Enabled,
			State:      m.snow.State(),
			Visibility: m.snow.Visibility(),
			FrozenMobs: m.snow.FrozenMobs(),
			Stats:      m.snow.Stats(),
			Metrics:    m.snow.GetMetrics(),
		},
	}
}
