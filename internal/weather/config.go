package weather

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/weather/internal/core/scheduler"
	"github.com/zeusync/weather/internal/core/world"
)

// Config holds every tunable of the three phenomena. Probabilities are
// percentages checked against a uniform draw in [0,100) once per poll.
type Config struct {
	Seed         int64           `yaml:"seed"`
	PollInterval scheduler.Ticks `yaml:"poll_interval"`

	Lightning LightningConfig      `yaml:"lightning"`
	Rain      RainConfig           `yaml:"rain"`
	Snow      SnowConfig           `yaml:"snow"`
	Biomes    world.ThresholdBiomes `yaml:"biomes"`
}

type LightningConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Probability  float64 `yaml:"probability"`
	StrikeRadius float64 `yaml:"strike_radius"`
	SpreadRadius float64 `yaml:"spread_radius"`
	// StrikeOffset bounds the random horizontal offset of a strike from the player.
	StrikeOffset float64 `yaml:"strike_offset"`
}

type RainConfig struct {
	Enabled     bool            `yaml:"enabled"`
	Probability float64         `yaml:"probability"`
	Duration    scheduler.Ticks `yaml:"duration"`
	NormalLight float64         `yaml:"normal_light"`
	RainLight   float64         `yaml:"rain_light"`
}

type SnowConfig struct {
	Enabled          bool            `yaml:"enabled"`
	Probability      float64         `yaml:"probability"`
	Duration         scheduler.Ticks `yaml:"duration"`
	DamageInterval   scheduler.Ticks `yaml:"damage_interval"`
	DamageAmount     float64         `yaml:"damage_amount"`
	NormalVisibility float64         `yaml:"normal_visibility"`
	SnowVisibility   float64         `yaml:"snow_visibility"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Seed:         1,
		PollInterval: 1,
		Lightning: LightningConfig{
			Enabled:      true,
			Probability:  0.001,
			StrikeRadius: 200,
			SpreadRadius: 300,
			StrikeOffset: 500,
		},
		Rain: RainConfig{
			Enabled:     true,
			Probability: 0.08,
			Duration:    1200,
			NormalLight: 10,
			RainLight:   5,
		},
		Snow: SnowConfig{
			Enabled:          true,
			Probability:      0.5,
			Duration:         1200,
			DamageInterval:   5,
			DamageAmount:     5,
			NormalVisibility: 10,
			SnowVisibility:   5,
		},
		Biomes: world.DefaultThresholdBiomes(),
	}
}

// DecodeConfig reads yaml over the defaults; omitted keys keep their default.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("weather config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadConfig reads a yaml config file.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return DecodeConfig(f)
}

// Validate reports the first out-of-range option, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if c.PollInterval == 0 {
		return fmt.Errorf("%w: poll_interval must be positive", ErrInvalidConfig)
	}
	checks := []struct {
		name string
		bad  bool
	}{
		{"lightning.probability", !validPercent(c.Lightning.Probability)},
		{"lightning.strike_radius", c.Lightning.StrikeRadius <= 0},
		{"lightning.spread_radius", c.Lightning.SpreadRadius <= 0},
		{"lightning.strike_offset", c.Lightning.StrikeOffset < 0},
		{"rain.probability", !validPercent(c.Rain.Probability)},
		{"rain.duration", c.Rain.Duration == 0},
		{"snow.probability", !validPercent(c.Snow.Probability)},
		{"snow.duration", c.Snow.Duration == 0},
		{"snow.damage_interval", c.Snow.DamageInterval == 0},
		{"snow.damage_amount", c.Snow.DamageAmount < 0},
	}
	for _, chk := range checks {
		if chk.bad {
			return fmt.Errorf("%w: %s out of range", ErrInvalidConfig, chk.name)
		}
	}
	return nil
}

func validPercent(p float64) bool {
	return p >= 0 && p <= 100
}
