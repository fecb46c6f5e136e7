package weather

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/weather/internal/core/scheduler"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.001, cfg.Lightning.Probability)
	assert.Equal(t, 0.08, cfg.Rain.Probability)
	assert.Equal(t, 0.5, cfg.Snow.Probability)
	assert.Equal(t, scheduler.Ticks(1200), cfg.Rain.Duration)
	assert.Equal(t, scheduler.Ticks(5), cfg.Snow.DamageInterval)
}

func TestDecodeConfigOverlaysDefaults(t *testing.T) {
	src := `
seed: 99
rain:
  probability: 2
snow:
  enabled: false
  damage_amount: 7.5
biomes:
  snow_min_z: 1500
`
	cfg, err := DecodeConfig(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, 2.0, cfg.Rain.Probability)
	assert.Equal(t, scheduler.Ticks(1200), cfg.Rain.Duration)
	assert.False(t, cfg.Snow.Enabled)
	assert.Equal(t, 7.5, cfg.Snow.DamageAmount)
	assert.Equal(t, 0.5, cfg.Snow.Probability)
	assert.True(t, cfg.Lightning.Enabled)
	assert.Equal(t, 1500.0, cfg.Biomes.SnowMinZ)
	assert.Equal(t, 5000.0, cfg.Biomes.DesertMinX)
}

func TestDecodeConfigEmptyIsDefault(t *testing.T) {
	cfg, err := DecodeConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestDecodeConfigRejects(t *testing.T) {
	for name, src := range map[string]string{
		"probability":     "lightning:\n  probability: 150\n",
		"negative radius": "lightning:\n  spread_radius: -1\n",
		"zero duration":   "rain:\n  duration: 0\n",
		"zero interval":   "snow:\n  damage_interval: 0\n",
		"zero poll":       "poll_interval: 0\n",
	} {
		_, err := DecodeConfig(strings.NewReader(src))
		assert.ErrorIs(t, err, ErrInvalidConfig, name)
	}

	_, err := DecodeConfig(strings.NewReader("rain: [1, 2"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.yaml")
	require.NoError(t, os.WriteFile(path, []byte("snow:\n  duration: 60\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, scheduler.Ticks(60), cfg.Snow.Duration)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
