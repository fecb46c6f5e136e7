package world

import (
	"fmt"

	"github.com/zeusync/weather/internal/core/systems/physics"
)

type Biome uint8

const (
	BiomeTemperate Biome = iota
	BiomeDesert
	BiomeSnow
)

func (b Biome) String() string {
	switch b {
	case BiomeTemperate:
		return "temperate"
	case BiomeDesert:
		return "desert"
	case BiomeSnow:
		return "snow"
	default:
		return fmt.Sprintf("biome(%d)", uint8(b))
	}
}

// BiomeLocator answers which biome a point lies in.
type BiomeLocator interface {
	BiomeAt(p physics.Vec3) Biome
}

// BiomeFunc adapts a function to BiomeLocator.
type BiomeFunc func(p physics.Vec3) Biome

func (f BiomeFunc) BiomeAt(p physics.Vec3) Biome { return f(p) }

// ThresholdBiomes classifies by coordinate bands: a desert strip along X and
// snow above a height. Snow wins where both apply.
type ThresholdBiomes struct {
	DesertMinX float64 `yaml:"desert_min_x"`
	DesertMaxX float64 `yaml:"desert_max_x"`
	SnowMinZ   float64 `yaml:"snow_min_z"`
}

// DefaultThresholdBiomes returns the stock bands: desert for 5000 < X < 8000,
// snow for Z > 2000.
func DefaultThresholdBiomes() ThresholdBiomes {
	return ThresholdBiomes{DesertMinX: 5000, DesertMaxX: 8000, SnowMinZ: 2000}
}

func (t ThresholdBiomes) BiomeAt(p physics.Vec3) Biome {
	if p.Z > t.SnowMinZ {
		return BiomeSnow
	}
	if p.X > t.DesertMinX && p.X < t.DesertMaxX {
		return BiomeDesert
	}
	return BiomeTemperate
}
