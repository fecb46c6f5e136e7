package world

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/weather/internal/core/systems/physics"
)

// Layout describes an initial world population.
type Layout struct {
	Player PlayerLayout  `yaml:"player"`
	Actors []ActorLayout `yaml:"actors"`
}

type PlayerLayout struct {
	Position         [3]float64 `yaml:"position"`
	Health           float64    `yaml:"health"`
	WinterProtection bool       `yaml:"winter_protection"`
}

type ActorLayout struct {
	ID       string     `yaml:"id,omitempty"`
	Kind     string     `yaml:"kind"`
	Material string     `yaml:"material,omitempty"`
	Position [3]float64 `yaml:"position"`
}

// DecodeLayout reads a yaml layout.
func DecodeLayout(r io.Reader) (Layout, error) {
	var l Layout
	if err := yaml.NewDecoder(r).Decode(&l); err != nil {
		return l, fmt.Errorf("world layout: %w", err)
	}
	for i, a := range l.Actors {
		if a.Kind == "" {
			return l, fmt.Errorf("world layout: actor %d has no kind", i)
		}
	}
	return l, nil
}

// LoadLayout reads a yaml layout file.
func LoadLayout(path string) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layout{}, err
	}
	defer f.Close()
	return DecodeLayout(f)
}

// Build populates a fresh Memory world from the layout.
func (l Layout) Build() *Memory {
	m := NewMemory()
	hp := l.Player.Health
	if hp <= 0 {
		hp = 100
	}
	m.SpawnPlayer(vec(l.Player.Position), hp, l.Player.WinterProtection)
	for _, a := range l.Actors {
		if a.ID != "" {
			m.SpawnWithID(a.ID, a.Kind, a.Material, vec(a.Position))
		} else {
			m.Spawn(a.Kind, a.Material, vec(a.Position))
		}
	}
	return m
}

func vec(p [3]float64) physics.Vec3 {
	return physics.Vec3{X: p[0], Y: p[1], Z: p[2]}
}
