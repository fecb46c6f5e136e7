package main

import (
	"math/rand/v2"

	"github.com/zeusync/weather/internal/core/systems/physics"
	"github.com/zeusync/weather/internal/core/world"
)

// generateWorld scatters a small forest around a player standing at the origin
// of the temperate band. Some mobs live on a ridge above the snow line.
func generateWorld(seed uint64) *world.Memory {
	r := rand.New(rand.NewPCG(seed, 0x9e3779b97f4a7c15))
	m := world.NewMemory()
	m.SpawnPlayer(physics.Vec3{}, 100, false)

	scatter := func(n int, kind, material string, spread, z float64) {
		for range n {
			pos := physics.Vec3{
				X: (r.Float64()*2 - 1) * spread,
				Y: (r.Float64()*2 - 1) * spread,
				Z: z,
			}
			m.Spawn(kind, material, pos)
		}
	}
	scatter(120, world.KindTree, "", 1500, 0)
	scatter(200, world.KindDryGrass, "", 1500, 0)
	scatter(40, world.KindBlock, world.MaterialWood, 1000, 0)
	scatter(40, world.KindBlock, world.MaterialStone, 1000, 0)
	scatter(30, world.KindRock, "", 1500, 0)
	scatter(15, world.KindMob, "", 3000, 0)
	scatter(10, world.KindMob, "", 3000, 2500)
	return m
}
