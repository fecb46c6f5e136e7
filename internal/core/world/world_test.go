package world

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/weather/internal/core/systems/physics"
)

func TestThresholdBiomes(t *testing.T) {
	b := DefaultThresholdBiomes()
	assert.Equal(t, BiomeTemperate, b.BiomeAt(physics.Vec3{}))
	assert.Equal(t, BiomeDesert, b.BiomeAt(physics.Vec3{X: 6000}))
	assert.Equal(t, BiomeTemperate, b.BiomeAt(physics.Vec3{X: 8000}))
	assert.Equal(t, BiomeSnow, b.BiomeAt(physics.Vec3{Z: 2000.5}))
	assert.Equal(t, BiomeSnow, b.BiomeAt(physics.Vec3{X: 6000, Z: 2500}))
	assert.Equal(t, BiomeTemperate, b.BiomeAt(physics.Vec3{Z: 2000}))
	assert.Equal(t, "snow", BiomeSnow.String())
}

func TestBiomeFunc(t *testing.T) {
	var loc BiomeLocator = BiomeFunc(func(physics.Vec3) Biome { return BiomeDesert })
	assert.Equal(t, BiomeDesert, loc.BiomeAt(physics.Vec3{}))
}

func TestMemoryCallbacks(t *testing.T) {
	m := NewMemory()
	_, ok := m.Player()
	assert.False(t, ok)

	p := m.SpawnPlayer(physics.Vec3{Z: 10}, 50, false)
	tree := m.SpawnWithID("tree-1", KindTree, "", physics.Vec3{X: 1})
	mob := m.Spawn(KindMob, "", physics.Vec3{X: 2})

	got, ok := m.Player()
	require.True(t, ok)
	assert.Equal(t, p.ID(), got.ID())
	assert.Len(t, m.Actors(), 3)
	assert.Len(t, m.ActorsOfType(KindMob), 1)

	m.Ignite(tree)
	m.Ignite(tree)
	assert.True(t, m.Burning("tree-1"))
	assert.Equal(t, 2, m.IgniteCalls("tree-1"))
	assert.Equal(t, []string{"tree-1"}, m.BurningIDs())

	m.SetFrozen(mob, true)
	assert.True(t, m.Frozen(mob.ID()))

	m.ApplyDamage(p, 20)
	assert.Equal(t, 30.0, m.Health(p.ID()))
	m.ApplyDamage(p, 100)
	assert.Equal(t, 0.0, m.Health(p.ID()))

	assert.False(t, m.HasWinterProtection(p))
	m.SetWinterProtection(true)
	assert.True(t, m.HasWinterProtection(p))

	m.MovePlayer(physics.Vec3{Z: 3000})
	assert.Equal(t, physics.Vec3{Z: 3000}, p.Position())
}

func TestMemoryDestroyInvalidates(t *testing.T) {
	m := NewMemory()
	tree := m.Spawn(KindTree, "", physics.Vec3{})
	assert.True(t, IsValid(tree))

	m.Destroy(tree.ID())
	assert.False(t, IsValid(tree))
	assert.False(t, IsValid(nil))
	assert.Empty(t, m.Actors())

	m.Ignite(tree)
	assert.False(t, m.Burning(tree.ID()))
}

func TestDecodeLayout(t *testing.T) {
	src := `
player:
  position: [0, 0, 2500]
  health: 80
  winter_protection: true
actors:
  - id: oak
    kind: tree
    position: [100, 0, 0]
  - kind: block
    material: Wood
    position: [200, 0, 0]
`
	l, err := DecodeLayout(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, l.Actors, 2)

	m := l.Build()
	p, ok := m.Player()
	require.True(t, ok)
	assert.Equal(t, physics.Vec3{Z: 2500}, p.Position())
	assert.Equal(t, 80.0, m.Health(p.ID()))
	assert.True(t, m.HasWinterProtection(p))
	assert.Len(t, m.ActorsOfType(KindBlock), 1)
	assert.Len(t, m.ActorsOfType(KindTree), 1)

	_, err = DecodeLayout(strings.NewReader("actors:\n  - position: [1, 2, 3]\n"))
	assert.Error(t, err)
}
