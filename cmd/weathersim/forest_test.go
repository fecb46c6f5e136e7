package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/weather/internal/core/world"
)

func TestGenerateWorldDeterministic(t *testing.T) {
	a := generateWorld(7)
	b := generateWorld(7)

	_, ok := a.Player()
	require.True(t, ok)
	assert.Len(t, a.ActorsOfType(world.KindTree), 120)
	assert.Len(t, a.ActorsOfType(world.KindMob), 25)

	ta, tb := a.ActorsOfType(world.KindTree), b.ActorsOfType(world.KindTree)
	pa := map[[2]float64]bool{}
	for _, x := range ta {
		pa[[2]float64{x.Position().X, x.Position().Y}] = true
	}
	for _, x := range tb {
		assert.True(t, pa[[2]float64{x.Position().X, x.Position().Y}])
	}
}
