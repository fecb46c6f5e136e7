package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type point Vec3

func (p point) Position() Vec3 { return Vec3(p) }

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(Vec3{}, Vec3{X: 3, Y: 4}), 1e-9)
	assert.InDelta(t, 3.0, Distance(Vec3{X: 1, Y: 1, Z: 1}, Vec3{X: 1, Y: 1, Z: 4}), 1e-9)
	assert.InDelta(t, 5.0, Distance2(0, 0, 3, 4), 1e-9)
	assert.InDelta(t, 5.0, DistanceP(point{}, point{Y: 3, Z: 4}), 1e-9)
}

func TestWithinIsStrict(t *testing.T) {
	origin := Vec3{}
	assert.True(t, Within(origin, Vec3{X: 299.999}, 300))
	assert.False(t, Within(origin, Vec3{X: 300}, 300))
	assert.False(t, Within(origin, Vec3{X: 301}, 300))
}

func TestAddSub(t *testing.T) {
	v := Vec3{X: 1, Y: 2, Z: 3}.Add(Vec3{X: -1, Y: 1})
	assert.Equal(t, Vec3{X: 0, Y: 3, Z: 3}, v)
	assert.Equal(t, Vec3{X: 1, Y: 2, Z: 3}, v.Sub(Vec3{X: -1, Y: 1}))
}
