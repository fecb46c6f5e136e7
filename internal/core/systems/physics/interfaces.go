package physics

// Positioned is anything that occupies a point in the world.
type Positioned interface {
	Position() Vec3
}
