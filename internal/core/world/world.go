package world

import (
	"github.com/zeusync/weather/internal/core/systems/physics"
)

// Actor type tags understood by the weather systems.
const (
	KindTree     = "tree"
	KindDryGrass = "dry-grass"
	KindBlock    = "block"
	KindMob      = "mob"
	KindPlayer   = "player"
	KindRock     = "rock"
)

// Block material tags.
const (
	MaterialWood   = "Wood"
	MaterialNature = "Nature"
	MaterialStone  = "Stone"
)

// Actor is a handle to an object owned by the host world.
// The weather systems only read it and call back into World to mutate it.
type Actor interface {
	ID() string
	Position() physics.Vec3
	// Kind is the actor's type tag (tree, dry-grass, block, mob, player, ...).
	Kind() string
	// Material is the material tag, meaningful for blocks.
	Material() string
	// Valid is false once the host has destroyed the actor.
	Valid() bool
}

// World is the narrow view of the host game the weather systems consume.
type World interface {
	// Player returns the local player, or false when there is none.
	Player() (Actor, bool)
	// Actors returns every actor. An empty result is valid.
	Actors() []Actor
	// ActorsOfType returns actors whose Kind equals kind.
	ActorsOfType(kind string) []Actor

	// Ignite puts the actor into its burning state.
	Ignite(a Actor)
	SetFrozen(a Actor, frozen bool)
	ApplyDamage(a Actor, amount float64)
	HasWinterProtection(a Actor) bool
}

// IsValid reports whether a is non-nil and still alive in the host.
func IsValid(a Actor) bool {
	return a != nil && a.Valid()
}
