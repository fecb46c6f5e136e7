package fire

import "github.com/zeusync/weather/internal/core/world"

// Category is how an actor burns, used for notifications.
type Category uint8

const (
	CategoryNone Category = iota
	CategoryTree
	CategoryDryGrass
	CategoryWoodBlock
)

func (c Category) String() string {
	switch c {
	case CategoryTree:
		return "tree"
	case CategoryDryGrass:
		return "dry-grass"
	case CategoryWoodBlock:
		return "wood-block"
	default:
		return "none"
	}
}

// Classifier decides whether an actor can catch fire.
type Classifier interface {
	Classify(a world.Actor) Category
}

// TagClassifier classifies by type tag, falling back to the material tag for blocks.
// Trees, dry grass, and Wood or Nature blocks burn; everything else does not.
type TagClassifier struct{}

func (TagClassifier) Classify(a world.Actor) Category {
	if !world.IsValid(a) {
		return CategoryNone
	}
	switch a.Kind() {
	case world.KindTree:
		return CategoryTree
	case world.KindDryGrass:
		return CategoryDryGrass
	case world.KindBlock:
		switch a.Material() {
		case world.MaterialWood, world.MaterialNature:
			return CategoryWoodBlock
		}
	}
	return CategoryNone
}

// Flammable reports whether c classifies a as burnable.
func Flammable(c Classifier, a world.Actor) bool {
	return c.Classify(a) != CategoryNone
}
