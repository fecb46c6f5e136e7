package weather

import (
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
)

// Random is a uniform source in [0,1). *rand.Rand satisfies it.
type Random interface {
	Float64() float64
}

// RandomSource hands each phenomenon its own stream.
type RandomSource func(stream string) Random

// SeededSource derives one independent PCG stream per phenomenon from seed,
// so adding draws to one phenomenon never shifts another's sequence.
func SeededSource(seed int64) RandomSource {
	return func(stream string) Random {
		return rand.New(rand.NewPCG(uint64(seed), xxhash.Sum64String(stream)))
	}
}

// Uniform draws from [lo, hi).
func Uniform(r Random, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Roll draws a percentage in [0,100) and reports whether it is at most
// probability. The draw is returned for logging.
func Roll(r Random, probability float64) (bool, float64) {
	draw := Uniform(r, 0, 100)
	return draw <= probability, draw
}
