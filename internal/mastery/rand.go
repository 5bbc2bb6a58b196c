package mastery

import (
	"math/rand/v2"
	"time"
)

// Rand is the source of randomness used by inference and selection.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// NewRand returns a time-seeded source.
func NewRand() *rand.Rand {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

// NewSeededRand returns a deterministic source, for tests and replays.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
