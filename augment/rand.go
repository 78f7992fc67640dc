package augment

import "math/rand/v2"

// Rand is the random source consumed by Sample and Roll.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// NewRand returns a deterministic source for seed. Two sources created with
// the same seed produce the same stream.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewEntropyRand returns a source seeded from process entropy, for runs that
// do not need to be replayed.
func NewEntropyRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// SeedFor returns the seed of the item at index in a batch started with base.
func SeedFor(base uint64, index int) uint64 {
	return base + uint64(index)
}
