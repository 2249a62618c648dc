package util

import (
	"math/rand"

	"github.com/hupe1980/matchgo/tags"
)

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 { return r.seed }

// Float64 returns a uniform value in [0, 1).
func (r *RNG) Float64() float64 {
	return r.rand.Float64()
}

// Uint64 returns a uniform 64-bit value.
func (r *RNG) Uint64() uint64 {
	return r.rand.Uint64()
}

// GenerateRandomTags generates random bit-vector tags using the given RNG.
func (r *RNG) GenerateRandomTags(num int, width int) []tags.BitVector {
	out := make([]tags.BitVector, num)
	for i := range out {
		out[i] = tags.Rand(width, r.rand)
	}
	return out
}
