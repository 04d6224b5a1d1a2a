// Package entropy provides the simulation's single source of randomness.
// Every stochastic draw in the engine goes through a Source so that runs
// are reproducible from a seed.
package entropy

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// Source wraps a seeded PRNG. The engine owns exactly one Source per world;
// it is not safe for concurrent use, which matches the turn-synchronous
// single-threaded update model.
type Source struct {
	seed int64
	rng  *rand.Rand
}

// NewSource creates a Source from the given seed. A zero seed picks a
// crypto-random one, for runs where reproducibility doesn't matter.
func NewSource(seed int64) *Source {
	if seed == 0 {
		seed = cryptoSeed()
	}
	return &Source{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed this source was created with.
func (s *Source) Seed() int64 {
	return s.seed
}

// Float returns a uniform float64 in [0, 1).
func (s *Source) Float() float64 {
	return s.rng.Float64()
}

// Range returns a uniform float64 in [lo, hi).
func (s *Source) Range(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// Intn returns a uniform int in [0, n).
func (s *Source) Intn(n int) int {
	return s.rng.Intn(n)
}

// cryptoSeed derives a non-deterministic seed from crypto/rand.
func cryptoSeed() int64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		// crypto/rand should never fail; fall back to a fixed seed.
		return 1
	}
	n := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	if n == 0 {
		n = 1
	}
	return n
}
