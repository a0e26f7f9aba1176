// Package testutil provides deterministic helpers for relationship tests and
// benchmarks.
package testutil

import (
	"math/rand"

	"github.com/relago/relago/ecs"
)

// RNG encapsulates a seeded random number generator, so randomized
// relationship graphs are reproducible across runs.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	return r.rand.Float64()
}

// Pair picks two distinct random elements of entities.
// Panics if fewer than two entities are given.
func (r *RNG) Pair(entities []ecs.Entity) (ecs.Entity, ecs.Entity) {
	i := r.rand.Intn(len(entities))
	j := r.rand.Intn(len(entities) - 1)
	if j >= i {
		j++
	}
	return entities[i], entities[j]
}

// Entities creates n entities in the world.
func Entities(w *ecs.World, n int) []ecs.Entity {
	out := make([]ecs.Entity, n)
	for i := range out {
		out[i] = w.Create()
	}
	return out
}
