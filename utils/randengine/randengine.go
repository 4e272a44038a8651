// Package randengine wraps golang.org/x/exp/rand behind a small,
// deterministically-seeded engine shared by the network builders and the
// vehicle spawner. golang.org/x/exp/rand (rather than math/rand/v2) is used
// specifically because its generator's output for a given seed is part of
// its documented contract and won't silently change between Go releases —
// required for the simulator's byte-identical-trajectory determinism
// property.
package randengine

import (
	"golang.org/x/exp/rand"
)

// Engine is a seeded random source with a few simulator-specific helpers
// layered on top of *rand.Rand. The simulator is single-threaded (spec §5),
// so Engine carries no internal locking.
type Engine struct {
	*rand.Rand
}

// New creates an Engine seeded deterministically from seed.
func New(seed uint64) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(seed))}
}

// PTrue returns true with probability p (non-thread-safe, matches the
// single-threaded tick loop).
func (e *Engine) PTrue(p float64) bool {
	return e.Float64() < p
}

// UniformRange returns a uniformly random float64 in [lo, hi).
func (e *Engine) UniformRange(lo, hi float64) float64 {
	return lo + e.Float64()*(hi-lo)
}

// IntRange returns a uniformly random int in [lo, hi].
func (e *Engine) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + e.Intn(hi-lo+1)
}

// Shuffle shuffles n items in place using swap, via Fisher-Yates.
func (e *Engine) Shuffle(n int, swap func(i, j int)) {
	e.Rand.Shuffle(n, swap)
}
