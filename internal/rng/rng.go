// Package rng provides the seedable random source shared by the particle
// field and the simulated replies. Every consumer receives a *Source at
// construction so a fixed seed reproduces a whole session.
package rng

import (
	"math/rand"
	"time"
)

// Source wraps a *rand.Rand with the helpers the engine needs.
// It is not safe for concurrent use; each session owns its own.
type Source struct {
	r    *rand.Rand
	seed int64
}

// New returns a Source seeded with seed. A zero seed picks one from the clock.
func New(seed int64) *Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{r: rand.New(rand.NewSource(seed)), seed: seed}
}

// Seed reports the seed the source was created with.
func (s *Source) Seed() int64 { return s.seed }

// Child derives an independent source from the next value of s.
func (s *Source) Child() *Source {
	return New(s.r.Int63() | 1)
}

// Float64 returns a value in [0, 1).
func (s *Source) Float64() float64 { return s.r.Float64() }

// Range returns a value in [lo, hi). When hi <= lo it returns lo.
func (s *Source) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Float64()*(hi-lo)
}

// Intn returns a value in [0, n). n <= 0 yields 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.Intn(n)
}

// IntRange returns a value in [lo, hi].
func (s *Source) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Intn(hi-lo+1)
}

// Chance reports true with probability p.
func (s *Source) Chance(p float64) bool { return s.r.Float64() < p }

// Pick returns a random element of items, or "" for an empty slice.
func (s *Source) Pick(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[s.r.Intn(len(items))]
}

// Duration returns a duration in [lo, hi].
func (s *Source) Duration(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(s.r.Int63n(int64(hi-lo)+1))
}
