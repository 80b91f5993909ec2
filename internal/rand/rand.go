// Package rand wraps a PCG32 generator. Every simulation run owns its own
// Rand; there is intentionally no package-level source.
package rand

import (
	"github.com/MichaelTJones/pcg"
)

// Stream selector passed to PCG alongside the seed.
const stream = 0xda3e39cb94b95bdb

type Rand struct {
	r *pcg.PCG32
}

// New returns a generator seeded with s. Two generators created with the
// same seed produce identical sequences.
func New(s int64) *Rand {
	r := &Rand{r: pcg.NewPCG32()}
	r.Seed(s)
	return r
}

func (r *Rand) Seed(s int64) {
	r.r.Seed(uint64(s), stream)
}

func (r *Rand) Uint32() uint32 {
	return r.r.Random()
}

func (r *Rand) Intn(n int) int {
	return int(r.r.Bounded(uint32(n)))
}

// Float64 returns a value in [0, 1) with 53 bits of randomness.
func (r *Rand) Float64() float64 {
	v := uint64(r.r.Random())<<32 | uint64(r.r.Random())
	return float64(v>>11) / (1 << 53)
}

// Uniform returns a value uniformly distributed in [lo, hi).
func (r *Rand) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// Sample uniformly samples one of the given values.
func Sample[T any](r *Rand, t ...T) T {
	return t[r.Intn(len(t))]
}
