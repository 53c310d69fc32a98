// Package sampler provides the deterministic random streams behind the
// firefly optimizer: a bounded uniform sampler and per-agent sub-seed
// derivation. Determinism is a hard requirement: the same seed and call
// sequence must produce bit-identical values.
package sampler

import (
	"encoding/binary"
	"math/rand/v2"

	"github.com/lampyrid/FIREFLY/internal/optimization"
)

// Seed is a 128-bit random generator seed.
type Seed [16]byte

// halves splits the seed into the two 64-bit words a PCG stream is
// initialized from.
func (s Seed) halves() (hi, lo uint64) {
	hi = binary.LittleEndian.Uint64(s[:8])
	lo = binary.LittleEndian.Uint64(s[8:])
	return hi, lo
}

// newPCG constructs the generator behind every sampler. PCG is the only
// stdlib source seedable with a full 128-bit state.
func newPCG(seed Seed) *rand.Rand {
	hi, lo := seed.halves()
	return rand.New(rand.NewPCG(hi, lo))
}

// Sampler draws uniformly distributed values inside a fixed interval from a
// deterministic stream.
type Sampler struct {
	bounds optimization.Bounds
	rng    *rand.Rand
}

// New creates a sampler over [bounds.Lower, bounds.Upper]. The only error
// condition is an inverted interval.
func New(bounds optimization.Bounds, seed Seed) (*Sampler, error) {
	if _, err := optimization.NewBounds(bounds.Lower, bounds.Upper); err != nil {
		return nil, err
	}
	return &Sampler{bounds: bounds, rng: newPCG(seed)}, nil
}

// Unit creates a sampler over [0, 1).
func Unit(seed Seed) *Sampler {
	return &Sampler{
		bounds: optimization.Bounds{Lower: 0, Upper: 1},
		rng:    newPCG(seed),
	}
}

// Sample draws one value.
func (s *Sampler) Sample() float64 {
	return s.bounds.Lower + s.rng.Float64()*s.bounds.Width()
}

// SampleVector draws a vector of n independent values, one draw per
// coordinate.
func (s *Sampler) SampleVector(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = s.Sample()
	}
	return v
}

// DeriveSeeds expands one master seed into n independent 128-bit sub-seeds,
// one per agent index 0..n-1. The mapping index -> sub-seed depends only on
// the master seed and the index, never on when an agent's work is scheduled,
// so agents may run in parallel without breaking reproducibility.
func DeriveSeeds(master Seed, n int) []Seed {
	rng := newPCG(master)
	seeds := make([]Seed, n)
	for i := range seeds {
		for j := 0; j < len(seeds[i]); j += 8 {
			binary.LittleEndian.PutUint64(seeds[i][j:], rng.Uint64())
		}
	}
	return seeds
}
