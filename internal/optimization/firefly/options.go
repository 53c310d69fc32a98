package firefly

import (
	"math"

	"github.com/lampyrid/FIREFLY/internal/optimization"
	"github.com/lampyrid/FIREFLY/internal/optimization/sampler"
)

// Default seeds, kept fixed so benchmark runs are reproducible out of the box.
var (
	defaultInBoundsSeed = sampler.Seed{
		199, 248, 17, 170, 248, 248, 15, 82,
		75, 207, 232, 76, 38, 70, 37, 111,
	}
	defaultJitterSeed = sampler.Seed{
		160, 142, 67, 136, 64, 230, 125, 10,
		243, 246, 140, 229, 12, 95, 173, 104,
	}
)

// Options holds the hyperparameters of a firefly run. Read-only after
// construction; the optimizer never adapts them at runtime.
//
// References:
//
//	[1] https://arxiv.org/abs/1308.3898
type Options struct {
	// SwarmSize is the number of fireflies in the swarm. In FA the swarm
	// size is constant. According to [1] the useful range is 15 to 100
	// (or 25 to 40).
	SwarmSize int

	// InBoundsSeed seeds the sampler that draws initial in-bounds positions.
	InBoundsSeed sampler.Seed

	// JitterSeed seeds the derivation of every firefly's private movement
	// jitter stream.
	JitterSeed sampler.Seed

	// MaxIterations is the iteration budget for a run.
	MaxIterations int

	// StuckRunIterations is how many consecutive non-improving iterations
	// to tolerate before aborting the run (probably stuck in a local
	// minimum) and returning the minimum so far.
	StuckRunIterations int

	// Attractiveness is the coefficient of attraction to brighter
	// fireflies (beta_0 in [1]). Generally in [0, 1]; an explicit 0
	// degenerates into a random swarm search. Nil selects the default.
	Attractiveness *float64

	// LightAbsorption is the coefficient of light absorption (gamma in
	// [1]). Generally in [0, 1]; the smaller the value, the further light
	// travels and the wider the attraction field. Nil selects the default.
	LightAbsorption *float64

	// MovementJitter scales the random perturbation added to every
	// movement so the swarm can escape local minima. Generally around
	// 0.01 times the problem scale. Nil selects the default.
	MovementJitter *float64

	// Workers is the number of goroutines evaluating fireflies in
	// parallel. Zero means GOMAXPROCS. Results are bit-identical for any
	// worker count.
	Workers int
}

func f64(v float64) *float64 { return &v }

// DefaultOptions returns the reference configuration.
func DefaultOptions() Options {
	return Options{
		SwarmSize:          150,
		InBoundsSeed:       defaultInBoundsSeed,
		JitterSeed:         defaultJitterSeed,
		MaxIterations:      5000,
		StuckRunIterations: 500,
		Attractiveness:     f64(0.8),
		LightAbsorption:    f64(0.025),
		MovementJitter:     f64(0.1),
	}
}

// withDefaults fills unset fields from the reference configuration. The
// coefficients are pointers so an explicit 0 (a legitimate configuration)
// stays distinguishable from "not set".
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.SwarmSize == 0 {
		o.SwarmSize = def.SwarmSize
	}
	if o.InBoundsSeed == (sampler.Seed{}) {
		o.InBoundsSeed = def.InBoundsSeed
	}
	if o.JitterSeed == (sampler.Seed{}) {
		o.JitterSeed = def.JitterSeed
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = def.MaxIterations
	}
	if o.StuckRunIterations == 0 {
		o.StuckRunIterations = def.StuckRunIterations
	}
	if o.Attractiveness == nil {
		o.Attractiveness = def.Attractiveness
	}
	if o.LightAbsorption == nil {
		o.LightAbsorption = def.LightAbsorption
	}
	if o.MovementJitter == nil {
		o.MovementJitter = def.MovementJitter
	}
	return o
}

// Validate rejects configurations the optimizer cannot run with.
func (o Options) Validate() error {
	if o.SwarmSize < 1 {
		return optimization.NewErrorf("swarm size must be positive, got %d", o.SwarmSize).
			WithOperation("Validate").WithComponent("firefly")
	}
	if o.MaxIterations < 1 {
		return optimization.NewErrorf("maximum iterations must be positive, got %d", o.MaxIterations).
			WithOperation("Validate").WithComponent("firefly")
	}
	if o.StuckRunIterations < 1 {
		return optimization.NewErrorf("stuck-run iteration count must be positive, got %d", o.StuckRunIterations).
			WithOperation("Validate").WithComponent("firefly")
	}
	if o.Workers < 0 {
		return optimization.NewErrorf("worker count must not be negative, got %d", o.Workers).
			WithOperation("Validate").WithComponent("firefly")
	}
	for _, c := range []struct {
		name  string
		value *float64
	}{
		{"attractiveness coefficient", o.Attractiveness},
		{"light absorption coefficient", o.LightAbsorption},
		{"movement jitter coefficient", o.MovementJitter},
	} {
		if c.value == nil {
			return optimization.NewErrorf("%s must be set", c.name).
				WithOperation("Validate").WithComponent("firefly")
		}
		if v := *c.value; math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return optimization.NewErrorf("%s must be finite and non-negative, got %v", c.name, v).
				WithOperation("Validate").WithComponent("firefly")
		}
	}
	return nil
}
