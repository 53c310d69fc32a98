// Package firefly implements the Firefly Algorithm, a population-based
// metaheuristic minimizing a bounded black-box objective. Each iteration
// moves less-fit fireflies toward brighter ones with a distance-decayed
// attraction, plus a private jittered perturbation per agent.
package firefly

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/lampyrid/FIREFLY/internal/optimization"
	"github.com/lampyrid/FIREFLY/internal/optimization/sampler"
)

// firefly is one agent: a candidate solution, the cached objective value at
// that solution, and a privately-owned jitter stream. Exactly one agent
// draws from any given stream, which is what makes the parallel iteration
// lock-free and deterministic.
type firefly struct {
	position []float64
	value    float64
	jitter   *sampler.Sampler
}

// newFirefly evaluates the oracle at position and caches the result.
func newFirefly(position []float64, jitter *sampler.Sampler, problem optimization.Problem) *firefly {
	return &firefly{
		position: position,
		value:    problem.Evaluate(position),
		jitter:   jitter,
	}
}

// clone copies the agent for use as a working copy during an iteration. The
// jitter stream moves with the copy: the snapshot original is only ever read
// as a neighbor afterwards, never drawn from.
func (f *firefly) clone() *firefly {
	return &firefly{
		position: append([]float64(nil), f.position...),
		value:    f.value,
		jitter:   f.jitter,
	}
}

// moveTowards pulls this firefly toward a strictly brighter neighbor.
//
// Attraction magnitude is beta_0 * exp(-gamma * r^2) with r the Euclidean
// distance, so nearby brighter fireflies attract strongly and far ones
// barely at all. Each coordinate additionally receives one private jitter
// draw. The moved position is clamped into the domain, re-evaluated, and
// adopted unconditionally: in the classical formulation movement toward a
// brighter point is itself the acceptance heuristic and is not re-validated
// against the old value.
func (f *firefly) moveTowards(brighter *firefly, problem optimization.Problem, opts *Options) {
	r := floats.Distance(f.position, brighter.position, 2)
	beta := *opts.Attractiveness * math.Exp(-*opts.LightAbsorption*r*r)
	jitterScale := *opts.MovementJitter

	bounds := problem.Bounds()
	for i := range f.position {
		u := f.jitter.Sample()
		moved := f.position[i] +
			beta*(brighter.position[i]-f.position[i]) +
			jitterScale*(u-0.5)
		f.position[i] = bounds.Clamp(moved)
	}

	f.value = problem.Evaluate(f.position)
}
