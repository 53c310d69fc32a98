package firefly

import (
	"context"

	"github.com/lampyrid/FIREFLY/internal/optimization"
)

// Optimizer runs the Firefly Algorithm against a Problem. It implements
// optimization.Optimizer.
type Optimizer struct {
	opts Options

	// Best solution found across runs
	bestSolution *optimization.Solution

	// For cancellation
	cancel context.CancelFunc
}

// New creates a firefly optimizer. Zero-valued option fields are filled
// with the reference defaults before validation.
func New(opts Options) (*Optimizer, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Optimizer{opts: opts}, nil
}

// Options returns the effective configuration the optimizer runs with.
func (o *Optimizer) Options() Options {
	return o.opts
}

// Optimize performs up to MaxIterations generations, stopping early when
// the global best has not improved for StuckRunIterations consecutive
// generations. The returned best value is monotonically non-increasing
// across the run.
func (o *Optimizer) Optimize(ctx context.Context, problem optimization.Problem) (*optimization.Result, error) {
	ctx, o.cancel = context.WithCancel(ctx)
	defer o.cancel()

	s, err := newSwarm(problem, &o.opts)
	if err != nil {
		return nil, err
	}

	var (
		iterations                 int
		iterationsSinceImprovement int
		stagnated                  bool
	)

	for i := 0; i < o.opts.MaxIterations; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		improved, err := s.performIteration()
		if err != nil {
			return nil, err
		}
		iterations++

		if improved {
			iterationsSinceImprovement = 0
		} else {
			iterationsSinceImprovement++
		}

		if iterationsSinceImprovement >= o.opts.StuckRunIterations {
			stagnated = true
			break
		}
	}

	if s.best == nil {
		return nil, optimization.WrapError(optimization.ErrNoSolution, "invalid run").
			WithOperation("Optimize").WithComponent("firefly")
	}

	o.bestSolution = s.best.Clone()

	return &optimization.Result{
		BestSolution: s.best,
		Iterations:   iterations,
		Stagnated:    stagnated,
	}, nil
}

// GetBestSolution returns the best solution found so far.
func (o *Optimizer) GetBestSolution() *optimization.Solution {
	return o.bestSolution
}

// Stop stops the optimization process.
func (o *Optimizer) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
}
