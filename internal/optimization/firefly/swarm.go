package firefly

import (
	"runtime"
	"sort"
	"sync"

	"github.com/lampyrid/FIREFLY/internal/optimization"
	"github.com/lampyrid/FIREFLY/internal/optimization/sampler"
)

// swarm owns the population for the duration of a run. The population is
// kept sorted descending by objective value (worst first, brightest last),
// so for any index the suffix after it holds exactly the candidates that
// can be strictly brighter.
type swarm struct {
	problem optimization.Problem
	opts    *Options

	fireflies []*firefly

	// best is the global minimum so far, updated only on strict
	// improvement. Nil until the first iteration completes.
	best *optimization.Solution

	workers int
}

// newSwarm draws the initial population: in-bounds uniform positions from
// the position seed, and one derived 128-bit sub-seed per agent index for
// the private jitter streams.
func newSwarm(problem optimization.Problem, opts *Options) (*swarm, error) {
	positions, err := sampler.New(problem.Bounds(), opts.InBoundsSeed)
	if err != nil {
		return nil, optimization.WrapError(err, "initializing position sampler").
			WithOperation("newSwarm").WithComponent("firefly")
	}

	dims := problem.Dimensions()
	seeds := sampler.DeriveSeeds(opts.JitterSeed, opts.SwarmSize)

	fireflies := make([]*firefly, opts.SwarmSize)
	for i := range fireflies {
		fireflies[i] = newFirefly(positions.SampleVector(dims), sampler.Unit(seeds[i]), problem)
	}
	sortByBrightness(fireflies)

	workers := opts.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	return &swarm{
		problem:   problem,
		opts:      opts,
		fireflies: fireflies,
		workers:   workers,
	}, nil
}

// sortByBrightness orders worst first, brightest last.
func sortByBrightness(fireflies []*firefly) {
	sort.Slice(fireflies, func(i, j int) bool {
		return fireflies[i].value > fireflies[j].value
	})
}

// performIteration advances the swarm by exactly one generation and reports
// whether a new global minimum was found.
//
// Each firefly is cloned into a working copy and compared against every
// strictly brighter member of the pre-iteration snapshot (the sorted suffix
// after its index), compounding one attraction move per brighter neighbor.
// The snapshot is read-only during the pass; finalized copies land in a
// fresh buffer at their own index, so the per-firefly work is data-parallel
// with no shared mutable state. Global-best updates happen in a
// single-threaded reduction afterwards, scanning in index order.
func (s *swarm) performIteration() (bool, error) {
	if len(s.fireflies) != s.opts.SwarmSize {
		return false, optimization.WrapErrorf(optimization.ErrSwarmSizeInvariant,
			"before iteration: have %d, want %d", len(s.fireflies), s.opts.SwarmSize).
			WithOperation("performIteration").WithComponent("firefly")
	}

	next := make([]*firefly, len(s.fireflies))

	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for i := offset; i < len(s.fireflies); i += s.workers {
				moved := s.fireflies[i].clone()
				for _, neighbor := range s.fireflies[i+1:] {
					if neighbor.value < moved.value {
						moved.moveTowards(neighbor, s.problem, s.opts)
					}
				}
				next[i] = moved
			}
		}(w)
	}
	wg.Wait()

	improved := false
	for _, f := range next {
		if s.best == nil || f.value < s.best.Value {
			s.best = &optimization.Solution{
				Position: append([]float64(nil), f.position...),
				Value:    f.value,
			}
			improved = true
		}
	}

	sortByBrightness(next)
	if len(next) != s.opts.SwarmSize {
		return false, optimization.WrapErrorf(optimization.ErrSwarmSizeInvariant,
			"after iteration: have %d, want %d", len(next), s.opts.SwarmSize).
			WithOperation("performIteration").WithComponent("firefly")
	}
	s.fireflies = next

	return improved, nil
}
