package optimization

import (
	"context"
)

// Optimizer defines the interface for optimization algorithms
type Optimizer interface {
	// Optimize runs the optimization process against the given problem
	Optimize(ctx context.Context, problem Problem) (*Result, error)

	// GetBestSolution returns the best solution found so far
	GetBestSolution() *Solution

	// Stop gracefully stops the optimization process
	Stop()
}

// Problem is the objective-function oracle. The optimizer treats it as a
// black box: it only queries Evaluate, never inspects the function itself.
//
// Evaluate must be side-effect free and deterministic for a fixed position.
// Lower values are better (minimization).
type Problem interface {
	// Dimensions returns the input dimensionality of the problem
	Dimensions() int

	// Bounds returns the rectangular domain, identical per dimension
	Bounds() Bounds

	// Evaluate computes the objective value at the given position
	Evaluate(position []float64) float64
}

// Bounds is a scalar [Lower, Upper] interval replicated across every
// dimension of a problem's domain. Immutable once constructed.
type Bounds struct {
	Lower float64
	Upper float64
}

// NewBounds constructs bounds, rejecting an inverted interval.
func NewBounds(lower, upper float64) (Bounds, error) {
	if lower > upper {
		return Bounds{}, NewErrorf("invalid bounds: lower %v > upper %v", lower, upper).
			WithOperation("NewBounds").
			WithComponent("optimization")
	}
	return Bounds{Lower: lower, Upper: upper}, nil
}

// Clamp projects v back into the interval.
func (b Bounds) Clamp(v float64) float64 {
	if v < b.Lower {
		return b.Lower
	}
	if v > b.Upper {
		return b.Upper
	}
	return v
}

// Width returns the length of the interval.
func (b Bounds) Width() float64 {
	return b.Upper - b.Lower
}

// Contains reports whether v lies inside the interval.
func (b Bounds) Contains(v float64) bool {
	return v >= b.Lower && v <= b.Upper
}

// Solution represents a point in the optimization space together with its
// objective value.
type Solution struct {
	Position []float64
	Value    float64
}

// Clone returns a deep copy so callers can hold a solution while the
// optimizer keeps mutating its own state.
func (s *Solution) Clone() *Solution {
	if s == nil {
		return nil
	}
	return &Solution{
		Position: append([]float64(nil), s.Position...),
		Value:    s.Value,
	}
}

// Result contains the outcome of an optimization run
type Result struct {
	// BestSolution is the best point found across the whole run
	BestSolution *Solution

	// Iterations is the number of generations actually performed
	Iterations int

	// Stagnated is true when the run stopped via the stuck-run cutoff
	// rather than by exhausting the iteration budget
	Stagnated bool
}
