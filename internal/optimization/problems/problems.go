// Package problems provides named benchmark objective functions from the
// standard test-function corpus
// (http://en.wikipedia.org/wiki/Test_functions_for_optimization), each
// implementing the optimization.Problem oracle with uniform scalar bounds.
package problems

import (
	"math"

	"github.com/lampyrid/FIREFLY/internal/optimization"
)

// Benchmark is a Problem with a name and a known global optimum, so suite
// drivers can report how close a run got.
type Benchmark interface {
	optimization.Problem

	// Name identifies the function in the registry.
	Name() string

	// KnownOptimum returns the global minimum value.
	KnownOptimum() float64
}

// Sphere is sum(x_i^2): convex, unimodal, minimum 0 at the origin.
type Sphere struct {
	Dims int
}

func (f Sphere) Name() string { return "sphere" }
func (f Sphere) Dimensions() int { return f.Dims }
func (f Sphere) Bounds() optimization.Bounds { return optimization.Bounds{Lower: -5, Upper: 5} }
func (f Sphere) KnownOptimum() float64 { return 0 }
func (f Sphere) Evaluate(x []float64) float64 {
	tot := 0.0
	for _, v := range x {
		tot += v * v
	}
	return tot
}

// Ackley has a nearly flat outer region and a large hole at the origin.
// Minimum 0 at the origin.
type Ackley struct {
	Dims int
}

func (f Ackley) Name() string { return "ackley" }
func (f Ackley) Dimensions() int { return f.Dims }
func (f Ackley) Bounds() optimization.Bounds { return optimization.Bounds{Lower: -32.768, Upper: 32.768} }
func (f Ackley) KnownOptimum() float64 { return 0 }
func (f Ackley) Evaluate(x []float64) float64 {
	n := float64(len(x))
	sumSq, sumCos := 0.0, 0.0
	for _, v := range x {
		sumSq += v * v
		sumCos += math.Cos(2 * math.Pi * v)
	}
	return -20*math.Exp(-0.2*math.Sqrt(sumSq/n)) -
		math.Exp(sumCos/n) + 20 + math.E
}

// Rastrigin is highly multimodal with regularly distributed local minima.
// Minimum 0 at the origin.
type Rastrigin struct {
	Dims int
}

func (f Rastrigin) Name() string { return "rastrigin" }
func (f Rastrigin) Dimensions() int { return f.Dims }
func (f Rastrigin) Bounds() optimization.Bounds { return optimization.Bounds{Lower: -5.12, Upper: 5.12} }
func (f Rastrigin) KnownOptimum() float64 { return 0 }
func (f Rastrigin) Evaluate(x []float64) float64 {
	tot := 10 * float64(len(x))
	for _, v := range x {
		tot += v*v - 10*math.Cos(2*math.Pi*v)
	}
	return tot
}

// Rosenbrock is the classic banana valley. Minimum 0 at (1, ..., 1).
type Rosenbrock struct {
	Dims int
}

func (f Rosenbrock) Name() string { return "rosenbrock" }
func (f Rosenbrock) Dimensions() int { return f.Dims }
func (f Rosenbrock) Bounds() optimization.Bounds { return optimization.Bounds{Lower: -5, Upper: 10} }
func (f Rosenbrock) KnownOptimum() float64 { return 0 }
func (f Rosenbrock) Evaluate(x []float64) float64 {
	tot := 0.0
	for i := 0; i < len(x)-1; i++ {
		a := x[i+1] - x[i]*x[i]
		b := x[i] - 1
		tot += 100*a*a + b*b
	}
	return tot
}

// Griewank has many widespread regularly distributed local minima.
// Minimum 0 at the origin.
type Griewank struct {
	Dims int
}

func (f Griewank) Name() string { return "griewank" }
func (f Griewank) Dimensions() int { return f.Dims }
func (f Griewank) Bounds() optimization.Bounds { return optimization.Bounds{Lower: -600, Upper: 600} }
func (f Griewank) KnownOptimum() float64 { return 0 }
func (f Griewank) Evaluate(x []float64) float64 {
	sum, prod := 0.0, 1.0
	for i, v := range x {
		sum += v * v / 4000
		prod *= math.Cos(v / math.Sqrt(float64(i+1)))
	}
	return sum - prod + 1
}

// Schwefel places its minimum far from the origin, punishing algorithms
// that converge toward the center. Minimum ~0 at 420.9687 per dimension.
type Schwefel struct {
	Dims int
}

func (f Schwefel) Name() string { return "schwefel" }
func (f Schwefel) Dimensions() int { return f.Dims }
func (f Schwefel) Bounds() optimization.Bounds { return optimization.Bounds{Lower: -500, Upper: 500} }
func (f Schwefel) KnownOptimum() float64 { return 0 }
func (f Schwefel) Evaluate(x []float64) float64 {
	tot := 418.9829 * float64(len(x))
	for _, v := range x {
		tot -= v * math.Sin(math.Sqrt(math.Abs(v)))
	}
	return tot
}

// StyblinskiTang has minimum -39.16599*d at -2.903534 per dimension.
type StyblinskiTang struct {
	Dims int
}

func (f StyblinskiTang) Name() string { return "styblinski-tang" }
func (f StyblinskiTang) Dimensions() int { return f.Dims }
func (f StyblinskiTang) Bounds() optimization.Bounds { return optimization.Bounds{Lower: -5, Upper: 5} }
func (f StyblinskiTang) KnownOptimum() float64 { return -39.16599 * float64(f.Dims) }
func (f StyblinskiTang) Evaluate(x []float64) float64 {
	tot := 0.0
	for _, v := range x {
		tot += v*v*v*v - 16*v*v + 5*v
	}
	return tot / 2
}

// Eggholder is a difficult 2-dimensional function with minimum -959.6407
// at (512, 404.2319).
type Eggholder struct{}

func (f Eggholder) Name() string { return "eggholder" }
func (f Eggholder) Dimensions() int { return 2 }
func (f Eggholder) Bounds() optimization.Bounds { return optimization.Bounds{Lower: -512, Upper: 512} }
func (f Eggholder) KnownOptimum() float64 { return -959.6407 }
func (f Eggholder) Evaluate(x []float64) float64 {
	a, b := x[0], x[1]
	return -(b+47)*math.Sin(math.Sqrt(math.Abs(b+a/2+47))) -
		a*math.Sin(math.Sqrt(math.Abs(a-(b+47))))
}
