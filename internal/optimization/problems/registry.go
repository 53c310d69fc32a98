package problems

import (
	"github.com/lampyrid/FIREFLY/internal/optimization"
)

// names fixes the enumeration order of the registry.
var names = []string{
	"sphere",
	"ackley",
	"rastrigin",
	"rosenbrock",
	"griewank",
	"schwefel",
	"styblinski-tang",
	"eggholder",
}

// Names returns the registered function names in fixed order.
func Names() []string {
	return append([]string(nil), names...)
}

// ByName constructs the named benchmark with the given dimensionality.
// Eggholder is defined for two dimensions only; the dims argument is
// ignored for it.
func ByName(name string, dims int) (Benchmark, error) {
	if dims < 1 {
		return nil, optimization.NewErrorf("dimensionality must be positive, got %d", dims).
			WithOperation("ByName").WithComponent("problems")
	}
	switch name {
	case "sphere":
		return Sphere{Dims: dims}, nil
	case "ackley":
		return Ackley{Dims: dims}, nil
	case "rastrigin":
		return Rastrigin{Dims: dims}, nil
	case "rosenbrock":
		return Rosenbrock{Dims: dims}, nil
	case "griewank":
		return Griewank{Dims: dims}, nil
	case "schwefel":
		return Schwefel{Dims: dims}, nil
	case "styblinski-tang":
		return StyblinskiTang{Dims: dims}, nil
	case "eggholder":
		return Eggholder{}, nil
	default:
		return nil, optimization.NewErrorf("unknown problem %q", name).
			WithOperation("ByName").WithComponent("problems")
	}
}

// Suite returns the benchmark instances the bench driver runs, with the
// dimensionalities used for reporting.
func Suite(dims int) ([]Benchmark, error) {
	suite := make([]Benchmark, 0, len(names))
	for _, name := range names {
		b, err := ByName(name, dims)
		if err != nil {
			return nil, err
		}
		suite = append(suite, b)
	}
	return suite, nil
}
