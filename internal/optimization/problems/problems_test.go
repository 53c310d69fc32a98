package problems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownOptima(t *testing.T) {
	tests := []struct {
		name     string
		problem  Benchmark
		optimum  []float64
		expected float64
		delta    float64
	}{
		{"sphere at origin", Sphere{Dims: 3}, []float64{0, 0, 0}, 0, 1e-12},
		{"ackley at origin", Ackley{Dims: 2}, []float64{0, 0}, 0, 1e-12},
		{"rastrigin at origin", Rastrigin{Dims: 4}, []float64{0, 0, 0, 0}, 0, 1e-12},
		{"rosenbrock at ones", Rosenbrock{Dims: 3}, []float64{1, 1, 1}, 0, 1e-12},
		{"griewank at origin", Griewank{Dims: 2}, []float64{0, 0}, 0, 1e-12},
		{"schwefel at 420.9687", Schwefel{Dims: 2}, []float64{420.9687, 420.9687}, 0, 1e-3},
		{"styblinski-tang", StyblinskiTang{Dims: 2}, []float64{-2.903534, -2.903534}, -39.16599 * 2, 1e-3},
		{"eggholder", Eggholder{}, []float64{512, 404.2319}, -959.6407, 1e-3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.problem.Evaluate(tt.optimum), tt.delta)
			assert.InDelta(t, tt.expected, tt.problem.KnownOptimum(), tt.delta)
		})
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	p := Ackley{Dims: 3}
	x := []float64{1.5, -2.25, 0.75}
	assert.Equal(t, p.Evaluate(x), p.Evaluate(x))
}

func TestBoundsAreWellFormed(t *testing.T) {
	suite, err := Suite(2)
	require.NoError(t, err)

	for _, p := range suite {
		b := p.Bounds()
		assert.LessOrEqual(t, b.Lower, b.Upper, "%s bounds inverted", p.Name())
		assert.Greater(t, p.Dimensions(), 0, "%s has no dimensions", p.Name())
	}
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		p, err := ByName(name, 5)
		require.NoError(t, err, name)
		assert.Equal(t, name, p.Name())
	}

	_, err := ByName("does-not-exist", 2)
	assert.Error(t, err)

	_, err = ByName("sphere", 0)
	assert.Error(t, err)
}

func TestEggholderIsTwoDimensional(t *testing.T) {
	p, err := ByName("eggholder", 10)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Dimensions())
}
