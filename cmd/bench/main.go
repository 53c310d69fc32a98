// Command bench runs the firefly optimizer over every registered benchmark
// function with the reference configuration and reports per-problem minima
// and timings.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/lampyrid/FIREFLY/internal/optimization/firefly"
	"github.com/lampyrid/FIREFLY/internal/optimization/problems"
)

func main() {
	dims := flag.Int("dims", 10, "dimensionality of the benchmark problems")
	swarmSize := flag.Int("swarm-size", 0, "swarm size (0 uses the default)")
	maxIterations := flag.Int("max-iterations", 0, "iteration budget (0 uses the default)")
	workers := flag.Int("workers", 0, "parallel workers per run (0 uses all CPUs)")
	flag.Parse()

	if err := run(*dims, *swarmSize, *maxIterations, *workers); err != nil {
		fmt.Fprintf(os.Stderr, "bench: %v\n", err)
		os.Exit(1)
	}
}

func run(dims, swarmSize, maxIterations, workers int) error {
	suite, err := problems.Suite(dims)
	if err != nil {
		return err
	}

	opts := firefly.Options{
		SwarmSize:     swarmSize,
		MaxIterations: maxIterations,
		Workers:       workers,
	}

	start := time.Now()
	times := make([]float64, 0, len(suite))

	for i, problem := range suite {
		optimizer, err := firefly.New(opts)
		if err != nil {
			return err
		}

		problemStart := time.Now()
		result, err := optimizer.Optimize(context.Background(), problem)
		if err != nil {
			return err
		}
		elapsed := time.Since(problemStart).Seconds()
		times = append(times, elapsed)

		fmt.Printf("[%02d/%02d] %-16s minimum: %12.6f  known: %12.6f  iterations: %5d  (%.4f seconds)\n",
			i+1, len(suite), problem.Name(),
			result.BestSolution.Value, problem.KnownOptimum(),
			result.Iterations, elapsed)
	}

	mean := stat.Mean(times, nil)
	stddev := stat.StdDev(times, nil)
	fmt.Printf("-- Finished in %.4f seconds (%.4f ± %.4f per problem) --\n",
		time.Since(start).Seconds(), mean, stddev)

	return nil
}
