package grover

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Point is the measured accuracy for one register size.
type Point struct {
	Qubits       int
	Iterations   int
	Runs         int
	MeasureCount int
	Failures     int64
	Accuracy     float64
	Elapsed      time.Duration
}

/*
Accuracy converts a failure count into the percentage of measurements that
hit the target. An empty sample counts as fully accurate.
*/
func Accuracy(failures int64, runs, measureCount int) float64 {
	total := float64(runs) * float64(measureCount)
	if total == 0 {
		return 100
	}

	return 100 - float64(failures)/total*100
}

/*
TargetFor builds the n-bit target for a sweep point by repeating pattern,
truncated to n. An empty pattern means all zeros.
*/
func TargetFor(pattern string, n int) string {
	if n <= 0 {
		return ""
	}

	if pattern == "" {
		return strings.Repeat("0", n)
	}

	return strings.Repeat(pattern, n/len(pattern)+1)[:n]
}

/*
Sweep measures every register size from cfg.MinQubits to cfg.MaxQubits
inclusive. progress, when set, is called after each point. The first point
that fails aborts the sweep and its error is returned with the points
completed so far.
*/
func Sweep(ctx context.Context, pool *Pool, cfg *SweepConfig, progress func(Point)) ([]Point, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	points := make([]Point, 0, cfg.MaxQubits-cfg.MinQubits+1)

	for n := cfg.MinQubits; n <= cfg.MaxQubits; n++ {
		iterations := cfg.Iterations
		if iterations < 0 {
			iterations = OptimalIterations(n)
		}

		start := time.Now()

		failures, err := pool.Run(ctx, Trial{
			Qubits:       n,
			Target:       TargetFor(cfg.Target, n),
			Iterations:   iterations,
			MeasureCount: cfg.MeasureCount,
		}, cfg.Runs)
		if err != nil {
			return points, fmt.Errorf("sweep point %d qubits: %w", n, err)
		}

		point := Point{
			Qubits:       n,
			Iterations:   iterations,
			Runs:         cfg.Runs,
			MeasureCount: cfg.MeasureCount,
			Failures:     failures,
			Accuracy:     Accuracy(failures, cfg.Runs, cfg.MeasureCount),
			Elapsed:      time.Since(start),
		}
		points = append(points, point)

		if progress != nil {
			progress(point)
		}
	}

	return points, nil
}
