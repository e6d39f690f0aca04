package grover

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/theapemachine/errnie"
	"golang.org/x/sync/errgroup"
)

// TrialFunc runs one trial and returns its mismatch count.
type TrialFunc func(Trial) (int, error)

/*
Pool fans trials out to a fixed set of workers and sums their mismatch
counts. Workers share nothing: every trial prepares its own state vector and
draws from its own random stream.
*/
type Pool struct {
	config   *Config
	governor *Governor
	metrics  *Metrics
	trial    TrialFunc
}

/*
NewPool creates a pool from config, or from NewConfig when config is nil.
Metrics are registered on config.Registerer when one is set.
*/
func NewPool(config *Config) (*Pool, error) {
	if config == nil {
		config = NewConfig()
	}

	if config.Workers < 0 {
		return nil, invalidInput("workers %d is negative", config.Workers)
	}

	maxBytes := config.MaxBytes
	if maxBytes == 0 {
		maxBytes = DefaultMaxBytes()
	}

	p := &Pool{
		config:   config,
		governor: NewGovernor(maxBytes),
		metrics:  NewMetrics(),
		trial:    SingleTrial,
	}

	if config.Registerer != nil {
		if err := p.metrics.Register(config.Registerer); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	return p, nil
}

func (p *Pool) Metrics() *Metrics {
	return p.metrics
}

func (p *Pool) Governor() *Governor {
	return p.governor
}

/*
Run executes runs independent copies of trial and returns the total number of
measurements that missed the target, out of runs · trial.MeasureCount.

Input is validated before anything is dispatched. If any trial fails the
remaining work is cancelled and Run returns an error wrapping
ErrWorkerFailure and the trial's own error; no partial sum is returned.
*/
func (p *Pool) Run(ctx context.Context, trial Trial, runs int) (int64, error) {
	if _, err := trial.TargetIndex(); err != nil {
		return 0, err
	}

	if runs < 0 {
		return 0, invalidInput("runs %d is negative", runs)
	}

	if runs == 0 {
		return 0, nil
	}

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("aggregation aborted: %w", err)
	}

	size, err := p.governor.Fit(trial.Qubits, min(p.config.workers(), runs))
	if err != nil {
		return 0, err
	}

	base, err := p.baseSeed()
	if err != nil {
		return 0, err
	}

	if p.config.Verbose {
		alloc, sys := p.governor.Usage()
		errnie.Info(
			"pool run - qubits %d, runs %d, workers %d, heap %d/%d bytes, limit %d",
			trial.Qubits, runs, size, alloc, sys, p.governor.Limit(),
		)
	}

	p.metrics.mu.Lock()
	p.metrics.WorkerCount = size
	p.metrics.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan Job, size)

	g.Go(func() error {
		defer close(jobs)

		for i := range runs {
			select {
			case jobs <- newJob(trial, i, base):
			case <-gctx.Done():
				return gctx.Err()
			}
		}

		return nil
	})

	workers := make([]*Worker, size)
	for i := range workers {
		w := &Worker{id: i, pool: p, jobs: jobs}
		workers[i] = w

		g.Go(func() error {
			return w.run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, ErrWorkerFailure) {
			return 0, err
		}

		return 0, fmt.Errorf("aggregation aborted: %w", err)
	}

	var total int64
	for _, w := range workers {
		total += w.sum
	}

	if p.config.Verbose {
		errnie.Info("pool run done - qubits %d, mismatches %d", trial.Qubits, total)
	}

	return total, nil
}

func (p *Pool) baseSeed() (uint64, error) {
	if p.config.Seed != 0 {
		return p.config.Seed, nil
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("failed to seed pool: %w", err)
	}

	return binary.LittleEndian.Uint64(buf[:]), nil
}

/*
RunParallel runs trials on a default pool: one worker per available CPU, a
memory ceiling derived from the host and a fresh random base seed. Wide
registers run on fewer workers when the ceiling requires it.
*/
func RunParallel(ctx context.Context, qubits int, target string, iterations, runs, measureCount int) (int64, error) {
	pool, err := NewPool(nil)
	if err != nil {
		return 0, err
	}

	return pool.Run(ctx, Trial{
		Qubits:       qubits,
		Target:       target,
		Iterations:   iterations,
		MeasureCount: measureCount,
	}, runs)
}
