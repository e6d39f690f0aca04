package grover

import (
	"context"
	"fmt"
	"time"
)

// Worker processes jobs
type Worker struct {
	id        int
	pool      *Pool
	jobs      <-chan Job
	sum       int64
	processed int
}

/*
run pulls jobs until the channel closes or ctx is cancelled. The first failing
job ends the worker with an error, which the pool treats as fatal for the
whole run.
*/
func (w *Worker) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case job, ok := <-w.jobs:
			if !ok {
				return nil
			}

			mismatches, err := w.processJob(job)
			if err != nil {
				return workerFailure(job.ID, err)
			}

			w.sum += int64(mismatches)
			w.processed++
		}
	}
}

func (w *Worker) processJob(job Job) (mismatches int, err error) {
	job.StartTime = time.Now()

	defer func() {
		if r := recover(); r != nil {
			mismatches = 0
			err = fmt.Errorf("trial panicked: %v", r)
		}

		w.pool.metrics.recordTrial(job.StartTime, job.Trial.MeasureCount, mismatches, err)
	}()

	return w.pool.trial(job.Trial)
}
