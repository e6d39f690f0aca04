package grover

import (
	"fmt"
	"time"
)

// Job is a Trial tagged for dispatch to a worker.
type Job struct {
	ID        string
	Index     int
	Trial     Trial
	StartTime time.Time
}

// newJob derives the job for trial index of a run from the run's base seed.
func newJob(trial Trial, index int, base uint64) Job {
	trial.Seed = DeriveSeed(base, index)

	return Job{
		ID:    fmt.Sprintf("trial-%d", index),
		Index: index,
		Trial: trial,
	}
}
