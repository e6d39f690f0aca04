package grover

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks malformed targets, negative qubit counts and
	// negative run or measurement counts. Returned before any work is done.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNumericDegeneracy marks a probability vector that cannot be
	// normalised (zero, NaN or infinite total weight).
	ErrNumericDegeneracy = errors.New("numeric degeneracy")

	// ErrResourceExhausted marks a search space too large to allocate.
	ErrResourceExhausted = errors.New("resource exhausted")

	// ErrWorkerFailure marks an aggregation aborted because one of its
	// trials failed.
	ErrWorkerFailure = errors.New("worker failure")
)

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func degenerate(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNumericDegeneracy, fmt.Sprintf(format, args...))
}

func exhausted(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrResourceExhausted, fmt.Sprintf(format, args...))
}

// workerFailure wraps cause so that both ErrWorkerFailure and the cause's
// own sentinel match with errors.Is.
func workerFailure(jobID string, cause error) error {
	return fmt.Errorf("%w: job %s: %w", ErrWorkerFailure, jobID, cause)
}
