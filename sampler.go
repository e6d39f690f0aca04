package grover

import (
	"math"
	"math/rand/v2"
	"sort"
)

/*
Sampler collapses a Distribution into basis-state indices. Each draw is an
independent measurement of a freshly prepared register, so sampling is with
replacement.

A Sampler owns its random source and is not safe for concurrent use.
*/
type Sampler struct {
	cumulative []float64
	total      float64
	last       int
	rng        *rand.Rand
}

/*
NewSampler prepares the cumulative weights of dist for repeated sampling.
Weights must be non-negative and finite with a positive total.
*/
func NewSampler(dist Distribution, rng *rand.Rand) (*Sampler, error) {
	if len(dist) == 0 {
		return nil, degenerate("empty distribution")
	}

	if rng == nil {
		return nil, invalidInput("nil random source")
	}

	cumulative := make([]float64, len(dist))
	last := -1

	var total float64
	for i, p := range dist {
		if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, degenerate("weight %v at index %d", p, i)
		}

		if p > 0 {
			last = i
		}

		total += p
		cumulative[i] = total
	}

	if total <= 0 || math.IsInf(total, 0) {
		return nil, degenerate("total weight %v", total)
	}

	return &Sampler{
		cumulative: cumulative,
		total:      total,
		last:       last,
		rng:        rng,
	}, nil
}

// Collapse performs one measurement.
func (s *Sampler) Collapse() int {
	r := s.rng.Float64() * s.total

	i := sort.Search(len(s.cumulative), func(i int) bool {
		return s.cumulative[i] > r
	})

	// Rounding can push r onto the final edge.
	if i >= len(s.cumulative) {
		return s.last
	}

	return i
}

// Sample draws count indices according to the distribution.
func (s *Sampler) Sample(count int) ([]int, error) {
	if count < 0 {
		return nil, invalidInput("sample count %d is negative", count)
	}

	out := make([]int, count)
	for i := range out {
		out[i] = s.Collapse()
	}

	return out, nil
}

// Mismatches draws count indices and returns how many differ from target.
func (s *Sampler) Mismatches(target, count int) (int, error) {
	if count < 0 {
		return 0, invalidInput("measure count %d is negative", count)
	}

	misses := 0
	for range count {
		if s.Collapse() != target {
			misses++
		}
	}

	return misses, nil
}
