package grover

import (
	"math"
)

// DefaultIterations asks Search to derive the iteration count from the register size.
const DefaultIterations = -1

// Distribution holds the measurement probability of every basis state.
type Distribution []float64

/*
OptimalIterations returns floor(π/4 · sqrt(2^n)), the number of
oracle/diffusion rounds that maximises the target probability for a single
marked state. The value is truncated, never rounded.
*/
func OptimalIterations(qubits int) int {
	return int(math.Floor(math.Pi / 4 * math.Sqrt(math.Exp2(float64(qubits)))))
}

/*
ParseTarget validates a target label against the register width and returns
its basis-state index. The label must be exactly qubits characters of '0' and
'1', most significant bit first.
*/
func ParseTarget(qubits int, target string) (int, error) {
	if qubits < 0 {
		return 0, invalidInput("qubit count %d is negative", qubits)
	}

	if qubits > MaxQubits {
		return 0, exhausted("2^%d states exceed the addressable range", qubits)
	}

	if len(target) != qubits {
		return 0, invalidInput("target %q has length %d, want %d", target, len(target), qubits)
	}

	index := 0
	for i := 0; i < len(target); i++ {
		index <<= 1

		switch target[i] {
		case '0':
		case '1':
			index |= 1
		default:
			return 0, invalidInput("target %q has non-binary character %q at %d", target, target[i], i)
		}
	}

	return index, nil
}

/*
Search runs amplitude amplification for the given target and returns the
resulting measurement distribution.

Pass DefaultIterations (or any negative value) to use OptimalIterations.
Each round applies the oracle and then the diffusion operator.
*/
func Search(qubits int, target string, iterations int) (Distribution, error) {
	index, err := ParseTarget(qubits, target)
	if err != nil {
		return nil, err
	}

	return amplify(qubits, index, iterations)
}

// amplify runs Search on an already validated target index.
func amplify(qubits, index, iterations int) (Distribution, error) {
	if iterations < 0 {
		iterations = OptimalIterations(qubits)
	}

	amps, err := NewAmplitudes(qubits)
	if err != nil {
		return nil, err
	}

	for range iterations {
		if err := amps.Oracle(index); err != nil {
			return nil, err
		}

		amps.Diffuse()
	}

	return amps.Distribution()
}

/*
Distribution squares the amplitudes in place and normalises them to sum to
one. The receiver must not be used afterwards.
*/
func (a Amplitudes) Distribution() (Distribution, error) {
	total := a.SumSquares()

	if total == 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, degenerate("sum of squared amplitudes is %v", total)
	}

	for i, x := range a {
		a[i] = x * x / total
	}

	return Distribution(a), nil
}

// Probability returns the measurement probability of index, or 0 out of range.
func (d Distribution) Probability(index int) float64 {
	if index < 0 || index >= len(d) {
		return 0
	}

	return d[index]
}
