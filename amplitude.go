package grover

import (
	"math"
	"math/bits"
)

// MaxQubits is the largest register whose state vector length still fits an int.
const MaxQubits = bits.UintSize - 2

/*
Amplitudes is the real-valued state vector of an n-qubit register, one entry
per basis state. Index i holds the amplitude of the state whose binary label
is i.
*/
type Amplitudes []float64

/*
NewAmplitudes prepares the uniform superposition over 2^n basis states, the
state a Hadamard on every qubit produces from |0...0⟩.

Every entry is 1/sqrt(2^n). A zero-qubit register is the single entry 1.0.
Registers that cannot be indexed or allocated return ErrResourceExhausted.
*/
func NewAmplitudes(n int) (amps Amplitudes, err error) {
	if n < 0 {
		return nil, invalidInput("qubit count %d is negative", n)
	}

	if n > MaxQubits {
		return nil, exhausted("2^%d states exceed the addressable range", n)
	}

	size := 1 << n

	defer func() {
		if r := recover(); r != nil {
			amps = nil
			err = exhausted("allocating %d amplitudes: %v", size, r)
		}
	}()

	amps = make(Amplitudes, size)
	amplitude := 1 / math.Sqrt(float64(size))

	for i := range amps {
		amps[i] = amplitude
	}

	return amps, nil
}

// Oracle marks the target by flipping the sign of its amplitude.
func (a Amplitudes) Oracle(target int) error {
	if target < 0 || target >= len(a) {
		return invalidInput("target index %d out of range [0, %d)", target, len(a))
	}

	a[target] = -a[target]
	return nil
}

/*
Diffuse applies inversion about the mean, replacing every amplitude x with
2μ − x. The mean is taken over the whole vector before the first entry is
rewritten.
*/
func (a Amplitudes) Diffuse() {
	twiceMean := 2 * a.Mean()

	for i, x := range a {
		a[i] = twiceMean - x
	}
}

// Mean returns the arithmetic mean of the amplitudes.
func (a Amplitudes) Mean() float64 {
	if len(a) == 0 {
		return 0
	}

	var sum float64
	for _, x := range a {
		sum += x
	}

	return sum / float64(len(a))
}

// SumSquares returns the total probability mass before normalisation.
func (a Amplitudes) SumSquares() float64 {
	var sum float64
	for _, x := range a {
		sum += x * x
	}

	return sum
}
