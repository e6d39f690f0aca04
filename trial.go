package grover

import (
	"math/rand/v2"
)

/*
Trial is one unit of parallel work: prepare the register, amplify the target,
then take MeasureCount measurements. A Trial is a plain value and carries its
own seed, so any worker can run it without shared state.
*/
type Trial struct {
	Qubits       int
	Target       string
	Iterations   int
	MeasureCount int
	Seed         uint64
}

// TargetIndex validates the trial and returns the basis index of its target.
func (t Trial) TargetIndex() (int, error) {
	index, err := ParseTarget(t.Qubits, t.Target)
	if err != nil {
		return 0, err
	}

	if t.MeasureCount < 0 {
		return 0, invalidInput("measure count %d is negative", t.MeasureCount)
	}

	return index, nil
}

/*
SingleTrial runs one trial and returns the number of measurements that did
not land on the target.
*/
func SingleTrial(trial Trial) (int, error) {
	index, err := trial.TargetIndex()
	if err != nil {
		return 0, err
	}

	dist, err := amplify(trial.Qubits, index, trial.Iterations)
	if err != nil {
		return 0, err
	}

	sampler, err := NewSampler(dist, NewRand(trial.Seed))
	if err != nil {
		return 0, err
	}

	return sampler.Mismatches(index, trial.MeasureCount)
}

// NewRand returns a PCG source seeded from seed alone.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, mix(seed^0xda3e39cb94b95bdb)))
}

/*
DeriveSeed gives trial index its own seed from a base seed. Neighbouring
indices map to unrelated seeds, so trials never share a random stream.
*/
func DeriveSeed(base uint64, index int) uint64 {
	return mix(base + uint64(index)*0x9e3779b97f4a7c15)
}

// mix is the splitmix64 finaliser.
func mix(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
