package grover

import (
	"math/bits"
	"runtime"
	"sync"
)

// bytesPerState covers the amplitude entry and its cumulative sampling weight.
const bytesPerState = 16

// hostShare is the fraction of physical memory the default ceiling allows.
const hostShare = 2

/*
Governor keeps a sweep point from asking for more memory than the host should
give it. Every worker holds its own state vector, so a wide register shrinks
the pool rather than failing the run. Only a point whose single trial cannot
fit is refused.

Sizing happens before any allocation, which turns what would be a fatal
out-of-memory crash into an ErrResourceExhausted the caller can act on.
*/
type Governor struct {
	mu sync.RWMutex

	maxBytes uint64
	admitted uint64
	shrunk   uint64
	rejected uint64
}

/*
NewGovernor creates a governor with the given ceiling. A zero ceiling admits
anything the address space can represent.
*/
func NewGovernor(maxBytes uint64) *Governor {
	return &Governor{maxBytes: maxBytes}
}

// DefaultMaxBytes is half the host's physical memory, or zero when unknown.
func DefaultMaxBytes() uint64 {
	return hostMemory() / hostShare
}

// Estimate returns the bytes workers concurrent trials of the given width need.
func (g *Governor) Estimate(qubits, workers int) (uint64, bool) {
	if qubits < 0 || qubits > MaxQubits || workers < 0 {
		return 0, false
	}

	hi, perTrial := bits.Mul64(uint64(1)<<qubits, bytesPerState)
	if hi != 0 {
		return 0, false
	}

	hi, total := bits.Mul64(perTrial, uint64(workers))
	if hi != 0 {
		return 0, false
	}

	return total, true
}

/*
Fit returns how many of the requested workers can hold a trial of the given
width at once, never more than workers and never less than one.
ErrResourceExhausted is returned only when a single trial exceeds the ceiling
or the address space.
*/
func (g *Governor) Fit(qubits, workers int) (int, error) {
	workers = max(workers, 1)
	perTrial, ok := g.Estimate(qubits, 1)

	g.mu.Lock()
	defer g.mu.Unlock()

	if !ok {
		g.rejected++
		return 0, exhausted("2^%d states overflow the address space", qubits)
	}

	if g.maxBytes == 0 {
		g.admitted++
		return workers, nil
	}

	if perTrial > g.maxBytes {
		g.rejected++
		return 0, exhausted("%d qubits need %d bytes per trial, limit is %d", qubits, perTrial, g.maxBytes)
	}

	fit := workers
	if room := g.maxBytes / perTrial; room < uint64(workers) {
		fit = int(room)
		g.shrunk++
	}

	g.admitted++
	return fit, nil
}

// Counts returns how many points were admitted, admitted on a smaller pool, and refused.
func (g *Governor) Counts() (admitted, shrunk, rejected uint64) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.admitted, g.shrunk, g.rejected
}

// Limit returns the ceiling in bytes, zero meaning none.
func (g *Governor) Limit() uint64 {
	return g.maxBytes
}

// Usage returns the heap currently in use and the memory obtained from the OS.
func (g *Governor) Usage() (alloc, sys uint64) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	return memStats.Alloc, memStats.Sys
}
