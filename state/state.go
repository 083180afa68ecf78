// Package state owns the density matrix, its RNG, and the dispatch entry
// points a caller drives a circuit through. A State is not safe for
// concurrent mutation; the sampling engine gives every shot its own
// State, and the gradient engine works on its own density buffers rather
// than on a State.
package state

import (
	"fmt"
	"math/rand"

	"qdensity/dispatch"
	"qdensity/gate"
	"qdensity/hamiltonian"
	"qdensity/kernel"
	"qdensity/qerr"
)

// State owns a density matrix buffer, an RNG seeded deterministically from
// its construction seed, and qubit-count metadata.
type State struct {
	N    int
	seed uint64
	rho  *kernel.Density
	rng  *rand.Rand
}

// New constructs a State for n qubits, initialized to |0...0><0...0> and
// seeded with seed.
func New(n int, seed uint64) *State {
	return &State{
		N:    n,
		seed: seed,
		rho:  kernel.NewDensity(n),
		rng:  rand.New(rand.NewSource(int64(seed))),
	}
}

// FromDensity builds a State that owns rho directly (no further copy),
// seeded with seed. Used by the sampling engine to spin up one fresh
// per-shot State from a CopyQS'd buffer without materializing it through
// SetQS's dense round trip.
func FromDensity(n int, seed uint64, rho *kernel.Density) *State {
	return &State{N: n, seed: seed, rho: rho, rng: rand.New(rand.NewSource(int64(seed)))}
}

// Reset reinitializes the state to |0...0><0...0>, leaving the RNG stream
// untouched (measurement draws continue rather than repeating).
func (s *State) Reset() {
	s.rho.Reset()
}

// Display renders the top-left limit x limit block of rho; the real
// rendering lives in package display, which depends on this package, not
// the reverse, so Display here just hands back the raw sub-block.
func (s *State) Display(limit int) [][]complex128 {
	if limit > s.rho.D {
		limit = s.rho.D
	}
	out := make([][]complex128, limit)
	for r := 0; r < limit; r++ {
		out[r] = make([]complex128, limit)
		for c := 0; c < limit; c++ {
			out[r][c] = s.rho.Get(r, c)
		}
	}
	return out
}

// GetQS unpacks the full density matrix.
func (s *State) GetQS() [][]complex128 {
	return s.rho.Dense()
}

// SetQS overwrites the density matrix from a dense d x d matrix. The
// caller is responsible for it being a valid density matrix; this is not
// re-validated, per the contract that the engine trusts its inputs
// between operations.
func (s *State) SetQS(m [][]complex128) error {
	d := 1 << s.N
	if len(m) != d {
		return fmt.Errorf("%w: matrix has dimension %d, state has %d qubits (d=%d)", qerr.ErrInvalidArgument, len(m), s.N, d)
	}
	s.rho = kernel.DensityFromDense(m)
	return nil
}

// CopyQS returns a deep copy of the density matrix buffer, independent of
// this state's.
func (s *State) CopyQS() *kernel.Density {
	return s.rho.Clone()
}

// Density exposes the underlying packed buffer for callers that need
// direct kernel access without copying.
func (s *State) Density() *kernel.Density {
	return s.rho
}

// Copy deep-copies the state: a fresh rho buffer and an RNG re-seeded from
// the stored seed, per the construction-seed-determinism contract.
func (s *State) Copy() *State {
	return &State{
		N:    s.N,
		seed: s.seed,
		rho:  s.rho.Clone(),
		rng:  rand.New(rand.NewSource(int64(s.seed))),
	}
}

// ApplyGate dispatches a single gate record against rho, resolving its
// angle against pr. diff requests the derivative-writing kernel variant.
func (s *State) ApplyGate(g gate.Record, pr gate.Binding, diff bool) error {
	return dispatch.Apply(s.rho, g, pr, diff)
}

// ApplyMeasure projects qubit obj onto a randomly drawn outcome and
// renormalizes, returning the outcome bit.
func (s *State) ApplyMeasure(obj int) int {
	p1 := kernel.MeasureMarginal(s.rho, obj)
	u := s.rng.Float64()
	b := 0
	if u < p1 {
		b = 1
	}
	prob := 1 - p1
	if b == 1 {
		prob = p1
	}
	kernel.ProjectMeasure(s.rho, obj, b, prob)
	return b
}

// ApplyCircuit applies every gate in circ in order, collecting
// measurement outcomes into a name -> bit map keyed by each Measure
// record's Name.
func (s *State) ApplyCircuit(circ gate.Circuit, pr gate.Binding) (map[string]int, error) {
	outcomes := make(map[string]int)
	for i, g := range circ.Gates {
		if g.ID == gate.Measure {
			outcomes[g.Name] = s.ApplyMeasure(g.Objs[0])
			continue
		}
		if err := s.ApplyGate(g, pr, false); err != nil {
			return nil, fmt.Errorf("gate %d: %w", i, err)
		}
	}
	return outcomes, nil
}

// ApplyHamiltonian left-multiplies rho by h, returning the (generally
// non-Hermitian) result as a kernel.General rather than mutating rho in
// place, since the product of two Hermitian matrices need not be
// Hermitian and so cannot live in the packed buffer.
func (s *State) ApplyHamiltonian(h hamiltonian.Hamiltonian) (*kernel.General, error) {
	if h.NumQubits != s.N {
		return nil, fmt.Errorf("%w: hamiltonian has %d qubits, state has %d", qerr.ErrInvalidArgument, h.NumQubits, s.N)
	}
	return kernel.ApplyTerms(s.rho, h), nil
}

// GetExpectation returns Tr(H * rho).
func (s *State) GetExpectation(h hamiltonian.Hamiltonian) (complex128, error) {
	if h.NumQubits != s.N {
		return 0, fmt.Errorf("%w: hamiltonian has %d qubits, state has %d", qerr.ErrInvalidArgument, h.NumQubits, s.N)
	}
	return kernel.GetExpectation(s.rho, h), nil
}

// Purity returns Tr(rho^2).
func (s *State) Purity() float64 { return s.rho.Purity() }

// Trace returns Tr(rho).
func (s *State) Trace() complex128 { return s.rho.Trace() }
