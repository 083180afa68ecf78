// Package kernel holds the dense policy kernels: per-gate-family in-place
// transformations of a packed density matrix, plus channels, the
// measurement projector, and the Hamiltonian-action/expectation helpers.
// Every kernel here is a pure function over a *Density buffer; nothing in
// this package calls upward into state, gradient, or dispatch.
package kernel

import (
	"fmt"
	"math"

	"qdensity/internal/parallel"
	"qdensity/mask"
	"qdensity/qerr"
)

// DimTh is the dimension below which a kernel's outer base-index loop runs
// serially rather than through the worker pool, avoiding fork overhead on
// small problems.
var DimTh = 1 << 10

// Density is an n-qubit density matrix stored packed lower-triangular,
// row-major: Buf[IdxMap(r,c)] for r >= c. Reads/writes for r < c go
// through Get/Set, which transparently conjugate.
type Density struct {
	N   int
	D   int
	Buf []complex128
}

// NewDensity allocates a Density for n qubits, initialized to the
// all-zero basis state |0...0><0...0|.
func NewDensity(n int) *Density {
	d := 1 << n
	rho := &Density{N: n, D: d, Buf: make([]complex128, mask.PackedLen(d))}
	rho.Buf[mask.IdxMap(0, 0)] = 1
	return rho
}

// Get returns rho[r,c], conjugating for r < c.
func (rho *Density) Get(r, c int) complex128 {
	if r >= c {
		return rho.Buf[mask.IdxMap(r, c)]
	}
	return complexConj(rho.Buf[mask.IdxMap(c, r)])
}

// Set writes v to rho[r,c], storing the conjugate for r < c.
func (rho *Density) Set(r, c int, v complex128) {
	if r >= c {
		rho.Buf[mask.IdxMap(r, c)] = v
	} else {
		rho.Buf[mask.IdxMap(c, r)] = complexConj(v)
	}
}

// Clone deep-copies rho.
func (rho *Density) Clone() *Density {
	out := &Density{N: rho.N, D: rho.D, Buf: make([]complex128, len(rho.Buf))}
	copy(out.Buf, rho.Buf)
	return out
}

// Reset reinitializes rho in place to |0...0><0...0>.
func (rho *Density) Reset() {
	for i := range rho.Buf {
		rho.Buf[i] = 0
	}
	rho.Buf[mask.IdxMap(0, 0)] = 1
}

// Trace returns Tr(rho), the sum of the diagonal.
func (rho *Density) Trace() complex128 {
	var sum complex128
	for r := 0; r < rho.D; r++ {
		sum += rho.Buf[mask.IdxMap(r, r)]
	}
	return sum
}

// Purity returns Tr(rho^2) = sum_{r,c} |rho[r,c]|^2, computed directly from
// the packed half without materializing the dense matrix.
func (rho *Density) Purity() float64 {
	var sum float64
	for r := 0; r < rho.D; r++ {
		for c := 0; c <= r; c++ {
			v := rho.Buf[mask.IdxMap(r, c)]
			m := real(v)*real(v) + imag(v)*imag(v)
			if r == c {
				sum += m
			} else {
				sum += 2 * m
			}
		}
	}
	return sum
}

// Dense unpacks rho into a full d x d matrix, for display and reference
// computations in tests.
func (rho *Density) Dense() [][]complex128 {
	out := make([][]complex128, rho.D)
	for r := range out {
		out[r] = make([]complex128, rho.D)
		for c := 0; c < rho.D; c++ {
			out[r][c] = rho.Get(r, c)
		}
	}
	return out
}

// CheckHermitian returns the maximum |rho[r,c] - conj(rho[c,r])| over all
// r,c, a cheap sanity probe used by tests and by callers that want to
// verify the universal invariant without an eigensolver.
func (rho *Density) CheckHermitian() float64 {
	var worst float64
	for r := 0; r < rho.D; r++ {
		for c := 0; c < r; c++ {
			diff := rho.Get(r, c) - complexConj(rho.Get(c, r))
			m := math.Hypot(real(diff), imag(diff))
			if m > worst {
				worst = m
			}
		}
	}
	return worst
}

// ValidateDim checks that rho's dimension matches an expected qubit count,
// used by kernels that receive a Hamiltonian or Kraus set sized for a
// specific n.
func (rho *Density) ValidateDim(wantN int) error {
	if rho.N != wantN {
		return fmt.Errorf("%w: density has %d qubits, operator expects %d", qerr.ErrInvalidArgument, rho.N, wantN)
	}
	return nil
}

func complexConj(c complex128) complex128 {
	return complex(real(c), -imag(c))
}

// pool is the shared persistent worker pool every kernel's outer loop
// dispatches through above DimTh. One process-wide pool is enough: kernel
// calls are short-lived and never nest.
var pool = parallel.New(0)
