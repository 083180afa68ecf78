package kernel

import (
	"qdensity/hamiltonian"
	"qdensity/mask"
)

// General is a full (unpacked) d x d complex matrix, row-major. Used for
// intermediates like H*rho that are not generally Hermitian and therefore
// cannot live in a Density's packed lower-triangular storage.
type General struct {
	D   int
	Buf []complex128
}

// NewGeneral allocates a zeroed d x d General matrix.
func NewGeneral(d int) *General {
	return &General{D: d, Buf: make([]complex128, d*d)}
}

// Get returns g[r,c].
func (g *General) Get(r, c int) complex128 { return g.Buf[r*g.D+c] }

// Set writes v to g[r,c].
func (g *General) Set(r, c int, v complex128) { g.Buf[r*g.D+c] = v }

// ApplyTerms computes H*rho as a General matrix, H materialized densely
// from its Pauli-string term list. The product of a Hermitian H and a
// Hermitian rho is generally not itself Hermitian, so the result cannot be
// written back into rho's packed storage in place; callers that need an
// in-place-feeling left action should instead track the General result
// alongside rho.
func ApplyTerms(rho *Density, h hamiltonian.Hamiltonian) *General {
	H := h.Dense()
	d := rho.D
	out := NewGeneral(d)
	for r := 0; r < d; r++ {
		for c := 0; c < d; c++ {
			var sum complex128
			for k := 0; k < d; k++ {
				sum += H[r][k] * rho.Get(k, c)
			}
			out.Set(r, c, sum)
		}
	}
	return out
}

// GetExpectation returns Tr(H * rho) as a complex scalar; the imaginary
// part should be approximately zero for Hermitian H.
func GetExpectation(rho *Density, h hamiltonian.Hamiltonian) complex128 {
	H := h.Dense()
	var sum complex128
	for r := 0; r < rho.D; r++ {
		for c := 0; c < rho.D; c++ {
			sum += H[r][c] * rho.Get(c, r)
		}
	}
	return sum
}

// DensityFromDense packs a dense Hermitian matrix into a new Density,
// taking only the lower-triangular half (the caller is responsible for
// the matrix actually being Hermitian; this is how a materialized
// Hamiltonian becomes the initial rho_H sidecar in the gradient engine).
func DensityFromDense(m [][]complex128) *Density {
	d := len(m)
	rho := &Density{N: log2(d), D: d, Buf: make([]complex128, mask.PackedLen(d))}
	for r := 0; r < d; r++ {
		for c := 0; c <= r; c++ {
			rho.Buf[mask.IdxMap(r, c)] = m[r][c]
		}
	}
	return rho
}

func log2(d int) int {
	n := 0
	for d > 1 {
		d >>= 1
		n++
	}
	return n
}
