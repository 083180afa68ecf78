// Package hamiltonian materializes a weighted Pauli-string term list into
// the dense matrix form the gradient engine treats as a "ρ_H" sidecar.
package hamiltonian

import (
	"fmt"

	"qdensity/qerr"
)

// Pauli is a single-qubit Pauli operator identifier, used as one letter of
// a Pauli string.
type Pauli int

const (
	PauliI Pauli = iota
	PauliX
	PauliY
	PauliZ
)

// Term is one weighted Pauli string: Weight * P_{n-1} ⊗ ... ⊗ P_1 ⊗ P_0,
// ops[q] giving the single-qubit Pauli acting on qubit q. Any qubit absent
// from ops is implicitly PauliI.
type Term struct {
	Weight complex128
	Ops    map[int]Pauli
}

// Hamiltonian is a sum of weighted Pauli-string terms over n qubits.
type Hamiltonian struct {
	NumQubits int
	Terms     []Term
}

// FromTerms builds a Hamiltonian from a term list, validating that no term
// references a qubit index outside [0, n).
func FromTerms(n int, terms []Term) (Hamiltonian, error) {
	for ti, t := range terms {
		for q := range t.Ops {
			if q < 0 || q >= n {
				return Hamiltonian{}, fmt.Errorf("%w: term %d references qubit %d outside [0,%d)", qerr.ErrInvalidArgument, ti, q, n)
			}
		}
	}
	return Hamiltonian{NumQubits: n, Terms: terms}, nil
}

var pauliMatrix = map[Pauli][2][2]complex128{
	PauliI: {{1, 0}, {0, 1}},
	PauliX: {{0, 1}, {1, 0}},
	PauliY: {{0, -1i}, {1i, 0}},
	PauliZ: {{1, 0}, {0, -1}},
}

// Dense materializes h into a d x d dense matrix, d = 2^n, via the direct
// sum of weighted Kronecker products of each term's per-qubit Pauli
// matrices. Qubit 0 is the least-significant bit of the basis index,
// matching the convention mask.Single uses.
func (h Hamiltonian) Dense() [][]complex128 {
	d := 1 << h.NumQubits
	out := make([][]complex128, d)
	for i := range out {
		out[i] = make([]complex128, d)
	}
	for _, t := range h.Terms {
		addTerm(out, h.NumQubits, t)
	}
	return out
}

// addTerm accumulates weight * kron(P_{n-1}, ..., P_0) into out, built up
// qubit by qubit via a running Kronecker product rather than materializing
// each single-qubit factor's full-size embedding first. The loop runs from
// qubit n-1 down to qubit 0 so qubit n-1 ends up the outermost (leftmost)
// factor and qubit 0 the innermost, i.e. the least-significant bit of the
// basis index.
func addTerm(out [][]complex128, n int, t Term) {
	d := 1 << n
	cur := [][]complex128{{t.Weight}}
	for q := n - 1; q >= 0; q-- {
		op := t.Ops[q]
		m := pauliMatrix[op]
		cur = kron(cur, [][]complex128{{m[0][0], m[0][1]}, {m[1][0], m[1][1]}})
	}
	if len(cur) != d {
		panic("hamiltonian: internal dimension mismatch building term")
	}
	for r := 0; r < d; r++ {
		for c := 0; c < d; c++ {
			out[r][c] += cur[r][c]
		}
	}
}

func kron(a, b [][]complex128) [][]complex128 {
	ar, ac := len(a), len(a[0])
	br, bc := len(b), len(b[0])
	out := make([][]complex128, ar*br)
	for i := range out {
		out[i] = make([]complex128, ac*bc)
	}
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			if a[i][j] == 0 {
				continue
			}
			for p := 0; p < br; p++ {
				for q := 0; q < bc; q++ {
					out[i*br+p][j*bc+q] = a[i][j] * b[p][q]
				}
			}
		}
	}
	return out
}

// ExpectationDense computes Tr(H * rho) from two dense d x d matrices, the
// reference (unpacked) computation the packed-triangle kernel's result is
// checked against in tests.
func ExpectationDense(h, rho [][]complex128) complex128 {
	d := len(h)
	var sum complex128
	for r := 0; r < d; r++ {
		for c := 0; c < d; c++ {
			sum += h[r][c] * rho[c][r]
		}
	}
	return sum
}
