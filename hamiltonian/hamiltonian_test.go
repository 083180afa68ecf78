package hamiltonian

import (
	"math"
	"testing"
)

func TestDenseSingleZ(t *testing.T) {
	h, err := FromTerms(1, []Term{{Weight: 1, Ops: map[int]Pauli{0: PauliZ}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d := h.Dense()
	if real(d[0][0]) != 1 || real(d[1][1]) != -1 {
		t.Errorf("expected diag(1,-1), got %v", d)
	}
}

func TestDenseTwoQubitZZ(t *testing.T) {
	h, err := FromTerms(2, []Term{{Weight: 1, Ops: map[int]Pauli{0: PauliZ, 1: PauliZ}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d := h.Dense()
	want := []float64{1, -1, -1, 1}
	for i, w := range want {
		if real(d[i][i]) != w {
			t.Errorf("diag[%d] = %v, want %v", i, d[i][i], w)
		}
	}
}

func TestDenseAsymmetricZOnQubitZero(t *testing.T) {
	// Z on qubit 0 alone, n=2: under the qubit-0-is-LSB convention this
	// must flip sign whenever bit 0 of the basis index is set, i.e.
	// diag(1,-1,1,-1), not diag(1,1,-1,-1) (which would be Z on qubit 1).
	h, err := FromTerms(2, []Term{{Weight: 1, Ops: map[int]Pauli{0: PauliZ}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d := h.Dense()
	want := []float64{1, -1, 1, -1}
	for i, w := range want {
		if real(d[i][i]) != w {
			t.Errorf("diag[%d] = %v, want %v", i, d[i][i], w)
		}
	}
}

func TestDenseAsymmetricXZMixedTerm(t *testing.T) {
	// X on qubit 0, Z on qubit 1: basis order is |q1 q0>, so this is
	// kron(Z, X). Check against the hand-computed 4x4 matrix directly
	// rather than just its diagonal, since X has off-diagonal entries.
	h, err := FromTerms(2, []Term{{Weight: 1, Ops: map[int]Pauli{0: PauliX, 1: PauliZ}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d := h.Dense()
	want := [][]complex128{
		{0, 1, 0, 0},
		{1, 0, 0, 0},
		{0, 0, 0, -1},
		{0, 0, -1, 0},
	}
	for r := range want {
		for c := range want[r] {
			if d[r][c] != want[r][c] {
				t.Errorf("d[%d][%d] = %v, want %v", r, c, d[r][c], want[r][c])
			}
		}
	}
}

func TestFromTermsRejectsOutOfRangeQubit(t *testing.T) {
	_, err := FromTerms(1, []Term{{Weight: 1, Ops: map[int]Pauli{3: PauliX}}})
	if err == nil {
		t.Fatal("expected error for out-of-range qubit")
	}
}

func TestExpectationDenseMatchesDiagZ(t *testing.T) {
	h, _ := FromTerms(1, []Term{{Weight: 1, Ops: map[int]Pauli{0: PauliZ}}})
	rho := [][]complex128{{1, 0}, {0, 0}}
	got := ExpectationDense(h.Dense(), rho)
	if math.Abs(real(got)-1) > 1e-12 {
		t.Errorf("expected 1, got %v", got)
	}
}
