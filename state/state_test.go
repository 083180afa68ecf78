package state

import (
	"math"
	"testing"

	"qdensity/gate"
	"qdensity/hamiltonian"
)

func TestNewIsZeroState(t *testing.T) {
	s := New(1, 42)
	if real(s.Trace()) < 0.999 {
		t.Errorf("expected trace 1, got %v", s.Trace())
	}
}

func TestApplyCircuitBellState(t *testing.T) {
	s := New(2, 1)
	circ := gate.Circuit{NumQubits: 2, Gates: []gate.Record{
		{ID: gate.H, Objs: []int{0}},
		{ID: gate.CNOT, Objs: []int{1}, Ctrls: []int{0}},
	}}
	if _, err := s.ApplyCircuit(circ, gate.NewBinding(nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	qs := s.GetQS()
	if real(qs[0][0]) < 0.49 || real(qs[3][3]) < 0.49 {
		t.Errorf("expected Bell-state diagonal weight on 0,0 and 3,3, got %v", qs)
	}
}

func TestApplyCircuitCollectsMeasurementOutcomes(t *testing.T) {
	s := New(1, 7)
	circ := gate.Circuit{NumQubits: 1, Gates: []gate.Record{
		{ID: gate.X, Objs: []int{0}},
		{ID: gate.Measure, Objs: []int{0}, Name: "m0"},
	}}
	outcomes, err := s.ApplyCircuit(circ, gate.NewBinding(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcomes["m0"] != 1 {
		t.Errorf("expected deterministic outcome 1 after X, got %d", outcomes["m0"])
	}
}

func TestCopyIsIndependent(t *testing.T) {
	s := New(1, 3)
	cp := s.Copy()
	cp.ApplyGate(gate.Record{ID: gate.X, Objs: []int{0}}, gate.NewBinding(nil), false)
	qs := s.GetQS()
	if real(qs[0][0]) < 0.99 {
		t.Errorf("original mutated through copy: %v", qs)
	}
}

func TestGetExpectationRejectsDimensionMismatch(t *testing.T) {
	s := New(1, 0)
	h, _ := hamiltonian.FromTerms(2, []hamiltonian.Term{{Weight: 1, Ops: map[int]hamiltonian.Pauli{0: hamiltonian.PauliZ}}})
	if _, err := s.GetExpectation(h); err == nil {
		t.Error("expected error for qubit-count mismatch")
	}
}

func TestApplyMeasureTwiceStable(t *testing.T) {
	s := New(1, 99)
	s.ApplyGate(gate.Record{ID: gate.H, Objs: []int{0}}, gate.NewBinding(nil), false)
	b1 := s.ApplyMeasure(0)
	b2 := s.ApplyMeasure(0)
	if b1 != b2 {
		t.Errorf("second measurement outcome %d differs from first %d", b2, b1)
	}
}

func TestPurityDecreasesUnderDamping(t *testing.T) {
	s := New(1, 0)
	s.ApplyGate(gate.Record{ID: gate.H, Objs: []int{0}}, gate.NewBinding(nil), false)
	before := s.Purity()
	s.ApplyGate(gate.Record{ID: gate.ChanAD, Objs: []int{0}, Channel: &gate.Channel{Gamma: 0.4}}, gate.NewBinding(nil), false)
	after := s.Purity()
	if after >= before {
		t.Errorf("expected purity to decrease under damping, before=%v after=%v", before, after)
	}
	if math.IsNaN(after) {
		t.Error("purity is NaN")
	}
}
