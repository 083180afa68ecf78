package display

import (
	"strings"
	"testing"

	"qdensity/gate"
	"qdensity/state"
)

func TestDensityRendersAllCells(t *testing.T) {
	s := state.New(1, 1)
	block := s.Display(2)
	out := Density(block)
	if !strings.Contains(out, "Density matrix") {
		t.Errorf("expected title in output, got:\n%s", out)
	}
	if !strings.Contains(out, "r0") || !strings.Contains(out, "c1") {
		t.Errorf("expected row/column labels in output, got:\n%s", out)
	}
}

func TestDensityTruncatesToRequestedLimit(t *testing.T) {
	s := state.New(2, 1)
	block := s.Display(2)
	if len(block) != 2 {
		t.Fatalf("expected a 2x2 block, got %dx%d", len(block), len(block))
	}
	out := Density(block)
	if strings.Count(out, "c0") != 1 {
		t.Errorf("expected exactly one c0 column header, got output:\n%s", out)
	}
}

func TestCircuitRendersGatesAndControls(t *testing.T) {
	e := gate.Const(0.3)
	circ := gate.Circuit{NumQubits: 2, Gates: []gate.Record{
		{ID: gate.H, Objs: []int{0}},
		{ID: gate.RX, Objs: []int{1}, Ctrls: []int{0}, Expr: &e},
		{ID: gate.Measure, Objs: []int{1}, Name: "m1"},
	}}
	out := Circuit(circ)
	if !strings.Contains(out, "Circuit trace") {
		t.Errorf("expected title, got:\n%s", out)
	}
	if !strings.Contains(out, "q0") || !strings.Contains(out, "q1") {
		t.Errorf("expected qubit row labels, got:\n%s", out)
	}
	if !strings.Contains(out, "●") {
		t.Errorf("expected a control dot for the controlled RX, got:\n%s", out)
	}
}
