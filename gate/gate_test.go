package gate

import (
	"errors"
	"testing"

	"qdensity/qerr"
)

func TestRecordValidateConflict(t *testing.T) {
	r := Record{ID: X, Objs: []int{1}, Ctrls: []int{1}}
	if err := r.Validate(); !errors.Is(err, qerr.ErrQubitConflict) {
		t.Fatalf("expected ErrQubitConflict, got %v", err)
	}
}

func TestRecordValidateOK(t *testing.T) {
	r := Record{ID: CNOT, Objs: []int{0}, Ctrls: []int{1}}
	if err := r.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDaggerSelfAdjoint(t *testing.T) {
	r := Record{ID: X, Objs: []int{0}}
	d := Dagger(r)
	if d.ID != X {
		t.Errorf("X should dagger to X, got %s", d.ID)
	}
	if !d.Dagger {
		t.Errorf("expected Dagger flag set")
	}
}

func TestDaggerSTSwap(t *testing.T) {
	if Dagger(Record{ID: S}).ID != Sdag {
		t.Errorf("S should dagger to Sdag")
	}
	if Dagger(Record{ID: Sdag}).ID != S {
		t.Errorf("Sdag should dagger to S")
	}
	if Dagger(Record{ID: T}).ID != Tdag {
		t.Errorf("T should dagger to Tdag")
	}
}

func TestDaggerRotationNegatesAngle(t *testing.T) {
	r := Record{ID: RX, Objs: []int{0}, Angle: 1.25}
	d := Dagger(r)
	if d.ID != RX {
		t.Errorf("RX should remain RX under dagger, got %s", d.ID)
	}
	if d.Angle != -1.25 {
		t.Errorf("expected angle negated, got %v", d.Angle)
	}
}

func TestDaggerRotationExprNegatesCoeffs(t *testing.T) {
	e := Expr{Offset: 0.5, Coeffs: map[string]float64{"theta": 2}}
	r := Record{ID: RZ, Objs: []int{0}, Expr: &e}
	d := Dagger(r)
	if d.Expr.Offset != -0.5 || d.Expr.Coeffs["theta"] != -2 {
		t.Errorf("expected negated expr, got %+v", d.Expr)
	}
}

func TestDaggerChannelSwap(t *testing.T) {
	r := Record{ID: ChanAD, Channel: &Channel{Gamma: 0.1}}
	if Dagger(r).ID != ChanHermAD {
		t.Errorf("ChanAD should dagger to ChanHermAD")
	}
}

func TestDaggerKrausTransposes(t *testing.T) {
	k := Matrix{{1, 2}, {3, 4}}
	r := Record{ID: ChanKraus, Channel: &Channel{Kraus: []Matrix{k}}}
	d := Dagger(r)
	got := d.Channel.Kraus[0]
	want := k.Dagger()
	for i := range want {
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Errorf("Kraus dagger mismatch at (%d,%d): got %v want %v", i, j, got[i][j], want[i][j])
			}
		}
	}
}

func TestCircuitAdjointReversesAndDaggers(t *testing.T) {
	c := Circuit{
		NumQubits: 2,
		Gates: []Record{
			{ID: H, Objs: []int{0}},
			{ID: S, Objs: []int{1}},
		},
	}
	a := c.Adjoint()
	if len(a.Gates) != 2 {
		t.Fatalf("expected 2 gates, got %d", len(a.Gates))
	}
	if a.Gates[0].ID != Sdag {
		t.Errorf("expected first adjoint gate Sdag, got %s", a.Gates[0].ID)
	}
	if a.Gates[1].ID != H {
		t.Errorf("expected second adjoint gate H, got %s", a.Gates[1].ID)
	}
	if len(c.Gates) != 2 || c.Gates[0].ID != H {
		t.Errorf("original circuit mutated")
	}
}

func TestEffectiveAngleConcrete(t *testing.T) {
	r := Record{ID: RY, Objs: []int{0}, Angle: 0.3}
	v, err := r.EffectiveAngle(NewBinding(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 0.3 {
		t.Errorf("expected 0.3, got %v", v)
	}
}

func TestEffectiveAngleExpr(t *testing.T) {
	e := Param("theta")
	r := Record{ID: RY, Objs: []int{0}, Expr: &e}
	b := NewBinding(map[string]float64{"theta": 1.57})
	v, err := r.EffectiveAngle(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 1.57 {
		t.Errorf("expected 1.57, got %v", v)
	}
}

func TestBindingWithValueImmutable(t *testing.T) {
	b0 := NewBinding(map[string]float64{"theta": 1.0})
	b1 := b0.WithValue("theta", 2.0)
	if b0.Value("theta") != 1.0 {
		t.Errorf("expected original binding unchanged, got %v", b0.Value("theta"))
	}
	if b1.Value("theta") != 2.0 {
		t.Errorf("expected new binding updated, got %v", b1.Value("theta"))
	}
}

func TestBindingGradNames(t *testing.T) {
	b := NewBinding(map[string]float64{"a": 1, "b": 2}).WithGrad("a")
	names := b.GradNames()
	if len(names) != 1 || names[0] != "a" {
		t.Errorf("expected [a], got %v", names)
	}
}
