// Package gate is the in-process data model the dispatcher and gradient
// engine consume: the tagged-variant gate record, the circuit it sits in,
// and the parameter binding it is evaluated against. Circuit *construction*
// (parsing, symbolic resolver arithmetic, Hamiltonian term construction) is
// out of scope for this module; this package only carries the resulting
// records.
package gate

import (
	"fmt"

	"qdensity/qerr"
)

// ID is a closed enumeration of gate identifiers. The dispatcher switches
// over every identifier in this set except Measure, which callers apply
// through state.State.ApplyMeasure.
type ID int

const (
	I ID = iota
	X
	Y
	Z
	H
	S
	Sdag
	T
	Tdag
	SWAP
	ISWAP
	RX
	RY
	RZ
	Rxx
	Ryy
	Rzz
	PS
	CNOT
	Measure
	ChanAD     // AmplitudeDamping
	ChanPD     // PhaseDamping
	ChanPauli  // Pauli(px,py,pz)
	ChanHermAD // adjoint of AmplitudeDamping, used walking H backward
	ChanKraus  // explicit Kraus operator set
)

func (id ID) String() string {
	switch id {
	case I:
		return "I"
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	case H:
		return "H"
	case S:
		return "S"
	case Sdag:
		return "Sdag"
	case T:
		return "T"
	case Tdag:
		return "Tdag"
	case SWAP:
		return "SWAP"
	case ISWAP:
		return "ISWAP"
	case RX:
		return "RX"
	case RY:
		return "RY"
	case RZ:
		return "RZ"
	case Rxx:
		return "Rxx"
	case Ryy:
		return "Ryy"
	case Rzz:
		return "Rzz"
	case PS:
		return "PS"
	case CNOT:
		return "CNOT"
	case Measure:
		return "Measure"
	case ChanAD:
		return "cAD"
	case ChanPD:
		return "cPD"
	case ChanPauli:
		return "cPL"
	case ChanHermAD:
		return "hcAD"
	case ChanKraus:
		return "Kraus"
	default:
		return fmt.Sprintf("ID(%d)", int(id))
	}
}

// IsChannel reports whether id is one of the channel (non-unitary) kinds.
func (id ID) IsChannel() bool {
	switch id {
	case ChanAD, ChanPD, ChanPauli, ChanHermAD, ChanKraus:
		return true
	}
	return false
}

// IsParameterized reports whether id carries a rotation angle.
func (id ID) IsParameterized() bool {
	switch id {
	case RX, RY, RZ, Rxx, Ryy, Rzz, PS:
		return true
	}
	return false
}

// Matrix is a square complex matrix, row-major, used for explicit Kraus
// operators sized to the gate's object-qubit subspace (2x2 for one object
// qubit, 4x4 for two).
type Matrix [][]complex128

// Dagger returns the conjugate transpose of m.
func (m Matrix) Dagger() Matrix {
	n := len(m)
	out := make(Matrix, n)
	for i := range out {
		out[i] = make([]complex128, n)
		for j := 0; j < n; j++ {
			out[i][j] = complexConj(m[j][i])
		}
	}
	return out
}

func complexConj(c complex128) complex128 {
	return complex(real(c), -imag(c))
}

// Channel carries the payload for a non-unitary gate record.
type Channel struct {
	Gamma      float64  // AmplitudeDamping / PhaseDamping / HermitianAmplitudeDamping
	Px, Py, Pz float64  // Pauli channel probabilities
	Kraus      []Matrix // explicit Kraus operator set, for ChanKraus
}

// Record is a tagged-variant gate: the enumeration plus only the fields
// that variant uses.
type Record struct {
	ID      ID
	Objs    []int
	Ctrls   []int
	Angle   float64 // concrete angle; ignored if Expr is non-nil
	Expr    *Expr   // symbolic parameter expression; nil means use Angle
	Channel *Channel
	Name    string // measurement outcome key, for ID == Measure
	Dagger  bool   // true if this record is the adjoint of another
}

// Validate checks the QubitConflict invariant: no qubit may appear twice,
// and no control may overlap an object qubit.
func (r Record) Validate() error {
	seen := make(map[int]bool, len(r.Objs)+len(r.Ctrls))
	for _, q := range r.Objs {
		if seen[q] {
			return fmt.Errorf("%w: qubit %d", qerr.ErrQubitConflict, q)
		}
		seen[q] = true
	}
	for _, q := range r.Ctrls {
		if seen[q] {
			return fmt.Errorf("%w: qubit %d", qerr.ErrQubitConflict, q)
		}
		seen[q] = true
	}
	return nil
}

// EffectiveAngle resolves the gate's angle against a binding: the concrete
// Angle if Expr is nil, otherwise the expression evaluated against the
// binding.
func (r Record) EffectiveAngle(b Binding) (float64, error) {
	if r.Expr == nil {
		return r.Angle, nil
	}
	if len(b.values) == 0 && len(r.Expr.Coeffs) > 0 {
		return 0, fmt.Errorf("%w: empty binding for parameterized gate", qerr.ErrInvalidArgument)
	}
	return r.Expr.Combination(b).Eval(b), nil
}

// Dagger returns the Hermitian-adjoint record of r: rotation angles are
// negated, S/T swap with their daggers, the amplitude-damping channel
// swaps with its Hermitian counterpart, and explicit Kraus sets are
// transposed (each K_i replaced by K_i†). Self-adjoint gates (X, Y, Z, H,
// SWAP, CNOT, I, Measure, PhaseDamping, Pauli) are returned unchanged
// except for the Dagger bookkeeping flag. ISWAP is not self-adjoint, but
// there is no identifier for its adjoint, so it is also returned with
// only the flag changed.
func Dagger(r Record) Record {
	d := r
	d.Dagger = !r.Dagger
	switch r.ID {
	case S:
		d.ID = Sdag
	case Sdag:
		d.ID = S
	case T:
		d.ID = Tdag
	case Tdag:
		d.ID = T
	case RX, RY, RZ, Rxx, Ryy, Rzz, PS:
		if r.Expr != nil {
			e := r.Expr.Negate()
			d.Expr = &e
		} else {
			d.Angle = -r.Angle
		}
	case ChanAD:
		d.ID = ChanHermAD
	case ChanHermAD:
		d.ID = ChanAD
	case ChanKraus:
		ks := make([]Matrix, len(r.Channel.Kraus))
		for i, k := range r.Channel.Kraus {
			ks[i] = k.Dagger()
		}
		d.Channel = &Channel{Kraus: ks}
	}
	return d
}

// Circuit is a finite ordered sequence of gate records.
type Circuit struct {
	NumQubits int
	Gates     []Record
}

// Validate checks every gate record in the circuit.
func (c Circuit) Validate() error {
	for i, g := range c.Gates {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("gate %d (%s): %w", i, g.ID, err)
		}
	}
	return nil
}

// Adjoint builds the Hermitian adjoint circuit: the gate sequence reversed,
// with each gate daggered, per the glossary definition. The source
// circuit is unchanged.
func (c Circuit) Adjoint() Circuit {
	out := Circuit{NumQubits: c.NumQubits, Gates: make([]Record, len(c.Gates))}
	n := len(c.Gates)
	for i, g := range c.Gates {
		out.Gates[n-1-i] = Dagger(g)
	}
	return out
}
