// Package mask decomposes the flat index space of a packed density matrix
// into qubit-object and control bit-fields, and maps (row, col) pairs onto
// the linear offset of the lower-triangular packed buffer.
//
// Every bit mask here operates on the "full" basis index (0..d-1), where d
// is the Hilbert space dimension 2^n. A gate acting on one or two object
// qubits partitions that index space into a "base" (the bits the gate
// doesn't touch) and the object bit(s) the gate does touch; Expand turns a
// base index back into a full index with the object bit(s) cleared.
package mask

// Single holds the precomputed masks for a one-qubit gate.
type Single struct {
	ObjMask  int // 1 << obj
	LowMask  int // bits below the object qubit
	HighMask int // bits at or above the object qubit's neighbor, pre-shift
	CtrlMask int // OR of 1<<c for every control qubit
}

// SingleQubitGateMask precomputes the masks needed to apply a gate on
// object qubit obj, controlled on ctrls.
func SingleQubitGateMask(obj int, ctrls []int) Single {
	objMask := 1 << obj
	s := Single{
		ObjMask:  objMask,
		LowMask:  objMask - 1,
		HighMask: ^(objMask - 1),
		CtrlMask: ctrlMask(ctrls),
	}
	return s
}

// Expand maps a base index k in [0, d/2) to the full index with the object
// bit cleared, by inserting a 0 bit at the object qubit's position.
func (s Single) Expand(k int) int {
	return (k & s.LowMask) | ((k & s.HighMask) << 1)
}

// Rows returns the two full row (or column) indices {r0, r1} for a base
// index k: r0 has the object bit cleared, r1 has it set.
func (s Single) Rows(k int) (r0, r1 int) {
	r0 = s.Expand(k)
	r1 = r0 | s.ObjMask
	return
}

// Satisfies reports whether the control condition holds for a full index
// idx: every control qubit must be set.
func (s Single) Satisfies(idx int) bool {
	return idx&s.CtrlMask == s.CtrlMask
}

// Double holds the precomputed masks for a two-qubit gate on objects
// obj0 < obj1.
type Double struct {
	Obj0Mask int
	Obj1Mask int
	LowMask  int // bits below obj0
	MidMask  int // bits between obj0 and obj1, pre-shift
	HighMask int // bits at or above obj1's neighbor, pre-shift
	CtrlMask int
}

// DoubleQubitGateMask precomputes the masks needed to apply a gate on
// object qubits obj0 < obj1, controlled on ctrls.
func DoubleQubitGateMask(obj0, obj1 int, ctrls []int) Double {
	if obj0 > obj1 {
		obj0, obj1 = obj1, obj0
	}
	obj0Mask := 1 << obj0
	obj1Mask := 1 << obj1
	lowMask := obj0Mask - 1
	highStart := 1 << (obj1 - 1) // first base-index bit that lands above obj1
	midMask := (highStart - 1) &^ lowMask
	highMask := ^(highStart - 1)
	return Double{
		Obj0Mask: obj0Mask,
		Obj1Mask: obj1Mask,
		LowMask:  lowMask,
		MidMask:  midMask,
		HighMask: highMask,
		CtrlMask: ctrlMask(ctrls),
	}
}

// Expand maps a base index k in [0, d/4) to the full index with both
// object bits cleared.
func (d Double) Expand(k int) int {
	return (k & d.LowMask) | ((k & d.MidMask) << 1) | ((k & d.HighMask) << 2)
}

// Rows returns the four full indices for a base index k, ordered
// [r00, r01, r10, r11] where the second digit is the obj0 bit and the
// first digit is the obj1 bit (obj1 is the more significant of the two).
func (d Double) Rows(k int) (r00, r01, r10, r11 int) {
	r00 = d.Expand(k)
	r01 = r00 | d.Obj0Mask
	r10 = r00 | d.Obj1Mask
	r11 = r01 | d.Obj1Mask
	return
}

// Satisfies reports whether the control condition holds for a full index.
func (d Double) Satisfies(idx int) bool {
	return idx&d.CtrlMask == d.CtrlMask
}

func ctrlMask(ctrls []int) int {
	m := 0
	for _, c := range ctrls {
		m |= 1 << c
	}
	return m
}

// IdxMap returns the linear offset into a packed lower-triangular buffer
// for (r, c) with r >= c. Callers must never pass r < c.
func IdxMap(r, c int) int {
	return r*(r+1)/2 + c
}

// PackedLen returns the number of elements in a packed lower-triangular
// buffer for a d x d Hermitian matrix.
func PackedLen(d int) int {
	return d * (d + 1) / 2
}
