package kernel

import (
	"math"

	"qdensity/mask"
)

// block2 is a dense 2x2 complex block, indexed [row][col] over the two
// basis states of a single object qubit.
type block2 [2][2]complex128

func mul2(a, b block2) block2 {
	var out block2
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = a[i][0]*b[0][j] + a[i][1]*b[1][j]
		}
	}
	return out
}

func dagger2(a block2) block2 {
	return block2{
		{complexConj(a[0][0]), complexConj(a[1][0])},
		{complexConj(a[0][1]), complexConj(a[1][1])},
	}
}

// applyBlock1Q is the shared skeleton for every single-qubit-gate kernel.
// U is the gate's 2x2 unitary. If dU is non-nil, the kernel instead writes
// the derivative of rho with respect to the gate's angle: dU/dtheta * rho *
// U^dagger + U * rho * dU/dtheta^dagger, symmetrized, and zeroed outside
// the control mask (the derivative has no support where the gate did not
// act).
func applyBlock1Q(rho *Density, s mask.Single, U block2, dU *block2) {
	half := rho.D / 2
	body := func(kStart, kEnd int) {
		for k := kStart; k < kEnd; k++ {
			r0, r1 := s.Rows(k)
			rowSat := s.Satisfies(r0)
			for l := 0; l <= k; l++ {
				c0, c1 := s.Rows(l)
				colSat := s.Satisfies(c0)
				blk := block2{
					{rho.Get(r0, c0), rho.Get(r0, c1)},
					{rho.Get(r1, c0), rho.Get(r1, c1)},
				}

				var out block2
				if dU == nil {
					switch {
					case s.CtrlMask == 0 || (rowSat && colSat):
						out = mul2(mul2(U, blk), dagger2(U))
					case rowSat && !colSat:
						out = mul2(U, blk)
					case colSat && !rowSat:
						out = mul2(blk, dagger2(U))
					default:
						continue // neither satisfies: block unchanged
					}
				} else {
					if !(rowSat && colSat) {
						out = block2{}
					} else {
						left := mul2(mul2(*dU, blk), dagger2(U))
						right := mul2(mul2(U, blk), dagger2(*dU))
						out = block2{
							{left[0][0] + right[0][0], left[0][1] + right[0][1]},
							{left[1][0] + right[1][0], left[1][1] + right[1][1]},
						}
					}
				}

				rho.Set(r0, c0, out[0][0])
				rho.Set(r0, c1, out[0][1])
				rho.Set(r1, c0, out[1][0])
				rho.Set(r1, c1, out[1][1])
			}
		}
	}
	pool.For(half, DimTh, body)
}

// Gate matrices, conventions cos(theta/2)/sin(theta/2) for rotations.

func matX() block2 { return block2{{0, 1}, {1, 0}} }
func matY() block2 { return block2{{0, -1i}, {1i, 0}} }
func matZ() block2 { return block2{{1, 0}, {0, -1}} }
func matH() block2 {
	s := complex(1/math.Sqrt2, 0)
	return block2{{s, s}, {s, -s}}
}
func matS() block2    { return block2{{1, 0}, {0, 1i}} }
func matSdag() block2 { return block2{{1, 0}, {0, -1i}} }
func matT() block2 {
	return block2{{1, 0}, {0, complex(math.Cos(math.Pi/4), math.Sin(math.Pi/4))}}
}
func matTdag() block2 {
	return block2{{1, 0}, {0, complex(math.Cos(math.Pi/4), -math.Sin(math.Pi/4))}}
}

func matPS(theta float64) block2 {
	return block2{{1, 0}, {0, complex(math.Cos(theta), math.Sin(theta))}}
}
func matPSDiff(theta float64) block2 {
	// d/dtheta of diag(1, e^{i*theta}) is diag(0, i*e^{i*theta}).
	v := complex(math.Cos(theta), math.Sin(theta)) * 1i
	return block2{{0, 0}, {0, v}}
}

func matRX(theta float64) block2 {
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	return block2{{c, s}, {s, c}}
}
func matRXDiff(theta float64) block2 {
	c := complex(-0.5*math.Sin(theta/2), 0)
	s := complex(0, -0.5*math.Cos(theta/2))
	return block2{{c, s}, {s, c}}
}

func matRY(theta float64) block2 {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return block2{{c, -s}, {s, c}}
}
func matRYDiff(theta float64) block2 {
	c := complex(-0.5*math.Sin(theta/2), 0)
	s := complex(0.5*math.Cos(theta/2), 0)
	return block2{{c, -s}, {s, c}}
}

func matRZ(theta float64) block2 {
	c := complex(math.Cos(theta/2), -math.Sin(theta/2))
	d := complex(math.Cos(theta/2), math.Sin(theta/2))
	return block2{{c, 0}, {0, d}}
}
func matRZDiff(theta float64) block2 {
	c := complex(-0.5*math.Sin(theta/2), -0.5*math.Cos(theta/2))
	d := complex(-0.5*math.Sin(theta/2), 0.5*math.Cos(theta/2))
	return block2{{c, 0}, {0, d}}
}

// ApplyX applies the Pauli-X gate on object qubit obj, controlled on ctrls.
func ApplyX(rho *Density, obj int, ctrls []int) {
	applyBlock1Q(rho, mask.SingleQubitGateMask(obj, ctrls), matX(), nil)
}

// ApplyY applies the Pauli-Y gate.
func ApplyY(rho *Density, obj int, ctrls []int) {
	applyBlock1Q(rho, mask.SingleQubitGateMask(obj, ctrls), matY(), nil)
}

// ApplyZ applies the Pauli-Z gate.
func ApplyZ(rho *Density, obj int, ctrls []int) {
	applyBlock1Q(rho, mask.SingleQubitGateMask(obj, ctrls), matZ(), nil)
}

// ApplyH applies the Hadamard gate.
func ApplyH(rho *Density, obj int, ctrls []int) {
	applyBlock1Q(rho, mask.SingleQubitGateMask(obj, ctrls), matH(), nil)
}

// ApplyS applies the S (sqrt-Z) gate.
func ApplyS(rho *Density, obj int, ctrls []int) {
	applyBlock1Q(rho, mask.SingleQubitGateMask(obj, ctrls), matS(), nil)
}

// ApplySdag applies S-dagger.
func ApplySdag(rho *Density, obj int, ctrls []int) {
	applyBlock1Q(rho, mask.SingleQubitGateMask(obj, ctrls), matSdag(), nil)
}

// ApplyT applies the T (fourth-root-Z) gate.
func ApplyT(rho *Density, obj int, ctrls []int) {
	applyBlock1Q(rho, mask.SingleQubitGateMask(obj, ctrls), matT(), nil)
}

// ApplyTdag applies T-dagger.
func ApplyTdag(rho *Density, obj int, ctrls []int) {
	applyBlock1Q(rho, mask.SingleQubitGateMask(obj, ctrls), matTdag(), nil)
}

// ApplyPS applies the phase-shift gate diag(1, e^{i*theta}).
func ApplyPS(rho *Density, obj int, ctrls []int, theta float64) {
	applyBlock1Q(rho, mask.SingleQubitGateMask(obj, ctrls), matPS(theta), nil)
}

// ApplyPSDiff writes d(rho)/d(theta) for the phase-shift gate.
func ApplyPSDiff(rho *Density, obj int, ctrls []int, theta float64) {
	d := matPSDiff(theta)
	applyBlock1Q(rho, mask.SingleQubitGateMask(obj, ctrls), matPS(theta), &d)
}

// ApplyRX applies the X-axis rotation by theta.
func ApplyRX(rho *Density, obj int, ctrls []int, theta float64) {
	applyBlock1Q(rho, mask.SingleQubitGateMask(obj, ctrls), matRX(theta), nil)
}

// ApplyRXDiff writes d(rho)/d(theta) for RX.
func ApplyRXDiff(rho *Density, obj int, ctrls []int, theta float64) {
	d := matRXDiff(theta)
	applyBlock1Q(rho, mask.SingleQubitGateMask(obj, ctrls), matRX(theta), &d)
}

// ApplyRY applies the Y-axis rotation by theta.
func ApplyRY(rho *Density, obj int, ctrls []int, theta float64) {
	applyBlock1Q(rho, mask.SingleQubitGateMask(obj, ctrls), matRY(theta), nil)
}

// ApplyRYDiff writes d(rho)/d(theta) for RY.
func ApplyRYDiff(rho *Density, obj int, ctrls []int, theta float64) {
	d := matRYDiff(theta)
	applyBlock1Q(rho, mask.SingleQubitGateMask(obj, ctrls), matRY(theta), &d)
}

// ApplyRZ applies the Z-axis rotation by theta.
func ApplyRZ(rho *Density, obj int, ctrls []int, theta float64) {
	applyBlock1Q(rho, mask.SingleQubitGateMask(obj, ctrls), matRZ(theta), nil)
}

// ApplyRZDiff writes d(rho)/d(theta) for RZ.
func ApplyRZDiff(rho *Density, obj int, ctrls []int, theta float64) {
	d := matRZDiff(theta)
	applyBlock1Q(rho, mask.SingleQubitGateMask(obj, ctrls), matRZ(theta), &d)
}
