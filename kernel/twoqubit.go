package kernel

import (
	"math"

	"qdensity/mask"
)

// block4 is a dense 4x4 complex block over the joint basis of two object
// qubits, ordered [00, 01, 10, 11] per mask.Double.Rows: index bit0 is
// obj0, bit1 is obj1.
type block4 [4][4]complex128

func mul4(a, b block4) block4 {
	var out block4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var s complex128
			for k := 0; k < 4; k++ {
				s += a[i][k] * b[k][j]
			}
			out[i][j] = s
		}
	}
	return out
}

func dagger4(a block4) block4 {
	var out block4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = complexConj(a[j][i])
		}
	}
	return out
}

// applyBlock2Q is the two-qubit analogue of applyBlock1Q: U is a 4x4
// unitary over the joint object-qubit basis. dU non-nil selects the
// derivative-writing path.
func applyBlock2Q(rho *Density, d mask.Double, U block4, dU *block4) {
	quarter := rho.D / 4
	body := func(kStart, kEnd int) {
		for k := kStart; k < kEnd; k++ {
			r00, r01, r10, r11 := d.Rows(k)
			rows := [4]int{r00, r01, r10, r11}
			rowSat := d.Satisfies(r00)
			for l := 0; l <= k; l++ {
				c00, c01, c10, c11 := d.Rows(l)
				cols := [4]int{c00, c01, c10, c11}
				colSat := d.Satisfies(c00)

				var blk block4
				for i := 0; i < 4; i++ {
					for j := 0; j < 4; j++ {
						blk[i][j] = rho.Get(rows[i], cols[j])
					}
				}

				var out block4
				if dU == nil {
					switch {
					case d.CtrlMask == 0 || (rowSat && colSat):
						out = mul4(mul4(U, blk), dagger4(U))
					case rowSat && !colSat:
						out = mul4(U, blk)
					case colSat && !rowSat:
						out = mul4(blk, dagger4(U))
					default:
						continue
					}
				} else {
					if !(rowSat && colSat) {
						out = block4{}
					} else {
						left := mul4(mul4(*dU, blk), dagger4(U))
						right := mul4(mul4(U, blk), dagger4(*dU))
						for i := 0; i < 4; i++ {
							for j := 0; j < 4; j++ {
								out[i][j] = left[i][j] + right[i][j]
							}
						}
					}
				}

				for i := 0; i < 4; i++ {
					for j := 0; j < 4; j++ {
						rho.Set(rows[i], cols[j], out[i][j])
					}
				}
			}
		}
	}
	pool.For(quarter, DimTh, body)
}

func matSWAP() block4 {
	return block4{
		{1, 0, 0, 0},
		{0, 0, 1, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
	}
}

func matISWAP() block4 {
	return block4{
		{1, 0, 0, 0},
		{0, 0, 1i, 0},
		{0, 1i, 0, 0},
		{0, 0, 0, 1},
	}
}

// matRxx/matRyy/matRzz implement exp(-i*theta/2 * P_i⊗P_j) for the
// corresponding Pauli pair, in the [00,01,10,11] basis ordering.
func matRxx(theta float64) block4 {
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	return block4{
		{c, 0, 0, s},
		{0, c, s, 0},
		{0, s, c, 0},
		{s, 0, 0, c},
	}
}
func matRxxDiff(theta float64) block4 {
	c := complex(-0.5*math.Sin(theta/2), 0)
	s := complex(0, -0.5*math.Cos(theta/2))
	return block4{
		{c, 0, 0, s},
		{0, c, s, 0},
		{0, s, c, 0},
		{s, 0, 0, c},
	}
}

func matRyy(theta float64) block4 {
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	return block4{
		{c, 0, 0, -s},
		{0, c, s, 0},
		{0, s, c, 0},
		{-s, 0, 0, c},
	}
}
func matRyyDiff(theta float64) block4 {
	c := complex(-0.5*math.Sin(theta/2), 0)
	s := complex(0, -0.5*math.Cos(theta/2))
	return block4{
		{c, 0, 0, -s},
		{0, c, s, 0},
		{0, s, c, 0},
		{-s, 0, 0, c},
	}
}

func matRzz(theta float64) block4 {
	p := complex(math.Cos(theta/2), -math.Sin(theta/2))
	m := complex(math.Cos(theta/2), math.Sin(theta/2))
	return block4{
		{p, 0, 0, 0},
		{0, m, 0, 0},
		{0, 0, m, 0},
		{0, 0, 0, p},
	}
}
func matRzzDiff(theta float64) block4 {
	p := complex(-0.5*math.Sin(theta/2), -0.5*math.Cos(theta/2))
	m := complex(-0.5*math.Sin(theta/2), 0.5*math.Cos(theta/2))
	return block4{
		{p, 0, 0, 0},
		{0, m, 0, 0},
		{0, 0, m, 0},
		{0, 0, 0, p},
	}
}

// ApplySWAP swaps object qubits obj0 and obj1.
func ApplySWAP(rho *Density, obj0, obj1 int, ctrls []int) {
	applyBlock2Q(rho, mask.DoubleQubitGateMask(obj0, obj1, ctrls), matSWAP(), nil)
}

// ApplyISWAP applies the iSWAP gate on obj0, obj1.
func ApplyISWAP(rho *Density, obj0, obj1 int, ctrls []int) {
	applyBlock2Q(rho, mask.DoubleQubitGateMask(obj0, obj1, ctrls), matISWAP(), nil)
}

// ApplyRxx applies exp(-i*theta/2 * X⊗X) on obj0, obj1.
func ApplyRxx(rho *Density, obj0, obj1 int, ctrls []int, theta float64) {
	applyBlock2Q(rho, mask.DoubleQubitGateMask(obj0, obj1, ctrls), matRxx(theta), nil)
}

// ApplyRxxDiff writes d(rho)/d(theta) for Rxx.
func ApplyRxxDiff(rho *Density, obj0, obj1 int, ctrls []int, theta float64) {
	d := matRxxDiff(theta)
	applyBlock2Q(rho, mask.DoubleQubitGateMask(obj0, obj1, ctrls), matRxx(theta), &d)
}

// ApplyRyy applies exp(-i*theta/2 * Y⊗Y) on obj0, obj1.
func ApplyRyy(rho *Density, obj0, obj1 int, ctrls []int, theta float64) {
	applyBlock2Q(rho, mask.DoubleQubitGateMask(obj0, obj1, ctrls), matRyy(theta), nil)
}

// ApplyRyyDiff writes d(rho)/d(theta) for Ryy.
func ApplyRyyDiff(rho *Density, obj0, obj1 int, ctrls []int, theta float64) {
	d := matRyyDiff(theta)
	applyBlock2Q(rho, mask.DoubleQubitGateMask(obj0, obj1, ctrls), matRyy(theta), &d)
}

// ApplyRzz applies exp(-i*theta/2 * Z⊗Z) on obj0, obj1.
func ApplyRzz(rho *Density, obj0, obj1 int, ctrls []int, theta float64) {
	applyBlock2Q(rho, mask.DoubleQubitGateMask(obj0, obj1, ctrls), matRzz(theta), nil)
}

// ApplyRzzDiff writes d(rho)/d(theta) for Rzz.
func ApplyRzzDiff(rho *Density, obj0, obj1 int, ctrls []int, theta float64) {
	d := matRzzDiff(theta)
	applyBlock2Q(rho, mask.DoubleQubitGateMask(obj0, obj1, ctrls), matRzz(theta), &d)
}

// ApplyCNOT applies a controlled-X: obj is the target, ctrl is the
// control qubit, plus any additional control qubits in extraCtrls. CNOT
// is expressed as a single-qubit X gate whose control list includes ctrl,
// matching the dispatcher's uniform Record.Ctrls shape rather than a
// dedicated two-qubit kernel.
func ApplyCNOT(rho *Density, ctrl, obj int, extraCtrls []int) {
	ctrls := append([]int{ctrl}, extraCtrls...)
	ApplyX(rho, obj, ctrls)
}
