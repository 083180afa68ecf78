package kernel

import "qdensity/gate"

// Matrix1Q returns the dense 2x2 unitary (and, for parameterized
// families, its theta-derivative) for one of the single-object-qubit
// gate families. ok is false for gate identifiers this function does not
// cover (two-qubit families, channels, Measure).
func Matrix1Q(id gate.ID, theta float64) (U, dU [2][2]complex128, ok bool) {
	switch id {
	case gate.I:
		return [2][2]complex128{{1, 0}, {0, 1}}, [2][2]complex128{}, true
	case gate.X:
		return matX(), block2{}, true
	case gate.Y:
		return matY(), block2{}, true
	case gate.Z:
		return matZ(), block2{}, true
	case gate.H:
		return matH(), block2{}, true
	case gate.S:
		return matS(), block2{}, true
	case gate.Sdag:
		return matSdag(), block2{}, true
	case gate.T:
		return matT(), block2{}, true
	case gate.Tdag:
		return matTdag(), block2{}, true
	case gate.RX:
		return matRX(theta), matRXDiff(theta), true
	case gate.RY:
		return matRY(theta), matRYDiff(theta), true
	case gate.RZ:
		return matRZ(theta), matRZDiff(theta), true
	case gate.PS:
		return matPS(theta), matPSDiff(theta), true
	default:
		return [2][2]complex128{}, [2][2]complex128{}, false
	}
}

// Matrix2Q is the two-object-qubit analogue of Matrix1Q.
func Matrix2Q(id gate.ID, theta float64) (U, dU [4][4]complex128, ok bool) {
	switch id {
	case gate.SWAP:
		return matSWAP(), block4{}, true
	case gate.ISWAP:
		return matISWAP(), block4{}, true
	case gate.Rxx:
		return matRxx(theta), matRxxDiff(theta), true
	case gate.Ryy:
		return matRyy(theta), matRyyDiff(theta), true
	case gate.Rzz:
		return matRzz(theta), matRzzDiff(theta), true
	default:
		return [4][4]complex128{}, [4][4]complex128{}, false
	}
}
