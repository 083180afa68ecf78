package gradient

import (
	"fmt"

	"qdensity/gate"
	"qdensity/kernel"
	"qdensity/qerr"
)

// ExpectDiffGate returns Tr(rho_H * dU/dtheta * rho_S * U^dagger) for g's
// gate family, the one-sided cross term the reversible- and noise-mode
// walks both accumulate into d<H>/dtheta. g must be one of the
// differentiable unitary families (RX, RY, RZ, Rxx, Ryy, Rzz, PS); any
// other identifier is a programmer error in the caller's walk and returns
// InvalidArgument.
func ExpectDiffGate(rhoS, rhoH *kernel.Density, g gate.Record, theta float64) (complex128, error) {
	if !g.ID.IsParameterized() {
		return 0, fmt.Errorf("%w: %s is not a differentiable gate", qerr.ErrInvalidArgument, g.ID)
	}
	var dU [][]complex128
	var U [][]complex128
	n := rhoS.N

	switch len(g.Objs) {
	case 1:
		u2, du2, ok := kernel.Matrix1Q(g.ID, theta)
		if !ok {
			return 0, fmt.Errorf("%w: %s is not a differentiable single-qubit gate", qerr.ErrInvalidArgument, g.ID)
		}
		U = embedSingle(n, g.Objs[0], g.Ctrls, u2)
		dU = embedSingle(n, g.Objs[0], g.Ctrls, du2)
	case 2:
		u4, du4, ok := kernel.Matrix2Q(g.ID, theta)
		if !ok {
			return 0, fmt.Errorf("%w: %s is not a differentiable two-qubit gate", qerr.ErrInvalidArgument, g.ID)
		}
		U = embedDouble(n, g.Objs[0], g.Objs[1], g.Ctrls, u4)
		dU = embedDouble(n, g.Objs[0], g.Objs[1], g.Ctrls, du4)
	default:
		return 0, fmt.Errorf("%w: gate %s has %d object qubits, want 1 or 2", qerr.ErrInvalidArgument, g.ID, len(g.Objs))
	}

	d := 1 << n
	s := rhoS.Dense()
	h := rhoH.Dense()

	// Y = dU * rho_S, Z = Y * U^dagger, then Tr(rho_H * Z).
	y := matmul(dU, s)
	z := matmulDagger(y, U)
	return traceProd(h, z, d), nil
}

func matmul(a, b [][]complex128) [][]complex128 {
	d := len(a)
	out := make([][]complex128, d)
	for i := 0; i < d; i++ {
		out[i] = make([]complex128, d)
		for j := 0; j < d; j++ {
			var sum complex128
			for k := 0; k < d; k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// matmulDagger computes a * b^dagger.
func matmulDagger(a, b [][]complex128) [][]complex128 {
	d := len(a)
	out := make([][]complex128, d)
	for i := 0; i < d; i++ {
		out[i] = make([]complex128, d)
		for j := 0; j < d; j++ {
			var sum complex128
			for k := 0; k < d; k++ {
				sum += a[i][k] * complexConj(b[j][k])
			}
			out[i][j] = sum
		}
	}
	return out
}

// traceProd returns Tr(a*b) without materializing the full product.
func traceProd(a, b [][]complex128, d int) complex128 {
	var sum complex128
	for i := 0; i < d; i++ {
		for k := 0; k < d; k++ {
			sum += a[i][k] * b[k][i]
		}
	}
	return sum
}

func complexConj(c complex128) complex128 {
	return complex(real(c), -imag(c))
}
