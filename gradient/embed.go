package gradient

import "qdensity/mask"

// embedSingle builds the dense n-qubit matrix for a (possibly controlled)
// single-object-qubit operator U, identity outside the controlled
// sector. ExpectDiffGate accepts the O(d^3) cost of working with full
// dense matrices rather than deriving a block-optimized closed form for
// the cross term Tr(rho_H * dU * rho_S * U^dagger), since this runs once
// per differentiable gate per gradient step, not in the hot per-kernel
// loop.
func embedSingle(n, obj int, ctrls []int, U [2][2]complex128) [][]complex128 {
	d := 1 << n
	out := zero(d)
	s := mask.SingleQubitGateMask(obj, ctrls)
	for k := 0; k < d/2; k++ {
		r0, r1 := s.Rows(k)
		if s.CtrlMask != 0 && !s.Satisfies(r0) {
			out[r0][r0] = 1
			out[r1][r1] = 1
			continue
		}
		out[r0][r0] = U[0][0]
		out[r0][r1] = U[0][1]
		out[r1][r0] = U[1][0]
		out[r1][r1] = U[1][1]
	}
	return out
}

// embedDouble is the two-object-qubit analogue of embedSingle.
func embedDouble(n, obj0, obj1 int, ctrls []int, U [4][4]complex128) [][]complex128 {
	d := 1 << n
	out := zero(d)
	dq := mask.DoubleQubitGateMask(obj0, obj1, ctrls)
	for k := 0; k < d/4; k++ {
		r00, r01, r10, r11 := dq.Rows(k)
		rows := [4]int{r00, r01, r10, r11}
		if dq.CtrlMask != 0 && !dq.Satisfies(r00) {
			for _, r := range rows {
				out[r][r] = 1
			}
			continue
		}
		for i, ri := range rows {
			for j, rj := range rows {
				out[ri][rj] = U[i][j]
			}
		}
	}
	return out
}

func zero(d int) [][]complex128 {
	out := make([][]complex128, d)
	for i := range out {
		out[i] = make([]complex128, d)
	}
	return out
}
