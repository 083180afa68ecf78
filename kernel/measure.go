package kernel

import (
	"sync"

	"qdensity/mask"
)

// MeasureMarginal returns p1, the probability of measuring qubit obj as 1:
// the sum of diagonal entries whose index has the object bit set. Above
// DimTh the row range is split across the worker pool like every other
// B-kernel; each range accumulates its own partial sum and folds it into
// the total under a lock, so the only contention is once per range rather
// than once per row.
func MeasureMarginal(rho *Density, obj int) float64 {
	objMask := 1 << obj
	var mu sync.Mutex
	var p1 float64
	pool.For(rho.D, DimTh, func(rStart, rEnd int) {
		var sum float64
		for r := rStart; r < rEnd; r++ {
			if r&objMask != 0 {
				sum += real(rho.Buf[mask.IdxMap(r, r)])
			}
		}
		mu.Lock()
		p1 += sum
		mu.Unlock()
	})
	return p1
}

// ProjectMeasure collapses qubit obj to outcome b (0 or 1) and renormalizes:
// entries whose row or column disagrees with b on the object bit are
// zeroed, and the surviving block is scaled by 1/prob. The implementation
// fuses this into one pass over the packed triangle via a single
// conditional-multiply kernel, matching the single fused-kernel
// description rather than a zero pass followed by a separate scale pass.
// Dispatched through the worker pool above DimTh like every other B-kernel:
// each row's lower-triangle entries live at disjoint packed indices, so
// rows can be split across workers with no synchronization inside the loop.
func ProjectMeasure(rho *Density, obj int, b int, prob float64) {
	objMask := 1 << obj
	want := 0
	if b != 0 {
		want = objMask
	}
	scale := complex(1/prob, 0)
	pool.For(rho.D, DimTh, func(rStart, rEnd int) {
		for r := rStart; r < rEnd; r++ {
			rBit := r & objMask
			for c := 0; c <= r; c++ {
				cBit := c & objMask
				idx := mask.IdxMap(r, c)
				if rBit != want || cBit != want {
					rho.Buf[idx] = 0
					continue
				}
				rho.Buf[idx] *= scale
			}
		}
	})
}
