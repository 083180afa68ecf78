package kernel

import (
	"math"

	"qdensity/mask"
)

// ApplyAmplitudeDamping applies the amplitude-damping channel with rate
// gamma on object qubit obj: Kraus set {diag(1,sqrt(1-gamma)),
// sqrt(gamma)*|0><1|}.
func ApplyAmplitudeDamping(rho *Density, obj int, gamma float64) {
	s := mask.SingleQubitGateMask(obj, nil)
	sq := complex(math.Sqrt(1-gamma), 0)
	g := complex(math.Sqrt(gamma), 0)
	applyKrausBlock1Q(rho, s, [][2][2]complex128{
		{{1, 0}, {0, sq}},
		{{0, g}, {0, 0}},
	})
}

// ApplyHermitianAmplitudeDamping applies the adjoint channel sum K_i^dag
// (.) K_i, used when propagating the Hamiltonian sidecar backward through
// an amplitude-damping channel during gradient computation.
func ApplyHermitianAmplitudeDamping(rho *Density, obj int, gamma float64) {
	s := mask.SingleQubitGateMask(obj, nil)
	sq := complex(math.Sqrt(1-gamma), 0)
	g := complex(math.Sqrt(gamma), 0)
	k0 := block2{{1, 0}, {0, sq}}
	k1 := block2{{0, g}, {0, 0}}
	applyKrausBlock1QDagger(rho, s, []block2{k0, k1})
}

// ApplyPhaseDamping applies the phase-damping channel with rate gamma on
// object qubit obj, damping off-diagonal entries in the object subspace
// by sqrt(1-gamma).
func ApplyPhaseDamping(rho *Density, obj int, gamma float64) {
	s := mask.SingleQubitGateMask(obj, nil)
	sq := complex(math.Sqrt(1-gamma), 0)
	applyKrausBlock1Q(rho, s, [][2][2]complex128{
		{{1, 0}, {0, sq}},
		{{0, 0}, {0, complex(math.Sqrt(gamma), 0)}},
	})
}

// ApplyPauli applies the Pauli channel rho <- (1-p)*rho + px*X*rho*X +
// py*Y*rho*Y + pz*Z*rho*Z, p = px+py+pz, on object qubit obj.
func ApplyPauli(rho *Density, obj int, px, py, pz float64) {
	s := mask.SingleQubitGateMask(obj, nil)
	p := px + py + pz
	i0 := complex(math.Sqrt(1-p), 0)
	x0 := complex(math.Sqrt(px), 0)
	y0 := complex(math.Sqrt(py), 0)
	z0 := complex(math.Sqrt(pz), 0)
	applyKrausBlock1Q(rho, s, [][2][2]complex128{
		{{i0, 0}, {0, i0}},
		{{0, x0}, {x0, 0}},
		{{0, complex(0, -1) * y0}, {complex(0, 1) * y0, 0}},
		{{z0, 0}, {0, -z0}},
	})
}

// ApplyGeneralKraus applies an arbitrary single-object-qubit Kraus set
// {K_i}. Callers must supply operators satisfying sum K_i^dag K_i = I;
// this is not checked.
func ApplyGeneralKraus(rho *Density, obj int, kraus [][2][2]complex128) {
	s := mask.SingleQubitGateMask(obj, nil)
	applyKrausBlock1Q(rho, s, kraus)
}

// applyKrausBlock1Q accumulates sum_i K_i * block * K_i^dag into a scratch
// 2x2 accumulator per (k,l) base pair, then writes it back. The scratch
// buffer is local to the call and never shared across threads, per the
// ownership rule on Kraus scratch.
func applyKrausBlock1Q(rho *Density, s mask.Single, kraus [][2][2]complex128) {
	half := rho.D / 2
	body := func(kStart, kEnd int) {
		for k := kStart; k < kEnd; k++ {
			r0, r1 := s.Rows(k)
			for l := 0; l <= k; l++ {
				c0, c1 := s.Rows(l)
				blk := block2{
					{rho.Get(r0, c0), rho.Get(r0, c1)},
					{rho.Get(r1, c0), rho.Get(r1, c1)},
				}
				var acc block2
				for _, kr := range kraus {
					K := block2(kr)
					t := mul2(mul2(K, blk), dagger2(K))
					acc[0][0] += t[0][0]
					acc[0][1] += t[0][1]
					acc[1][0] += t[1][0]
					acc[1][1] += t[1][1]
				}
				rho.Set(r0, c0, acc[0][0])
				rho.Set(r0, c1, acc[0][1])
				rho.Set(r1, c0, acc[1][0])
				rho.Set(r1, c1, acc[1][1])
			}
		}
	}
	pool.For(half, DimTh, body)
}

func applyKrausBlock1QDagger(rho *Density, s mask.Single, kraus []block2) {
	half := rho.D / 2
	body := func(kStart, kEnd int) {
		for k := kStart; k < kEnd; k++ {
			r0, r1 := s.Rows(k)
			for l := 0; l <= k; l++ {
				c0, c1 := s.Rows(l)
				blk := block2{
					{rho.Get(r0, c0), rho.Get(r0, c1)},
					{rho.Get(r1, c0), rho.Get(r1, c1)},
				}
				var acc block2
				for _, K := range kraus {
					t := mul2(mul2(dagger2(K), blk), K)
					acc[0][0] += t[0][0]
					acc[0][1] += t[0][1]
					acc[1][0] += t[1][0]
					acc[1][1] += t[1][1]
				}
				rho.Set(r0, c0, acc[0][0])
				rho.Set(r0, c1, acc[0][1])
				rho.Set(r1, c0, acc[1][0])
				rho.Set(r1, c1, acc[1][1])
			}
		}
	}
	pool.For(half, DimTh, body)
}
