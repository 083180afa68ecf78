// Package gradient builds the Hamiltonian matrix once per call, evolves
// (rho_S, rho_H) sidecar pairs through a circuit and its Hermitian
// adjoint, and accumulates d<H>/dtheta per differentiable parameter.
package gradient

import (
	"fmt"

	"qdensity/dispatch"
	"qdensity/gate"
	"qdensity/hamiltonian"
	"qdensity/internal/parallel"
	"qdensity/kernel"
	"qdensity/qerr"
)

// Options configures the two levels of D-level parallelism: batch_threads
// partitions parameter bindings, mea_threads chunks Hamiltonian sidecars
// within a single binding's backward walk.
type Options struct {
	BatchThreads int
	MeaThreads   int
}

// Engine holds the two persistent worker pools a batch of gradient
// evaluations reuses across many bindings and Hamiltonians, rather than
// spawning goroutines per call.
type Engine struct {
	opts      Options
	batchPool *parallel.Pool
	meaPool   *parallel.Pool
}

// NewEngine builds an Engine, clamping mea_threads to the spec's ceiling
// of 15 (the per-call min(15, M) clamp is applied automatically by
// Pool.ForEach's own workers-vs-n minimum once M is known).
func NewEngine(opts Options) *Engine {
	if opts.BatchThreads <= 0 {
		opts.BatchThreads = 1
	}
	if opts.MeaThreads <= 0 || opts.MeaThreads > 15 {
		opts.MeaThreads = 15
	}
	return &Engine{
		opts:      opts,
		batchPool: parallel.New(opts.BatchThreads),
		meaPool:   parallel.New(opts.MeaThreads),
	}
}

// Close releases both worker pools.
func (e *Engine) Close() {
	e.batchPool.Close()
	e.meaPool.Close()
}

// FG is one (value, gradient) pair: F is <H>, Grad[i] is d<H>/d(paramNames[i]).
type FG struct {
	F    complex128
	Grad []complex128
}

func paramIndex(names []string) map[string]int {
	idx := make(map[string]int, len(names))
	for i, n := range names {
		idx[n] = i
	}
	return idx
}

// OneOne evaluates a single binding against a single Hamiltonian.
func (e *Engine) OneOne(circ, hermCirc gate.Circuit, binding gate.Binding, paramNames []string, rhoInit *kernel.Density, h hamiltonian.Hamiltonian, noise bool) (FG, error) {
	res, err := e.OneMulti(circ, hermCirc, binding, paramNames, rhoInit, []hamiltonian.Hamiltonian{h}, noise)
	if err != nil {
		return FG{}, err
	}
	return res[0], nil
}

// OneMulti evaluates a single binding against M Hamiltonians, sharing one
// forward/backward rho_S walk across all M independently-evolving rho_H
// sidecars: rho_S's trajectory does not depend on which Hamiltonian is
// being measured, so it is only ever advanced once per gate, with the M
// sidecars chunked across mea_threads at each step.
func (e *Engine) OneMulti(circ, hermCirc gate.Circuit, binding gate.Binding, paramNames []string, rhoInit *kernel.Density, hams []hamiltonian.Hamiltonian, noise bool) ([]FG, error) {
	if noise {
		return e.noiseWalk(circ, hermCirc, binding, paramNames, rhoInit, hams)
	}
	return e.reversibleWalk(circ, hermCirc, binding, paramNames, rhoInit, hams)
}

// MultiMulti evaluates N_prs bindings against M Hamiltonians, partitioning
// bindings across batch_threads. When there is only one binding the
// thread pool is skipped and the work runs inline (Pool.ForEach already
// does this once workers clamp to 1).
func (e *Engine) MultiMulti(circ, hermCirc gate.Circuit, bindings []gate.Binding, paramNames []string, rhoInit *kernel.Density, hams []hamiltonian.Hamiltonian, noise bool) ([][]FG, error) {
	out := make([][]FG, len(bindings))
	errs := make([]error, len(bindings))
	e.batchPool.ForEach(len(bindings), func(i int) {
		res, err := e.OneMulti(circ, hermCirc, bindings[i], paramNames, rhoInit, hams, noise)
		out[i] = res
		errs[i] = err
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// reversibleWalk implements the no-noise gradient mode: evolve rho_S
// forward once, materialize H per Hamiltonian as the initial rho_H, then
// walk the adjoint circuit gate by gate. Each step of the walk first
// undoes the corresponding forward gate from rho_S (so the cross term
// sees the state as it was immediately BEFORE that gate), reads the
// cross term against rho_H as it stands immediately AFTER that gate (the
// undo of rho_H happens last), and only then folds the same gate back
// into rho_H. rho_S and rho_H are therefore always one gate apart from
// each other during the walk — this staggering, not the sign on the
// coefficient, is what makes the walk match the analytic gradient (see
// noiseWalk for the contrasting PLUS sign on its own coefficient, which
// falls out of re-evolving from rho_0 rather than stepping an adjoint
// walk and so needs no such staggering).
func (e *Engine) reversibleWalk(circ, hermCirc gate.Circuit, binding gate.Binding, paramNames []string, rhoInit *kernel.Density, hams []hamiltonian.Hamiltonian) ([]FG, error) {
	pidx := paramIndex(paramNames)
	rhoS := rhoInit.Clone()
	for _, g := range circ.Gates {
		if err := dispatch.Apply(rhoS, g, binding, false); err != nil {
			return nil, err
		}
	}

	m := len(hams)
	results := make([]FG, m)
	rhoHs := make([]*kernel.Density, m)
	for j, h := range hams {
		f := kernel.GetExpectation(rhoS, h)
		results[j] = FG{F: f, Grad: make([]complex128, len(paramNames))}
		rhoHs[j] = kernel.DensityFromDense(h.Dense())
	}

	for _, g := range hermCirc.Gates {
		if err := dispatch.Apply(rhoS, g, binding, false); err != nil {
			return nil, err
		}
		if dispatch.IsDifferentiable(g) && g.Expr != nil {
			fwd := gate.Dagger(g)
			theta, err := fwd.EffectiveAngle(binding)
			if err != nil {
				return nil, err
			}
			e.meaPool.ForEach(m, func(j int) {
				val, err := ExpectDiffGate(rhoS, rhoHs[j], fwd, theta)
				if err != nil {
					return
				}
				for name, coeff := range g.Expr.Coeffs {
					if idx, ok := pidx[name]; ok && coeff != 0 {
						results[j].Grad[idx] += 2 * complex(real(val), 0) * complex(-coeff, 0)
					}
				}
			})
		}
		e.meaPool.ForEach(m, func(j int) {
			_ = dispatch.Apply(rhoHs[j], g, binding, false)
		})
	}
	return results, nil
}

// noiseWalk implements the noise-mode gradient: since non-unitary
// channels in circ have no inverse, rho_S cannot be stepped backward, so
// each differentiable gate's cross term is computed against a freshly
// re-evolved rho_S built from a saved snapshot of rho0, replaying only
// the gates strictly before it (the cross term needs the state as it was
// immediately before the gate it differentiates, matching the state
// rho_S reaches partway through the adjoint walk in reversibleWalk).
// This is O(|C|^2) in gate count but correct under arbitrary channels.
// Requires circ and hermCirc of equal length.
func (e *Engine) noiseWalk(circ, hermCirc gate.Circuit, binding gate.Binding, paramNames []string, rhoInit *kernel.Density, hams []hamiltonian.Hamiltonian) ([]FG, error) {
	if len(circ.Gates) != len(hermCirc.Gates) {
		return nil, fmt.Errorf("%w: circuit has %d gates, adjoint has %d", qerr.ErrCircuitLengthMismatch, len(circ.Gates), len(hermCirc.Gates))
	}
	pidx := paramIndex(paramNames)
	rho0 := rhoInit.Clone()

	rhoFull := rho0.Clone()
	for _, g := range circ.Gates {
		if err := dispatch.Apply(rhoFull, g, binding, false); err != nil {
			return nil, err
		}
	}

	m := len(hams)
	results := make([]FG, m)
	rhoHs := make([]*kernel.Density, m)
	for j, h := range hams {
		results[j] = FG{F: kernel.GetExpectation(rhoFull, h), Grad: make([]complex128, len(paramNames))}
		rhoHs[j] = kernel.DensityFromDense(h.Dense())
	}

	for i := len(circ.Gates) - 1; i >= 0; i-- {
		g := circ.Gates[i]
		if dispatch.IsDifferentiable(g) && g.Expr != nil {
			theta, err := g.EffectiveAngle(binding)
			if err != nil {
				return nil, err
			}
			rhoSn := rho0.Clone()
			for k := 0; k < i; k++ {
				if err := dispatch.Apply(rhoSn, circ.Gates[k], binding, false); err != nil {
					return nil, err
				}
			}
			e.meaPool.ForEach(m, func(j int) {
				val, err := ExpectDiffGate(rhoSn, rhoHs[j], g, theta)
				if err != nil {
					return
				}
				for name, coeff := range g.Expr.Coeffs {
					if idx, ok := pidx[name]; ok && coeff != 0 {
						results[j].Grad[idx] += 2 * complex(real(val), 0) * complex(coeff, 0)
					}
				}
			})
		}
		hg := hermCirc.Gates[len(hermCirc.Gates)-1-i]
		e.meaPool.ForEach(m, func(j int) {
			_ = dispatch.Apply(rhoHs[j], hg, binding, false)
		})
	}
	return results, nil
}
