// Package dispatch maps a gate identifier plus resolved parameter to the
// matching kernel entry point, generalizing the teacher's string-switch
// ApplyGate into a closed enum switch over gate.ID.
package dispatch

import (
	"fmt"

	"qdensity/gate"
	"qdensity/kernel"
	"qdensity/qerr"
)

// Apply dispatches a single gate record against rho, resolving its angle
// (if any) against binding first. diff selects the derivative-writing
// kernel variant for parameterized gates; it is a no-op for everything
// else.
func Apply(rho *kernel.Density, r gate.Record, binding gate.Binding, diff bool) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.ID.IsChannel() {
		return applyChannel(rho, r)
	}

	var angle float64
	if r.ID.IsParameterized() {
		a, err := r.EffectiveAngle(binding)
		if err != nil {
			return err
		}
		angle = a
	}

	switch r.ID {
	case gate.I:
		return nil
	case gate.X:
		kernel.ApplyX(rho, r.Objs[0], r.Ctrls)
	case gate.Y:
		kernel.ApplyY(rho, r.Objs[0], r.Ctrls)
	case gate.Z:
		kernel.ApplyZ(rho, r.Objs[0], r.Ctrls)
	case gate.H:
		kernel.ApplyH(rho, r.Objs[0], r.Ctrls)
	case gate.S:
		kernel.ApplyS(rho, r.Objs[0], r.Ctrls)
	case gate.Sdag:
		kernel.ApplySdag(rho, r.Objs[0], r.Ctrls)
	case gate.T:
		kernel.ApplyT(rho, r.Objs[0], r.Ctrls)
	case gate.Tdag:
		kernel.ApplyTdag(rho, r.Objs[0], r.Ctrls)
	case gate.SWAP:
		kernel.ApplySWAP(rho, r.Objs[0], r.Objs[1], r.Ctrls)
	case gate.ISWAP:
		kernel.ApplyISWAP(rho, r.Objs[0], r.Objs[1], r.Ctrls)
	case gate.CNOT:
		kernel.ApplyCNOT(rho, r.Ctrls[0], r.Objs[0], r.Ctrls[1:])
	case gate.RX:
		if diff {
			kernel.ApplyRXDiff(rho, r.Objs[0], r.Ctrls, angle)
		} else {
			kernel.ApplyRX(rho, r.Objs[0], r.Ctrls, angle)
		}
	case gate.RY:
		if diff {
			kernel.ApplyRYDiff(rho, r.Objs[0], r.Ctrls, angle)
		} else {
			kernel.ApplyRY(rho, r.Objs[0], r.Ctrls, angle)
		}
	case gate.RZ:
		if diff {
			kernel.ApplyRZDiff(rho, r.Objs[0], r.Ctrls, angle)
		} else {
			kernel.ApplyRZ(rho, r.Objs[0], r.Ctrls, angle)
		}
	case gate.PS:
		if diff {
			kernel.ApplyPSDiff(rho, r.Objs[0], r.Ctrls, angle)
		} else {
			kernel.ApplyPS(rho, r.Objs[0], r.Ctrls, angle)
		}
	case gate.Rxx:
		if diff {
			kernel.ApplyRxxDiff(rho, r.Objs[0], r.Objs[1], r.Ctrls, angle)
		} else {
			kernel.ApplyRxx(rho, r.Objs[0], r.Objs[1], r.Ctrls, angle)
		}
	case gate.Ryy:
		if diff {
			kernel.ApplyRyyDiff(rho, r.Objs[0], r.Objs[1], r.Ctrls, angle)
		} else {
			kernel.ApplyRyy(rho, r.Objs[0], r.Objs[1], r.Ctrls, angle)
		}
	case gate.Rzz:
		if diff {
			kernel.ApplyRzzDiff(rho, r.Objs[0], r.Objs[1], r.Ctrls, angle)
		} else {
			kernel.ApplyRzz(rho, r.Objs[0], r.Objs[1], r.Ctrls, angle)
		}
	default:
		return fmt.Errorf("%w: %s", qerr.ErrUnknownGate, r.ID)
	}
	return nil
}

func applyChannel(rho *kernel.Density, r gate.Record) error {
	if r.Channel == nil {
		return fmt.Errorf("%w: channel record %s missing parameters", qerr.ErrInvalidArgument, r.ID)
	}
	switch r.ID {
	case gate.ChanAD:
		kernel.ApplyAmplitudeDamping(rho, r.Objs[0], r.Channel.Gamma)
	case gate.ChanHermAD:
		kernel.ApplyHermitianAmplitudeDamping(rho, r.Objs[0], r.Channel.Gamma)
	case gate.ChanPD:
		kernel.ApplyPhaseDamping(rho, r.Objs[0], r.Channel.Gamma)
	case gate.ChanPauli:
		kernel.ApplyPauli(rho, r.Objs[0], r.Channel.Px, r.Channel.Py, r.Channel.Pz)
	case gate.ChanKraus:
		kernel.ApplyGeneralKraus(rho, r.Objs[0], toKrausArray(r.Channel.Kraus))
	default:
		return fmt.Errorf("%w: %s", qerr.ErrUnknownChannel, r.ID)
	}
	return nil
}

func toKrausArray(ms []gate.Matrix) [][2][2]complex128 {
	out := make([][2][2]complex128, len(ms))
	for i, m := range ms {
		out[i] = [2][2]complex128{{m[0][0], m[0][1]}, {m[1][0], m[1][1]}}
	}
	return out
}

// IsDifferentiable reports whether r's kind has a derivative-writing
// kernel variant (the parameterized unitary families).
func IsDifferentiable(r gate.Record) bool {
	return r.ID.IsParameterized()
}
