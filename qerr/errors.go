// Package qerr defines the sentinel error set returned by the density-matrix
// engine. Algorithms return these sentinels (wrapped with fmt.Errorf and
// %w where extra context helps); callers match them with errors.Is. Nothing
// in this module panics on a caller-triggered condition.
package qerr

import "errors"

var (
	// ErrUnknownGate is returned when a dispatcher receives a gate
	// identifier it does not implement.
	ErrUnknownGate = errors.New("qdensity: unknown gate")

	// ErrUnknownChannel is returned when the channel sub-dispatcher is
	// exhausted without a match.
	ErrUnknownChannel = errors.New("qdensity: unknown channel")

	// ErrQubitConflict is returned when a gate record lists a qubit twice,
	// or a control qubit overlaps an object qubit.
	ErrQubitConflict = errors.New("qdensity: qubit listed as both object and control")

	// ErrCircuitLengthMismatch is returned when a noise-mode gradient call
	// receives a forward circuit and adjoint circuit of different length.
	ErrCircuitLengthMismatch = errors.New("qdensity: circuit and adjoint circuit length differ")

	// ErrInvalidArgument covers dimension mismatches, empty bindings where
	// a parameterized gate needs one, and malformed Kraus sets.
	ErrInvalidArgument = errors.New("qdensity: invalid argument")

	// ErrAllocationFailure marks a failed buffer allocation; implementation
	// defined, surfaced rather than swallowed.
	ErrAllocationFailure = errors.New("qdensity: allocation failure")
)
