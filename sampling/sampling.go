// Package sampling repeats trajectory-style measurement shots against
// independent copies of a state's density matrix.
package sampling

import (
	"sync"

	"qdensity/gate"
	"qdensity/internal/parallel"
	"qdensity/kernel"
	"qdensity/state"
)

// Result is the flat shots x len(keyOrder) outcome matrix Sampling
// produces, plus the key order used to build each row so callers can map
// columns back to measurement names.
type Result struct {
	Shots    int
	KeyOrder []string
	Bits     [][]uint8 // Bits[s][k] in {0,1}
}

var pool = parallel.New(0)

// Sampling runs shots independent trajectories of circ against copies of
// rho, collecting each shot's measurement outcomes (keyed by measurement
// name via keyMap) into one flat row. Each shot's RNG is seeded
// deterministically from (seed, shot index) via a counter-based mixer, so
// results are reproducible and the per-shot work is safe to run
// concurrently: every shot owns its own State, with no shared buffer.
//
// Any shot's error aborts the call: Sampling returns the first error seen
// across all shots rather than a partial result with a plausible-looking
// all-zero row in its place.
func Sampling(circ gate.Circuit, pr gate.Binding, shots int, keyMap map[string]int, seed uint64, rho *kernel.Density) (Result, error) {
	keyOrder := make([]string, len(keyMap))
	for name, idx := range keyMap {
		keyOrder[idx] = name
	}

	var errMu sync.Mutex
	var firstErr error

	res := Result{Shots: shots, KeyOrder: keyOrder, Bits: make([][]uint8, shots)}
	pool.ForEach(shots, func(s int) {
		shotSeed := splitmix64(seed, uint64(s))
		st := state.FromDensity(circ.NumQubits, shotSeed, rho.Clone())
		outcomes, err := st.ApplyCircuit(circ, pr)
		if err != nil {
			errMu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			errMu.Unlock()
			return
		}
		row := make([]uint8, len(keyOrder))
		for name, idx := range keyMap {
			if b, ok := outcomes[name]; ok {
				row[idx] = uint8(b)
			}
		}
		res.Bits[s] = row
	})
	if firstErr != nil {
		return Result{}, firstErr
	}
	return res, nil
}

// splitmix64 is a small counter-based mixer used to derive a distinct,
// reproducible per-shot seed from a parent seed and a shot index, in
// place of re-seeding from a draw of the parent RNG: given the same
// (seed, shot) pair it always returns the same stream, which is what lets
// Sampling hand out independent per-shot States to a worker pool without
// any of them touching a shared RNG.
func splitmix64(seed, shot uint64) uint64 {
	z := seed + shot*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
