// Package parallel provides a persistent, reusable worker pool used for the
// two levels of parallelism this engine needs: the intra-kernel data
// parallel loop over a dense policy kernel's base-index range, and the
// inter-task fan-out over parameter bindings in the gradient engine.
//
// Workers are spawned once and reused across many calls, avoiding the
// per-call goroutine-spawn and channel-allocation cost that would otherwise
// dominate for the many small kernel invocations a circuit produces.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a pool with the given number of workers. numWorkers <= 0
// uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the pool. Safe to call more than once.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// For runs fn(start, end) for each of a set of contiguous, disjoint ranges
// covering [0, n), blocking until all ranges complete. Used for the
// intra-kernel loop over a dense policy kernel's base-index range: callers
// write to whatever row/col entries the [start, end) range determines, and
// since ranges are disjoint by construction of the mask scheme, no
// synchronization is required inside fn.
//
// Below threshold (or once the pool is closed) For runs fn(0, n) inline.
func (p *Pool) For(n, threshold int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if n < threshold || p.closed.Load() {
		fn(0, n)
		return
	}

	workers := min(p.numWorkers, n)
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := range workers {
		start := i * chunk
		end := min(start+chunk, n)
		if start >= n {
			wg.Done()
			continue
		}
		p.workC <- workItem{
			fn:      func() { fn(start, end) },
			barrier: &wg,
		}
	}
	wg.Wait()
}

// ForEach runs fn(i) for every i in [0, n), distributing indices across
// workers via an atomic counter. Used for the inter-task fan-out over
// parameter bindings (batch_threads) and Hamiltonian sidecars (mea_threads),
// where each task's cost can vary and simple range splitting would leave
// some workers idle.
func (p *Pool) ForEach(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if p.closed.Load() {
		for i := range n {
			fn(i)
		}
		return
	}

	workers := min(p.numWorkers, n)
	if workers <= 1 {
		for i := range n {
			fn(i)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		p.workC <- workItem{
			fn: func() {
				for {
					idx := int(next.Add(1)) - 1
					if idx >= n {
						return
					}
					fn(idx)
				}
			},
			barrier: &wg,
		}
	}
	wg.Wait()
}
