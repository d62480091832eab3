/*
 * Copyright (c) 2026, ghjramos. All rights reserved.
 */
package engine

import (
	"runtime"

	"github.com/ghjramos/kmeans-core/cmn/atomic"
	"github.com/ghjramos/kmeans-core/cmn/debug"
)

// Barrier is a reusable two-phase barrier for exactly n participants
// (spec.md §4.3, component C3). Every call to ArriveAndWait returns only
// after all n participants have called it; cycles are fully decoupled so no
// participant can lap another. The two-counter design (entry + exit) avoids
// the single-counter "straggler re-enters before fast threads have left"
// race: a participant first waits for the previous cycle's exit counter to
// fully drain before incrementing the entry counter for its own cycle.
type Barrier struct {
	n     int32
	entry atomic.Int32
	exit  atomic.Int32
}

// NewBarrier constructs a barrier for n participants. n must be >= 1.
func NewBarrier(n int) *Barrier {
	return &Barrier{n: int32(n)}
}

// ArriveAndWait blocks the calling goroutine until all n participants have
// called it for this cycle. Never fails, never times out, has no
// cancellation (spec.md §4.3) — termination of the overall protocol is
// guaranteed by the finite, monotone-descent nature of Lloyd's algorithm.
func (b *Barrier) ArriveAndWait() {
	n := b.n

	// Phase 0: wait until the previous cycle has fully drained.
	for b.exit.Load()%n != 0 {
		runtime.Gosched()
	}
	debug.Assert(b.exit.Load()%n == 0, "exit counter not drained to a multiple of n")

	// Phase 1: announce arrival, spin until everyone has arrived.
	b.entry.Add(1)
	for b.entry.Load()%n != 0 {
		runtime.Gosched()
	}
	debug.Assert(b.entry.Load()%n == 0, "entry counter not a multiple of n at release")

	// Phase 2: announce departure. The add is a release; the next cycle's
	// phase-0 load is an acquire, which is enough to publish every write
	// made before this call to every reader after the matching call in
	// other goroutines (spec.md §5 ordering guarantees).
	b.exit.Add(1)
}
