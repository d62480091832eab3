/*
 * Copyright (c) 2026, ghjramos. All rights reserved.
 */
package engine

import (
	"github.com/ghjramos/kmeans-core/cmn/atomic"
	"github.com/ghjramos/kmeans-core/cmn/debug"
)

// worker executes the iteration protocol of spec.md §4.4 (component C4) over
// its disjoint slice of the point matrix. All fields below are worker-local
// except the pointers into shared state.
type worker struct {
	id       int
	slice    Slice
	owned    []int
	points   *PointStore
	clusters *ClusterState
	barrier  *Barrier
	flags    []atomic.Bool // shared, length T; flags[id] is this worker's

	snapshot []int  // thread-local, length K
	scratch  []bool // thread-local, length >= Parts()
	changed  bool   // worker-local "changed" for the current iteration

	maxIter int // 0 = unbounded; supplemented cap, see SPEC_FULL.md §5
}

func newWorker(id int, slice Slice, threads int, points *PointStore, clusters *ClusterState, barrier *Barrier, flags []atomic.Bool, maxIter int) *worker {
	return &worker{
		id:       id,
		slice:    slice,
		owned:    ownedCentroids(id, threads, clusters.K()),
		points:   points,
		clusters: clusters,
		barrier:  barrier,
		flags:    flags,
		snapshot: make([]int, clusters.K()),
		scratch:  make([]bool, clusters.Parts()),
		maxIter:  maxIter,
	}
}

// run executes the full iteration loop until global convergence, reporting
// one completed iteration (Phase A + Phase B) via onIteration and one
// retained-empty-cluster event via onEmptyCluster.
func (w *worker) run(onIteration func(emptyClusters int), onEmptyCluster func()) {
	iterations := 0
	for {
		w.assignmentPhase()
		w.flags[w.id].Store(w.changed)

		w.barrier.ArriveAndWait() // Barrier 1

		if w.converged() {
			return
		}

		empties := w.zeroAndSnapshot(onEmptyCluster)
		w.barrier.ArriveAndWait() // Barrier 2

		w.accumulateAndReset()
		w.barrier.ArriveAndWait() // Barrier 3

		iterations++
		if onIteration != nil {
			onIteration(empties)
		}
		if w.maxIter > 0 && iterations >= w.maxIter {
			return
		}
	}
}

// assignmentPhase is spec.md §4.4 Phase A.
func (w *worker) assignmentPhase() {
	w.changed = false
	k := w.clusters.K()

	for i := w.slice.First; i < w.slice.First+w.slice.Len; i++ {
		old := w.points.Label(i)
		row := w.points.Row(i)

		best := 0
		bestDist := sqDist(row, w.clusters.Centroid(0))
		for c := 1; c < k; c++ {
			d := sqDist(row, w.clusters.Centroid(c))
			if d < bestDist { // strict: lower index already wins ties
				bestDist = d
				best = c
			}
		}

		w.points.SetLabel(i, best)
		w.clusters.AddToCount(best, 1)
		if best != old {
			w.changed = true
		}
	}
}

// converged reports whether every worker's change flag is false, i.e. no
// point anywhere changed label in the assignment phase just completed.
func (w *worker) converged() bool {
	for i := range w.flags {
		if w.flags[i].Load() {
			return false
		}
	}
	return true
}

// zeroAndSnapshot is spec.md §4.4 Phase B steps 1-2. It returns the number
// of this worker's owned centroids retained (not zeroed) because their
// snapshotted count was 0.
func (w *worker) zeroAndSnapshot(onEmptyCluster func()) int {
	empties := 0
	for _, c := range w.owned {
		if w.clusters.Count(c) > 0 {
			w.clusters.ZeroCentroid(c)
		} else {
			empties++
			if onEmptyCluster != nil {
				onEmptyCluster()
			}
		}
	}
	for c := 0; c < w.clusters.K(); c++ {
		w.snapshot[c] = w.clusters.Count(c)
	}
	return empties
}

// accumulateAndReset is spec.md §4.4 Phase B steps 3-4.
func (w *worker) accumulateAndReset() {
	for i := w.slice.First; i < w.slice.First+w.slice.Len; i++ {
		c := w.points.Label(i)
		n := w.snapshot[c]
		debug.Assert(n > 0, "point labeled to a cluster with a zero snapshotted count")
		if n == 0 {
			continue // unreachable in a coherent run: count[c]==0 implies no point has label c
		}
		w.clusters.Contribute(c, w.points.Row(i), 1.0/float64(n), w.scratch)
	}
	for _, c := range w.owned {
		w.clusters.ResetCount(c)
	}
}

// sqDist computes squared Euclidean distance between two D-vectors.
func sqDist(a, b []float64) float64 {
	var sum float64
	for d := range a {
		diff := a[d] - b[d]
		sum += diff * diff
	}
	return sum
}
