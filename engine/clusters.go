/*
 * Copyright (c) 2026, ghjramos. All rights reserved.
 */
package engine

import (
	"math/rand"

	"github.com/ghjramos/kmeans-core/cmn/atomic"
	"github.com/ghjramos/kmeans-core/cmn/debug"
)

// partRange is a contiguous sub-range of coordinates within every centroid
// vector (spec.md §4.4 "part"). All K centroids share the same partitioning
// since they all have dimension D.
type partRange struct {
	lo, hi int
}

// ClusterState owns the K centroid vectors and their membership counts
// (spec.md §4.2, component C2). Counts are atomic; centroid coordinates are
// protected at part granularity by a per-(centroid,part) test-and-set flag
// rather than a mutex, bounding contention to O(D/P) coordinates per
// critical section (spec.md §4.4 "shared-write discipline").
type ClusterState struct {
	k, dims int
	parts   []partRange       // shared layout, length P
	centroids [][]float64     // K x D
	counts  []atomic.Int32    // length K
	flags   [][]atomic.Flag   // K x P
}

// NewClusterState picks K distinct point indices uniformly at random from
// [0, N) (rejecting duplicates) and copies their coordinates as the initial
// centroids, per spec.md §4.2. threads determines the part count P =
// min(D, 2*threads), per spec.md §4.4.
func NewClusterState(points *PointStore, k, threads int, rng *rand.Rand) *ClusterState {
	idx := distinctIndices(rng, points.Size(), k)
	centroids := make([][]float64, k)
	for c, i := range idx {
		centroids[c] = append([]float64(nil), points.Row(i)...)
	}
	return buildClusterState(points.Dims(), centroids, threads)
}

// newClusterStateFromIndices builds a ClusterState with the initial
// centroids pinned to specific point indices, bypassing random selection.
// It is the test hook for scenarios that require forcing a particular
// initial-centroid assignment; the re-run idempotence check of spec.md §8
// scenario 6 starts from arbitrary vectors via newClusterStateFromCentroids.
func newClusterStateFromIndices(points *PointStore, idx []int, threads int) *ClusterState {
	centroids := make([][]float64, len(idx))
	for c, i := range idx {
		centroids[c] = append([]float64(nil), points.Row(i)...)
	}
	return buildClusterState(points.Dims(), centroids, threads)
}

// newClusterStateFromCentroids builds a ClusterState whose initial
// centroids are exactly the given vectors (which need not be input points),
// used by the re-run idempotence test hook (spec.md §8 scenario 6).
func newClusterStateFromCentroids(dims int, centroids [][]float64, threads int) *ClusterState {
	cloned := make([][]float64, len(centroids))
	for c, v := range centroids {
		cloned[c] = append([]float64(nil), v...)
	}
	return buildClusterState(dims, cloned, threads)
}

// buildClusterState assembles a ClusterState around already-materialized
// initial centroid vectors (spec.md §4.4 "shared-write discipline": P =
// min(D, 2*threads) parts per centroid, one busy flag each).
func buildClusterState(dims int, centroids [][]float64, threads int) *ClusterState {
	k := len(centroids)

	p := dims
	if maxParts := 2 * threads; maxParts < p {
		p = maxParts
	}
	if p < 1 {
		p = 1
	}
	parts := partitionDims(dims, p)

	flags := make([][]atomic.Flag, k)
	for c := range flags {
		flags[c] = make([]atomic.Flag, len(parts))
	}

	return &ClusterState{
		k:         k,
		dims:      dims,
		parts:     parts,
		centroids: centroids,
		counts:    make([]atomic.Int32, k),
		flags:     flags,
	}
}

// distinctIndices draws k distinct indices uniformly from [0, n) by
// rejection sampling, per spec.md §4.2.
func distinctIndices(rng *rand.Rand, n, k int) []int {
	seen := make(map[int]struct{}, k)
	out := make([]int, 0, k)
	for len(out) < k {
		i := rng.Intn(n)
		if _, dup := seen[i]; dup {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}
	return out
}

// partitionDims splits [0, d) into p contiguous ranges as evenly as
// possible.
func partitionDims(d, p int) []partRange {
	base := d / p
	rem := d % p
	ranges := make([]partRange, p)
	lo := 0
	for i := 0; i < p; i++ {
		length := base
		if i < rem {
			length++
		}
		ranges[i] = partRange{lo: lo, hi: lo + length}
		lo += length
	}
	return ranges
}

// K returns the number of clusters.
func (cs *ClusterState) K() int { return cs.k }

// Parts returns P, the number of coordinate parts each centroid is split
// into for lock-free concurrent accumulation.
func (cs *ClusterState) Parts() int { return len(cs.parts) }

// Centroid returns a read-only view of cluster c's current D-vector.
func (cs *ClusterState) Centroid(c int) []float64 { return cs.centroids[c] }

// Count returns the current membership count of cluster c.
func (cs *ClusterState) Count(c int) int { return int(cs.counts[c].Load()) }

// ResetCount sets cluster c's count to 0.
func (cs *ClusterState) ResetCount(c int) { cs.counts[c].Store(0) }

// AddToCount atomically adds n to cluster c's count.
func (cs *ClusterState) AddToCount(c, n int) {
	got := cs.counts[c].Add(int32(n))
	debug.Assert(got >= 0, "cluster count went negative")
}

// ZeroCentroid sets centroid c to the zero D-vector. Callers must skip this
// for clusters whose snapshotted count is 0, per spec.md §4.4's
// empty-cluster retention policy — zeroing an empty cluster's centroid
// would make it a spurious attractor on the next assignment phase.
func (cs *ClusterState) ZeroCentroid(c int) {
	row := cs.centroids[c]
	for d := range row {
		row[d] = 0
	}
}

// Contribute adds vec[d]*invCount to centroid[c][d] for every d, visiting
// the centroid's P parts in order and acquiring each part's busy flag via
// test-and-set before writing to it (spec.md §4.4 step 3). scratch must be a
// caller-owned []bool of length >= Parts(), reused across calls to avoid
// allocating inside the steady-state loop (spec.md §5).
func (cs *ClusterState) Contribute(c int, vec []float64, invCount float64, scratch []bool) {
	parts := cs.parts
	flags := cs.flags[c]
	done := scratch[:len(parts)]
	for i := range done {
		done[i] = false
	}

	remaining := len(parts)
	for remaining > 0 {
		for pi := range parts {
			if done[pi] {
				continue
			}
			if !flags[pi].TryAcquire() {
				continue // busy: retry on the next pass
			}
			lo, hi := parts[pi].lo, parts[pi].hi
			row := cs.centroids[c]
			for d := lo; d < hi; d++ {
				row[d] += vec[d] * invCount
			}
			flags[pi].Release()
			done[pi] = true
			remaining--
		}
	}
	debug.Assert(remaining == 0, "Contribute returned with parts still unacquired")
}
