/*
 * Copyright (c) 2026, ghjramos. All rights reserved.
 */
package engine

// PointStore owns the immutable N×D point matrix and the per-point cluster
// labels (spec.md §4.1, component C1). It performs no internal
// synchronization: the worker protocol's slice-ownership discipline
// (spec.md §3 "Worker slice") is what makes concurrent label writes safe.
type PointStore struct {
	rows   [][]float64 // N rows, each of length dims
	labels []int32     // length N, label[i] in [0, K)
	dims   int
}

// NewPointStore takes ownership of rows (an N×D dense matrix, row-major).
// rows must be non-empty and every row must have the same length.
func NewPointStore(rows [][]float64) *PointStore {
	d := 0
	if len(rows) > 0 {
		d = len(rows[0])
	}
	return &PointStore{
		rows:   rows,
		labels: make([]int32, len(rows)),
		dims:   d,
	}
}

// Dims returns D.
func (p *PointStore) Dims() int { return p.dims }

// Size returns N.
func (p *PointStore) Size() int { return len(p.rows) }

// Row returns a read-only view of point i's D coordinates.
func (p *PointStore) Row(i int) []float64 { return p.rows[i] }

// Label returns the current cluster assignment for point i.
func (p *PointStore) Label(i int) int { return int(p.labels[i]) }

// SetLabel assigns point i to cluster c. Only valid when called by the
// worker that owns i's slice — PointStore itself does not enforce this.
func (p *PointStore) SetLabel(i, c int) { p.labels[i] = int32(c) }

// Labels returns a copy of the full label array, cluster membership of every
// input point in index order (spec.md §4.5 result harvest).
func (p *PointStore) Labels() []int {
	out := make([]int, len(p.labels))
	for i, l := range p.labels {
		out[i] = int(l)
	}
	return out
}
