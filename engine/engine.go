// Package engine is the concurrent k-means core: point store, cluster
// state, barrier, and worker protocol (spec.md §2 components C1-C4).
/*
 * Copyright (c) 2026, ghjramos. All rights reserved.
 */
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/ghjramos/kmeans-core/cmn/atomic"
	"github.com/ghjramos/kmeans-core/cmn/cos"
	"github.com/ghjramos/kmeans-core/cmn/mono"
	"github.com/ghjramos/kmeans-core/cmn/nlog"
	"github.com/ghjramos/kmeans-core/engine/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/teris-io/shortid"
	"golang.org/x/sync/errgroup"
)

// Options configures a single engine run.
type Options struct {
	K             int   // number of clusters
	Threads       int   // worker count
	Seed          *int64 // optional; nil derives a seed from mono.NanoTime
	MaxIterations int   // 0 = unbounded (spec.md's default; see SPEC_FULL.md §5)
	Registerer    prometheus.Registerer // optional; defaults to a private registry
}

// Result is the output contract of spec.md §6: K centroid vectors and the
// per-point cluster assignment, plus the supplemented SSE figure from
// SPEC_FULL.md §5.
type Result struct {
	Centroids              [][]float64
	Labels                 []int
	Iterations             int
	SSE                    float64
	EmptyClusterRetentions int // total owned-centroid-zeroing skips across the whole run
}

// Engine owns the constructed, ready-to-run state for one clustering job.
type Engine struct {
	runID    string
	points   *PointStore
	clusters *ClusterState
	barrier  *Barrier
	flags    []atomic.Bool
	slices   []Slice
	threads  int
	maxIter  int
	metrics  *metrics.Metrics
}

// New validates points/k/threads and constructs an Engine, selecting K
// distinct initial centroids uniformly at random from the input points
// (spec.md §4.2). It returns a configuration error (spec.md §4.4/§7) and
// constructs nothing when K < 2, N < K, T == 0, or D == 0.
func New(points [][]float64, opts Options) (*Engine, error) {
	n := len(points)
	d := 0
	if n > 0 {
		d = len(points[0])
	}

	switch {
	case opts.K < 2:
		return nil, cos.NewErrInvalidConfig("k must be >= 2")
	case n < opts.K:
		return nil, cos.NewErrInvalidConfig("n must be >= k")
	case opts.Threads == 0:
		return nil, cos.NewErrInvalidConfig("threads must be >= 1")
	case d == 0:
		return nil, cos.NewErrInvalidConfig("dimension must be >= 1")
	}

	seed := int64(0)
	if opts.Seed != nil {
		seed = *opts.Seed
	} else {
		seed = mono.NanoTime()
	}
	rng := rand.New(rand.NewSource(seed))

	ps := NewPointStore(points)
	cs := NewClusterState(ps, opts.K, opts.Threads, rng)

	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	runID, err := shortid.Generate()
	if err != nil {
		runID = "unknown"
	}

	e := &Engine{
		runID:    runID,
		points:   ps,
		clusters: cs,
		barrier:  NewBarrier(opts.Threads),
		flags:    make([]atomic.Bool, opts.Threads),
		slices:   splitSlices(n, opts.Threads),
		threads:  opts.Threads,
		maxIter:  opts.MaxIterations,
		metrics:  metrics.New(reg),
	}
	nlog.Infof("[%s] engine constructed: n=%d d=%d k=%d threads=%d seed=%d", runID, n, d, opts.K, opts.Threads, seed)
	return e, nil
}

// newEngineWithIndices builds an Engine with initial centroids pinned to
// specific point indices, for deterministic tests (spec.md §8 scenarios 1,
// 2, 3, 6, 8, 9, 10).
func newEngineWithIndices(points [][]float64, idx []int, threads, maxIter int) *Engine {
	ps := NewPointStore(points)
	cs := newClusterStateFromIndices(ps, idx, threads)
	n := len(points)
	return &Engine{
		runID:    "test",
		points:   ps,
		clusters: cs,
		barrier:  NewBarrier(threads),
		flags:    make([]atomic.Bool, threads),
		slices:   splitSlices(n, threads),
		threads:  threads,
		maxIter:  maxIter,
		metrics:  metrics.New(prometheus.NewRegistry()),
	}
}

// newEngineFromCentroids builds an Engine whose ClusterState starts exactly
// at the given centroid vectors, for the re-run idempotence test hook
// (spec.md §8 scenario 6).
func newEngineFromCentroids(points [][]float64, centroids [][]float64, threads, maxIter int) *Engine {
	ps := NewPointStore(points)
	cs := newClusterStateFromCentroids(ps.Dims(), centroids, threads)
	n := len(points)
	return &Engine{
		runID:    "test-rerun",
		points:   ps,
		clusters: cs,
		barrier:  NewBarrier(threads),
		flags:    make([]atomic.Bool, threads),
		slices:   splitSlices(n, threads),
		threads:  threads,
		maxIter:  maxIter,
		metrics:  metrics.New(prometheus.NewRegistry()),
	}
}

// Run spawns Threads workers, each executing the iteration protocol of
// spec.md §4.4 over its own disjoint slice, and blocks until every worker
// has detected global convergence (spec.md §4.3/§4.5) or, when
// MaxIterations > 0, has completed that many iterations. A worker that panics
// on an asserted invariant is surfaced as a single error from Run.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	g, _ := errgroup.WithContext(ctx)

	var iterCount atomic.Int32
	var emptyTotal atomic.Int32
	iterStart := time.Now()

	for id, slice := range e.slices {
		id, slice := id, slice
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("worker %d: %v", id, r)
				}
			}()
			w := newWorker(id, slice, e.threads, e.points, e.clusters, e.barrier, e.flags, e.maxIter)
			w.run(
				func(empties int) {
					if id == 0 {
						iterCount.Inc()
						e.metrics.ObserveIteration(iterStart)
						iterStart = time.Now()
					}
					if empties > 0 {
						emptyTotal.Add(int32(empties))
					}
				},
				nil,
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	nlog.Infof("[%s] converged after %d iterations", e.runID, iterCount.Load())
	e.metrics.AddEmptyClusters(int(emptyTotal.Load()))
	return e.harvest(int(iterCount.Load()), int(emptyTotal.Load())), nil
}

// harvest is spec.md §4.5: collect K centroid vectors and the per-point
// label array, plus the SPEC_FULL.md §5 SSE figure.
func (e *Engine) harvest(iterations, emptyClusterRetentions int) *Result {
	k := e.clusters.K()
	centroids := make([][]float64, k)
	for c := 0; c < k; c++ {
		centroids[c] = append([]float64(nil), e.clusters.Centroid(c)...)
	}

	labels := e.points.Labels()

	var sse float64
	for i := 0; i < e.points.Size(); i++ {
		c := labels[i]
		sse += sqDist(e.points.Row(i), centroids[c])
	}

	return &Result{
		Centroids:              centroids,
		Labels:                 labels,
		Iterations:             iterations,
		SSE:                    sse,
		EmptyClusterRetentions: emptyClusterRetentions,
	}
}
