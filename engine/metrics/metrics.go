// Package metrics instruments the k-means worker protocol with Prometheus
// collectors, the way aistore instruments every xaction's phases.
/*
 * Copyright (c) 2026, ghjramos. All rights reserved.
 */
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the optional observability surface for an engine run: nothing
// in the core reads these back, but they make the barrier-delimited phases
// of spec.md §4.4 externally observable.
type Metrics struct {
	Iterations    prometheus.Counter
	IterationTime prometheus.Histogram
	EmptyClusters prometheus.Counter
}

// New registers a fresh set of collectors against reg. Pass a
// prometheus.NewRegistry() per engine run in tests to avoid duplicate
// registration; pass prometheus.DefaultRegisterer in a long-lived process.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kmeans_iterations_total",
			Help: "Number of completed Phase A + Phase B iteration cycles.",
		}),
		IterationTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kmeans_iteration_duration_seconds",
			Help:    "Wall-clock duration of one iteration cycle.",
			Buckets: prometheus.DefBuckets,
		}),
		EmptyClusters: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kmeans_empty_clusters_total",
			Help: "Number of times a recenter cycle retained a centroid because its count was 0.",
		}),
	}
	reg.MustRegister(m.Iterations, m.IterationTime, m.EmptyClusters)
	return m
}

// ObserveIteration records one completed iteration, timed since start. Empty
// cluster retentions are reported separately via AddEmptyClusters since they
// accrue across all workers' owned centroids, not just the reporting one.
func (m *Metrics) ObserveIteration(start time.Time) {
	if m == nil {
		return
	}
	m.Iterations.Inc()
	m.IterationTime.Observe(time.Since(start).Seconds())
}

// AddEmptyClusters records n additional empty-cluster retentions, summed
// across every worker's owned centroids for the run (spec.md §4.4's
// empty-cluster retention policy).
func (m *Metrics) AddEmptyClusters(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.EmptyClusters.Add(float64(n))
}
