// Package metrics counts design runs in a private Prometheus registry and
// can dump it in the node-exporter textfile format.
package metrics

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"lamp-core/lamp"
)

const namespace = "lamp"

// Run outcomes used as the status label.
const (
	StatusOK        = "ok"
	StatusNoResult  = "no_result"
	StatusCancelled = "cancelled"
	StatusError     = "error"
)

// Recorder holds the design metrics. All methods are safe for concurrent use.
type Recorder struct {
	reg *prometheus.Registry

	runs         *prometheus.CounterVec
	sets         prometheus.Counter
	combinations prometheus.Counter
	regions      prometheus.Counter
	rejections   *prometheus.CounterVec
	candidates   *prometheus.CounterVec
	duration     prometheus.Histogram
}

// New registers the design metrics on a fresh registry.
func New() *Recorder {
	r := &Recorder{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "design_runs_total",
			Help:      "Design calls by outcome.",
		}, []string{"status"}),
		sets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "primer_sets_total",
			Help:      "Primer sets accepted.",
		}),
		combinations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "combinations_total",
			Help:      "Candidate combinations validated.",
		}),
		regions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "regions_total",
			Help:      "Search regions visited.",
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geometry_rejections_total",
			Help:      "Combinations rejected by geometry rule.",
		}, []string{"rule"}),
		candidates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_total",
			Help:      "Ranked candidates by primer role.",
		}, []string{"role"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "design_duration_seconds",
			Help:      "Wall time of one Design call.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}
	r.reg = prometheus.NewRegistry()
	r.reg.MustRegister(r.runs, r.sets, r.combinations, r.regions, r.rejections, r.candidates, r.duration)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// Observe records one design run. It matches the signature of
// lamp.WithObserver.
func (r *Recorder) Observe(s lamp.RunStats) {
	r.runs.WithLabelValues(Status(s.Err)).Inc()
	r.sets.Add(float64(s.Accepted))
	r.combinations.Add(float64(s.Combinations))
	r.regions.Add(float64(s.Regions))
	for rule, n := range s.Rejections {
		r.rejections.WithLabelValues(rule).Add(float64(n))
	}
	for role, n := range s.Candidates {
		r.candidates.WithLabelValues(role).Add(float64(n))
	}
	r.duration.Observe(s.Elapsed.Seconds())
}

// Status classifies a Design error into a status label value.
func Status(err error) string {
	var ic *lamp.InsufficientCandidatesError
	switch {
	case err == nil:
		return StatusOK
	case errors.As(err, &ic):
		return StatusNoResult
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return StatusCancelled
	default:
		return StatusError
	}
}

// WriteTextfile writes the registry to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
