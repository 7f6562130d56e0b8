// Package metrics records batch validation counters in a Prometheus registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/five82/vidprep/internal/validation"
)

const namespace = "vidprep"

// Outcome labels for files_total.
const (
	OutcomePassed    = "passed"
	OutcomeFailed    = "failed"
	OutcomeProbeErr  = "probe_error"
	OutcomeTimeout   = "probe_timeout"
	OutcomeCancelled = "cancelled"
)

// Collector holds the validation metrics. It satisfies batch.Observer so it
// can be attached to a run directly. Safe for concurrent use.
type Collector struct {
	registry *prometheus.Registry

	activeUnits  prometheus.Gauge
	unitDuration prometheus.Histogram
	files        *prometheus.CounterVec
	checkFailure *prometheus.CounterVec
	batches      *prometheus.CounterVec
}

// New creates a collector with its own registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Collector{
		registry: reg,
		activeUnits: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_units",
			Help:      "Number of files currently being probed and checked",
		}),
		unitDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "unit_duration_seconds",
			Help:      "Time taken to probe and check one file",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		files: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_total",
			Help:      "Files validated, by outcome",
		}, []string{"outcome"}),
		checkFailure: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "check_failures_total",
			Help:      "Failed checks, by check name",
		}, []string{"check"}),
		batches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Completed batches, by whether they were cancelled",
		}, []string{"cancelled"}),
	}
}

// Registry returns the registry backing the collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) UnitStarted(int, string) {
	c.activeUnits.Inc()
}

func (c *Collector) UnitDone(r *validation.Report, elapsed time.Duration) {
	c.activeUnits.Dec()
	c.unitDuration.Observe(elapsed.Seconds())
	c.files.WithLabelValues(outcome(r)).Inc()
	for _, e := range r.Errors() {
		c.checkFailure.WithLabelValues(e.Check).Inc()
	}
}

// BatchDone counts a finished batch.
func (c *Collector) BatchDone(cancelled bool) {
	label := "false"
	if cancelled {
		label = "true"
	}
	c.batches.WithLabelValues(label).Inc()
}

// WriteTextfile writes the current values in the text exposition format,
// suitable for the node exporter's textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}

func outcome(r *validation.Report) string {
	if r.Failure != nil {
		switch r.Failure.Kind {
		case OutcomeTimeout, OutcomeCancelled:
			return r.Failure.Kind
		default:
			return OutcomeProbeErr
		}
	}
	if r.HasErrors() {
		return OutcomeFailed
	}
	return OutcomePassed
}
