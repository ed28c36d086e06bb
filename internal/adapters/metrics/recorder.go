package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kanbanwatch/internal/domain"
	"kanbanwatch/internal/ports"
)

const namespace = "kanbanwatch"

// Recorder exports cycle metrics to Prometheus.
// It owns a private registry so several recorders can coexist in tests.
type Recorder struct {
	registry *prometheus.Registry

	cycles       *prometheus.CounterVec
	additions    prometheus.Counter
	inserted     prometheus.Counter
	dropped      *prometheus.CounterVec
	snapshotSize prometheus.Gauge
	duration     prometheus.Histogram
}

// Ensure Recorder implements CycleObserver
var _ ports.CycleObserver = (*Recorder)(nil)

// NewRecorder creates a recorder with all collectors registered
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Reconciliation cycles by outcome",
		}, []string{"outcome"}),
		additions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "additions_total",
			Help:      "New files seen in the target folder",
		}),
		inserted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_inserted_total",
			Help:      "Links appended to the board",
		}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "categories_dropped_total",
			Help:      "Categories with new files but no matching heading",
		}, []string{"category"}),
		snapshotSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "snapshot_size",
			Help:      "Paths currently tracked by the snapshot",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Time spent in a reconciliation cycle",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}

	r.registry.MustRegister(r.cycles, r.additions, r.inserted, r.dropped, r.snapshotSize, r.duration)
	return r
}

// ObserveCycle records one cycle report
func (r *Recorder) ObserveCycle(_ context.Context, report *domain.CycleReport) error {
	r.cycles.WithLabelValues(report.Outcome()).Inc()
	if report.Skipped {
		return nil
	}

	r.additions.Add(float64(report.Additions.Len()))
	r.inserted.Add(float64(len(report.Inserted)))
	for _, category := range report.Dropped {
		r.dropped.WithLabelValues(category).Inc()
	}
	if report.Err == nil {
		r.snapshotSize.Set(float64(report.SnapshotSize))
	}
	r.duration.Observe(report.Duration.Seconds())
	return nil
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
