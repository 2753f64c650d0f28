package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"sheetport-hq/sheetport/pkg/config"
)

// RetentionMetrics tracks artifact pruning.
//
// Metrics:
//   - sheetport_export_prune_runs_total: prune runs by status
//   - sheetport_export_pruned_files_total: artifacts deleted
//   - sheetport_export_pruned_bytes_total: bytes reclaimed
//   - sheetport_export_prune_duration_seconds: prune run duration
type RetentionMetrics struct {
	runsTotal   *prometheus.CounterVec
	filesTotal  prometheus.Counter
	bytesTotal  prometheus.Counter
	runDuration prometheus.Histogram
}

// NewRetentionMetrics creates and registers retention metrics with registry.
func NewRetentionMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RetentionMetrics {
	rm := &RetentionMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "prune_runs_total",
				Help:      "Total number of artifact prune runs",
			},
			[]string{"status"},
		),

		filesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "pruned_files_total",
				Help:      "Total number of artifacts deleted by retention",
			},
		),

		bytesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "pruned_bytes_total",
				Help:      "Total bytes reclaimed by retention",
			},
		),

		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "prune_duration_seconds",
				Help:      "Duration of prune runs in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}

	registry.MustRegister(
		rm.runsTotal,
		rm.filesTotal,
		rm.bytesTotal,
		rm.runDuration,
	)

	return rm
}

// RecordPrune records a prune run.
func (rm *RetentionMetrics) RecordPrune(removed int, bytes int64, duration time.Duration, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	rm.runsTotal.WithLabelValues(status).Inc()
	rm.filesTotal.Add(float64(removed))
	rm.bytesTotal.Add(float64(bytes))
	rm.runDuration.Observe(duration.Seconds())
}
