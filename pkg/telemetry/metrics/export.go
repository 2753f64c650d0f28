package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"sheetport-hq/sheetport/pkg/config"
)

// ExportMetrics tracks export runs.
//
// Metrics:
//   - sheetport_export_exports_total: exports by type, format, status
//   - sheetport_export_duration_seconds: export duration histogram
//   - sheetport_export_rows_total: data rows written
//   - sheetport_export_sheets: sheets per export
//   - sheetport_export_errors_total: failures by format and error kind
//   - sheetport_export_artifact_bytes: artifact size histogram
type ExportMetrics struct {
	exportsTotal  *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	rowsTotal     *prometheus.CounterVec
	sheets        *prometheus.HistogramVec
	errorsTotal   *prometheus.CounterVec
	artifactBytes *prometheus.HistogramVec
}

// NewExportMetrics creates and registers export metrics with registry.
func NewExportMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ExportMetrics {
	em := &ExportMetrics{
		exportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "exports_total",
				Help:      "Total number of exports",
			},
			[]string{"type", "format", "status"},
		),

		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "duration_seconds",
				Help:      "Duration of exports in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"type", "format"},
		),

		rowsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "rows_total",
				Help:      "Total number of data rows written to main sheets",
			},
			[]string{"type", "format"},
		),

		sheets: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "sheets",
				Help:      "Number of sheets produced per export",
				Buckets:   []float64{1, 2, 3, 5, 10},
			},
			[]string{"type", "format"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "errors_total",
				Help:      "Total number of failed exports by error kind",
			},
			[]string{"format", "kind"},
		),

		artifactBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "artifact_bytes",
				Help:      "Size of produced artifacts in bytes",
				Buckets:   prometheus.ExponentialBuckets(1024, 4, 10), // 1KB to 256MB
			},
			[]string{"format"},
		),
	}

	registry.MustRegister(
		em.exportsTotal,
		em.duration,
		em.rowsTotal,
		em.sheets,
		em.errorsTotal,
		em.artifactBytes,
	)

	return em
}

// RecordExport records a finished export. Row and sheet counts are only
// recorded for successful exports.
func (em *ExportMetrics) RecordExport(typeName, format, status string, duration time.Duration, rows, sheets int) {
	em.exportsTotal.WithLabelValues(typeName, format, status).Inc()
	em.duration.WithLabelValues(typeName, format).Observe(duration.Seconds())

	if status != StatusSuccess {
		return
	}
	em.rowsTotal.WithLabelValues(typeName, format).Add(float64(rows))
	em.sheets.WithLabelValues(typeName, format).Observe(float64(sheets))
}
