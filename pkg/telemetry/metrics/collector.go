package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"sheetport-hq/sheetport/pkg/config"
)

// Export status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Collector owns every Prometheus metric exposed by sheetport. A nil
// *Collector is valid and records nothing.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	exportMetrics    *ExportMetrics
	retentionMetrics *RetentionMetrics
	httpMetrics      *HTTPMetrics
}

// NewCollector creates a collector registered with registry. A nil
// registry gets a fresh one.
//
// Example:
//
//	cfg := &config.MetricsConfig{Enabled: true, Namespace: "sheetport", Subsystem: "export"}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = append([]float64(nil), config.DefaultDurationBuckets...)
	}

	return &Collector{
		config:           cfg,
		registry:         registry,
		exportMetrics:    NewExportMetrics(cfg, registry),
		retentionMetrics: NewRetentionMetrics(cfg, registry),
		httpMetrics:      NewHTTPMetrics(cfg, registry),
	}
}

// Registry returns the Prometheus registry metrics are registered with.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

func (c *Collector) enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordExport records a finished export.
//
// Parameters:
//   - typeName: registered type name (e.g., "Board")
//   - format: output format ("xlsx", "csv")
//   - status: StatusSuccess or StatusError
//   - duration: total export duration
//   - rows: data rows written to the main sheet
//   - sheets: number of sheets produced
func (c *Collector) RecordExport(typeName, format, status string, duration time.Duration, rows, sheets int) {
	if !c.enabled() {
		return
	}
	c.exportMetrics.RecordExport(typeName, format, status, duration, rows, sheets)
}

// RecordExportError records an export failure by error kind.
func (c *Collector) RecordExportError(format, kind string) {
	if !c.enabled() {
		return
	}
	c.exportMetrics.errorsTotal.WithLabelValues(format, kind).Inc()
}

// RecordArtifactSize records the size of a produced artifact.
func (c *Collector) RecordArtifactSize(format string, bytes int64) {
	if !c.enabled() {
		return
	}
	c.exportMetrics.artifactBytes.WithLabelValues(format).Observe(float64(bytes))
}

// RecordPrune records a retention run.
func (c *Collector) RecordPrune(removed int, bytes int64, duration time.Duration, err error) {
	if !c.enabled() {
		return
	}
	c.retentionMetrics.RecordPrune(removed, bytes, duration, err)
}

// RecordHTTPRequest records a served HTTP request.
func (c *Collector) RecordHTTPRequest(route string, code int, duration time.Duration) {
	if !c.enabled() {
		return
	}
	c.httpMetrics.RecordRequest(route, code, duration)
}
