// Package metrics exposes sheetport's Prometheus metrics.
//
// A single Collector registers every metric with its own registry:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordExport("Board", "csv", metrics.StatusSuccess, d, 120, 2)
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//
// Metric names are prefixed with the configured namespace and subsystem
// (default "sheetport_export_"). Recording is a no-op when metrics are
// disabled or the collector is nil.
package metrics
