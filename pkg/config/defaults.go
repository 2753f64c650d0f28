package config

import "time"

// Default values for configuration fields.
const (
	// Export defaults
	DefaultOutputDir         = "public/"
	DefaultFormat            = "xlsx"
	DefaultRetentionMaxAge   = 24 * time.Hour
	DefaultRetentionSchedule = "0 * * * *"

	// Server defaults
	DefaultListenAddress   = "127.0.0.1:8080"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 120 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1048576 // 1MB
	DefaultDownloadPath    = "/download"
	DefaultExportPath      = "/export"

	// Source defaults
	DefaultSourceDriver       = "sqlite"
	DefaultSourcePath         = "data/sheetport.db"
	DefaultSourceBusyTimeout  = 5 * time.Second
	DefaultSourceMaxOpenConns = 4

	// Telemetry defaults
	DefaultLoggingLevel       = "info"
	DefaultLoggingFormat      = "json"
	DefaultMetricsPath        = "/metrics"
	DefaultMetricsNamespace   = "sheetport"
	DefaultMetricsSubsystem   = "export"
	DefaultTracingServiceName = "sheetport"
	DefaultTracingSampleRatio = 1.0
)

// DefaultDurationBuckets are the export duration histogram buckets.
var DefaultDurationBuckets = []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
//
// Boolean switches whose default is true (metrics.enabled,
// tracing.insecure) cannot be told apart from an explicit false here;
// NewDefaultConfig sets them before the YAML file is decoded on top.
func ApplyDefaults(cfg *Config) {
	// Export defaults
	if cfg.Export.OutputDir == "" {
		cfg.Export.OutputDir = DefaultOutputDir
	}
	if cfg.Export.DefaultFormat == "" {
		cfg.Export.DefaultFormat = DefaultFormat
	}
	if cfg.Export.Retention.MaxAge == 0 {
		cfg.Export.Retention.MaxAge = DefaultRetentionMaxAge
	}
	if cfg.Export.Retention.Schedule == "" {
		cfg.Export.Retention.Schedule = DefaultRetentionSchedule
	}

	// Server defaults
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	if cfg.Server.DownloadPath == "" {
		cfg.Server.DownloadPath = DefaultDownloadPath
	}
	if cfg.Server.ExportPath == "" {
		cfg.Server.ExportPath = DefaultExportPath
	}

	// Source defaults
	if cfg.Source.Driver == "" {
		cfg.Source.Driver = DefaultSourceDriver
	}
	if cfg.Source.Path == "" {
		cfg.Source.Path = DefaultSourcePath
	}
	if cfg.Source.BusyTimeout == 0 {
		cfg.Source.BusyTimeout = DefaultSourceBusyTimeout
	}
	if cfg.Source.MaxOpenConns == 0 {
		cfg.Source.MaxOpenConns = DefaultSourceMaxOpenConns
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Telemetry.Metrics.DurationBuckets) == 0 {
		cfg.Telemetry.Metrics.DurationBuckets = append([]float64(nil), DefaultDurationBuckets...)
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingServiceName
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
}

// NewDefaultConfig returns a configuration with every default applied,
// including the boolean switches that default to true.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	cfg.Telemetry.Metrics.Enabled = true
	cfg.Telemetry.Tracing.Insecure = true
	ApplyDefaults(cfg)
	return cfg
}
