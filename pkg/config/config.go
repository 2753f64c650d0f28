package config

import "time"

// Config is the root configuration structure for sheetport.
type Config struct {
	// Export contains artifact generation settings: output location,
	// default format, naming and retention.
	Export ExportConfig `yaml:"export"`

	// Server contains HTTP server configuration for the download and
	// export trigger endpoints.
	Server ServerConfig `yaml:"server"`

	// Source configures the dataset exports are read from.
	Source SourceConfig `yaml:"source"`

	// Telemetry contains configuration for logging, metrics and tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ExportConfig contains configuration for artifact generation.
type ExportConfig struct {
	// OutputDir is the directory artifacts are written to. It is created
	// on demand.
	// Default: "public/"
	OutputDir string `yaml:"output_dir"`

	// DefaultFormat is used when a request does not name a format.
	// Options: "xlsx", "csv"
	// Default: "xlsx"
	DefaultFormat string `yaml:"default_format"`

	// DefaultGroup is used when a request does not name a group.
	// Empty selects every exportable member.
	DefaultGroup string `yaml:"default_group"`

	// UniqueNames appends a random suffix to every artifact base name so
	// concurrent exports with the same name never overwrite each other.
	// Default: false
	UniqueNames bool `yaml:"unique_names"`

	// SampleLimit caps how many items are scanned to detect the type of
	// relation values. Zero scans every item.
	// Default: 0
	SampleLimit int `yaml:"sample_limit"`

	// Retention controls pruning of old artifacts.
	Retention RetentionConfig `yaml:"retention"`
}

// RetentionConfig contains artifact retention settings.
type RetentionConfig struct {
	// Enabled turns on scheduled pruning when the server runs.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// MaxAge is the age after which artifacts are deleted.
	// Default: 24h
	MaxAge time.Duration `yaml:"max_age"`

	// Schedule is the cron expression for pruning runs.
	// Default: "0 * * * *" (hourly)
	Schedule string `yaml:"schedule"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:8080").
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. Exports run inside the request, so it bounds export time.
	// Default: 120s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum time to wait for the next request when
	// keep-alives are enabled.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits the size of request headers.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// DownloadPath is the HTTP path of the file-serving endpoint.
	// Default: "/download"
	DownloadPath string `yaml:"download_path"`

	// ExportPath is the HTTP path of the export trigger endpoint.
	// Default: "/export"
	ExportPath string `yaml:"export_path"`
}

// SourceConfig configures the dataset backing the export trigger.
type SourceConfig struct {
	// Driver selects the data source.
	// Options: "sqlite3" (mattn/go-sqlite3, cgo), "sqlite" (modernc.org/sqlite,
	// pure Go), "memory" (built-in demo data)
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// Path is the database file for the sqlite drivers.
	// Default: "data/sheetport.db"
	Path string `yaml:"path"`

	// Seed populates an empty database with demo data.
	// Default: false
	Seed bool `yaml:"seed"`

	// BusyTimeout is the sqlite busy timeout.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// MaxOpenConns is the maximum number of open database connections.
	// Default: 4
	MaxOpenConns int `yaml:"max_open_conns"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and served.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "sheetport"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "export"
	Subsystem string `yaml:"subsystem"`

	// DurationBuckets defines histogram buckets for export duration (seconds).
	// Default: [0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30]
	DurationBuckets []float64 `yaml:"duration_buckets"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether traces are exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Example: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS for the collector connection.
	// Default: true
	Insecure bool `yaml:"insecure"`

	// ServiceName is the service name in traces.
	// Default: "sheetport"
	ServiceName string `yaml:"service_name"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`
}
