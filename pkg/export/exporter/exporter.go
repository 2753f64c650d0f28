package exporter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"sheetport-hq/sheetport/pkg/config"
	"sheetport-hq/sheetport/pkg/export"
	"sheetport-hq/sheetport/pkg/export/matrix"
	"sheetport-hq/sheetport/pkg/export/resolver"
	"sheetport-hq/sheetport/pkg/export/schema"
	"sheetport-hq/sheetport/pkg/export/writer"
	"sheetport-hq/sheetport/pkg/telemetry/logging"
	"sheetport-hq/sheetport/pkg/telemetry/metrics"
	"sheetport-hq/sheetport/pkg/telemetry/tracing"
)

// Exporter produces export artifacts. It is safe for concurrent use;
// concurrent exports with the same base name overwrite each other unless
// unique names are enabled.
type Exporter struct {
	registry *schema.Registry
	resolver *resolver.Resolver
	config   config.ExportConfig
	logger   *slog.Logger
	metrics  *metrics.Collector
	tracer   *tracing.Tracer
	newID    func() string
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		if logger != nil {
			e.logger = logger.With("component", "export.exporter")
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(c *metrics.Collector) Option {
	return func(e *Exporter) { e.metrics = c }
}

// WithTracer sets the tracer.
func WithTracer(t *tracing.Tracer) Option {
	return func(e *Exporter) { e.tracer = t }
}

// WithIDGenerator replaces the generator of unique name suffixes.
func WithIDGenerator(fn func() string) Option {
	return func(e *Exporter) { e.newID = fn }
}

// New creates an exporter over registry.
func New(registry *schema.Registry, cfg config.ExportConfig, opts ...Option) *Exporter {
	e := &Exporter{
		registry: registry,
		config:   cfg,
		logger:   slog.Default().With("component", "export.exporter"),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.resolver = resolver.New(registry,
		resolver.WithLogger(e.logger),
		resolver.WithSampleLimit(cfg.SampleLimit),
	)
	return e
}

// Export runs the pipeline for req and returns the produced artifact.
func (e *Exporter) Export(ctx context.Context, req Request) (res *Result, err error) {
	start := time.Now()

	format := req.Format
	if format == "" {
		format = export.Format(e.config.DefaultFormat)
	}
	group := req.Group
	if group == nil && e.config.DefaultGroup != "" {
		group = export.Group(e.config.DefaultGroup)
	}

	ctx = logging.WithExport(ctx, req.Type, string(format))
	ctx, span := e.tracer.Start(ctx, "export")
	span.SetAttributes(tracing.ExportAttributes(req.Type, string(format), group, len(req.Items))...)
	defer func() {
		rows, sheets := 0, 0
		status := metrics.StatusSuccess
		if err != nil {
			status = metrics.StatusError
			e.metrics.RecordExportError(string(format), ErrorKind(err))
			e.logger.ErrorContext(ctx, "export failed", "error", err)
		} else {
			rows, sheets = res.Rows, len(res.Sheets)
			span.SetAttributes(
				attribute.String(tracing.AttrExportPath, res.Path),
				attribute.Int(tracing.AttrExportRows, rows),
				attribute.Int(tracing.AttrExportSheets, sheets),
			)
		}
		e.metrics.RecordExport(req.Type, string(format), status, time.Since(start), rows, sheets)
		tracing.End(span, err)
	}()

	if format, err = export.ParseFormat(string(format)); err != nil {
		return nil, err
	}

	t, err := e.registry.Lookup(req.Type)
	if err != nil {
		return nil, err
	}
	if !t.IsExportable() {
		return nil, export.NewConfigurationError(req.Type, "type is not marked exportable")
	}

	if err := ValidateBaseName(req.BaseName); err != nil {
		return nil, err
	}
	base := req.BaseName
	if e.config.UniqueNames {
		base = base + "-" + e.newID()
	}

	dir := req.OutputDir
	if dir == "" {
		dir = e.config.OutputDir
	}
	if err := ensureDir(dir); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	_, rspan := e.tracer.Start(ctx, "export.resolve")
	descs := e.resolver.Resolve(t, group, req.Items)
	rspan.SetAttributes(attribute.Int(tracing.AttrExportFields, len(descs)))
	rspan.End()

	_, bspan := e.tracer.Start(ctx, "export.build")
	m := matrix.Build(req.Items, descs)
	m.Main.Name = t.Name()
	bspan.End()

	wctx, wspan := e.tracer.Start(ctx, "export.write")
	res, err = e.write(wctx, format, dir, base, m)
	tracing.End(wspan, err)
	if err != nil {
		return nil, err
	}

	res.Rows = m.Main.DataRows()
	res.Duration = time.Since(start)
	if info, statErr := os.Stat(res.Path); statErr == nil {
		e.metrics.RecordArtifactSize(string(format), info.Size())
	}

	e.logger.InfoContext(ctx, "export completed",
		"path", res.Path,
		"rows", res.Rows,
		"sheets", len(res.Sheets),
		"fields", len(descs),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

func (e *Exporter) write(ctx context.Context, format export.Format, dir, base string, m *matrix.Matrix) (*Result, error) {
	w, err := writer.New(format)
	if err != nil {
		return nil, err
	}
	defer w.Close()

	if _, err := writer.Realize(w, m); err != nil {
		return nil, fmt.Errorf("failed to realize matrix: %w", err)
	}

	switch ww := w.(type) {
	case *writer.XLSXWriter:
		path := filepath.Join(dir, base+".xlsx")
		if err := ww.Save(path); err != nil {
			return nil, export.NewIOError("save", path, err)
		}
		return &Result{
			Path:   path,
			Files:  []string{filepath.Base(path)},
			Sheets: ww.SheetNames(),
		}, nil
	case *writer.CSVWriter:
		return e.writeCSV(ctx, ww, dir, base)
	}
	return nil, export.NewUnsupportedFormatError(string(format))
}

// writeCSV saves one file per sheet and packs them when there are several.
func (e *Exporter) writeCSV(ctx context.Context, w *writer.CSVWriter, dir, base string) (*Result, error) {
	names := csvFileNames(w, base)
	sheets := make([]string, w.SheetCount())
	paths := make([]string, 0, len(names))

	for i, name := range names {
		sheets[i] = w.SheetName(i)
		path := filepath.Join(dir, name)
		if err := w.SaveSheet(i, path); err != nil {
			removeAll(paths)
			_ = os.Remove(path)
			return nil, export.NewIOError("save", path, err)
		}
		paths = append(paths, path)
	}

	if len(paths) == 1 {
		return &Result{Path: paths[0], Files: names, Sheets: sheets}, nil
	}

	_, span := e.tracer.Start(ctx, "export.package")
	defer span.End()

	zipPath := filepath.Join(dir, base+".zip")
	if err := pack(zipPath, paths); err != nil {
		removeAll(paths)
		_ = os.Remove(zipPath)
		tracing.SetError(span, err)
		return nil, export.NewIOError("zip", zipPath, err)
	}
	removeAll(paths)

	return &Result{Path: zipPath, Files: names, Sheets: sheets}, nil
}

// ensureDir creates dir and checks a file can be created in it.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return export.NewIOError("mkdir", dir, err)
	}
	probe, err := os.CreateTemp(dir, ".sheetport-probe-*")
	if err != nil {
		return export.NewIOError("probe", dir, err)
	}
	name := probe.Name()
	probe.Close()
	if err := os.Remove(name); err != nil {
		return export.NewIOError("probe", dir, err)
	}
	return nil
}

func removeAll(paths []string) {
	for _, p := range paths {
		_ = os.Remove(p)
	}
}

// ErrorKind classifies err for metrics and HTTP status mapping.
func ErrorKind(err error) string {
	var (
		cfgErr    *export.ConfigurationError
		fmtErr    *export.UnsupportedFormatError
		valErr    *export.ValidationError
		ioErr     *export.IOError
		resolvErr *export.ResolutionError
	)
	switch {
	case errors.As(err, &fmtErr):
		return "unsupported_format"
	case errors.As(err, &cfgErr):
		return "configuration"
	case errors.As(err, &valErr):
		return "validation"
	case errors.As(err, &ioErr):
		return "io"
	case errors.As(err, &resolvErr):
		return "resolution"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	return "internal"
}
