package retention

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sheetport-hq/sheetport/pkg/export"
	"sheetport-hq/sheetport/pkg/telemetry/metrics"
)

// Report summarizes one pruning run.
type Report struct {
	Removed  []string
	Bytes    int64
	Duration time.Duration
}

// Pruner deletes artifacts older than MaxAge from Dir.
type Pruner struct {
	dir     string
	maxAge  time.Duration
	logger  *slog.Logger
	metrics *metrics.Collector
	now     func() time.Time
}

// Option configures a Pruner.
type Option func(*Pruner)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pruner) {
		if logger != nil {
			p.logger = logger.With("component", "export.retention")
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(c *metrics.Collector) Option {
	return func(p *Pruner) { p.metrics = c }
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(p *Pruner) { p.now = now }
}

// NewPruner creates a pruner for dir. A zero maxAge disables pruning.
func NewPruner(dir string, maxAge time.Duration, opts ...Option) *Pruner {
	p := &Pruner{
		dir:    dir,
		maxAge: maxAge,
		logger: slog.Default().With("component", "export.retention"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Dir returns the pruned directory.
func (p *Pruner) Dir() string {
	return p.dir
}

// IsArtifact reports whether name has the extension of a produced
// artifact: a supported format or a CSV archive.
func IsArtifact(name string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "zip" {
		return true
	}
	for _, f := range export.SupportedFormats {
		if ext == f.Extension() {
			return true
		}
	}
	return false
}

// Prune deletes artifacts directly under the directory whose modification
// time is before now minus MaxAge. Only files with an artifact extension
// are considered; hidden files, other files and subdirectories are left
// alone. A missing directory is not an error.
func (p *Pruner) Prune(ctx context.Context) (report *Report, err error) {
	start := time.Now()
	report = &Report{}
	defer func() {
		report.Duration = time.Since(start)
		p.metrics.RecordPrune(len(report.Removed), report.Bytes, report.Duration, err)
	}()

	if p.maxAge <= 0 {
		p.logger.Debug("retention disabled, nothing pruned")
		return report, nil
	}

	entries, err := os.ReadDir(p.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return report, nil
	}
	if err != nil {
		return report, fmt.Errorf("failed to read %s: %w", p.dir, err)
	}

	cutoff := p.now().Add(-p.maxAge)
	p.logger.Debug("pruning artifacts", "dir", p.dir, "cutoff_time", cutoff)

	var errs []error
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") || !IsArtifact(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// Removed concurrently.
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		path := filepath.Join(p.dir, entry.Name())
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", path, err))
			continue
		}
		report.Removed = append(report.Removed, path)
		report.Bytes += info.Size()
	}

	if len(report.Removed) > 0 {
		p.logger.Info("artifacts pruned",
			"removed_count", len(report.Removed),
			"bytes", report.Bytes,
			"max_age", p.maxAge.String(),
		)
	} else {
		p.logger.Debug("no artifacts pruned", "max_age", p.maxAge.String())
	}

	return report, errors.Join(errs...)
}
