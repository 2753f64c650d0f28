// Package tracing wraps OpenTelemetry for sheetport.
//
// Exports are traced as one span per request with child spans for the
// resolve, build, write and package steps:
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//	defer tracer.Shutdown(ctx)
//
//	ctx, span := tracer.Start(ctx, "export")
//	defer span.End()
//
// When tracing is disabled, or the tracer is nil, spans are noops.
// Enabled tracers export over OTLP gRPC to the configured endpoint and
// sample with a parent-based trace ID ratio.
package tracing
