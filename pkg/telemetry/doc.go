// Package telemetry groups sheetport's observability packages.
//
//   - logging: slog setup with request and export context attributes
//   - metrics: Prometheus collectors for exports, retention and HTTP
//   - tracing: OpenTelemetry spans exported over OTLP gRPC
//   - health: liveness, readiness and version endpoints
package telemetry
