// Package server provides the sheetport HTTP server.
//
// # Routes
//
//   - GET /download?path=<p> streams an artifact from the output directory.
//     Paths outside it are rejected with 403; missing files return 404.
//   - GET|POST /export?class=&exportType=&exportFileName=&exportGroup= runs
//     an export against the configured data source and answers 303 See
//     Other to the download URL. Unsupported formats and invalid names
//     return 400, unknown or non-exportable types 422 and filesystem
//     failures 500.
//   - GET /health, /ready and /version report process health.
//   - GET /metrics serves Prometheus metrics when enabled.
//
// The download and export paths are configurable.
//
// # Middleware chain
//
// From the outside in: recovery, request ID, tracing, logging, metrics.
//
// # Usage
//
//	srv := server.NewServer(cfg, server.Deps{
//	    Exporter: exp,
//	    Source:   provider,
//	    Health:   checker,
//	    Metrics:  collector,
//	    Tracer:   tracer,
//	})
//	if err := srv.Start(ctx); err != nil {
//	    return err
//	}
//
// Start blocks until the context is cancelled or SIGINT/SIGTERM arrives,
// then shuts down gracefully within the configured timeout.
package server
