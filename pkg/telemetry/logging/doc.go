// Package logging builds the structured loggers used across sheetport.
//
// Loggers are plain *slog.Logger values. Packages derive their own with a
// component attribute:
//
//	logger := slog.Default().With("component", "export.exporter")
//
// Fields stored in a context (request ID, exported type and format, trace
// ID) are appended to every record logged with that context:
//
//	ctx = logging.WithRequestID(ctx, "req-123")
//	logger.InfoContext(ctx, "export finished")  // includes request_id
package logging
