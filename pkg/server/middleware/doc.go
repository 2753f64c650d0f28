// Package middleware provides the HTTP middleware chain of the sheetport
// server: request IDs, tracing, structured request logging, metrics and
// panic recovery.
//
// The server wraps its mux from the inside out:
//
//	handler = middleware.Metrics(collector)(handler)
//	handler = middleware.Logging(logger)(handler)
//	handler = middleware.Tracing(tracer)(handler)
//	handler = middleware.RequestID(handler)
//	handler = middleware.Recovery(logger)(handler)
package middleware
