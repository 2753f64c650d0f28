package middleware

import (
	"net/http"
	"time"

	"sheetport-hq/sheetport/pkg/telemetry/metrics"
)

// Metrics records request counts and latencies per route. Routes are the
// URL path, which the server mux keeps to a fixed set.
func Metrics(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)
			collector.RecordHTTPRequest(r.URL.Path, rec.status, time.Since(start))
		})
	}
}
