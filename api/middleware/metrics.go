package middleware

import (
	"net/http"
	"time"

	"github.com/datapulse/dataplatform-backend/pkg/metrics"
)

// Metrics records per-request counters and latency. Safe with a nil
// collector, so test routers can skip registration.
func Metrics(httpMetrics *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, r)

			if rec.status == 0 {
				rec.status = http.StatusOK
			}
			httpMetrics.ObserveRequest(r.Method, r.URL.Path, rec.status, time.Since(start))
		})
	}
}
