package providers

import (
	"net/http"
	"time"
)

// statusRecorder assumes 200 until a handler says otherwise, matching
// net/http's implicit WriteHeader on first Write.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// MetricsMiddleware records a count and a latency observation per endpoint
// for every request passing through the api mux.
func MetricsMiddleware(metrics MetricsProviderInterface, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		defer func() {
			metrics.IncRequestsTotal(r.URL.Path, rec.status)
			metrics.ObserveRequestDuration(r.URL.Path, time.Since(start))
		}()

		next.ServeHTTP(rec, r)
	})
}
