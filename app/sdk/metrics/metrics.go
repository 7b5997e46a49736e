// Package metrics constructs the metrics the application will track.
package metrics

import (
	"context"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartroom_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "smartroom_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "smartroom_http_errors_total",
			Help: "Total number of requests that ended in an error",
		},
	)

	panics = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "smartroom_panics_total",
			Help: "Total number of recovered panics",
		},
	)

	goroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "smartroom_goroutines",
			Help: "Number of goroutines sampled by the request middleware",
		},
	)

	logins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartroom_auth_logins_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)

	requestCount atomic.Int64
)

// AddRequest records a completed request. Every thousandth request also
// samples the goroutine count.
func AddRequest(ctx context.Context, method string, path string, status int, since time.Duration) {
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(since.Seconds())

	if requestCount.Add(1)%1000 == 0 {
		goroutines.Set(float64(runtime.NumGoroutine()))
	}
}

// AddErrors increments the errors metric by 1.
func AddErrors(ctx context.Context) {
	httpErrors.Inc()
}

// AddPanics increments the panics metric by 1.
func AddPanics(ctx context.Context) {
	panics.Inc()
}

// AddLogin records the outcome of a login attempt.
func AddLogin(ctx context.Context, success bool) {
	result := "failure"
	if success {
		result = "success"
	}

	logins.WithLabelValues(result).Inc()
}
