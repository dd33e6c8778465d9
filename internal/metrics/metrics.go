package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	backendRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "easydinar",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Total number of calls made to the banking API.",
		},
		[]string{"endpoint", "status"},
	)

	backendDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "easydinar",
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Duration of calls made to the banking API.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		},
		[]string{"endpoint"},
	)

	activityEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "easydinar",
			Subsystem: "activity",
			Name:      "events_total",
			Help:      "Total number of user activity events recorded.",
		},
		[]string{"kind", "outcome"},
	)
)

func init() {
	Registry.MustRegister(
		backendRequests,
		backendDuration,
		activityEvents,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

var (
	echoOnce       sync.Once
	echoMiddleware echo.MiddlewareFunc
)

// EchoMiddleware returns the request metrics middleware. The collectors are registered
// once per process, so every server instance shares them.
func EchoMiddleware() echo.MiddlewareFunc {
	echoOnce.Do(func() {
		echoMiddleware = echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "easydinar",
			Subsystem:  "http",
			Registerer: Registry,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics" || c.Path() == "/static*"
			},
			DoNotUseRequestPathFor404: true,
		})
	})
	return echoMiddleware
}

// EchoHandler serves the registry for echo routes.
func EchoHandler() echo.HandlerFunc {
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: Registry})
}

// ObserveBackendCall records one outbound API call. status is 0 when the call never
// produced a response.
func ObserveBackendCall(endpoint string, status int, elapsed time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	backendRequests.WithLabelValues(endpoint, label).Inc()
	backendDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// CountActivity increments the activity counter for kind and outcome.
func CountActivity(kind, outcome string) {
	activityEvents.WithLabelValues(kind, outcome).Inc()
}
