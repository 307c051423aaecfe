package httpapi

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the HTTP layer. Collectors are
// registered on the default registerer at construction so the /metrics
// endpoint exposes them.
type Metrics struct {
	authAttempts    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campusauth",
			Name:      "auth_attempts_total",
			Help:      "Registration and login attempts by operation and outcome.",
		}, []string{"op", "outcome"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "campusauth",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by path and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path", "status"}),
	}

	// Unregister-then-register keeps repeated test servers from panicking on
	// duplicate collectors.
	prometheus.Unregister(m.authAttempts)
	prometheus.Unregister(m.requestDuration)
	prometheus.MustRegister(m.authAttempts, m.requestDuration)

	return m
}

// AuthAttempt records one registration or login outcome.
func (m *Metrics) AuthAttempt(op, outcome string) {
	m.authAttempts.WithLabelValues(op, outcome).Inc()
}

// Middleware observes request latency per route and status.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			m.requestDuration.
				WithLabelValues(c.Path(), strconv.Itoa(c.Response().Status)).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}
