package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tokoadmin_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPResponseTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tokoadmin_http_response_time_seconds",
			Help:    "Histogram of response times",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	CatalogStoreCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tokoadmin_catalog_store_calls_total",
			Help: "Calls made to the catalog store, by operation and outcome",
		},
		[]string{"collection", "operation", "outcome"},
	)
)

// ObserveStoreCall records one catalog store call.
func ObserveStoreCall(collection, operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	CatalogStoreCalls.WithLabelValues(collection, operation, outcome).Inc()
}

// Middleware records request counts and latencies per route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		HTTPRequestsTotal.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		HTTPResponseTime.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}
