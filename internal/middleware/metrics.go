package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pantryscan/inventory-service/pkg/metrics"
)

// MetricsMiddleware records request counts, durations and the in-flight gauge
// for every route. With a nil collector it degrades to a pass-through, so
// handler tests don't need a registry.
func MetricsMiddleware(metricsCollector *metrics.Metrics) gin.HandlerFunc {
	if metricsCollector == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		// The route template keeps label cardinality bounded; unmatched
		// requests (404s) fall back to the raw path.
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		metricsCollector.HTTPRequestsInFlight.Inc()
		defer metricsCollector.HTTPRequestsInFlight.Dec()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		metricsCollector.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		metricsCollector.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
