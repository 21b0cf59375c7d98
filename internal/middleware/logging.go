package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// LoggingMiddleware provides request logging
type LoggingMiddleware struct {
	logger *slog.Logger
}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware(logger *slog.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger: logger,
	}
}

// LogRequests logs one line per request, with the level following the
// response class: info for successes, warn for client errors, error for
// server errors.
func (m *LoggingMiddleware) LogRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start),
			"ip", c.ClientIP(),
			"response_size", c.Writer.Size(),
		}
		if errs := c.Errors.String(); errs != "" {
			attrs = append(attrs, "error_details", errs)
		}

		switch {
		case status >= 500:
			m.logger.Error("HTTP request failed", attrs...)
		case status >= 400:
			m.logger.Warn("HTTP request rejected", attrs...)
		default:
			m.logger.Info("HTTP request processed", attrs...)
		}
	}
}
