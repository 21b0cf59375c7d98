package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// DependencyChecker is a named dependency that can report its health.
type DependencyChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler reports service and dependency health
type HealthHandler struct {
	logger       *slog.Logger
	dependencies map[string]DependencyChecker
}

// NewHealthHandler creates a health handler over the given named dependencies
func NewHealthHandler(logger *slog.Logger, dependencies map[string]DependencyChecker) *HealthHandler {
	return &HealthHandler{
		logger:       logger,
		dependencies: dependencies,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	status := gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	dependencies := gin.H{}

	for name, dep := range h.dependencies {
		if err := dep.Health(ctx); err != nil {
			dependencies[name] = gin.H{"status": "unhealthy", "error": err.Error()}
			status["status"] = "degraded"
		} else {
			dependencies[name] = gin.H{"status": "healthy"}
		}
	}

	status["dependencies"] = dependencies

	if status["status"] == "degraded" {
		c.JSON(http.StatusServiceUnavailable, status)
	} else {
		c.JSON(http.StatusOK, status)
	}
}
