package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pantryscan/inventory-service/internal/middleware"
	"github.com/pantryscan/inventory-service/internal/scan"
	"github.com/pantryscan/inventory-service/internal/service"
	"github.com/pantryscan/inventory-service/pkg/metrics"
)

// RouterConfig contains the collaborators the routes are built over
type RouterConfig struct {
	Store        *service.InventoryStore
	Products     ProductAPI
	Resolver     *scan.Resolver
	Logger       *slog.Logger
	Metrics      *metrics.Metrics
	Dependencies map[string]DependencyChecker
}

// SetupRoutes configures the public and internal routers
func SetupRoutes(publicRouter, internalRouter *gin.Engine, config *RouterConfig) {
	pantryHandler := NewPantryHandler(config.Store, config.Products, config.Resolver, config.Logger)
	healthHandler := NewHealthHandler(config.Logger, config.Dependencies)

	loggingMiddleware := middleware.NewLoggingMiddleware(config.Logger)

	// Public API
	publicRouter.Use(gin.Recovery())
	publicRouter.Use(loggingMiddleware.LogRequests())
	publicRouter.Use(middleware.MetricsMiddleware(config.Metrics))

	api := publicRouter.Group("/api/pantry")
	{
		api.GET("/inventory", pantryHandler.GetInventory)
		api.POST("/inventory/items", pantryHandler.AddItem)
		api.PATCH("/inventory/items/:id", pantryHandler.UpdateItem)
		api.DELETE("/inventory/items/:id", pantryHandler.RemoveItem)
		api.POST("/inventory/items/:id/quantity", pantryHandler.UpdateQuantity)
		api.GET("/inventory/items/barcode/:barcode", pantryHandler.GetItemByBarcode)
		api.POST("/inventory/stats/recalculate", pantryHandler.RecalculateStats)

		api.GET("/products/search", pantryHandler.SearchProducts)
		api.GET("/products/:barcode", pantryHandler.GetProduct)

		api.POST("/scan", pantryHandler.Scan)
	}

	// Internal API (no authentication, isolated by network)
	internalRouter.Use(gin.Recovery())
	internalRouter.Use(loggingMiddleware.LogRequests())
	internalRouter.GET("/health", healthHandler.Health)
	internalRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
