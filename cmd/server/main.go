package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/pantryscan/inventory-service/internal/config"
	"github.com/pantryscan/inventory-service/internal/database"
	"github.com/pantryscan/inventory-service/internal/handlers"
	"github.com/pantryscan/inventory-service/internal/product"
	"github.com/pantryscan/inventory-service/internal/scan"
	"github.com/pantryscan/inventory-service/internal/service"
	"github.com/pantryscan/inventory-service/internal/storage"
	"github.com/pantryscan/inventory-service/pkg/clock"
	"github.com/pantryscan/inventory-service/pkg/logger"
	"github.com/pantryscan/inventory-service/pkg/metrics"
)

func main() {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Configuration validation failed: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Starting pantry inventory service", "config", cfg.String())

	// Initialize metrics
	metricsCollector := metrics.New()
	metricsCollector.Initialize()
	defer metricsCollector.Shutdown()

	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	// Initialize the durable key-value store backend
	var kv service.KeyValueStore
	dependencies := map[string]handlers.DependencyChecker{}

	switch cfg.StorageBackend {
	case config.BackendRedis:
		redisDB, err := database.NewRedisDB(cfg.RedisURL, cfg.RedisMaxConns, log, metricsCollector)
		if err != nil {
			log.Error("Failed to initialize Redis", "error", err)
			os.Exit(1)
		}
		defer redisDB.Close()
		kv = storage.NewRedisKV(redisDB)
		dependencies["redis"] = redisDB

	case config.BackendPostgres:
		postgres, err := database.NewPostgresDB(cfg.DatabaseURL, cfg.DatabaseMaxConns, log, metricsCollector)
		if err != nil {
			log.Error("Failed to initialize PostgreSQL", "error", err)
			os.Exit(1)
		}
		defer postgres.Close()

		schemaCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := postgres.EnsureSchema(schemaCtx); err != nil {
			cancel()
			log.Error("Failed to prepare storage schema", "error", err)
			os.Exit(1)
		}
		cancel()
		kv = storage.NewPostgresKV(postgres.DB(), metricsCollector)
		dependencies["postgres"] = postgres

	case config.BackendMemory:
		log.Warn("Using in-memory storage, inventory will not survive restarts")
		kv = storage.NewMemoryKV()
	}

	// Initialize the inventory store and load the persisted collection.
	// Load runs exactly once, before the servers accept traffic.
	store := service.NewInventoryStore(kv, clock.New(), log, metricsCollector, cfg.StorageKey)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 15*time.Second)
	store.LoadFromStorage(loadCtx)
	cancelLoad()

	// Initialize the product lookup client and scan resolver
	products := product.NewClient(cfg.ProductAPIBaseURL, cfg.ProductAPITimeout, log, metricsCollector)
	resolver := scan.NewResolver(products, store, log)

	// Create routers
	publicRouter := gin.New()
	internalRouter := gin.New()

	handlers.SetupRoutes(publicRouter, internalRouter, &handlers.RouterConfig{
		Store:        store,
		Products:     products,
		Resolver:     resolver,
		Logger:       log,
		Metrics:      metricsCollector,
		Dependencies: dependencies,
	})

	// Create public HTTP server
	publicServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServiceHost, cfg.ServicePort),
		Handler:      publicRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Create internal HTTP server
	internalServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServiceHost, cfg.InternalServicePort),
		Handler:      internalRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start health monitoring goroutine
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			for name, dep := range dependencies {
				metricsCollector.UpdateDependencyHealth(name, dep.Health(ctx) == nil)
			}
			cancel()
		}
	}()

	// Start public server in a goroutine
	go func() {
		log.Info("Public server starting", "address", publicServer.Addr)
		if err := publicServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Public server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Start internal server in a goroutine
	go func() {
		log.Info("Internal server starting", "address", internalServer.Addr)
		if err := internalServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Internal server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server shutting down...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown of both servers
	go func() {
		if err := publicServer.Shutdown(ctx); err != nil {
			log.Error("Public server forced to shutdown", "error", err)
		}
	}()

	if err := internalServer.Shutdown(ctx); err != nil {
		log.Error("Internal server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
