package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the pantry inventory service
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Durable key-value store metrics
	StorageCommandsTotal   *prometheus.CounterVec
	StorageCommandDuration *prometheus.HistogramVec
	RedisConnections       prometheus.Gauge
	DatabaseConnections    prometheus.Gauge

	// Business metrics
	InventoryMutationsTotal *prometheus.CounterVec
	InventoryItemsTotal     prometheus.Gauge
	LowStockItems           prometheus.Gauge
	OutOfStockItems         prometheus.Gauge
	ExpiringSoonItems       prometheus.Gauge
	ProductLookupsTotal     *prometheus.CounterVec

	// Health metrics
	DependencyHealth *prometheus.GaugeVec
}

// New creates a new Metrics instance with all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// HTTP metrics
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pantry_inventory_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pantry_inventory_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "pantry_inventory_http_requests_in_flight",
				Help: "Current number of HTTP requests being processed",
			},
		),

		// Durable key-value store metrics
		StorageCommandsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pantry_inventory_storage_commands_total",
				Help: "Total number of durable store commands",
			},
			[]string{"backend", "command", "status"},
		),
		StorageCommandDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pantry_inventory_storage_command_duration_seconds",
				Help:    "Duration of durable store commands in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"backend", "command"},
		),
		RedisConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "pantry_inventory_redis_connections",
				Help: "Current number of Redis connections",
			},
		),
		DatabaseConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "pantry_inventory_database_connections",
				Help: "Current number of database connections",
			},
		),

		// Business metrics
		InventoryMutationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pantry_inventory_mutations_total",
				Help: "Total number of inventory store mutations",
			},
			[]string{"operation", "status"},
		),
		InventoryItemsTotal: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "pantry_inventory_items_total",
				Help: "Current number of tracked inventory items",
			},
		),
		LowStockItems: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "pantry_inventory_low_stock_items",
				Help: "Current number of items at or below their minimum stock level",
			},
		),
		OutOfStockItems: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "pantry_inventory_out_of_stock_items",
				Help: "Current number of items with zero stock",
			},
		),
		ExpiringSoonItems: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "pantry_inventory_expiring_soon_items",
				Help: "Current number of items expiring within the warning window",
			},
		),
		ProductLookupsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pantry_inventory_product_lookups_total",
				Help: "Total number of product database lookups",
			},
			[]string{"operation", "status"},
		),

		// Health metrics
		DependencyHealth: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pantry_inventory_dependency_health",
				Help: "Health status of service dependencies (1 = healthy, 0 = unhealthy)",
			},
			[]string{"dependency"},
		),
	}
}

// Initialize sets initial values for gauges
func (m *Metrics) Initialize() {
	m.HTTPRequestsInFlight.Set(0)
	m.RedisConnections.Set(0)
	m.DatabaseConnections.Set(0)
	m.InventoryItemsTotal.Set(0)
	m.LowStockItems.Set(0)
	m.OutOfStockItems.Set(0)
	m.ExpiringSoonItems.Set(0)
}

// Shutdown resets connection gauges on service shutdown
func (m *Metrics) Shutdown() {
	m.HTTPRequestsInFlight.Set(0)
	m.RedisConnections.Set(0)
	m.DatabaseConnections.Set(0)
}

// UpdateDependencyHealth records the health of a named dependency
func (m *Metrics) UpdateDependencyHealth(dependency string, healthy bool) {
	value := 0.0
	if healthy {
		value = 1.0
	}
	m.DependencyHealth.WithLabelValues(dependency).Set(value)
}

// UpdateStockStats publishes the derived stock statistics as gauges
func (m *Metrics) UpdateStockStats(total, lowStock, outOfStock, expiringSoon int) {
	m.InventoryItemsTotal.Set(float64(total))
	m.LowStockItems.Set(float64(lowStock))
	m.OutOfStockItems.Set(float64(outOfStock))
	m.ExpiringSoonItems.Set(float64(expiringSoon))
}
