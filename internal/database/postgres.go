package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
	"github.com/jmoiron/sqlx"

	"github.com/pantryscan/inventory-service/pkg/metrics"
)

// kvSchema holds the single-key persistence table for the inventory collection.
const kvSchema = `
CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresDB wraps sqlx.DB with additional functionality
type PostgresDB struct {
	db      *sqlx.DB
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewPostgresDB creates a new PostgreSQL connection pool
func NewPostgresDB(databaseURL string, maxConns int, logger *slog.Logger, metricsCollector *metrics.Metrics) (*PostgresDB, error) {
	db, err := sqlx.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set pool configuration
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns / 2)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(time.Minute * 30)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	pdb := &PostgresDB{
		db:      db,
		logger:  logger,
		metrics: metricsCollector,
	}

	if metricsCollector != nil {
		metricsCollector.DatabaseConnections.Set(float64(maxConns))
		metricsCollector.UpdateDependencyHealth("postgres", true)
	}

	logger.Info("PostgreSQL connection established", "max_conns", maxConns)

	return pdb, nil
}

// DB returns the underlying sqlx.DB
func (p *PostgresDB) DB() *sqlx.DB {
	return p.db
}

// EnsureSchema creates the key-value persistence table if it does not exist
func (p *PostgresDB) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, kvSchema); err != nil {
		return fmt.Errorf("failed to ensure kv_store schema: %w", err)
	}
	return nil
}

// Health checks the health of the database connection
func (p *PostgresDB) Health(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		if p.metrics != nil {
			p.metrics.UpdateDependencyHealth("postgres", false)
		}
		return err
	}

	if p.metrics != nil {
		p.metrics.UpdateDependencyHealth("postgres", true)

		stats := p.db.Stats()
		p.metrics.DatabaseConnections.Set(float64(stats.OpenConnections))
	}

	return nil
}

// Close closes the database connection pool
func (p *PostgresDB) Close() error {
	if p.db == nil {
		return nil
	}

	err := p.db.Close()

	if p.logger != nil {
		p.logger.Info("PostgreSQL connection closed")
	}

	if p.metrics != nil {
		p.metrics.DatabaseConnections.Set(0)
		p.metrics.UpdateDependencyHealth("postgres", false)
	}

	return err
}
