package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/pantryscan/inventory-service/pkg/metrics"
)

// postgresKV persists opaque strings in the kv_store table. The inventory
// collection lives under a single key, so reads and writes are one row each.
type postgresKV struct {
	db      *sqlx.DB
	metrics *metrics.Metrics
}

// NewPostgresKV creates a PostgreSQL-backed key-value store
func NewPostgresKV(db *sqlx.DB, metricsCollector *metrics.Metrics) *postgresKV {
	return &postgresKV{
		db:      db,
		metrics: metricsCollector,
	}
}

// Get retrieves the value stored under key; found is false for a missing key
func (s *postgresKV) Get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	defer s.observe("get", start)

	query := `SELECT value FROM kv_store WHERE key = $1`

	var value string
	err := s.db.GetContext(ctx, &value, query, key)
	if err != nil {
		if err == sql.ErrNoRows {
			s.count("get", true)
			return "", false, nil
		}
		s.count("get", false)
		return "", false, errors.Wrapf(err, "failed to get key %q", key)
	}

	s.count("get", true)
	return value, true, nil
}

// Set stores value under key, replacing any previous value
func (s *postgresKV) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	defer s.observe("set", start)

	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		s.count("set", false)
		return errors.Wrapf(err, "failed to set key %q", key)
	}

	s.count("set", true)
	return nil
}

func (s *postgresKV) observe(command string, start time.Time) {
	if s.metrics != nil {
		s.metrics.StorageCommandDuration.WithLabelValues("postgres", command).Observe(time.Since(start).Seconds())
	}
}

func (s *postgresKV) count(command string, success bool) {
	if s.metrics == nil {
		return
	}
	status := "success"
	if !success {
		status = "error"
	}
	s.metrics.StorageCommandsTotal.WithLabelValues("postgres", command, status).Inc()
}
