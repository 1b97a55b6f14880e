package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"housing-report/models"
	"housing-report/utils"
)

// PostgresMetrics reads evaluation results exported to PostgreSQL by the
// training pipeline. It never writes.
type PostgresMetrics struct {
	db    *sql.DB
	table string
}

// NewPostgresMetrics opens a connection and pings it with retries.
func NewPostgresMetrics(ctx context.Context, dsn, table string, retry *utils.RetryConfig) (*PostgresMetrics, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres ping", db.PingContext); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	return NewPostgresMetricsFromDB(db, table), nil
}

// NewPostgresMetricsFromDB wraps an already open handle.
func NewPostgresMetricsFromDB(db *sql.DB, table string) *PostgresMetrics {
	if table == "" {
		table = "model_metrics"
	}
	return &PostgresMetrics{db: db, table: table}
}

// FetchAll returns every stored model in evaluation order.
func (pm *PostgresMetrics) FetchAll(ctx context.Context) ([]models.ModelMetric, error) {
	query := fmt.Sprintf(`
		SELECT name, r2, rmse, mae
		FROM %s
		ORDER BY position
	`, pm.quotedTable())

	rows, err := pm.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch metrics: %w", err)
	}
	defer rows.Close()

	var out []models.ModelMetric
	for rows.Next() {
		var m models.ModelMetric
		if err := rows.Scan(&m.Name, &m.R2, &m.RMSE, &m.MAE); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (pm *PostgresMetrics) quotedTable() string {
	return pq.QuoteIdentifier(pm.table)
}

func (pm *PostgresMetrics) Close() error {
	return pm.db.Close()
}
