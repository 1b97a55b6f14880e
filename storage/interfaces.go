package storage

import (
	"context"

	"housing-report/models"
)

// MetricsSource is anything that can hand over the evaluated models in
// evaluation order.
type MetricsSource interface {
	FetchAll(ctx context.Context) ([]models.ModelMetric, error)
	Close() error
}

// StaticMetrics serves a fixed set of records, typically
// models.DefaultMetrics().
type StaticMetrics []models.ModelMetric

func (s StaticMetrics) FetchAll(context.Context) ([]models.ModelMetric, error) {
	out := make([]models.ModelMetric, len(s))
	copy(out, s)
	return out, nil
}

func (s StaticMetrics) Close() error { return nil }
