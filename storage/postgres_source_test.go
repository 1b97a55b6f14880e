package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"housing-report/models"
)

const fetchMetricsSQL = `SELECT name, r2, rmse, mae\s+FROM "model_metrics"\s+ORDER BY position`

func TestPostgresMetrics_FetchAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"name", "r2", "rmse", "mae"})
	for _, m := range models.DefaultMetrics() {
		rows.AddRow(m.Name, m.R2, m.RMSE, m.MAE)
	}
	mock.ExpectQuery(fetchMetricsSQL).WillReturnRows(rows)

	src := NewPostgresMetricsFromDB(db, "")
	got, err := src.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultMetrics(), got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMetrics_FetchAllQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectQuery(fetchMetricsSQL).WillReturnError(errors.New("relation does not exist"))

	_, err = NewPostgresMetricsFromDB(db, "model_metrics").FetchAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch metrics")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMetrics_CustomTableIsQuoted(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectQuery(`FROM "study_results"`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "r2", "rmse", "mae"}))

	got, err := NewPostgresMetricsFromDB(db, "study_results").FetchAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMetrics_Close(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	assert.NoError(t, NewPostgresMetricsFromDB(db, "").Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
