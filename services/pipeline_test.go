package services

import (
	"context"
	"errors"
	"testing"

	"housing-report/models"
	"housing-report/storage"
)

type failingSource struct{}

func (failingSource) FetchAll(context.Context) ([]models.ModelMetric, error) {
	return nil, errors.New("connection refused")
}

func (failingSource) Close() error { return nil }

func TestPipelineRun(t *testing.T) {
	p := NewPipeline(newTestAssembler(), storage.StaticMetrics(models.DefaultMetrics()), nil, newTestLogger())

	report, err := p.Run(context.Background(), sampleDataset(t), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Summary == nil || len(report.Metrics.Rows) != 4 {
		t.Errorf("report: got %+v", report)
	}
}

func TestPipelineMetricsSourceFailure(t *testing.T) {
	p := NewPipeline(newTestAssembler(), failingSource{}, nil, newTestLogger())
	if _, err := p.Run(context.Background(), nil, nil); err == nil {
		t.Error("expected an error when metrics cannot be loaded")
	}
}

func TestPipelineSurfacesDatasetErrors(t *testing.T) {
	ds, _ := models.NewDataset(models.NumericColumn("bed", 1, 2))
	p := NewPipeline(newTestAssembler(), storage.StaticMetrics(models.DefaultMetrics()), &SummaryCache{}, newTestLogger())
	if _, err := p.Run(context.Background(), ds, nil); !errors.Is(err, ErrMissingColumn) {
		t.Errorf("expected ErrMissingColumn, got %v", err)
	}
}
