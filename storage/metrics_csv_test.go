package storage

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"housing-report/models"
)

func TestMetricsCSVRoundTripKeepsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "metrics.csv")
	want := models.DefaultMetrics()

	if err := WriteMetricsCSV(path, want); err != nil {
		t.Fatalf("WriteMetricsCSV: %v", err)
	}

	got, err := CSVMetrics{Path: path}.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("len: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestReadMetricsCSVColumnOrderIndependent(t *testing.T) {
	in := "MAE,model,rmse,r2\n199570.70,Random Forest,432480.11,0.722\n"
	got, err := ReadMetricsCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadMetricsCSV: %v", err)
	}
	want := models.ModelMetric{Name: "Random Forest", R2: 0.722, RMSE: 432480.11, MAE: 199570.70}
	if len(got) != 1 || got[0] != want {
		t.Errorf("got %+v, want [%+v]", got, want)
	}
}

func TestReadMetricsCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"missing column", "model,r2,rmse\nA,0.1,2\n"},
		{"bad number", "model,r2,rmse,mae\nA,high,2,3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadMetricsCSV(strings.NewReader(tt.in)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestStaticMetricsReturnsCopy(t *testing.T) {
	src := StaticMetrics(models.DefaultMetrics())
	got, _ := src.FetchAll(context.Background())
	got[0].Name = "changed"
	if src[0].Name == "changed" {
		t.Error("FetchAll must not expose the backing slice")
	}
}
