package models

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestColumnStatsJSONHandlesNaN(t *testing.T) {
	in := ColumnStats{Name: "bed", Count: 1, Mean: 3, Std: math.NaN(), Min: 3, P25: 3, P50: 3, P75: 3, Max: 3}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"std":null`) {
		t.Errorf("NaN std should encode as null: %s", data)
	}

	var out ColumnStats
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !math.IsNaN(out.Std) || out.Mean != 3 || out.Name != "bed" || out.Count != 1 {
		t.Errorf("decoded: got %+v", out)
	}
}

func TestMetricsTableMetricsKeepsOrder(t *testing.T) {
	var table MetricsTable
	for _, m := range DefaultMetrics() {
		table.Rows = append(table.Rows, MetricRow{Metric: m})
	}
	got := table.Metrics()
	for i, m := range DefaultMetrics() {
		if got[i] != m {
			t.Errorf("row %d: got %+v, want %+v", i, got[i], m)
		}
	}
}
