package models

// ModelMetric holds the test-set evaluation of one regression model.
type ModelMetric struct {
	Name string  `json:"name"`
	R2   float64 `json:"r2"`
	RMSE float64 `json:"rmse"`
	MAE  float64 `json:"mae"`
}

// DefaultMetrics returns the four models evaluated in the study, in
// evaluation order.
func DefaultMetrics() []ModelMetric {
	return []ModelMetric{
		{Name: "Regresión simple", R2: 0.1683, RMSE: 748029.43, MAE: 425831.35},
		{Name: "Regresión múltiple", R2: 0.2662, RMSE: 702626.18, MAE: 304906.35},
		{Name: "Random Forest", R2: 0.7220, RMSE: 432480.11, MAE: 199570.70},
		{Name: "Gradient Boosting", R2: 0.7091, RMSE: 442408.82, MAE: 230087.19},
	}
}

// MetricRow pairs the raw metric with its display strings.
type MetricRow struct {
	Metric ModelMetric `json:"metric"`
	R2     string      `json:"r2_display"`
	RMSE   string      `json:"rmse_display"`
	MAE    string      `json:"mae_display"`
}

// MetricsTable keeps rows in evaluation order.
type MetricsTable struct {
	Rows []MetricRow `json:"rows"`
}

// Metrics returns the unformatted records in table order.
func (t *MetricsTable) Metrics() []ModelMetric {
	out := make([]ModelMetric, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Metric
	}
	return out
}
