package models

import (
	"encoding/json"
	"math"
)

// ColumnStats are the descriptive statistics of one numeric column. Count
// excludes missing cells; the rest are NaN when Count is zero (Std also
// when Count is one).
type ColumnStats struct {
	Name  string
	Count int
	Mean  float64
	Std   float64
	Min   float64
	P25   float64
	P50   float64
	P75   float64
	Max   float64
}

// MarshalJSON writes NaN statistics as null.
func (s ColumnStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name  string   `json:"name"`
		Count int      `json:"count"`
		Mean  *float64 `json:"mean"`
		Std   *float64 `json:"std"`
		Min   *float64 `json:"min"`
		P25   *float64 `json:"p25"`
		P50   *float64 `json:"p50"`
		P75   *float64 `json:"p75"`
		Max   *float64 `json:"max"`
	}{
		Name:  s.Name,
		Count: s.Count,
		Mean:  nullable(s.Mean),
		Std:   nullable(s.Std),
		Min:   nullable(s.Min),
		P25:   nullable(s.P25),
		P50:   nullable(s.P50),
		P75:   nullable(s.P75),
		Max:   nullable(s.Max),
	})
}

// UnmarshalJSON reads null statistics back as NaN.
func (s *ColumnStats) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name  string   `json:"name"`
		Count int      `json:"count"`
		Mean  *float64 `json:"mean"`
		Std   *float64 `json:"std"`
		Min   *float64 `json:"min"`
		P25   *float64 `json:"p25"`
		P50   *float64 `json:"p50"`
		P75   *float64 `json:"p75"`
		Max   *float64 `json:"max"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ColumnStats{
		Name:  raw.Name,
		Count: raw.Count,
		Mean:  orNaN(raw.Mean),
		Std:   orNaN(raw.Std),
		Min:   orNaN(raw.Min),
		P25:   orNaN(raw.P25),
		P50:   orNaN(raw.P50),
		P75:   orNaN(raw.P75),
		Max:   orNaN(raw.Max),
	}
	return nil
}

func orNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// DatasetSummary is the exploration section of the report.
type DatasetSummary struct {
	Rows     int           `json:"rows"`
	Columns  int           `json:"columns"`
	Target   string        `json:"target"`
	Header   []string      `json:"header"`
	Preview  [][]string    `json:"preview"`
	Describe []ColumnStats `json:"describe"`
}

// ImageArtifact is an externally produced image. Exactly one of Path or
// Data is set; the bytes are never inspected. Data is base64 in JSON so
// uploaded images come back with the report.
type ImageArtifact struct {
	Section string `json:"section"`
	Caption string `json:"caption"`
	Path    string `json:"path,omitempty"`
	Data    []byte `json:"data,omitempty"`
	Size    int64  `json:"size"`
}

// Placeholder stands in for a section whose input was not provided.
type Placeholder struct {
	Section string `json:"section"`
	Message string `json:"message"`
}

// Conclusions is the narrative derived from the metrics table.
type Conclusions struct {
	Best       ModelMetric  `json:"best"`
	RunnerUp   *ModelMetric `json:"runner_up,omitempty"`
	Statements []string     `json:"statements"`
}

// Report is assembled fresh for every request.
type Report struct {
	Summary      *DatasetSummary `json:"dataset_summary,omitempty"`
	Metrics      *MetricsTable   `json:"metrics_table"`
	Images       []ImageArtifact `json:"image_refs"`
	Placeholders []Placeholder   `json:"placeholders,omitempty"`
	Conclusions  *Conclusions    `json:"conclusions,omitempty"`
}
