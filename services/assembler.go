package services

import (
	"fmt"
	"math"
	"os"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"housing-report/models"
	"housing-report/utils"
)

const defaultPreviewRows = 5

// ImageRef points at an image produced elsewhere: either a local path or
// bytes handed over by the shell (an upload, for instance).
type ImageRef struct {
	Path string
	Data []byte
}

// ImageRequest asks for an image to be placed in a report section.
type ImageRequest struct {
	Section string
	Caption string
	Ref     ImageRef
}

// ReportInput is everything one report needs. A nil Dataset means the
// shell has not been given one yet. Summary, when set, is a previously
// computed summary of Dataset and is used as is.
type ReportInput struct {
	Dataset *models.Dataset
	Summary *models.DatasetSummary
	Metrics []models.ModelMetric
	Images  []ImageRequest
}

// ReportAssembler turns a dataset and precomputed model metrics into a
// presentation-ready report. It keeps no state between calls.
type ReportAssembler struct {
	logger      *utils.Logger
	policy      FormatPolicy
	previewRows int
}

// NewReportAssembler creates a ReportAssembler with the given display policy.
func NewReportAssembler(logger *utils.Logger, policy FormatPolicy) *ReportAssembler {
	return &ReportAssembler{logger: logger, policy: policy, previewRows: defaultPreviewRows}
}

// Policy returns the display policy used for metric values.
func (a *ReportAssembler) Policy() FormatPolicy { return a.policy }

// Assemble builds the full report. Missing images and a missing dataset
// become placeholders; every other failure aborts.
func (a *ReportAssembler) Assemble(in ReportInput) (*models.Report, error) {
	report := &models.Report{Images: make([]models.ImageArtifact, 0, len(in.Images))}

	switch {
	case in.Summary != nil:
		report.Summary = in.Summary
	case in.Dataset == nil:
		report.Placeholders = append(report.Placeholders, models.Placeholder{
			Section: "exploration",
			Message: "dataset not provided; load the cleaned housing CSV to see the exploration",
		})
	default:
		summary, err := a.Summarize(in.Dataset)
		if err != nil {
			return nil, err
		}
		report.Summary = summary
	}

	table, err := a.BuildMetricsTable(in.Metrics)
	if err != nil {
		return nil, err
	}
	report.Metrics = table

	conclusions, err := a.Conclude(table)
	if err != nil {
		return nil, err
	}
	report.Conclusions = conclusions

	for _, req := range in.Images {
		art, err := a.ResolveImageRef(req.Ref, req.Caption)
		if err != nil {
			if !IsRecoverable(err) {
				return nil, err
			}
			a.logger.Warn("[assembler] %s image unavailable: %v", req.Section, err)
			report.Placeholders = append(report.Placeholders, models.Placeholder{
				Section: req.Section,
				Message: fmt.Sprintf("image %q not provided", req.Caption),
			})
			continue
		}
		art.Section = req.Section
		report.Images = append(report.Images, *art)
	}

	return report, nil
}

// Summarize computes shape, preview and descriptive statistics for every
// numeric column. The dataset must have rows and a price column.
func (a *ReportAssembler) Summarize(ds *models.Dataset) (*models.DatasetSummary, error) {
	if ds == nil || ds.Rows() == 0 {
		return nil, fmt.Errorf("summarize: %w", ErrEmptyDataset)
	}
	if _, ok := ds.Column(models.TargetColumn); !ok {
		return nil, fmt.Errorf("summarize: %q: %w", models.TargetColumn, ErrMissingColumn)
	}

	summary := &models.DatasetSummary{
		Rows:    ds.Rows(),
		Columns: ds.NumColumns(),
		Target:  models.TargetColumn,
		Header:  make([]string, 0, ds.NumColumns()),
		Preview: ds.Head(a.previewRows),
	}

	for _, col := range ds.Columns() {
		summary.Header = append(summary.Header, col.Name)
		if col.Kind != models.Numeric {
			continue
		}
		summary.Describe = append(summary.Describe, describe(col))
	}

	a.logger.Debug("[assembler] Summarized %d rows x %d columns (%d numeric)",
		summary.Rows, summary.Columns, len(summary.Describe))
	return summary, nil
}

func describe(col models.Column) models.ColumnStats {
	values := make([]float64, 0, len(col.Numbers))
	for _, v := range col.Numbers {
		if !math.IsNaN(v) {
			values = append(values, v)
		}
	}

	st := models.ColumnStats{Name: col.Name, Count: len(values)}
	if len(values) == 0 {
		nan := math.NaN()
		st.Mean, st.Std, st.Min, st.P25, st.P50, st.P75, st.Max = nan, nan, nan, nan, nan, nan, nan
		return st
	}

	sort.Float64s(values)
	st.Mean = stat.Mean(values, nil)
	st.Std = math.NaN()
	if len(values) > 1 {
		st.Std = stat.StdDev(values, nil)
	}
	st.Min = floats.Min(values)
	st.Max = floats.Max(values)
	st.P25 = percentile(values, 0.25)
	st.P50 = percentile(values, 0.50)
	st.P75 = percentile(values, 0.75)
	return st
}

// percentile interpolates linearly between the closest ranks of sorted.
func percentile(sorted []float64, p float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := int(math.Floor(h))
	if lo+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// BuildMetricsTable formats the records for display, keeping input order.
func (a *ReportAssembler) BuildMetricsTable(records []models.ModelMetric) (*models.MetricsTable, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("metrics table: %w", ErrNoMetrics)
	}

	seen := make(map[string]struct{}, len(records))
	table := &models.MetricsTable{Rows: make([]models.MetricRow, 0, len(records))}

	for _, m := range records {
		if _, dup := seen[m.Name]; dup {
			return nil, fmt.Errorf("metrics table: %q: %w", m.Name, ErrDuplicateModelName)
		}
		seen[m.Name] = struct{}{}

		if m.RMSE < 0 || m.MAE < 0 || m.R2 > 1 || math.IsNaN(m.R2) {
			return nil, fmt.Errorf("metrics table: %q (r2=%v rmse=%v mae=%v): %w",
				m.Name, m.R2, m.RMSE, m.MAE, ErrInvalidMetric)
		}

		table.Rows = append(table.Rows, models.MetricRow{
			Metric: m,
			R2:     a.policy.R2(m.R2),
			RMSE:   a.policy.Error(m.RMSE),
			MAE:    a.policy.Error(m.MAE),
		})
	}

	return table, nil
}

// ResolveImageRef checks that ref points at actual content. A missing file
// or empty blob yields ErrMissingArtifact, which callers may recover from.
func (a *ReportAssembler) ResolveImageRef(ref ImageRef, caption string) (*models.ImageArtifact, error) {
	if ref.Path == "" {
		if len(ref.Data) == 0 {
			return nil, fmt.Errorf("image %q: no content: %w", caption, ErrMissingArtifact)
		}
		return &models.ImageArtifact{Caption: caption, Data: ref.Data, Size: int64(len(ref.Data))}, nil
	}

	info, err := os.Stat(ref.Path)
	if err != nil {
		return nil, fmt.Errorf("image %q: %v: %w", caption, err, ErrMissingArtifact)
	}
	if !info.Mode().IsRegular() || info.Size() == 0 {
		return nil, fmt.Errorf("image %q: %s has no content: %w", caption, ref.Path, ErrMissingArtifact)
	}

	return &models.ImageArtifact{Caption: caption, Path: ref.Path, Size: info.Size()}, nil
}

// BestModel picks the highest R2. Ties go to the lower RMSE, then to the
// earlier record.
func BestModel(records []models.ModelMetric) (models.ModelMetric, error) {
	if len(records) == 0 {
		return models.ModelMetric{}, fmt.Errorf("best model: %w", ErrNoMetrics)
	}
	best := records[0]
	for _, m := range records[1:] {
		if better(m, best) {
			best = m
		}
	}
	return best, nil
}

// better reports whether m strictly beats cur; equal records keep cur.
func better(m, cur models.ModelMetric) bool {
	if m.R2 != cur.R2 {
		return m.R2 > cur.R2
	}
	return m.RMSE < cur.RMSE
}
