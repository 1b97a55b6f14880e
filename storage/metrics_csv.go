package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"housing-report/models"
)

var metricsHeader = []string{"model", "r2", "rmse", "mae"}

// ReadMetricsCSV parses a results file with the header model,r2,rmse,mae.
// Row order is evaluation order and is kept as is.
func ReadMetricsCSV(r io.Reader) ([]models.ModelMetric, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("metrics csv: read header: %w", err)
	}
	idx, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	var out []models.ModelMetric
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("metrics csv: line %d: %w", line, err)
		}

		m := models.ModelMetric{Name: strings.TrimSpace(record[idx["model"]])}
		for _, f := range []struct {
			col string
			dst *float64
		}{{"r2", &m.R2}, {"rmse", &m.RMSE}, {"mae", &m.MAE}} {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[idx[f.col]]), 64)
			if err != nil {
				return nil, fmt.Errorf("metrics csv: line %d: %s: %w", line, f.col, err)
			}
			*f.dst = v
		}
		out = append(out, m)
	}
	return out, nil
}

func headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, want := range metricsHeader {
		if _, ok := idx[want]; !ok {
			return nil, fmt.Errorf("metrics csv: header missing %q column", want)
		}
	}
	return idx, nil
}

// WriteMetricsCSV exports records to path, creating intermediate
// directories. An existing file is truncated.
func WriteMetricsCSV(path string, records []models.ModelMetric) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("metrics csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("metrics csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(metricsHeader); err != nil {
		_ = f.Close()
		return fmt.Errorf("metrics csv: write header: %w", err)
	}
	for _, m := range records {
		row := []string{
			m.Name,
			strconv.FormatFloat(m.R2, 'f', -1, 64),
			strconv.FormatFloat(m.RMSE, 'f', -1, 64),
			strconv.FormatFloat(m.MAE, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			_ = f.Close()
			return fmt.Errorf("metrics csv: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("metrics csv: flush: %w", err)
	}
	return f.Close()
}

// CSVMetrics is a MetricsSource backed by a results file on disk.
type CSVMetrics struct {
	Path string
}

func (c CSVMetrics) FetchAll(context.Context) ([]models.ModelMetric, error) {
	f, err := os.Open(c.Path)
	if err != nil {
		return nil, fmt.Errorf("metrics csv: open %q: %w", c.Path, err)
	}
	defer f.Close()
	return ReadMetricsCSV(f)
}

func (c CSVMetrics) Close() error { return nil }
