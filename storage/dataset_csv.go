package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"housing-report/models"
)

var missingTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"nan":  {},
	"n/a":  {},
	"null": {},
}

// LoadDataset reads a housing CSV from disk.
func LoadDataset(path string) (*models.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	ds, err := ReadDataset(f)
	if err != nil {
		return nil, fmt.Errorf("csv: %q: %w", path, err)
	}
	return ds, nil
}

// ReadDataset parses a CSV with a header row. A column is numeric when
// every non-missing cell parses as a number; otherwise it is categorical.
func ReadDataset(r io.Reader) (*models.Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("csv: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	cells := make([][]string, len(header))
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row: %w", err)
		}
		for i := range header {
			cells[i] = append(cells[i], normaliseText(record[i]))
		}
	}

	columns := make([]models.Column, len(header))
	for i, name := range header {
		columns[i] = buildColumn(normaliseText(strings.TrimPrefix(name, "\ufeff")), cells[i])
	}
	return models.NewDataset(columns...)
}

func buildColumn(name string, raw []string) models.Column {
	numbers := make([]float64, len(raw))
	for i, cell := range raw {
		if isMissing(cell) {
			numbers[i] = math.NaN()
			continue
		}
		v, ok := parseNumber(cell)
		if !ok {
			return models.CategoricalColumn(name, raw...)
		}
		numbers[i] = v
	}
	return models.NumericColumn(name, numbers...)
}

func isMissing(cell string) bool {
	_, ok := missingTokens[strings.ToLower(cell)]
	return ok
}

// parseNumber accepts plain numbers plus thousands separators and a
// leading currency sign, e.g. "$1,200.50".
func parseNumber(s string) (float64, bool) {
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}
