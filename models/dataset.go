package models

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// TargetColumn is the column the study predicts.
const TargetColumn = "price"

var (
	ErrColumnLength    = errors.New("column length mismatch")
	ErrDuplicateColumn = errors.New("duplicate column name")
)

// ColumnKind tells numeric and categorical columns apart.
type ColumnKind int

const (
	Numeric ColumnKind = iota
	Categorical
)

func (k ColumnKind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "categorical"
}

// Column is a single named, typed column. Numeric columns use NaN for a
// missing cell; categorical columns use the empty string.
type Column struct {
	Name    string
	Kind    ColumnKind
	Numbers []float64
	Strings []string
}

// NumericColumn builds a numeric column.
func NumericColumn(name string, values ...float64) Column {
	return Column{Name: name, Kind: Numeric, Numbers: values}
}

// CategoricalColumn builds a categorical column.
func CategoricalColumn(name string, values ...string) Column {
	return Column{Name: name, Kind: Categorical, Strings: values}
}

// Len returns the number of cells in the column.
func (c Column) Len() int {
	if c.Kind == Numeric {
		return len(c.Numbers)
	}
	return len(c.Strings)
}

// Cell renders the i-th cell as text; missing cells render empty.
func (c Column) Cell(i int) string {
	if c.Kind == Categorical {
		return c.Strings[i]
	}
	v := c.Numbers[i]
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Dataset is the loaded housing table. It is immutable once built.
type Dataset struct {
	columns []Column
	index   map[string]int
	rows    int
}

// NewDataset validates that every column has the same length and a unique
// name, and returns the table.
func NewDataset(columns ...Column) (*Dataset, error) {
	ds := &Dataset{
		columns: make([]Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}

	for i, col := range columns {
		if _, dup := ds.index[col.Name]; dup {
			return nil, fmt.Errorf("dataset: %q: %w", col.Name, ErrDuplicateColumn)
		}
		if i > 0 && col.Len() != ds.rows {
			return nil, fmt.Errorf("dataset: column %q has %d rows, want %d: %w",
				col.Name, col.Len(), ds.rows, ErrColumnLength)
		}
		ds.rows = col.Len()
		ds.index[col.Name] = i
		ds.columns = append(ds.columns, col)
	}

	return ds, nil
}

// Rows returns the number of records.
func (d *Dataset) Rows() int { return d.rows }

// NumColumns returns the number of variables.
func (d *Dataset) NumColumns() int { return len(d.columns) }

// Columns returns the columns in load order.
func (d *Dataset) Columns() []Column { return d.columns }

// Column looks a column up by name.
func (d *Dataset) Column(name string) (Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return Column{}, false
	}
	return d.columns[i], true
}

// Head returns up to n rows rendered as text, in column order.
func (d *Dataset) Head(n int) [][]string {
	if n > d.rows {
		n = d.rows
	}
	out := make([][]string, 0, n)
	for r := 0; r < n; r++ {
		row := make([]string, len(d.columns))
		for c, col := range d.columns {
			row[c] = col.Cell(r)
		}
		out = append(out, row)
	}
	return out
}

// Fingerprint hashes names, kinds and cell contents. Two datasets with the
// same fingerprint produce the same summary.
func (d *Dataset) Fingerprint() string {
	h := sha256.New()
	var buf [8]byte
	for _, col := range d.columns {
		h.Write([]byte(col.Name))
		h.Write([]byte{0, byte(col.Kind)})
		if col.Kind == Numeric {
			for _, v := range col.Numbers {
				binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
				h.Write(buf[:])
			}
			continue
		}
		for _, s := range col.Strings {
			h.Write([]byte(s))
			h.Write([]byte{0})
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
