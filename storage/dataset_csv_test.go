package storage

import (
	"errors"
	"math"
	"strings"
	"testing"

	"housing-report/models"
)

const sampleHousing = `brokered_by,status,price,bed,bath,acre_lot,city,state,house_size
103378,for_sale,105000,3,2,0.12,Adjuntas,Puerto Rico,920
52707,for_sale,"$80,000",4,2,0.08,Adjuntas,Puerto Rico,1527
103379,for_sale,67000,2,1,0.15,Juana Diaz,Puerto Rico,748
31239,for_sale,145000,4,2,0.1,Ponce,Puerto Rico,
`

func TestReadDatasetShape(t *testing.T) {
	ds, err := ReadDataset(strings.NewReader(sampleHousing))
	if err != nil {
		t.Fatalf("ReadDataset: %v", err)
	}
	if ds.Rows() != 4 {
		t.Errorf("rows: got %d, want 4", ds.Rows())
	}
	if ds.NumColumns() != 9 {
		t.Errorf("columns: got %d, want 9", ds.NumColumns())
	}
}

func TestReadDatasetInfersKinds(t *testing.T) {
	ds, err := ReadDataset(strings.NewReader(sampleHousing))
	if err != nil {
		t.Fatalf("ReadDataset: %v", err)
	}

	tests := []struct {
		name string
		want models.ColumnKind
	}{
		{"price", models.Numeric},
		{"bath", models.Numeric},
		{"acre_lot", models.Numeric},
		{"status", models.Categorical},
		{"city", models.Categorical},
		{"house_size", models.Numeric},
	}
	for _, tt := range tests {
		col, ok := ds.Column(tt.name)
		if !ok {
			t.Errorf("column %q missing", tt.name)
			continue
		}
		if col.Kind != tt.want {
			t.Errorf("%s kind: got %v, want %v", tt.name, col.Kind, tt.want)
		}
	}
}

func TestReadDatasetParsesFormattedNumbersAndMissing(t *testing.T) {
	ds, err := ReadDataset(strings.NewReader(sampleHousing))
	if err != nil {
		t.Fatalf("ReadDataset: %v", err)
	}

	price, _ := ds.Column("price")
	if price.Numbers[1] != 80000 {
		t.Errorf("price[1]: got %v, want 80000", price.Numbers[1])
	}

	size, _ := ds.Column("house_size")
	if !math.IsNaN(size.Numbers[3]) {
		t.Errorf("house_size[3]: got %v, want NaN", size.Numbers[3])
	}
}

func TestReadDatasetRejectsRaggedRows(t *testing.T) {
	_, err := ReadDataset(strings.NewReader("price,bed\n1,2\n3\n"))
	if err == nil {
		t.Error("expected an error for a short row")
	}
}

func TestReadDatasetRejectsDuplicateHeader(t *testing.T) {
	_, err := ReadDataset(strings.NewReader("price,price\n1,2\n"))
	if !errors.Is(err, models.ErrDuplicateColumn) {
		t.Errorf("expected ErrDuplicateColumn, got %v", err)
	}
}

func TestReadDatasetHeaderOnly(t *testing.T) {
	ds, err := ReadDataset(strings.NewReader("price,bed\n"))
	if err != nil {
		t.Fatalf("ReadDataset: %v", err)
	}
	if ds.Rows() != 0 || ds.NumColumns() != 2 {
		t.Errorf("shape: got %dx%d, want 0x2", ds.Rows(), ds.NumColumns())
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"105000", 105000, true},
		{"$1,200.50", 1200.50, true},
		{"-3.5", -3.5, true},
		{"for_sale", 0, false},
		{"Inf", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseNumber(tt.raw)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseNumber(%q) = %v, %v; want %v, %v", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}
