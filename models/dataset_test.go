package models

import (
	"errors"
	"math"
	"testing"
)

func TestNewDatasetRejectsBadShapes(t *testing.T) {
	_, err := NewDataset(NumericColumn("price", 1, 2), NumericColumn("bed", 1))
	if !errors.Is(err, ErrColumnLength) {
		t.Errorf("expected ErrColumnLength, got %v", err)
	}

	_, err = NewDataset(NumericColumn("price", 1), CategoricalColumn("price", "a"))
	if !errors.Is(err, ErrDuplicateColumn) {
		t.Errorf("expected ErrDuplicateColumn, got %v", err)
	}
}

func TestDatasetAccessors(t *testing.T) {
	ds, err := NewDataset(
		NumericColumn("price", 105000, math.NaN(), 67000),
		CategoricalColumn("city", "Adjuntas", "Ponce", "Juana Diaz"),
	)
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}

	if ds.Rows() != 3 || ds.NumColumns() != 2 {
		t.Errorf("shape: got %dx%d, want 3x2", ds.Rows(), ds.NumColumns())
	}
	if _, ok := ds.Column("bath"); ok {
		t.Error("unexpected bath column")
	}

	head := ds.Head(2)
	if len(head) != 2 {
		t.Fatalf("head rows: got %d, want 2", len(head))
	}
	if head[0][0] != "105000" || head[1][0] != "" || head[1][1] != "Ponce" {
		t.Errorf("head: got %v", head)
	}
	if len(ds.Head(10)) != 3 {
		t.Error("Head should cap at the row count")
	}
}

func TestFingerprint(t *testing.T) {
	a, _ := NewDataset(NumericColumn("price", 1, 2), CategoricalColumn("city", "x", "y"))
	b, _ := NewDataset(NumericColumn("price", 1, 2), CategoricalColumn("city", "x", "y"))
	c, _ := NewDataset(NumericColumn("price", 1, 3), CategoricalColumn("city", "x", "y"))

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("identical datasets should share a fingerprint")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("different datasets should not share a fingerprint")
	}
}

func TestColumnKindString(t *testing.T) {
	if Numeric.String() != "numeric" || Categorical.String() != "categorical" {
		t.Errorf("got %q and %q", Numeric, Categorical)
	}
}
