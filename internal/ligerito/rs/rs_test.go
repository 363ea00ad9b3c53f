package rs

import (
	"testing"

	"github.com/ligerito-labs/ligerito/internal/ligerito/field"
)

func TestEncodeMatrixIsSystematic(t *testing.T) {
	enc, err := NewEncoder(field.StandardBasisGF32()[:8], 1<<5, 1<<7)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	matrix := make([][]field.GF32, 4)
	for r := range matrix {
		row := make([]field.GF32, 1<<5)
		for c := range row {
			v, err := field.RandomGF32()
			if err != nil {
				t.Fatalf("random element: %v", err)
			}
			row[c] = v
		}
		matrix[r] = row
	}

	encoded, err := enc.EncodeMatrix(matrix)
	if err != nil {
		t.Fatalf("EncodeMatrix: %v", err)
	}
	for r := range matrix {
		if len(encoded[r]) != 1<<7 {
			t.Fatalf("row %d: expected width %d, got %d", r, 1<<7, len(encoded[r]))
		}
		for c := range matrix[r] {
			if encoded[r][c] != matrix[r][c] {
				t.Fatalf("row %d col %d: systematic property violated", r, c)
			}
		}
	}
}

func TestEncodeRowRejectsWrongWidth(t *testing.T) {
	enc, err := NewEncoder(field.StandardBasisGF32()[:6], 1<<4, 1<<5)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	if _, err := enc.EncodeRow(make([]field.GF32, 3)); err == nil {
		t.Fatalf("expected an error for a mis-sized row")
	}
}
