package poly

import (
	"testing"

	"github.com/ligerito-labs/ligerito/internal/ligerito/field"
)

func gf16s(vals ...uint16) []field.GF16 {
	out := make([]field.GF16, len(vals))
	for i, v := range vals {
		out[i] = field.GF16(v)
	}
	return out
}

func TestFoldInPlaceHalvesLength(t *testing.T) {
	p, err := New(gf16s(1, 2, 3, 4, 5, 6, 7, 8))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p.FoldInPlace(field.GF16(0))
	if p.Len() != 4 {
		t.Fatalf("expected length 4, got %d", p.Len())
	}
	// r=0 selects the even-indexed (lo) entries unchanged.
	want := gf16s(1, 3, 5, 7)
	for i, w := range want {
		if p.Evals()[i] != w {
			t.Fatalf("index %d: expected %v got %v", i, w, p.Evals()[i])
		}
	}
}

func TestFoldInPlaceROneSelectsHigh(t *testing.T) {
	p, err := New(gf16s(1, 2, 3, 4))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p.FoldInPlace(field.One16)
	want := gf16s(2, 4)
	for i, w := range want {
		if p.Evals()[i] != w {
			t.Fatalf("index %d: expected %v got %v", i, w, p.Evals()[i])
		}
	}
}

func TestEvaluateAtCorner(t *testing.T) {
	// 2-variable polynomial; evaluating at (0,0) must return entry 0.
	p, err := New(gf16s(11, 22, 33, 44))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := p.Evaluate(gf16s(0, 0))
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got != field.GF16(11) {
		t.Fatalf("expected 11, got %v", got)
	}

	got, err = p.Evaluate(gf16s(1, 0))
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got != field.GF16(22) {
		t.Fatalf("expected 22, got %v", got)
	}
}

func TestToMatrixRowLayout(t *testing.T) {
	p, err := New(gf16s(1, 2, 3, 4, 5, 6, 7, 8))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	matrix, err := p.ToMatrix(1, 2)
	if err != nil {
		t.Fatalf("ToMatrix: %v", err)
	}
	if len(matrix) != 2 || len(matrix[0]) != 4 {
		t.Fatalf("unexpected matrix shape: %dx%d", len(matrix), len(matrix[0]))
	}
	want0 := gf16s(1, 2, 3, 4)
	for i, w := range want0 {
		if matrix[0][i] != w {
			t.Fatalf("row 0 index %d: expected %v got %v", i, w, matrix[0][i])
		}
	}
}

func TestEqBasisSumsToOne(t *testing.T) {
	tau := gf16s(3, 9)
	basis := EqBasis[field.GF16](tau)
	var sum field.GF16
	for _, b := range basis {
		sum = sum.Add(b)
	}
	if !sum.IsOne() {
		t.Fatalf("expected eq basis to sum to 1, got %v", sum)
	}
}

func TestRowCombineInterpolatesBetweenRows(t *testing.T) {
	// Two rows (m=1), four columns (k=2): u[j] = (1+tau)*row0[j] + tau*row1[j].
	p, err := New(gf16s(1, 2, 3, 4, 5, 6, 7, 8))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	matrix, err := p.ToMatrix(1, 2)
	if err != nil {
		t.Fatalf("ToMatrix: %v", err)
	}

	tau := field.GF16(7)
	eq := EqBasis[field.GF16]([]field.GF16{tau})
	u := RowCombine(matrix, eq)

	one := tau.One()
	for j := range matrix[0] {
		want := matrix[0][j].Mul(one.Add(tau)).Add(matrix[1][j].Mul(tau))
		if u[j] != want {
			t.Fatalf("column %d: expected %v got %v", j, want, u[j])
		}
	}
}

func TestRowCombineAtCornerSelectsRow(t *testing.T) {
	p, err := New(gf16s(1, 2, 3, 4, 5, 6, 7, 8))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	matrix, err := p.ToMatrix(1, 2)
	if err != nil {
		t.Fatalf("ToMatrix: %v", err)
	}

	eq0 := EqBasis[field.GF16]([]field.GF16{0})
	u0 := RowCombine(matrix, eq0)
	for j := range matrix[0] {
		if u0[j] != matrix[0][j] {
			t.Fatalf("tau=0 column %d: expected row0 value %v got %v", j, matrix[0][j], u0[j])
		}
	}

	eq1 := EqBasis[field.GF16]([]field.GF16{field.One16})
	u1 := RowCombine(matrix, eq1)
	for j := range matrix[1] {
		if u1[j] != matrix[1][j] {
			t.Fatalf("tau=1 column %d: expected row1 value %v got %v", j, matrix[1][j], u1[j])
		}
	}
}
