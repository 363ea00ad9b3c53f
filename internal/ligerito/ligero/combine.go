// Package ligero implements the single-round "matrix-encoded" commitment
// and tensor-fold opening argument: RS-encode a message matrix row-wise,
// column-commit the result, fold the rows by a random tensor challenge, and
// batch-open a random subset of columns to let the verifier check the fold
// is consistent with the commitment.
package ligero

import "github.com/ligerito-labs/ligerito/internal/ligerito/field"

// RowCombine computes u[j] = sum_i eqTau[i] * Embed(matrix[i][j]): the
// cross-field generalization of poly.RowCombine needed because Ligero's
// tensor challenge always lives in the top-level GF128 even when the
// message matrix itself is over a smaller tower level (GF16/32/64), so the
// combination has to embed each row entry before weighting it.
func RowCombine[E field.Embeddable[E]](matrix [][]E, eqTau []field.GF128) []field.GF128 {
	if len(matrix) == 0 {
		return nil
	}
	cols := len(matrix[0])
	u := make([]field.GF128, cols)
	for i, row := range matrix {
		w := eqTau[i]
		if w.IsZero() {
			continue
		}
		for j, v := range row {
			u[j] = u[j].Add(w.Mul(v.Embed()))
		}
	}
	return u
}

// CombineColumn computes sum_i eqTau[i] * Embed(column[i]) — the same
// combination as RowCombine specialized to a single opened column. This is
// what the verifier checks against the re-encoded u at the queried column
// position.
func CombineColumn[E field.Embeddable[E]](column []E, eqTau []field.GF128) field.GF128 {
	var sum field.GF128
	for i, v := range column {
		w := eqTau[i]
		if w.IsZero() {
			continue
		}
		sum = sum.Add(w.Mul(v.Embed()))
	}
	return sum
}
