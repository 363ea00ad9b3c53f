// Package rs implements the row-wise Reed-Solomon encoding of a committed
// matrix via the additive FFT: each row is treated as the evaluations of a
// degree-<K polynomial at the first K novel-basis points and extended to
// evaluations at the first N = K*rate points.
package rs

import (
	"fmt"

	"github.com/ligerito-labs/ligerito/internal/ligerito/fft"
	"github.com/ligerito-labs/ligerito/internal/ligerito/field"
)

// Encoder encodes rows of a fixed input width K to a fixed output width N
// over a single field, reusing one FFT twiddle table across every row.
type Encoder[E field.Elem[E]] struct {
	table *fft.Table[E]
	k, n  int
}

// NewEncoder builds an Encoder for rows of width k extended to width n,
// using basis as the additive-FFT evaluation subspace. n/k is the inverse
// rate; both must be powers of two with n >= k.
func NewEncoder[E field.Elem[E]](basis []E, k, n int) (*Encoder[E], error) {
	if n < k {
		return nil, fmt.Errorf("rs: output width %d smaller than input width %d", n, k)
	}
	table, err := fft.NewTable(basis)
	if err != nil {
		return nil, fmt.Errorf("rs: %w", err)
	}
	return &Encoder[E]{table: table, k: k, n: n}, nil
}

// EncodeRow extends a single row from k to n entries.
func (e *Encoder[E]) EncodeRow(row []E) ([]E, error) {
	if len(row) != e.k {
		return nil, fmt.Errorf("rs: row has %d entries, expected %d", len(row), e.k)
	}
	return e.table.Extend(row, e.n)
}

// EncodeMatrix extends every row of matrix (M rows of K entries) to N
// entries, independently. Rows have no data dependency on each other, so
// callers that want row-level parallelism can fan this out themselves; this
// method is the sequential baseline every parallel driver must agree with.
func (e *Encoder[E]) EncodeMatrix(matrix [][]E) ([][]E, error) {
	out := make([][]E, len(matrix))
	for i, row := range matrix {
		encoded, err := e.EncodeRow(row)
		if err != nil {
			return nil, fmt.Errorf("rs: row %d: %w", i, err)
		}
		out[i] = encoded
	}
	return out, nil
}

// InputWidth returns K.
func (e *Encoder[E]) InputWidth() int { return e.k }

// OutputWidth returns N.
func (e *Encoder[E]) OutputWidth() int { return e.n }
