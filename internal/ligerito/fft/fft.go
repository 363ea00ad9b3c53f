// Package fft implements the Lin-Chung-Han additive FFT over the novel
// polynomial basis. A Table precomputes the twiddle schedule for a fixed
// field and evaluation basis once; every row transform after that is a pure
// sequence of field multiplications and XORs.
package fft

import (
	"fmt"
	"math/bits"

	"github.com/ligerito-labs/ligerito/internal/ligerito/field"
)

// Table holds the precomputed twiddle schedule for additive-FFT butterflies
// over a fixed basis. Construction is O(n log n); every subsequent Extend
// reuses it.
//
// The schedule is built from the subspace vanishing polynomials s_0, s_1,
// ... where s_0(x) = x and s_{i+1}(x) = s_i(x) * (s_i(x) + s_i(basis[i])).
// Each s_i is an F2-linear ("additive") map, so s_i evaluated at any subspace
// point is a fixed XOR-combination of the precomputed values s_i(basis[j]) —
// that combination, normalized so s_i(basis[i]) maps to 1, is exactly the
// twiddle factor skew[i][coset] used by the butterfly at layer i.
type Table[E field.Elem[E]] struct {
	logSize int
	skew    [][]E
}

// NewTable builds the twiddle schedule for the subspace spanned by basis.
// basis[i] must be linearly independent over F2 for i < len(basis); the
// standard per-field power-of-two bases (field.StandardBasisGF32 etc.)
// satisfy this.
func NewTable[E field.Elem[E]](basis []E) (*Table[E], error) {
	m := len(basis)
	if m == 0 {
		return nil, fmt.Errorf("fft: basis must be non-empty")
	}

	// s[i][j] = s_i(basis[j]).
	s := make([][]E, m+1)
	s[0] = append([]E(nil), basis...)
	for i := 0; i < m; i++ {
		s[i+1] = make([]E, m)
		for j := 0; j < m; j++ {
			s[i+1][j] = s[i][j].Mul(s[i][j].Add(s[i][i]))
		}
	}

	skew := make([][]E, m)
	for l := 0; l < m; l++ {
		norm := s[l][l]
		if norm.IsZero() {
			return nil, fmt.Errorf("fft: basis vector %d is not independent of the preceding ones", l)
		}
		normInv, err := invert(norm)
		if err != nil {
			return nil, fmt.Errorf("fft: %w", err)
		}

		blocks := 1 << uint(m-l-1)
		skew[l] = make([]E, blocks)
		for c := 0; c < blocks; c++ {
			r := c << uint(l+1)
			var acc E
			for k := l + 1; k < m; k++ {
				if r&(1<<uint(k)) != 0 {
					acc = acc.Add(s[l][k])
				}
			}
			skew[l][c] = acc.Mul(normInv)
		}
	}

	return &Table[E]{logSize: m, skew: skew}, nil
}

// invertible is satisfied by every concrete field type; Table only needs
// Inv, which field.Elem deliberately omits (not every generic consumer of
// Elem needs division).
type invertible[E any] interface {
	Inv() (E, error)
}

func invert[E any](a E) (E, error) {
	inv, ok := any(a).(invertible[E])
	if !ok {
		var zero E
		return zero, fmt.Errorf("field element %T does not implement Inv", a)
	}
	return inv.Inv()
}

// Extend implements fft_extend: row has K entries (evaluations of a
// degree-<K novel-basis polynomial at the first K subspace points) and the
// result has N entries (evaluations of the same polynomial at the first N
// subspace points, N >= K, both powers of two). The first K entries of the
// result equal row (systematic encoding). N=K returns row unchanged.
func (t *Table[E]) Extend(row []E, n int) ([]E, error) {
	k := len(row)
	if k == 0 || k&(k-1) != 0 {
		return nil, fmt.Errorf("fft: row length %d is not a power of two", k)
	}
	if n < k || n&(n-1) != 0 {
		return nil, fmt.Errorf("fft: target size %d must be a power of two >= %d", n, k)
	}
	logN := bits.Len(uint(n)) - 1
	if logN > t.logSize {
		return nil, fmt.Errorf("fft: target size %d exceeds table capacity 2^%d", n, t.logSize)
	}

	out := make([]E, n)
	copy(out, row)

	t.interpolate(out[:k])
	t.evaluate(out)
	return out, nil
}

// interpolate is the IFFT direction: decimation in time, layers processed
// from the smallest butterfly distance up to the largest. It turns K
// evaluations at the first K subspace points into the K novel-basis
// coefficients of the unique degree-<K polynomial through them.
func (t *Table[E]) interpolate(data []E) {
	n := len(data)
	p := bits.Len(uint(n)) - 1
	for l := 0; l < p; l++ {
		dist := 1 << uint(l)
		block := dist << 1
		row := t.skew[l]
		for r := 0; r < n; r += block {
			tw := row[r>>uint(l+1)]
			for i := r; i < r+dist; i++ {
				data[i+dist] = data[i+dist].Add(data[i])
				data[i] = data[i].Add(data[i+dist].Mul(tw))
			}
		}
	}
}

// evaluate is the FFT direction: decimation in frequency, layers processed
// from the largest butterfly distance down to the smallest. It turns N
// novel-basis coefficients (the low K non-zero, the rest zero-padded) into
// their evaluations at the first N subspace points. Because every butterfly
// at distance >= K pairs a real coefficient with a still-zero one, the first
// K outputs never change from their IFFT values — this is the systematic
// property.
func (t *Table[E]) evaluate(data []E) {
	n := len(data)
	p := bits.Len(uint(n)) - 1
	for l := p - 1; l >= 0; l-- {
		dist := 1 << uint(l)
		block := dist << 1
		row := t.skew[l]
		for r := 0; r < n; r += block {
			tw := row[r>>uint(l+1)]
			for i := r; i < r+dist; i++ {
				data[i] = data[i].Add(data[i+dist].Mul(tw))
				data[i+dist] = data[i+dist].Add(data[i])
			}
		}
	}
}
