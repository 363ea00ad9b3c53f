// Package poly implements dense multilinear polynomials over a binary
// field: the representation every Ligerito round folds, reshapes into a
// matrix, and partially evaluates.
package poly

import (
	"fmt"

	"github.com/ligerito-labs/ligerito/internal/ligerito/field"
)

// Multilinear is a dense multilinear polynomial over {0,1}^numVars: entry i
// is the evaluation at the binary expansion of i (bit 0 = least
// significant = first variable).
type Multilinear[E field.Elem[E]] struct {
	evals []E
}

// New wraps a raw evaluation buffer. len(evals) must be a power of two.
func New[E field.Elem[E]](evals []E) (*Multilinear[E], error) {
	n := len(evals)
	if n == 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("poly: length %d is not a power of two", n)
	}
	return &Multilinear[E]{evals: evals}, nil
}

// NumVars returns ℓ such that the polynomial has 2^ℓ entries.
func (p *Multilinear[E]) NumVars() int {
	n := len(p.evals)
	l := 0
	for n > 1 {
		n >>= 1
		l++
	}
	return l
}

// Len returns 2^NumVars().
func (p *Multilinear[E]) Len() int { return len(p.evals) }

// Evals exposes the dense buffer directly; callers must not retain it past
// the next FoldInPlace, which reuses the same backing array's low half.
func (p *Multilinear[E]) Evals() []E { return p.evals }

// FoldInPlace performs one round of partial evaluation: p'[j] = p[2j] +
// r*(p[2j+1]+p[2j]). The result overwrites the low half of the existing
// buffer and the polynomial shrinks to half its length; the high half is
// left stale and must not be read through Evals after this call.
func (p *Multilinear[E]) FoldInPlace(r E) {
	half := len(p.evals) / 2
	for j := 0; j < half; j++ {
		lo, hi := p.evals[2*j], p.evals[2*j+1]
		p.evals[j] = lo.Add(r.Mul(hi.Add(lo)))
	}
	p.evals = p.evals[:half]
}

// Fold returns a new polynomial with r folded in, leaving the receiver
// untouched.
func (p *Multilinear[E]) Fold(r E) *Multilinear[E] {
	half := len(p.evals) / 2
	out := make([]E, half)
	for j := 0; j < half; j++ {
		lo, hi := p.evals[2*j], p.evals[2*j+1]
		out[j] = lo.Add(r.Mul(hi.Add(lo)))
	}
	return &Multilinear[E]{evals: out}
}

// Evaluate folds the polynomial down one variable at a time at the
// coordinates of point (point[i] binds variable i, least-significant
// first), returning the single resulting value. point must have exactly
// NumVars() entries.
func (p *Multilinear[E]) Evaluate(point []E) (E, error) {
	var zero E
	if len(point) != p.NumVars() {
		return zero, fmt.Errorf("poly: point has %d coordinates, expected %d", len(point), p.NumVars())
	}
	cur := &Multilinear[E]{evals: append([]E(nil), p.evals...)}
	for _, r := range point {
		cur.FoldInPlace(r)
	}
	return cur.evals[0], nil
}

// ToMatrix reshapes the dense buffer row-major into an M=2^m by K=2^k
// matrix; row i is entries [i*K, (i+1)*K).
func (p *Multilinear[E]) ToMatrix(m, k int) ([][]E, error) {
	if m+k != p.NumVars() {
		return nil, fmt.Errorf("poly: m+k=%d does not match NumVars()=%d", m+k, p.NumVars())
	}
	rows := 1 << uint(m)
	cols := 1 << uint(k)
	matrix := make([][]E, rows)
	for i := range matrix {
		row := make([]E, cols)
		copy(row, p.evals[i*cols:(i+1)*cols])
		matrix[i] = row
	}
	return matrix, nil
}
