package poly

import "github.com/ligerito-labs/ligerito/internal/ligerito/field"

// EqBasis returns the multilinear Lagrange basis at tau: a vector of length
// 2^len(tau) where entry i is eq_tau(i) = prod_j (tau_j if bit j of i is set
// else 1+tau_j). This is the row combiner used to fold a matrix's rows by a
// tensor challenge, and the weight vector the sumcheck product runs over.
func EqBasis[E field.Elem[E]](tau []E) []E {
	n := 1 << uint(len(tau))
	basis := make([]E, n)
	basis[0] = basis[0].One() // seed with the multiplicative identity
	size := 1
	for _, r := range tau {
		one := r.One()
		oneMinusR := one.Sub(r)
		for i := size - 1; i >= 0; i-- {
			lo := basis[i].Mul(oneMinusR)
			hi := basis[i].Mul(r)
			basis[i] = lo
			basis[i+size] = hi
		}
		size <<= 1
	}
	return basis
}

// RowCombine computes u[j] = sum_i eqTau(i) * matrix[i][j], the partial
// evaluation of the underlying multilinear polynomial at the m "row"
// variables fixed to tau.
func RowCombine[E field.Elem[E]](matrix [][]E, eqTau []E) []E {
	if len(matrix) == 0 {
		return nil
	}
	cols := len(matrix[0])
	u := make([]E, cols)
	for i, row := range matrix {
		w := eqTau[i]
		if w.IsZero() {
			continue
		}
		for j, v := range row {
			u[j] = u[j].Add(w.Mul(v))
		}
	}
	return u
}
