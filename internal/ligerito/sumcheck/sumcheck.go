// Package sumcheck implements the standard multivariate sumcheck protocol
// for a product of multilinear polynomials, each factor total degree 1 so
// each round's polynomial has degree at most the factor count.
package sumcheck

import (
	"fmt"

	"github.com/ligerito-labs/ligerito/internal/ligerito/field"
	"github.com/ligerito-labs/ligerito/internal/ligerito/poly"
)

// RoundPoly is one round's message: the d+1 coefficients of g_i(X), degree
// d = number of factors in the product being summed.
type RoundPoly[E field.Elem[E]] struct {
	Coeffs []E
}

// Eval evaluates the round polynomial at x via Horner's method.
func (g RoundPoly[E]) Eval(x E) E {
	var acc E
	for i := len(g.Coeffs) - 1; i >= 0; i-- {
		acc = acc.Mul(x).Add(g.Coeffs[i])
	}
	return acc
}

// Prover runs the prover side of sumcheck over a product of factors (each a
// dense multilinear polynomial of the same arity), claiming their
// pointwise product sums to Claim over the Boolean hypercube.
type Prover[E field.Elem[E]] struct {
	factors []*poly.Multilinear[E]
	claim   E
}

// NewProver builds a sumcheck prover for Σ_x Π_k factors[k](x) = claim. All
// factors must share the same number of variables.
func NewProver[E field.Elem[E]](factors []*poly.Multilinear[E], claim E) (*Prover[E], error) {
	if len(factors) == 0 {
		return nil, fmt.Errorf("sumcheck: at least one factor required")
	}
	n := factors[0].NumVars()
	for i, f := range factors {
		if f.NumVars() != n {
			return nil, fmt.Errorf("sumcheck: factor %d has %d variables, expected %d", i, f.NumVars(), n)
		}
	}
	return &Prover[E]{factors: factors, claim: claim}, nil
}

// NumVars returns how many rounds remain including this one.
func (p *Prover[E]) NumVars() int {
	return p.factors[0].NumVars()
}

// Claim returns the sum the prover was constructed with. Round and Fold do
// not change it; each later round's claim is NextClaim of the round before.
func (p *Prover[E]) Claim() E {
	return p.claim
}

// Round computes this round's polynomial: g(X) = Σ_{x in {0,1}^{n-1}}
// Π_k factor_k(X, x), represented by its d+1 evaluations at X=0..d (d = len
// of factors), then interpolated to coefficient form via Lagrange
// interpolation over the small point set {0,...,d}.
func (p *Prover[E]) Round() (RoundPoly[E], error) {
	d := len(p.factors)
	half := p.factors[0].Len() / 2

	// Evaluate g at X = 0, 1, ..., d by, for each factor k, linearly
	// extrapolating factor_k(X, x) = lo + X*(hi-lo) for every x in the
	// remaining hypercube, then taking the product over factors and
	// summing over x.
	evalPoints := make([]E, d+1)
	for i := range evalPoints {
		evalPoints[i] = indexToElem[E](i)
	}

	ys := make([]E, d+1)
	for pi, x := range evalPoints {
		var sum E
		for j := 0; j < half; j++ {
			var prod E
			prod = prod.One()
			for _, f := range p.factors {
				evals := f.Evals()
				lo, hi := evals[2*j], evals[2*j+1]
				val := lo.Add(x.Mul(hi.Add(lo)))
				prod = prod.Mul(val)
			}
			sum = sum.Add(prod)
		}
		ys[pi] = sum
	}

	coeffs, err := interpolate(evalPoints, ys)
	if err != nil {
		return RoundPoly[E]{}, fmt.Errorf("sumcheck: %w", err)
	}
	return RoundPoly[E]{Coeffs: coeffs}, nil
}

// Fold binds this round's challenge into every factor, shrinking them all
// by one variable.
func (p *Prover[E]) Fold(r E) {
	for _, f := range p.factors {
		f.FoldInPlace(r)
	}
}

// FinalValues returns each factor's single remaining value once every
// variable has been folded (NumVars() == 0).
func (p *Prover[E]) FinalValues() []E {
	out := make([]E, len(p.factors))
	for i, f := range p.factors {
		out[i] = f.Evals()[0]
	}
	return out
}

// CheckRound validates g_i(0)+g_i(1) == claimedSum, the per-round
// consistency check a sumcheck verifier runs before deriving the next
// round's challenge and claim (g_i(r)) from g_i itself.
func CheckRound[E field.Elem[E]](g RoundPoly[E], claimedSum E) error {
	var zero, one E
	one = one.One()
	sum := g.Eval(zero).Add(g.Eval(one))
	if !sum.Equal(claimedSum) {
		return fmt.Errorf("sumcheck: round check failed: g(0)+g(1) != claimed sum")
	}
	return nil
}

// NextClaim evaluates g_i at the round challenge r, producing
// claimed_sum_{i+1} for the following round — the verifier-side
// counterpart to Fold, which updates the prover's factors instead.
func NextClaim[E field.Elem[E]](g RoundPoly[E], r E) E {
	return g.Eval(r)
}

// smallIntField is satisfied by every concrete field type via a
// FromSmallInt method that reinterprets a small integer as a raw bit
// pattern. Kept separate from Elem so the core arithmetic interface stays
// minimal; asserted dynamically the same way the fft package asserts Inv.
type smallIntField[E any] interface {
	FromSmallInt(uint64) E
}

// indexToElem produces the i-th in a fixed sequence of pairwise distinct
// field elements (0, 1, 2, ...), used as the sumcheck evaluation points.
// These must be distinct, not the integers i embedded via repeated field
// addition — in characteristic 2, 1+1=0 collapses any such embedding past
// i=1, which would make the "evaluation points" coincide and break
// interpolation.
func indexToElem[E field.Elem[E]](i int) E {
	var zero E
	p, ok := any(zero).(smallIntField[E])
	if !ok {
		panic("sumcheck: field type does not implement FromSmallInt")
	}
	return p.FromSmallInt(uint64(i))
}
