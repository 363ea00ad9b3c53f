package sumcheck

import "github.com/ligerito-labs/ligerito/internal/ligerito/field"

// interpolate converts n evaluations at n pairwise distinct points into the
// n monomial coefficients of the unique polynomial of degree < n passing
// through them, via Lagrange's formula: for each point i, build the basis
// polynomial L_i(X) = prod_{j != i} (X - x_j) / (x_i - x_j) in coefficient
// form, then accumulate values[i] * L_i(X) into the result.
//
// n is always small here (one more than the sumcheck factor count), so the
// O(n^2) coefficient-multiplication approach is simpler than any FFT-based
// scheme and plenty fast.
func interpolate[E field.Elem[E]](points, values []E) ([]E, error) {
	n := len(points)
	if len(values) != n {
		return nil, errInterpolateLengthMismatch
	}

	coeffs := make([]E, n)
	for i := 0; i < n; i++ {
		basis, err := lagrangeBasis(points, i)
		if err != nil {
			return nil, err
		}
		for j, c := range basis {
			coeffs[j] = coeffs[j].Add(values[i].Mul(c))
		}
	}
	return coeffs, nil
}

// lagrangeBasis returns the coefficient-form polynomial L_i that is 1 at
// points[i] and 0 at every other points[j].
func lagrangeBasis[E field.Elem[E]](points []E, i int) ([]E, error) {
	n := len(points)
	// poly starts as the constant 1; repeatedly multiply in (X - points[j]).
	poly := make([]E, 1, n)
	poly[0] = poly[0].One()

	var denom E
	denom = denom.One()

	for j := 0; j < n; j++ {
		if j == i {
			continue
		}
		diff := points[i].Sub(points[j])
		if diff.IsZero() {
			return nil, errInterpolateDuplicatePoint
		}
		denom = denom.Mul(diff)
		poly = multiplyLinear(poly, points[j])
	}

	denomInv, err := invertElem(denom)
	if err != nil {
		return nil, err
	}
	for k := range poly {
		poly[k] = poly[k].Mul(denomInv)
	}
	return poly, nil
}

// multiplyLinear multiplies the coefficient vector poly (ascending degree)
// by (X - root), i.e. (X + root) in characteristic 2, returning a new
// coefficient vector one degree higher.
func multiplyLinear[E field.Elem[E]](poly []E, root E) []E {
	out := make([]E, len(poly)+1)
	for k, c := range poly {
		out[k+1] = out[k+1].Add(c)
		out[k] = out[k].Add(c.Mul(root))
	}
	return out
}
