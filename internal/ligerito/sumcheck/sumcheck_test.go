package sumcheck

import (
	"math/rand"
	"testing"

	"github.com/ligerito-labs/ligerito/internal/ligerito/field"
	"github.com/ligerito-labs/ligerito/internal/ligerito/poly"
)

func gf16Poly(t *testing.T, vals ...uint16) *poly.Multilinear[field.GF16] {
	t.Helper()
	evals := make([]field.GF16, len(vals))
	for i, v := range vals {
		evals[i] = field.GF16(v)
	}
	p, err := poly.New(evals)
	if err != nil {
		t.Fatalf("poly.New: %v", err)
	}
	return p
}

func directSum(f, g *poly.Multilinear[field.GF16]) field.GF16 {
	var sum field.GF16
	fe, ge := f.Evals(), g.Evals()
	for i := range fe {
		sum = sum.Add(fe[i].Mul(ge[i]))
	}
	return sum
}

func TestRoundPolyEvalIsConsistentWithInterpolate(t *testing.T) {
	points := []field.GF16{0, 1, 2}
	values := []field.GF16{5, 9, 20}
	coeffs, err := interpolate(points, values)
	if err != nil {
		t.Fatalf("interpolate: %v", err)
	}
	g := RoundPoly[field.GF16]{Coeffs: coeffs}
	for i, pt := range points {
		got := g.Eval(pt)
		if got != values[i] {
			t.Fatalf("point %d: interpolated poly evaluates to %v, want %v", i, got, values[i])
		}
	}
}

func TestInterpolateRejectsDuplicatePoints(t *testing.T) {
	points := []field.GF16{3, 3}
	values := []field.GF16{1, 2}
	if _, err := interpolate(points, values); err == nil {
		t.Fatalf("expected error for duplicate evaluation points")
	}
}

func TestSumcheckFullProtocolRoundTrip(t *testing.T) {
	f := gf16Poly(t, 1, 2, 3, 4, 5, 6, 7, 8)
	g := gf16Poly(t, 8, 1, 6, 3, 5, 2, 9, 4)
	claim := directSum(f, g)

	prover, err := NewProver([]*poly.Multilinear[field.GF16]{f, g}, claim)
	if err != nil {
		t.Fatalf("NewProver: %v", err)
	}

	rnd := rand.New(rand.NewSource(1))
	currentClaim := claim
	for prover.NumVars() > 0 {
		rp, err := prover.Round()
		if err != nil {
			t.Fatalf("Round: %v", err)
		}
		if err := CheckRound(rp, currentClaim); err != nil {
			t.Fatalf("CheckRound: %v", err)
		}
		r := field.GF16(uint16(rnd.Uint32()))
		prover.Fold(r)
		currentClaim = NextClaim(rp, r)
	}

	final := prover.FinalValues()
	if len(final) != 2 {
		t.Fatalf("expected 2 final values, got %d", len(final))
	}
	got := final[0].Mul(final[1])
	if got != currentClaim {
		t.Fatalf("final product %v does not match final claim %v", got, currentClaim)
	}
}

func TestCheckRoundRejectsWrongClaim(t *testing.T) {
	points := []field.GF16{0, 1, 2}
	values := []field.GF16{5, 9, 20}
	coeffs, err := interpolate(points, values)
	if err != nil {
		t.Fatalf("interpolate: %v", err)
	}
	g := RoundPoly[field.GF16]{Coeffs: coeffs}
	wrongClaim := values[0].Add(values[1]).Add(field.One16)
	if err := CheckRound(g, wrongClaim); err == nil {
		t.Fatalf("expected CheckRound to reject a mismatched claim")
	}
}

func TestNewProverRejectsMismatchedArity(t *testing.T) {
	f := gf16Poly(t, 1, 2, 3, 4)
	g := gf16Poly(t, 1, 2)
	if _, err := NewProver([]*poly.Multilinear[field.GF16]{f, g}, field.GF16(0)); err == nil {
		t.Fatalf("expected error for mismatched factor arity")
	}
}
