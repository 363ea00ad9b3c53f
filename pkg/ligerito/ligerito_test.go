package ligerito

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ligerito-labs/ligerito/internal/ligerito/field"
	"github.com/ligerito-labs/ligerito/internal/ligerito/poly"
)

func gf32Coeffs(vals ...uint32) []field.GF32 {
	out := make([]field.GF32, len(vals))
	for i, v := range vals {
		out[i] = field.GF32(v)
	}
	return out
}

func testConfig() *Config {
	cfg := DefaultConfig(4)
	cfg.Schedule = []RoundShape{{M: 2, K: 2}, {M: 1, K: 1}}
	cfg.NumQueries = 2
	return cfg
}

func TestProveVerifyRoundTrip(t *testing.T) {
	cfg := testConfig()
	coeffs := gf32Coeffs(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16)
	evalPoint := gf32Coeffs(3, 11, 0, 5)

	ml, err := poly.New(coeffs)
	require.NoError(t, err)
	claimed, err := ml.Evaluate(evalPoint)
	require.NoError(t, err)

	proof, err := Prove[field.GF32](cfg, coeffs, evalPoint, claimed)
	require.NoError(t, err)

	ok, err := Verify[field.GF32](cfg, proof, evalPoint, claimed)
	require.NoError(t, err)
	require.True(t, ok, "expected honest proof to verify")
}

func TestProveVerifyRejectsWrongClaim(t *testing.T) {
	cfg := testConfig()
	coeffs := gf32Coeffs(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16)
	evalPoint := gf32Coeffs(3, 11, 0, 5)

	ml, err := poly.New(coeffs)
	require.NoError(t, err)
	claimed, err := ml.Evaluate(evalPoint)
	require.NoError(t, err)

	proof, err := Prove[field.GF32](cfg, coeffs, evalPoint, claimed)
	require.NoError(t, err)

	wrong := claimed.Add(field.GF32(1))
	ok, err := Verify[field.GF32](cfg, proof, evalPoint, wrong)
	require.NoError(t, err)
	require.False(t, ok, "expected mismatched claim to fail verification")
}

func TestProveRejectsOversizedPolynomial(t *testing.T) {
	cfg := testConfig()
	coeffs := gf32Coeffs(make([]uint32, 32)...)
	evalPoint := gf32Coeffs(0, 0, 0, 0)
	var claimed field.GF32

	_, err := Prove[field.GF32](cfg, coeffs, evalPoint, claimed)
	require.Error(t, err)
}

func TestConfigValidateRejectsBadSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.Schedule = []RoundShape{{M: 1, K: 1}}
	require.Error(t, cfg.Validate())
}

func TestConfigValidateRejectsMissingDomainTag(t *testing.T) {
	cfg := testConfig()
	cfg.DomainTag = ""
	require.Error(t, cfg.Validate())
}

// sequentialGF32Coeffs builds the 2^logSize-entry polynomial
// [0, 1, 2, ..., 2^logSize-1], each value taken as a GF32 element.
func sequentialGF32Coeffs(logSize int) []field.GF32 {
	n := 1 << uint(logSize)
	out := make([]field.GF32, n)
	for i := range out {
		out[i] = field.GF32(uint32(i))
	}
	return out
}

func zeroGF32Point(numVars int) []field.GF32 {
	return make([]field.GF32, numVars)
}

// TestProveVerifyLargeDegreeRoundTrip exercises S1/S2 from the protocol's
// scenario matrix at ℓ=12: a sequential 4096-entry polynomial evaluated at
// the all-zeros point, where the multilinear extension's value is exactly
// the constant-term coefficient, 0.
func TestProveVerifyLargeDegreeRoundTrip(t *testing.T) {
	const logSize = 12
	cfg := DefaultConfig(logSize)
	coeffs := sequentialGF32Coeffs(logSize)
	evalPoint := zeroGF32Point(logSize)

	ml, err := poly.New(coeffs)
	require.NoError(t, err)
	claimed, err := ml.Evaluate(evalPoint)
	require.NoError(t, err)
	require.True(t, claimed.IsZero(), "MLE at the all-zeros point must equal coeffs[0]")

	proof, err := Prove[field.GF32](cfg, coeffs, evalPoint, claimed)
	require.NoError(t, err)

	ok, err := Verify[field.GF32](cfg, proof, evalPoint, claimed)
	require.NoError(t, err)
	require.True(t, ok, "expected honest proof to verify")
}

// TestProveVerifyLargeDegreeRejectsWrongClaim is S2: identical setup to S1,
// but the verifier is given claimed_value=1 instead of the correct 0, and
// must reject.
func TestProveVerifyLargeDegreeRejectsWrongClaim(t *testing.T) {
	const logSize = 12
	cfg := DefaultConfig(logSize)
	coeffs := sequentialGF32Coeffs(logSize)
	evalPoint := zeroGF32Point(logSize)

	ml, err := poly.New(coeffs)
	require.NoError(t, err)
	claimed, err := ml.Evaluate(evalPoint)
	require.NoError(t, err)

	proof, err := Prove[field.GF32](cfg, coeffs, evalPoint, claimed)
	require.NoError(t, err)

	wrong := claimed.Add(field.GF32(1))
	ok, err := Verify[field.GF32](cfg, proof, evalPoint, wrong)
	require.NoError(t, err)
	require.False(t, ok, "expected mismatched claim to fail verification")
}
