package recursion

import (
	"testing"

	"github.com/ligerito-labs/ligerito/internal/ligerito/field"
	"github.com/ligerito-labs/ligerito/internal/ligerito/merkle"
	"github.com/ligerito-labs/ligerito/internal/ligerito/poly"
	"github.com/ligerito-labs/ligerito/internal/ligerito/transcript"
)

func gf32Vec(vals ...uint32) []field.GF32 {
	out := make([]field.GF32, len(vals))
	for i, v := range vals {
		out[i] = field.GF32(v)
	}
	return out
}

func TestRecursionProveVerifyRoundTrip(t *testing.T) {
	message := gf32Vec(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16)
	evalPoint := gf32Vec(3, 11, 0, 5) // 4 variables, arbitrary non-Boolean point

	msgPoly, err := poly.New(message)
	if err != nil {
		t.Fatalf("poly.New: %v", err)
	}
	claimedValue, err := msgPoly.Evaluate(evalPoint)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	schedule, err := NewSchedule(4, []RoundShape{{M: 2, K: 2}, {M: 1, K: 1}})
	if err != nil {
		t.Fatalf("NewSchedule: %v", err)
	}
	cfg := Config{InverseRate: 2, NumQueries: 2}
	basis := field.StandardBasisGF32()

	proverTr := transcript.NewHashChain("recursion-test")
	proof, err := Prove[field.GF32](proverTr, merkle.Sha3Hasher{}, cfg, schedule, basis, message, evalPoint, claimedValue)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	if len(proof.FinalPoly) != 1<<uint(schedule.FinalLogSize()) {
		t.Fatalf("final poly has %d entries, want %d", len(proof.FinalPoly), 1<<uint(schedule.FinalLogSize()))
	}

	verifierTr := transcript.NewHashChain("recursion-test")
	ok, err := Verify[field.GF32](verifierTr, merkle.Sha3Hasher{}, cfg, schedule, evalPoint, claimedValue, proof)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected honest proof to verify")
	}
}

func TestRecursionVerifyRejectsWrongClaim(t *testing.T) {
	message := gf32Vec(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16)
	evalPoint := gf32Vec(3, 11, 0, 5)

	msgPoly, err := poly.New(message)
	if err != nil {
		t.Fatalf("poly.New: %v", err)
	}
	claimedValue, err := msgPoly.Evaluate(evalPoint)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	schedule, err := NewSchedule(4, []RoundShape{{M: 2, K: 2}, {M: 1, K: 1}})
	if err != nil {
		t.Fatalf("NewSchedule: %v", err)
	}
	cfg := Config{InverseRate: 2, NumQueries: 2}
	basis := field.StandardBasisGF32()

	proverTr := transcript.NewHashChain("recursion-test")
	proof, err := Prove[field.GF32](proverTr, merkle.Sha3Hasher{}, cfg, schedule, basis, message, evalPoint, claimedValue)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	wrongValue := claimedValue.Add(field.GF32(1))
	verifierTr := transcript.NewHashChain("recursion-test")
	ok, err := Verify[field.GF32](verifierTr, merkle.Sha3Hasher{}, cfg, schedule, evalPoint, wrongValue, proof)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatched claimed value to fail verification")
	}
}

func TestNewScheduleRejectsMismatchedShape(t *testing.T) {
	if _, err := NewSchedule(4, []RoundShape{{M: 2, K: 1}}); err == nil {
		t.Fatalf("expected error for shape not covering logPolySize")
	}
}
