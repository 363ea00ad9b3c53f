package ligerito

import (
	"github.com/ligerito-labs/ligerito/internal/ligerito/field"
	"github.com/ligerito-labs/ligerito/internal/ligerito/recursion"
)

// Verify checks proof against the claim that a polynomial of
// 2^cfg.LogPolySize coefficients evaluates to claimedValue at evalPoint.
// cfg must be the same configuration (schedule, rates, transcript/hash
// choice, domain tag) the prover used.
func Verify[E field.Embeddable[E]](cfg *Config, proof Proof, evalPoint []E, claimedValue E) (bool, error) {
	if err := cfg.Validate(); err != nil {
		return false, err
	}
	if len(evalPoint) != cfg.LogPolySize {
		return false, newError(ErrInvalidInput, nil, "eval point has %d coordinates, expected %d", len(evalPoint), cfg.LogPolySize)
	}

	schedule, err := cfg.schedule()
	if err != nil {
		return false, newError(ErrInvalidConfig, err, "building schedule")
	}

	rproof, err := unmarshalProof[E](proof)
	if err != nil {
		return false, newError(ErrSerialization, err, "unmarshaling proof")
	}

	tr := cfg.newTranscript()
	tr.AbsorbBytes("ligerito/arity", leUint64(uint64(cfg.LogPolySize)))
	for _, x := range evalPoint {
		tr.AbsorbField("ligerito/point", x.Embed())
	}
	tr.AbsorbField("ligerito/claim", claimedValue.Embed())

	ok, err := recursion.Verify(tr, cfg.hasher(), cfg.recursionConfig(), schedule, evalPoint, claimedValue, rproof)
	if err != nil {
		return false, newError(ErrVerificationRejected, err, "verifying recursion proof")
	}
	return ok, nil
}
