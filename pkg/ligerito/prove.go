package ligerito

import (
	"fmt"

	"github.com/ligerito-labs/ligerito/internal/ligerito/field"
	"github.com/ligerito-labs/ligerito/internal/ligerito/recursion"
)

// Prove builds a proof that the dense multilinear polynomial represented by
// coeffs evaluates to claimedValue at evalPoint, under cfg. coeffs is padded
// with zeros up to 2^cfg.LogPolySize entries if shorter; it is an error for
// it to be longer.
func Prove[E field.Embeddable[E]](cfg *Config, coeffs []E, evalPoint []E, claimedValue E) (Proof, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	full := 1 << uint(cfg.LogPolySize)
	if len(coeffs) > full {
		return nil, newError(ErrInvalidInput, nil, "polynomial has %d coefficients, exceeds 2^%d", len(coeffs), cfg.LogPolySize)
	}
	if len(evalPoint) != cfg.LogPolySize {
		return nil, newError(ErrInvalidInput, nil, "eval point has %d coordinates, expected %d", len(evalPoint), cfg.LogPolySize)
	}

	padded := make([]E, full)
	copy(padded, coeffs)

	schedule, err := cfg.schedule()
	if err != nil {
		return nil, newError(ErrInvalidConfig, err, "building schedule")
	}

	tr := cfg.newTranscript()
	tr.AbsorbBytes("ligerito/arity", leUint64(uint64(cfg.LogPolySize)))
	for _, x := range evalPoint {
		tr.AbsorbField("ligerito/point", x.Embed())
	}
	tr.AbsorbField("ligerito/claim", claimedValue.Embed())

	basis := standardBasis[E]()
	rproof, err := recursion.Prove(tr, cfg.hasher(), cfg.recursionConfig(), schedule, basis, padded, evalPoint, claimedValue)
	if err != nil {
		return nil, newError(ErrProofGeneration, err, "building recursion proof")
	}

	out, err := marshalProof[E](rproof)
	if err != nil {
		return nil, newError(ErrSerialization, err, "marshaling proof")
	}
	return out, nil
}

// standardBasis returns the additive-FFT evaluation basis for E's field.
func standardBasis[E field.Embeddable[E]]() []E {
	var zero E
	switch any(zero).(type) {
	case field.GF16:
		return any(field.StandardBasisGF16()).([]E)
	case field.GF32:
		return any(field.StandardBasisGF32()).([]E)
	case field.GF64:
		return any(field.StandardBasisGF64()).([]E)
	case field.GF128:
		return any(field.StandardBasisGF128()).([]E)
	default:
		panic(fmt.Sprintf("ligerito: unsupported field type %T", zero))
	}
}

func leUint64(v uint64) []byte {
	b := make([]byte, 8)
	for i := range b {
		b[i] = byte(v >> (8 * uint(i)))
	}
	return b
}
