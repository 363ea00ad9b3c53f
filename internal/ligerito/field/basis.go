package field

// StandardBasisGF16 returns the basis {2^0, 2^1, ..., 2^15} of GF16 viewed as
// a 16-dimensional F2 vector space. The additive FFT and Reed-Solomon
// packages use this as the default basis for the evaluation subspace: any
// linearly independent set works mathematically, and the power-of-two
// coefficient vectors are the simplest to generate and to reason about.
func StandardBasisGF16() []GF16 {
	basis := make([]GF16, 16)
	for i := range basis {
		basis[i] = GF16(1) << uint(i)
	}
	return basis
}

// StandardBasisGF32 returns the analogous 32-element basis of GF32.
func StandardBasisGF32() []GF32 {
	basis := make([]GF32, 32)
	for i := range basis {
		basis[i] = GF32(1) << uint(i)
	}
	return basis
}

// StandardBasisGF64 returns the analogous 64-element basis of GF64.
func StandardBasisGF64() []GF64 {
	basis := make([]GF64, 64)
	for i := range basis {
		basis[i] = GF64(1) << uint(i)
	}
	return basis
}

// StandardBasisGF128 returns the analogous 128-element basis of GF128, the
// low 64 elements living in Lo and the high 64 in Hi.
func StandardBasisGF128() []GF128 {
	basis := make([]GF128, 128)
	for i := 0; i < 64; i++ {
		basis[i] = GF128{Lo: GF64(1) << uint(i)}
		basis[i+64] = GF128{Hi: GF64(1) << uint(i)}
	}
	return basis
}

// FromSmallInt reinterprets i as a raw bit-pattern element of the field,
// not as the integer i embedded via repeated field addition (which would
// collapse in characteristic 2 — 1+1=0). Used wherever callers need a set
// of mutually distinct field elements indexed 0, 1, 2, ... — e.g. sumcheck
// evaluation points — and don't care which elements those are, only that
// they're pairwise distinct and reproducible.
func (GF16) FromSmallInt(i uint64) GF16 { return GF16(i) }

// FromSmallInt is GF32's analogue of GF16.FromSmallInt.
func (GF32) FromSmallInt(i uint64) GF32 { return GF32(i) }

// FromSmallInt is GF64's analogue of GF16.FromSmallInt.
func (GF64) FromSmallInt(i uint64) GF64 { return GF64(i) }

// FromSmallInt is GF128's analogue of GF16.FromSmallInt, placing i in the
// low 64-bit limb.
func (GF128) FromSmallInt(i uint64) GF128 { return GF128{Lo: GF64(i)} }
