package field

import (
	"crypto/rand"
	"encoding/binary"
)

// Tower delta constants. GF(2^2k) = GF(2^k)[X]/(X^2+X+delta_k) requires
// delta_k to have trace 1 over GF(2^k) so the quadratic has no root in
// GF(2^k) (making the extension a field, not a product ring). delta32 =
// 0x0800 has trace 1 over GF(2); each higher delta is the one below times
// that level's generator X (delta in the hi coordinate, lo=0), and since X
// has trace 1 over the level below, the trace of delta*X over GF(2) equals
// delta's, so the property holds at each level. It is a one-time,
// build-independent fact about the tower, not something either prover or
// verifier needs to recheck at runtime.
const (
	delta32 GF16 = 0x0800
)

var (
	delta64 GF32
	delta128 GF64
)

func init() {
	delta64 = GF32(uint32(delta32) << 16)
	delta128 = GF64(uint64(delta64) << 32)
}

// --- GF(2^32): tower extension of GF16, packed as (hi<<16 | lo). ---

// GF32 is an element of GF(2^32), represented as the pair (hi, lo) of
// GF(2^16) coordinates of hi*X+lo.
type GF32 uint32

const (
	Zero32 GF32 = 0
	One32  GF32 = 1
)

func (a GF32) parts() (hi, lo GF16) {
	return GF16(a >> 16), GF16(a)
}

func gf32FromParts(hi, lo GF16) GF32 {
	return GF32(uint32(hi)<<16 | uint32(lo))
}

func (a GF32) Add(b GF32) GF32 { return a ^ b }
func (a GF32) Sub(b GF32) GF32 { return a ^ b }

// Mul implements the tower's 3-multiplication Karatsuba schedule:
// (a_hi*X+a_lo)*(b_hi*X+b_lo) = (a_lo*b_lo + delta*a_hi*b_hi) +
// ((a_hi+a_lo)*(b_hi+b_lo) + a_lo*b_lo)*X
func (a GF32) Mul(b GF32) GF32 {
	aHi, aLo := a.parts()
	bHi, bLo := b.parts()

	m0 := aLo.Mul(bLo)
	m1 := aHi.Mul(bHi)
	m2 := aHi.Add(aLo).Mul(bHi.Add(bLo))

	lo := m0.Add(delta32.Mul(m1))
	hi := m2.Add(m0)
	return gf32FromParts(hi, lo)
}

func (a GF32) Square() GF32 { return a.Mul(a) }

func (a GF32) Exp(n uint) GF32 {
	result := One32
	base := a
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		n >>= 1
	}
	return result
}

func (a GF32) Inv() (GF32, error) {
	if a.IsZero() {
		return Zero32, ErrInverseOfZero
	}
	return a.Exp(uint(1)<<32 - 2), nil
}

func (a GF32) One() GF32 { return One32 }

func (a GF32) IsZero() bool  { return a == Zero32 }
func (a GF32) IsOne() bool   { return a == One32 }
func (a GF32) Equal(b GF32) bool { return a == b }

func (a GF32) Bytes() []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(a))
	return buf
}

func GF32FromBytes(buf []byte) GF32 {
	return GF32(binary.LittleEndian.Uint32(buf))
}

func RandomGF32() (GF32, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	return GF32FromBytes(buf[:]), nil
}

// EmbedFromGF16 applies iota: GF(2^16) -> GF(2^32) by zero-extension — the
// GF16 value occupies the lo coordinate with hi=0. Because the tower
// multiplication formula collapses to plain GF16 multiplication whenever
// both hi coordinates are zero, this is a ring monomorphism, not just an
// additive embedding.
func EmbedFromGF16(a GF16) GF32 {
	return gf32FromParts(Zero16, a)
}

// --- GF(2^64): tower extension of GF32, packed as (hi<<32 | lo). ---

// GF64 is an element of GF(2^64), represented as the pair (hi, lo) of
// GF(2^32) coordinates of hi*X+lo.
type GF64 uint64

const (
	Zero64 GF64 = 0
	One64  GF64 = 1
)

func (a GF64) parts() (hi, lo GF32) {
	return GF32(a >> 32), GF32(a)
}

func gf64FromParts(hi, lo GF32) GF64 {
	return GF64(uint64(hi)<<32 | uint64(lo))
}

func (a GF64) Add(b GF64) GF64 { return a ^ b }
func (a GF64) Sub(b GF64) GF64 { return a ^ b }

func (a GF64) Mul(b GF64) GF64 {
	aHi, aLo := a.parts()
	bHi, bLo := b.parts()

	m0 := aLo.Mul(bLo)
	m1 := aHi.Mul(bHi)
	m2 := aHi.Add(aLo).Mul(bHi.Add(bLo))

	lo := m0.Add(delta64.Mul(m1))
	hi := m2.Add(m0)
	return gf64FromParts(hi, lo)
}

func (a GF64) Square() GF64 { return a.Mul(a) }

func (a GF64) Exp(n uint64) GF64 {
	result := One64
	base := a
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		n >>= 1
	}
	return result
}

func (a GF64) Inv() (GF64, error) {
	if a.IsZero() {
		return Zero64, ErrInverseOfZero
	}
	return a.Exp(^uint64(1)), nil // 2^64 - 2, exactly the all-ones exponent with bit0 cleared
}

func (a GF64) One() GF64 { return One64 }

func (a GF64) IsZero() bool  { return a == Zero64 }
func (a GF64) IsOne() bool   { return a == One64 }
func (a GF64) Equal(b GF64) bool { return a == b }

func (a GF64) Bytes() []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(a))
	return buf
}

func GF64FromBytes(buf []byte) GF64 {
	return GF64(binary.LittleEndian.Uint64(buf))
}

func RandomGF64() (GF64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	return GF64FromBytes(buf[:]), nil
}

// EmbedFromGF32 applies iota: GF(2^32) -> GF(2^64) by zero-extension.
func EmbedFromGF32(a GF32) GF64 {
	return gf64FromParts(Zero32, a)
}

// EmbedGF16ToGF64 composes the GF16->GF32 and GF32->GF64 embeddings.
func EmbedGF16ToGF64(a GF16) GF64 {
	return EmbedFromGF32(EmbedFromGF16(a))
}

// --- GF(2^128): tower extension of GF64, two 64-bit limbs. ---

// GF128 is an element of GF(2^128), represented as the pair (Hi, Lo) of
// GF(2^64) coordinates of Hi*X+Lo. This is the field challenges are always
// squeezed into and the field every recursion round beyond the first
// operates in.
type GF128 struct {
	Hi GF64
	Lo GF64
}

var (
	Zero128 = GF128{Hi: Zero64, Lo: Zero64}
	One128  = GF128{Hi: Zero64, Lo: One64}
)

func (a GF128) Add(b GF128) GF128 {
	return GF128{Hi: a.Hi.Add(b.Hi), Lo: a.Lo.Add(b.Lo)}
}
func (a GF128) Sub(b GF128) GF128 { return a.Add(b) }

func (a GF128) Mul(b GF128) GF128 {
	m0 := a.Lo.Mul(b.Lo)
	m1 := a.Hi.Mul(b.Hi)
	m2 := a.Hi.Add(a.Lo).Mul(b.Hi.Add(b.Lo))

	lo := m0.Add(delta128.Mul(m1))
	hi := m2.Add(m0)
	return GF128{Hi: hi, Lo: lo}
}

// MulScalar multiplies by a GF(2^64) scalar embedded via the identity
// coordinate map (scalar in the Lo slot, Hi=0) — a common fast path when
// combining a tower-128 accumulator with a tower-64 coefficient.
func (a GF128) MulScalar(s GF64) GF128 {
	return a.Mul(GF128{Hi: Zero64, Lo: s})
}

func (a GF128) Square() GF128 { return a.Mul(a) }

func (a GF128) Exp(n []uint64) GF128 {
	// n is the exponent as little-endian 64-bit words (2^128-2 needs 128 bits).
	result := One128
	base := a
	for _, word := range n {
		w := word
		for i := 0; i < 64; i++ {
			if w&1 == 1 {
				result = result.Mul(base)
			}
			base = base.Mul(base)
			w >>= 1
		}
	}
	return result
}

// Inv returns a^-1 = a^(2^128-2) via the Frobenius-chain exponentiation
// described in GF16.Inv's doc comment, generalized to 128 bits.
func (a GF128) Inv() (GF128, error) {
	if a.IsZero() {
		return Zero128, ErrInverseOfZero
	}
	// 2^128 - 2 in little-endian 64-bit words: all ones except bit 0.
	exponent := []uint64{^uint64(1), ^uint64(0)}
	return a.Exp(exponent), nil
}

func (a GF128) One() GF128 { return One128 }

func (a GF128) IsZero() bool     { return a.Hi.IsZero() && a.Lo.IsZero() }
func (a GF128) IsOne() bool      { return a.Hi.IsZero() && a.Lo.IsOne() }
func (a GF128) Equal(b GF128) bool { return a.Hi == b.Hi && a.Lo == b.Lo }

// Bytes encodes a as 16 little-endian bytes: Lo's 8 bytes followed by Hi's.
func (a GF128) Bytes() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(a.Lo))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(a.Hi))
	return buf
}

func GF128FromBytes(buf []byte) GF128 {
	return GF128{
		Lo: GF64(binary.LittleEndian.Uint64(buf[0:8])),
		Hi: GF64(binary.LittleEndian.Uint64(buf[8:16])),
	}
}

func RandomGF128() (GF128, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return GF128{}, err
	}
	return GF128FromBytes(buf[:]), nil
}

// EmbedFromGF64 applies iota: GF(2^64) -> GF(2^128) by zero-extension into
// the Lo coordinate, Hi=0.
func EmbedFromGF64(a GF64) GF128 {
	return GF128{Hi: Zero64, Lo: a}
}

// EmbedGF32ToGF128 composes the GF32->GF64 and GF64->GF128 embeddings.
func EmbedGF32ToGF128(a GF32) GF128 {
	return EmbedFromGF64(EmbedFromGF32(a))
}

// EmbedGF16ToGF128 composes the full GF16->GF32->GF64->GF128 chain.
func EmbedGF16ToGF128(a GF16) GF128 {
	return EmbedFromGF64(EmbedGF16ToGF64(a))
}
