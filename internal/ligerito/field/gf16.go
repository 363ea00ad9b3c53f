// Package field implements GF(2^16), GF(2^32), GF(2^64), and GF(2^128)
// binary extension field arithmetic. GF(2^16) is the base representation;
// the larger fields are built as the Diamond-Posen binary tower — each
// GF(2^2k) is the quadratic extension GF(2^k)[X]/(X^2+X+delta_k) of the
// field one level down. Addition is XOR throughout. Multiplication is
// constant-time: every operation below is a fixed sequence of table lookups
// and XORs with no secret-dependent branch or memory index.
package field

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
)

// ErrInverseOfZero is returned by Inv when called on the additive identity.
var ErrInverseOfZero = errors.New("field: inverse of zero is undefined")

// irred16 is the irreducible polynomial x^16+x^5+x^3+x+1 (0x1002B) fixing
// GF(2^16) multiplication, including its implicit leading term (bit 16).
const irred16 = 0x1002B

// GF16 is an element of GF(2^16), stored as its 16-bit coefficient vector.
type GF16 uint16

// Zero16 and One16 are the additive and multiplicative identities.
const (
	Zero16 GF16 = 0
	One16  GF16 = 1
)

// Add returns a+b. Addition in characteristic 2 is XOR.
func (a GF16) Add(b GF16) GF16 { return a ^ b }

// Sub is identical to Add in characteristic 2; kept as a distinct name so
// call sites that mean "subtract" read naturally.
func (a GF16) Sub(b GF16) GF16 { return a ^ b }

// Mul returns the unique c such that c = a*b mod irred16.
func (a GF16) Mul(b GF16) GF16 {
	product := clmul16(uint16(a), uint16(b))
	return GF16(reduce16(product))
}

// reduce16 folds a 32-bit carryless product down to 16 bits modulo the fixed
// irreducible polynomial, top bit first. The fold is applied via an
// arithmetic mask rather than a branch on the (secret-dependent) product, so
// every call executes the same 16 unconditional XORs regardless of operand
// values.
func reduce16(product uint32) uint16 {
	for bit := 31; bit >= 16; bit-- {
		bitSet := (product >> uint(bit)) & 1
		mask := uint32(0) - bitSet
		product ^= (irred16 << uint(bit-16)) & mask
	}
	return uint16(product)
}

// Square returns a*a.
func (a GF16) Square() GF16 { return a.Mul(a) }

// Exp returns a raised to the given non-negative power via square-and-multiply.
func (a GF16) Exp(n uint) GF16 {
	result := One16
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

// Inv returns the multiplicative inverse of a via Fermat's little theorem
// for finite fields: a^(2^16-2) = a^-1 for a != 0. The exponent chain is a
// sequence of squarings (the Frobenius endomorphism in characteristic 2)
// interleaved with multiplications — the same shape as Itoh-Tsujii, applied
// directly rather than via its subfield-exponent shortcut.
func (a GF16) Inv() (GF16, error) {
	if a.IsZero() {
		return Zero16, ErrInverseOfZero
	}
	return a.Exp((1 << 16) - 2), nil
}

// One returns the multiplicative identity of GF16, satisfying the generic
// field.Elem constraint used by the FFT/RS/sumcheck/Ligero packages.
func (a GF16) One() GF16 { return One16 }

// IsZero reports whether a is the additive identity.
func (a GF16) IsZero() bool { return a == Zero16 }

// IsOne reports whether a is the multiplicative identity.
func (a GF16) IsOne() bool { return a == One16 }

// Equal reports whether a and b hold the same value.
func (a GF16) Equal(b GF16) bool { return a == b }

// Bytes encodes a in 2-byte little-endian form.
func (a GF16) Bytes() []byte {
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, uint16(a))
	return buf
}

// GF16FromBytes decodes a little-endian 2-byte buffer.
func GF16FromBytes(buf []byte) GF16 {
	return GF16(binary.LittleEndian.Uint16(buf))
}

// RandomGF16 draws a uniformly random element using a CSPRNG.
func RandomGF16() (GF16, error) {
	var buf [2]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	return GF16FromBytes(buf[:]), nil
}
