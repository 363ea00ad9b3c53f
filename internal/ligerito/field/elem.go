package field

// Elem is the constraint every field used by the generic FFT, Reed-Solomon,
// Merkle-leaf, multilinear-polynomial, sumcheck, and Ligero packages must
// satisfy. GF16, GF32, GF64, and GF128 all implement it. The zero value of E
// is always the additive identity (true for every concrete field below), so
// callers needing a zero just write `var zero E` instead of requiring a
// dedicated method.
type Elem[E any] interface {
	Add(E) E
	Sub(E) E
	Mul(E) E
	One() E
	IsZero() bool
	Equal(E) bool
	Bytes() []byte
}
