package field

// Embeddable is satisfied by every field the recursion engine can fold into
// the GF(2^128) challenge field. Early rounds of a Ligerito proof can encode
// their matrix over a smaller tower level (GF16/32/64) for speed; every
// tensor challenge and cross-round linear combination happens in GF128
// regardless. Embed lets generic code written against Embeddable[E] lift an
// E into GF128 without a type switch.
type Embeddable[E any] interface {
	Elem[E]
	Embed() GF128
}

// Embed lifts a into GF128 via the GF16->GF32->GF64->GF128 tower embedding.
func (a GF16) Embed() GF128 { return EmbedGF16ToGF128(a) }

// Embed lifts a into GF128 via the GF32->GF64->GF128 tower embedding.
func (a GF32) Embed() GF128 { return EmbedGF32ToGF128(a) }

// Embed lifts a into GF128 via the GF64->GF128 tower embedding.
func (a GF64) Embed() GF128 { return EmbedFromGF64(a) }

// Embed is the identity on GF128 itself.
func (a GF128) Embed() GF128 { return a }
