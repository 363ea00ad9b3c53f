// Package transcript implements the Fiat-Shamir transcript every Ligerito
// round absorbs its commitments and challenges through. Two interchangeable
// implementations are provided — HashChain (a running compression-function
// chain) and Sponge (a true absorb/squeeze construction over a SHAKE256
// extendable-output function) — both deterministic functions of the full
// ordered absorb/squeeze history and the label used at each step.
package transcript

import (
	"encoding/binary"
	"fmt"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"

	"github.com/ligerito-labs/ligerito/internal/ligerito/field"
)

// Transcript is the Fiat-Shamir abstraction every round of the prover and
// verifier share. A proof is bound to exactly one concrete implementation;
// mixing HashChain and Sponge between prover and verifier produces different
// challenges and the proof will fail to verify.
type Transcript interface {
	AbsorbBytes(label string, data []byte)
	AbsorbField(label string, e interface{ Bytes() []byte })
	AbsorbDigest(label string, digest [32]byte)
	SqueezeField(label string) field.GF128
	SqueezeIndices(label string, count, upperBound int) ([]int, error)
}

// --- HashChain: a running BLAKE3 compression chain. ---

// HashChain absorbs by folding each (label, data) pair into a running
// 32-byte state via BLAKE3, and squeezes by ratcheting the state forward one
// compression per 32-bit chunk it needs to emit.
type HashChain struct {
	state [32]byte
}

// NewHashChain starts a fresh chain seeded by a domain separator.
func NewHashChain(domainSep string) *HashChain {
	t := &HashChain{}
	t.state = blake3.Sum256([]byte("ligerito/hashchain/" + domainSep))
	return t
}

func (t *HashChain) absorb(label string, data []byte) {
	buf := make([]byte, 0, len(t.state)+len(label)+len(data)+1)
	buf = append(buf, t.state[:]...)
	buf = append(buf, label...)
	buf = append(buf, 0) // separates label from payload unambiguously
	buf = append(buf, data...)
	t.state = blake3.Sum256(buf)
}

func (t *HashChain) AbsorbBytes(label string, data []byte) {
	t.absorb(label, data)
}

func (t *HashChain) AbsorbField(label string, e interface{ Bytes() []byte }) {
	t.absorb(label, e.Bytes())
}

func (t *HashChain) AbsorbDigest(label string, digest [32]byte) {
	t.absorb(label, digest[:])
}

// squeezeChunk ratchets the state and returns 4 fresh pseudorandom bytes.
func (t *HashChain) squeezeChunk(label string, counter uint32) []byte {
	var ctr [4]byte
	binary.LittleEndian.PutUint32(ctr[:], counter)
	buf := make([]byte, 0, len(t.state)+len(label)+4)
	buf = append(buf, t.state[:]...)
	buf = append(buf, label...)
	buf = append(buf, ctr[:]...)
	out := blake3.Sum256(buf)
	t.state = out
	return out[:4]
}

func (t *HashChain) SqueezeField(label string) field.GF128 {
	var buf [16]byte
	for i := 0; i < 4; i++ {
		copy(buf[i*4:i*4+4], t.squeezeChunk(label, uint32(i)))
	}
	return field.GF128FromBytes(buf[:])
}

func (t *HashChain) SqueezeIndices(label string, count, upperBound int) ([]int, error) {
	return squeezeIndices(count, upperBound, func(counter uint32) uint32 {
		return binary.LittleEndian.Uint32(t.squeezeChunk(label, counter))
	})
}

// --- Sponge: true absorb/squeeze over SHAKE256. ---

// Sponge keeps the full ordered absorb/squeeze history explicitly and, on
// every squeeze, replays that history (plus the requesting label and a
// counter) through a fresh SHAKE256 instance. This is more expensive than
// HashChain's incremental ratchet but models a textbook sponge duplex
// exactly: output is a pure function of everything absorbed so far.
type Sponge struct {
	history []byte
}

// NewSponge starts a fresh sponge seeded by a domain separator.
func NewSponge(domainSep string) *Sponge {
	s := &Sponge{}
	s.history = append(s.history, []byte("ligerito/sponge/"+domainSep)...)
	return s
}

func (s *Sponge) appendTagged(label string, data []byte) {
	var lenBuf [8]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(data)))
	s.history = append(s.history, []byte(label)...)
	s.history = append(s.history, lenBuf[:]...)
	s.history = append(s.history, data...)
}

func (s *Sponge) AbsorbBytes(label string, data []byte) {
	s.appendTagged(label, data)
}

func (s *Sponge) AbsorbField(label string, e interface{ Bytes() []byte }) {
	s.appendTagged(label, e.Bytes())
}

func (s *Sponge) AbsorbDigest(label string, digest [32]byte) {
	s.appendTagged(label, digest[:])
}

// squeezeBytes extracts n bytes for label, recording the squeeze itself into
// the history so later absorbs/squeezes depend on it too.
func (s *Sponge) squeezeBytes(label string, n int) []byte {
	xof := sha3.NewShake256()
	xof.Write(s.history)
	xof.Write([]byte(label))
	out := make([]byte, n)
	xof.Read(out)
	s.appendTagged(label+"/squeezed", out)
	return out
}

func (s *Sponge) SqueezeField(label string) field.GF128 {
	return field.GF128FromBytes(s.squeezeBytes(label, 16))
}

func (s *Sponge) SqueezeIndices(label string, count, upperBound int) ([]int, error) {
	return squeezeIndices(count, upperBound, func(counter uint32) uint32 {
		chunk := s.squeezeBytes(fmt.Sprintf("%s/idx%d", label, counter), 4)
		return binary.LittleEndian.Uint32(chunk)
	})
}

// squeezeIndices draws fresh 32-bit chunks via next, reduces each modulo
// upperBound, and rejects duplicates until count distinct values are
// collected. Both Transcript implementations route through this one
// procedure so prover and verifier always agree on the query set.
func squeezeIndices(count, upperBound int, next func(counter uint32) uint32) ([]int, error) {
	if upperBound <= 0 {
		return nil, fmt.Errorf("transcript: upperBound must be positive, got %d", upperBound)
	}
	if count > upperBound {
		return nil, fmt.Errorf("transcript: cannot draw %d distinct indices from [0,%d)", count, upperBound)
	}

	seen := make(map[int]bool, count)
	indices := make([]int, 0, count)
	var counter uint32
	for len(indices) < count {
		raw := next(counter)
		counter++
		idx := int(raw % uint32(upperBound))
		if seen[idx] {
			continue
		}
		seen[idx] = true
		indices = append(indices, idx)
	}
	return indices, nil
}
