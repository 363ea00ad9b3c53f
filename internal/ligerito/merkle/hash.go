package merkle

import (
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"
)

// Digest is a 256-bit Merkle node/leaf hash.
type Digest [32]byte

// domain separators distinguish leaf hashes from internal-node hashes so a
// leaf can never be replayed as a forged internal node, or vice versa.
const (
	domainLeaf = byte(0x00)
	domainNode = byte(0x01)
)

// Hasher is the pluggable 256-bit hash capability the tree commits with.
// Two interchangeable implementations are provided: a sponge-style
// construction (SHA3-256, streaming/domain-separated) and a plain
// compression function (BLAKE3-256). Prover and verifier must agree on one.
type Hasher interface {
	HashLeaf(columnBytes []byte) Digest
	HashNode(left, right Digest) Digest
}

// Sha3Hasher implements Hasher using the SHA3-256 sponge.
type Sha3Hasher struct{}

func (Sha3Hasher) HashLeaf(columnBytes []byte) Digest {
	h := sha3.New256()
	h.Write(columnBytes)
	h.Write([]byte{domainLeaf})
	var d Digest
	h.Sum(d[:0])
	return d
}

func (Sha3Hasher) HashNode(left, right Digest) Digest {
	h := sha3.New256()
	h.Write(left[:])
	h.Write(right[:])
	h.Write([]byte{domainNode})
	var d Digest
	h.Sum(d[:0])
	return d
}

// Blake3Hasher implements Hasher using BLAKE3 as a plain compression
// function (one-shot Sum256, no streaming state retained between calls).
type Blake3Hasher struct{}

func (Blake3Hasher) HashLeaf(columnBytes []byte) Digest {
	buf := make([]byte, 0, len(columnBytes)+1)
	buf = append(buf, columnBytes...)
	buf = append(buf, domainLeaf)
	return blake3.Sum256(buf)
}

func (Blake3Hasher) HashNode(left, right Digest) Digest {
	buf := make([]byte, 0, 65)
	buf = append(buf, left[:]...)
	buf = append(buf, right[:]...)
	buf = append(buf, domainNode)
	return blake3.Sum256(buf)
}
