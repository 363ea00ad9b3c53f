// Package merkle implements the column-wise commitment layer: each column of
// an RS-encoded matrix is hashed to a single leaf digest, leaves form a
// strict binary tree padded with zero leaves to a power of two, and openings
// are batched so that shared sibling subtrees are never duplicated across
// queried indices.
package merkle

import (
	"fmt"
	"sort"

	"github.com/ligerito-labs/ligerito/internal/ligerito/field"
)

// Tree commits to a sequence of columns. Each column is M field elements;
// the leaf digest covers the little-endian concatenation of the column's
// bytes.
type Tree struct {
	hasher Hasher
	levels [][]Digest // levels[0] = leaves, levels[len-1] = {root}
}

// ColumnBytes serializes one column (M field elements, any single concrete
// field) as the little-endian concatenation the spec's leaf hash commits to.
func ColumnBytes[E field.Elem[E]](column []E) []byte {
	if len(column) == 0 {
		return nil
	}
	elemSize := len(column[0].Bytes())
	buf := make([]byte, 0, elemSize*len(column))
	for _, e := range column {
		buf = append(buf, e.Bytes()...)
	}
	return buf
}

// Commit builds a tree over the given leaf digests, one per column,
// padding with zero digests to the next power of two.
func Commit(leaves []Digest) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, fmt.Errorf("merkle: cannot commit to zero columns")
	}
	return commitWith(Sha3Hasher{}, leaves)
}

// CommitWithHasher is Commit parameterized over the hash kind; Commit is
// CommitWithHasher(Sha3Hasher{}, leaves).
func CommitWithHasher(hasher Hasher, leaves []Digest) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, fmt.Errorf("merkle: cannot commit to zero columns")
	}
	return commitWith(hasher, leaves)
}

func commitWith(hasher Hasher, leaves []Digest) (*Tree, error) {
	size := 1
	for size < len(leaves) {
		size <<= 1
	}
	padded := make([]Digest, size)
	copy(padded, leaves)

	levels := [][]Digest{padded}
	current := padded
	for len(current) > 1 {
		next := make([]Digest, len(current)/2)
		for i := range next {
			next[i] = hasher.HashNode(current[2*i], current[2*i+1])
		}
		levels = append(levels, next)
		current = next
	}

	return &Tree{hasher: hasher, levels: levels}, nil
}

// HashColumns hashes each column to its leaf digest using hasher.
func HashColumns[E field.Elem[E]](hasher Hasher, columns [][]E) []Digest {
	leaves := make([]Digest, len(columns))
	for i, col := range columns {
		leaves[i] = hasher.HashLeaf(ColumnBytes(col))
	}
	return leaves
}

// Root returns the commitment root.
func (t *Tree) Root() Digest {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// NumLeaves returns the padded leaf count (a power of two).
func (t *Tree) NumLeaves() int {
	return len(t.levels[0])
}

// Proof is a batched opening: the sibling digests needed to authenticate
// every requested leaf, without duplicating any digest reachable from
// another emitted one.
type Proof struct {
	// Siblings[level] holds the (index, digest) pairs emitted at that
	// level, sorted by index. Level 0 siblings authenticate the leaves
	// directly; level i > 0 siblings authenticate the reconstructed
	// internal nodes at that level.
	Siblings [][]IndexedDigest
}

// IndexedDigest pairs a tree index (within its level) with its digest.
type IndexedDigest struct {
	Index  int
	Digest Digest
}

// Open produces a batched proof for the given leaf indices.
func (t *Tree) Open(indices []int) (*Proof, error) {
	n := t.NumLeaves()
	seen := make(map[int]bool, len(indices))
	unique := make([]int, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("merkle: index %d out of range [0,%d)", idx, n)
		}
		if !seen[idx] {
			seen[idx] = true
			unique = append(unique, idx)
		}
	}
	sort.Ints(unique)

	proof := &Proof{}
	frontier := unique // indices whose digest the verifier will already have at this level
	for level := 0; level < len(t.levels)-1; level++ {
		have := make(map[int]bool, len(frontier)*2)
		for _, idx := range frontier {
			have[idx] = true
		}

		var emitted []IndexedDigest
		parents := make(map[int]bool, len(frontier))
		for _, idx := range frontier {
			sibling := idx ^ 1
			if !have[sibling] {
				emitted = append(emitted, IndexedDigest{Index: sibling, Digest: t.levels[level][sibling]})
				have[sibling] = true
			}
			parents[idx>>1] = true
		}
		proof.Siblings = append(proof.Siblings, emitted)

		nextFrontier := make([]int, 0, len(parents))
		for p := range parents {
			nextFrontier = append(nextFrontier, p)
		}
		sort.Ints(nextFrontier)
		frontier = nextFrontier
	}

	return proof, nil
}

// VerifyOpen reconstructs the touched internal nodes bottom-up from claimed
// leaves, claimed indices and the batched proof, and checks the result
// equals root.
func VerifyOpen(hasher Hasher, root Digest, indices []int, leaves []Digest, proof *Proof, numLeaves int) bool {
	if len(indices) != len(leaves) {
		return false
	}
	seen := make(map[int]Digest, len(indices))
	order := make([]int, 0, len(indices))
	for i, idx := range indices {
		if existing, ok := seen[idx]; ok {
			if existing != leaves[i] {
				return false
			}
			continue
		}
		seen[idx] = leaves[i]
		order = append(order, idx)
	}
	sort.Ints(order)

	current := make(map[int]Digest, len(order))
	for _, idx := range order {
		current[idx] = seen[idx]
	}
	frontier := order

	size := numLeaves
	for level := 0; size > 1; level++ {
		if level >= len(proof.Siblings) {
			return false
		}
		siblingDigest := make(map[int]Digest, len(proof.Siblings[level]))
		for _, sd := range proof.Siblings[level] {
			if existing, ok := siblingDigest[sd.Index]; ok && existing != sd.Digest {
				return false
			}
			siblingDigest[sd.Index] = sd.Digest
		}

		nextFrontier := make([]int, 0, len(frontier))
		nextDigest := make(map[int]Digest, len(frontier))
		seenParent := make(map[int]bool, len(frontier))
		for _, idx := range frontier {
			sibling := idx ^ 1
			sibDigest, ok := current[sibling]
			if !ok {
				sibDigest, ok = siblingDigest[sibling]
				if !ok {
					return false
				}
			}

			var left, right Digest
			if idx&1 == 0 {
				left, right = current[idx], sibDigest
			} else {
				left, right = sibDigest, current[idx]
			}
			parent := idx >> 1
			combined := hasher.HashNode(left, right)
			if existing, ok := nextDigest[parent]; ok {
				if existing != combined {
					return false
				}
			} else {
				nextDigest[parent] = combined
				if !seenParent[parent] {
					seenParent[parent] = true
					nextFrontier = append(nextFrontier, parent)
				}
			}
		}

		current = nextDigest
		sort.Ints(nextFrontier)
		frontier = nextFrontier
		size >>= 1
	}

	if len(frontier) != 1 || frontier[0] != 0 {
		return false
	}
	return current[0] == root
}
