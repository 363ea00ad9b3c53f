package merkle

import (
	"testing"

	"github.com/ligerito-labs/ligerito/internal/ligerito/field"
)

func sampleColumns(t *testing.T, n, m int) [][]field.GF32 {
	t.Helper()
	cols := make([][]field.GF32, n)
	for i := range cols {
		col := make([]field.GF32, m)
		for j := range col {
			v, err := field.RandomGF32()
			if err != nil {
				t.Fatalf("random element: %v", err)
			}
			col[j] = v
		}
		cols[i] = col
	}
	return cols
}

func TestBatchedOpenVerifiesAgainstRoot(t *testing.T) {
	hasher := Sha3Hasher{}
	cols := sampleColumns(t, 16, 4)
	leaves := HashColumns[field.GF32](hasher, cols)

	tree, err := CommitWithHasher(hasher, leaves)
	if err != nil {
		t.Fatalf("CommitWithHasher: %v", err)
	}

	queried := []int{1, 3, 3, 7, 15}
	proof, err := tree.Open(queried)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	dedupedIdx := []int{1, 3, 7, 15}
	openedLeaves := make([]Digest, len(dedupedIdx))
	for i, idx := range dedupedIdx {
		openedLeaves[i] = leaves[idx]
	}

	if !VerifyOpen(hasher, tree.Root(), dedupedIdx, openedLeaves, proof, tree.NumLeaves()) {
		t.Fatalf("expected honest batched opening to verify")
	}
}

func TestBatchedOpenRejectsTamperedLeaf(t *testing.T) {
	hasher := Sha3Hasher{}
	cols := sampleColumns(t, 8, 4)
	leaves := HashColumns[field.GF32](hasher, cols)

	tree, err := CommitWithHasher(hasher, leaves)
	if err != nil {
		t.Fatalf("CommitWithHasher: %v", err)
	}

	queried := []int{0, 5}
	proof, err := tree.Open(queried)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	tampered := []Digest{leaves[0], leaves[5]}
	tampered[1][0] ^= 0xFF

	if VerifyOpen(hasher, tree.Root(), queried, tampered, proof, tree.NumLeaves()) {
		t.Fatalf("expected tampered leaf to be rejected")
	}
}

func TestBatchedOpenRejectsTamperedRoot(t *testing.T) {
	hasher := Blake3Hasher{}
	cols := sampleColumns(t, 8, 3)
	leaves := HashColumns[field.GF32](hasher, cols)

	tree, err := CommitWithHasher(hasher, leaves)
	if err != nil {
		t.Fatalf("CommitWithHasher: %v", err)
	}

	queried := []int{2, 6}
	proof, err := tree.Open(queried)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	openedLeaves := []Digest{leaves[2], leaves[6]}
	badRoot := tree.Root()
	badRoot[0] ^= 0x01

	if VerifyOpen(hasher, badRoot, queried, openedLeaves, proof, tree.NumLeaves()) {
		t.Fatalf("expected tampered root to be rejected")
	}
}

func TestPaddingToPowerOfTwo(t *testing.T) {
	hasher := Sha3Hasher{}
	cols := sampleColumns(t, 5, 2)
	leaves := HashColumns[field.GF32](hasher, cols)

	tree, err := CommitWithHasher(hasher, leaves)
	if err != nil {
		t.Fatalf("CommitWithHasher: %v", err)
	}
	if tree.NumLeaves() != 8 {
		t.Fatalf("expected padding to 8 leaves, got %d", tree.NumLeaves())
	}
}
