package ligero

import (
	"fmt"

	"github.com/ligerito-labs/ligerito/internal/ligerito/field"
	utils "github.com/ligerito-labs/ligerito/internal/ligerito/internalutil"
	"github.com/ligerito-labs/ligerito/internal/ligerito/merkle"
	"github.com/ligerito-labs/ligerito/internal/ligerito/poly"
	"github.com/ligerito-labs/ligerito/internal/ligerito/rs"
	"github.com/ligerito-labs/ligerito/internal/ligerito/transcript"
)

// Opening is everything one Ligero round contributes to a Ligerito proof:
// the column commitment's root, the row-combined vector u, the queried
// column indices, their batched Merkle proof, and the opened column
// contents themselves.
type Opening[E field.Embeddable[E]] struct {
	Root          merkle.Digest
	U             []field.GF128
	QueryIndices  []int
	Proof         *merkle.Proof
	OpenedColumns [][]E
	NumRows       int
	NumLeaves     int
}

// Commit RS-encodes matrix row-wise and column-commits the result. Callers
// that only need the commitment (e.g. to compute the root before deciding
// on later rounds) use this directly; Prove wraps it with the full
// transcript-driven round.
func Commit[E field.Elem[E]](enc *rs.Encoder[E], hasher merkle.Hasher, matrix [][]E) (*merkle.Tree, [][]E, error) {
	encodedRows, err := enc.EncodeMatrix(matrix)
	if err != nil {
		return nil, nil, fmt.Errorf("ligero: encode: %w", err)
	}
	columns := transpose(encodedRows, enc.OutputWidth())
	leaves := merkle.HashColumns(hasher, columns)
	tree, err := merkle.CommitWithHasher(hasher, leaves)
	if err != nil {
		return nil, nil, fmt.Errorf("ligero: commit: %w", err)
	}
	return tree, columns, nil
}

// transpose turns M rows of N entries into N columns of M entries.
func transpose[E field.Elem[E]](rows [][]E, n int) [][]E {
	m := len(rows)
	columns := make([][]E, n)
	for j := 0; j < n; j++ {
		col := make([]E, m)
		for i := 0; i < m; i++ {
			col[i] = rows[i][j]
		}
		columns[j] = col
	}
	return columns
}

// NewGF128Encoder builds the GF128 Reed-Solomon encoder the verifier uses
// to re-encode u. It uses the standard GF128 basis truncated to reach
// output width n — the same basis convention field.StandardBasisGF128
// documents, which nests every smaller tower field's standard basis inside
// it via the zero-extension embedding, so a prover encoding over GF16/32/64
// and a verifier re-encoding u over GF128 walk the same novel-basis domain.
func NewGF128Encoder(k, n int) (*rs.Encoder[field.GF128], error) {
	basis := field.StandardBasisGF128()
	logN := utils.Log2(utils.NextPowerOfTwo(n))
	if logN > len(basis) {
		return nil, fmt.Errorf("ligero: output width %d exceeds GF128 basis capacity", n)
	}
	return rs.NewEncoder(basis[:logN], k, n)
}

// SqueezeTau draws the m-coordinate tensor challenge from tr, one field
// element per row-dimension bit. Standalone Ligero use (see Prove) draws tau
// fresh right after absorbing the round's root, as spec'd; a Ligerito
// recursion round instead supplies tau from its own enclosing sumcheck (see
// the recursion package) and calls Open directly.
func SqueezeTau(tr transcript.Transcript, m int) []field.GF128 {
	tau := make([]field.GF128, m)
	for i := range tau {
		tau[i] = tr.SqueezeField("ligero/tau")
	}
	return tau
}

// Open runs the row-combine/absorb/query/batch-open tail of a Ligero round
// against an already-committed tree, given a tensor challenge tau however the
// caller derived it.
func Open[E field.Embeddable[E]](tr transcript.Transcript, tau []field.GF128, enc *rs.Encoder[E], tree *merkle.Tree, columns [][]E, matrix [][]E, numQueries int) (*Opening[E], error) {
	eqTau := poly.EqBasis(tau)
	u := RowCombine(matrix, eqTau)
	for _, c := range u {
		tr.AbsorbField("ligero/u", c)
	}

	queryIndices, err := tr.SqueezeIndices("ligero/query", numQueries, enc.OutputWidth())
	if err != nil {
		return nil, fmt.Errorf("ligero: %w", err)
	}
	proof, err := tree.Open(queryIndices)
	if err != nil {
		return nil, fmt.Errorf("ligero: %w", err)
	}

	opened := make([][]E, len(queryIndices))
	for i, idx := range queryIndices {
		opened[i] = columns[idx]
	}

	return &Opening[E]{
		Root:          tree.Root(),
		U:             u,
		QueryIndices:  queryIndices,
		Proof:         proof,
		OpenedColumns: opened,
		NumRows:       len(matrix),
		NumLeaves:     tree.NumLeaves(),
	}, nil
}

// Prove runs one standalone Ligero round against tr: commit, absorb the
// root, squeeze the tensor challenge tau, row-combine into u, absorb u,
// squeeze the query indices, and batch-open them. numQueries is Q from the
// soundness table. Ligerito's recursion engine needs tau bound to its own
// enclosing sumcheck instead and calls Commit/Open directly; Prove is the
// self-contained entry point for using Ligero on its own.
func Prove[E field.Embeddable[E]](tr transcript.Transcript, enc *rs.Encoder[E], hasher merkle.Hasher, matrix [][]E, numQueries int) (*Opening[E], error) {
	m := len(matrix)
	if m == 0 {
		return nil, fmt.Errorf("ligero: matrix has zero rows")
	}

	tree, columns, err := Commit(enc, hasher, matrix)
	if err != nil {
		return nil, err
	}
	tr.AbsorbDigest("ligero/root", tree.Root())

	logM := utils.Log2(utils.NextPowerOfTwo(m))
	tau := SqueezeTau(tr, logM)

	return Open(tr, tau, enc, tree, columns, matrix, numQueries)
}

// Verify replays tr's absorbs/squeezes against opening, checks the batched
// Merkle proof, and checks that every opened column is consistent with u
// re-encoded at that column's position. gf128Enc must share the same
// evaluation subspace sizing as the prover's row encoder (see NewGF128Encoder).
func Verify[E field.Embeddable[E]](tr transcript.Transcript, hasher merkle.Hasher, gf128Enc *rs.Encoder[field.GF128], opening *Opening[E]) (bool, error) {
	tr.AbsorbDigest("ligero/root", opening.Root)

	logM := utils.Log2(utils.NextPowerOfTwo(opening.NumRows))
	tau := SqueezeTau(tr, logM)

	return VerifyAt(tr, tau, hasher, gf128Enc, opening)
}

// VerifyAt is Verify with the root absorption already done and tau supplied
// rather than squeezed, for a recursion round whose tau comes from its
// enclosing sumcheck rather than a fresh squeeze right after the root.
func VerifyAt[E field.Embeddable[E]](tr transcript.Transcript, tau []field.GF128, hasher merkle.Hasher, gf128Enc *rs.Encoder[field.GF128], opening *Opening[E]) (bool, error) {
	eqTau := poly.EqBasis(tau)

	for _, c := range opening.U {
		tr.AbsorbField("ligero/u", c)
	}

	queryIndices, err := tr.SqueezeIndices("ligero/query", len(opening.QueryIndices), gf128Enc.OutputWidth())
	if err != nil {
		return false, fmt.Errorf("ligero: %w", err)
	}
	if len(queryIndices) != len(opening.QueryIndices) {
		return false, nil
	}
	for i, idx := range queryIndices {
		if idx != opening.QueryIndices[i] {
			return false, nil
		}
	}

	leaves := make([]merkle.Digest, len(opening.OpenedColumns))
	for i, col := range opening.OpenedColumns {
		leaves[i] = hasher.HashLeaf(merkle.ColumnBytes(col))
	}
	if !merkle.VerifyOpen(hasher, opening.Root, opening.QueryIndices, leaves, opening.Proof, opening.NumLeaves) {
		return false, nil
	}

	encodedU, err := gf128Enc.EncodeRow(opening.U)
	if err != nil {
		return false, fmt.Errorf("ligero: re-encoding u: %w", err)
	}
	for i, idx := range opening.QueryIndices {
		combined := CombineColumn(opening.OpenedColumns[i], eqTau)
		if !combined.Equal(encodedU[idx]) {
			return false, nil
		}
	}

	return true, nil
}
