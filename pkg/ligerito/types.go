package ligerito

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/ligerito-labs/ligerito/internal/ligerito/field"
	"github.com/ligerito-labs/ligerito/internal/ligerito/ligero"
	"github.com/ligerito-labs/ligerito/internal/ligerito/merkle"
	"github.com/ligerito-labs/ligerito/internal/ligerito/recursion"
	"github.com/ligerito-labs/ligerito/internal/ligerito/sumcheck"
)

// Proof is the serialized form of a recursion.Proof[E]: the recursion level
// count and every level's sumcheck round polynomials, then the round-0
// Ligero opening, the count and openings of the later rounds, and the final
// base polynomial sent in full. Every count and index
// is a fixed-width little-endian uint64 regardless of its value, so decoding
// never branches on magnitude.
type Proof []byte

// marshalProof serializes a recursion.Proof[E] into the wire format Prove
// returns and Verify consumes.
func marshalProof[E field.Embeddable[E]](p *recursion.Proof[E]) (Proof, error) {
	var buf bytes.Buffer
	w := &binWriter{buf: &buf}

	w.writeUint64(uint64(len(p.SumcheckRounds)))
	for _, level := range p.SumcheckRounds {
		writeRoundPolys(w, level)
	}

	if err := writeOpening[E](w, p.Round0); err != nil {
		return nil, err
	}

	w.writeUint64(uint64(len(p.LaterRounds)))
	for _, o := range p.LaterRounds {
		if err := writeOpening[field.GF128](w, o); err != nil {
			return nil, err
		}
	}

	writeFieldSlice(w, p.FinalPoly)

	if w.err != nil {
		return nil, w.err
	}
	return Proof(buf.Bytes()), nil
}

// unmarshalProof parses bytes produced by marshalProof back into a
// recursion.Proof[E].
func unmarshalProof[E field.Embeddable[E]](data []byte) (*recursion.Proof[E], error) {
	r := &binReader{buf: bytes.NewReader(data)}

	numLevels := r.readUint64()
	sumcheckRounds := make([][]sumcheck.RoundPoly[field.GF128], numLevels)
	for i := range sumcheckRounds {
		sumcheckRounds[i] = readRoundPolys(r)
	}

	round0, err := readOpening[E](r)
	if err != nil {
		return nil, err
	}

	numLater := r.readUint64()
	laterRounds := make([]*ligero.Opening[field.GF128], numLater)
	for i := range laterRounds {
		o, err := readOpening[field.GF128](r)
		if err != nil {
			return nil, err
		}
		laterRounds[i] = o
	}

	finalPoly := readFieldSlice[field.GF128](r)

	if r.err != nil {
		return nil, r.err
	}
	return &recursion.Proof[E]{
		SumcheckRounds: sumcheckRounds,
		Round0:         round0,
		LaterRounds:    laterRounds,
		FinalPoly:      finalPoly,
	}, nil
}

func writeRoundPolys(w *binWriter, rounds []sumcheck.RoundPoly[field.GF128]) {
	w.writeUint64(uint64(len(rounds)))
	for _, rp := range rounds {
		writeFieldSlice(w, rp.Coeffs)
	}
}

func readRoundPolys(r *binReader) []sumcheck.RoundPoly[field.GF128] {
	n := r.readUint64()
	out := make([]sumcheck.RoundPoly[field.GF128], n)
	for i := range out {
		out[i] = sumcheck.RoundPoly[field.GF128]{Coeffs: readFieldSlice[field.GF128](r)}
	}
	return out
}

func writeOpening[E field.Embeddable[E]](w *binWriter, o *ligero.Opening[E]) error {
	w.writeDigest(o.Root)
	writeFieldSlice(w, o.U)

	w.writeUint64(uint64(len(o.QueryIndices)))
	for _, idx := range o.QueryIndices {
		w.writeUint64(uint64(idx))
	}

	writeMerkleProof(w, o.Proof)

	w.writeUint64(uint64(len(o.OpenedColumns)))
	for _, col := range o.OpenedColumns {
		writeFieldSlice(w, col)
	}

	w.writeUint64(uint64(o.NumRows))
	w.writeUint64(uint64(o.NumLeaves))
	return w.err
}

func readOpening[E field.Embeddable[E]](r *binReader) (*ligero.Opening[E], error) {
	root := r.readDigest()
	u := readFieldSlice[field.GF128](r)

	numQueries := r.readUint64()
	queryIndices := make([]int, numQueries)
	for i := range queryIndices {
		queryIndices[i] = int(r.readUint64())
	}

	proof := readMerkleProof(r)

	numCols := r.readUint64()
	openedColumns := make([][]E, numCols)
	for i := range openedColumns {
		openedColumns[i] = readFieldSlice[E](r)
	}

	numRows := int(r.readUint64())
	numLeaves := int(r.readUint64())

	if r.err != nil {
		return nil, r.err
	}
	return &ligero.Opening[E]{
		Root:          root,
		U:             u,
		QueryIndices:  queryIndices,
		Proof:         proof,
		OpenedColumns: openedColumns,
		NumRows:       numRows,
		NumLeaves:     numLeaves,
	}, nil
}

func writeMerkleProof(w *binWriter, p *merkle.Proof) {
	w.writeUint64(uint64(len(p.Siblings)))
	for _, level := range p.Siblings {
		w.writeUint64(uint64(len(level)))
		for _, id := range level {
			w.writeUint64(uint64(id.Index))
			w.writeDigest(id.Digest)
		}
	}
}

func readMerkleProof(r *binReader) *merkle.Proof {
	numLevels := r.readUint64()
	siblings := make([][]merkle.IndexedDigest, numLevels)
	for i := range siblings {
		n := r.readUint64()
		level := make([]merkle.IndexedDigest, n)
		for j := range level {
			idx := int(r.readUint64())
			level[j] = merkle.IndexedDigest{Index: idx, Digest: r.readDigest()}
		}
		siblings[i] = level
	}
	return &merkle.Proof{Siblings: siblings}
}

func writeFieldSlice[E field.Elem[E]](w *binWriter, xs []E) {
	w.writeUint64(uint64(len(xs)))
	for _, x := range xs {
		w.writeBytes(x.Bytes())
	}
}

func readFieldSlice[E field.Elem[E]](r *binReader) []E {
	n := r.readUint64()
	out := make([]E, n)
	var zero E
	size := len(zero.Bytes())
	for i := range out {
		out[i] = fromBytes[E](r.readFixed(size))
	}
	return out
}

// fromBytes dispatches to the concrete field's FromBytes constructor. Kept
// as a small closed switch rather than another interface method, since only
// these four concrete types ever satisfy field.Elem in this module.
func fromBytes[E field.Elem[E]](buf []byte) E {
	var zero E
	switch any(zero).(type) {
	case field.GF16:
		return any(field.GF16FromBytes(buf)).(E)
	case field.GF32:
		return any(field.GF32FromBytes(buf)).(E)
	case field.GF64:
		return any(field.GF64FromBytes(buf)).(E)
	case field.GF128:
		return any(field.GF128FromBytes(buf)).(E)
	default:
		panic(fmt.Sprintf("ligerito: unsupported field type %T", zero))
	}
}

type binWriter struct {
	buf *bytes.Buffer
	err error
}

func (w *binWriter) writeUint64(v uint64) {
	if w.err != nil {
		return
	}
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

func (w *binWriter) writeBytes(b []byte) {
	if w.err != nil {
		return
	}
	w.buf.Write(b)
}

func (w *binWriter) writeDigest(d merkle.Digest) {
	w.writeBytes(d[:])
}

type binReader struct {
	buf *bytes.Reader
	err error
}

func (r *binReader) readUint64() uint64 {
	if r.err != nil {
		return 0
	}
	var b [8]byte
	if _, err := r.buf.Read(b[:]); err != nil {
		r.err = fmt.Errorf("ligerito: truncated proof: %w", err)
		return 0
	}
	return binary.LittleEndian.Uint64(b[:])
}

func (r *binReader) readFixed(n int) []byte {
	if r.err != nil {
		return make([]byte, n)
	}
	b := make([]byte, n)
	if _, err := r.buf.Read(b); err != nil {
		r.err = fmt.Errorf("ligerito: truncated proof: %w", err)
	}
	return b
}

func (r *binReader) readDigest() merkle.Digest {
	var d merkle.Digest
	copy(d[:], r.readFixed(len(d)))
	return d
}
