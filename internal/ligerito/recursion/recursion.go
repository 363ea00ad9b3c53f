// Package recursion implements the multi-round Ligerito folding engine: a
// fixed schedule of matrix shapes, each folded via one Ligero round (see the
// ligero package) whose tensor challenge is drawn from a short prefix of an
// enclosing sumcheck over the running evaluation claim, rather than squeezed
// independently. That prefix both produces the row challenge Ligero needs
// and verifiably reduces the running (point, claim) pair to a smaller one
// for the next round, using the identity eq_point(x) = eq(point[0], r_0) *
// eq_{point[1:]}(x) repeated one coordinate at a time. The final round's
// output is sent in full and evaluated directly rather than committed.
package recursion

import (
	"errors"
	"fmt"

	"github.com/ligerito-labs/ligerito/internal/ligerito/field"
	utils "github.com/ligerito-labs/ligerito/internal/ligerito/internalutil"
	"github.com/ligerito-labs/ligerito/internal/ligerito/ligero"
	"github.com/ligerito-labs/ligerito/internal/ligerito/merkle"
	"github.com/ligerito-labs/ligerito/internal/ligerito/poly"
	"github.com/ligerito-labs/ligerito/internal/ligerito/rs"
	"github.com/ligerito-labs/ligerito/internal/ligerito/sumcheck"
	"github.com/ligerito-labs/ligerito/internal/ligerito/transcript"
)

// RoundShape is one schedule entry: a matrix of 2^M rows by 2^K columns.
type RoundShape struct {
	M, K int
}

// Schedule is the fixed sequence of round shapes a Ligerito proof folds
// through. Round i's matrix has shape.M+shape.K = the variable count
// remaining entering that round (the full polynomial's for round 0, the
// previous round's K for every round after). The last entry's K is the base
// case's variable count: once that round's row-combined vector is produced
// it is sent in full rather than committed and recursed on again.
type Schedule struct {
	Rounds []RoundShape
}

// NewSchedule validates that each round's shape accounts for exactly the
// variables remaining after the previous round folded its M row-variables
// away, starting from logPolySize.
func NewSchedule(logPolySize int, rounds []RoundShape) (*Schedule, error) {
	if len(rounds) == 0 {
		return nil, fmt.Errorf("recursion: schedule needs at least one round")
	}
	remaining := logPolySize
	for i, r := range rounds {
		if r.M < 0 || r.K < 0 {
			return nil, fmt.Errorf("recursion: round %d has a negative shape (%d,%d)", i, r.M, r.K)
		}
		if r.M+r.K != remaining {
			return nil, fmt.Errorf("recursion: round %d shape m=%d,k=%d does not match %d variables remaining", i, r.M, r.K, remaining)
		}
		remaining = r.K
	}
	return &Schedule{Rounds: rounds}, nil
}

// FinalLogSize returns m_t, the variable count of the base polynomial the
// final round sends in full.
func (s *Schedule) FinalLogSize() int {
	return s.Rounds[len(s.Rounds)-1].K
}

// Config bundles the per-round parameters a Prove/Verify pass needs beyond
// the schedule: the inverse rate (output width / input width, identical
// across every round) and how many columns each round's opening queries.
type Config struct {
	InverseRate int
	NumQueries  int
}

func (c Config) outputWidth(k int) int {
	return (1 << uint(k)) * c.InverseRate
}

// Proof is a complete Ligerito evaluation proof: the sumcheck round
// polynomials that bind the running claim through each recursion level, the
// first round's Ligero opening over the message's native field, every later
// round's Ligero opening over GF128 (every round after the first already
// works in the challenge field, since round 0's row-combine lifted u into
// it), and the final base polynomial sent in full.
type Proof[E field.Embeddable[E]] struct {
	SumcheckRounds [][]sumcheck.RoundPoly[field.GF128]
	Round0         *ligero.Opening[E]
	LaterRounds    []*ligero.Opening[field.GF128]
	FinalPoly      []field.GF128
}

// Prove builds a full Ligerito proof that message, interpreted as a dense
// multilinear polynomial of schedule.Rounds[0].M+K variables, evaluates to
// claimedValue at evalPoint. basis0 is the additive-FFT evaluation subspace
// for message's own field; every later round reuses field.StandardBasisGF128.
func Prove[E field.Embeddable[E]](tr transcript.Transcript, hasher merkle.Hasher, cfg Config, schedule *Schedule, basis0 []E, message []E, evalPoint []E, claimedValue E) (*Proof[E], error) {
	shape0 := schedule.Rounds[0]
	ell := shape0.M + shape0.K
	if len(message) != 1<<uint(ell) {
		return nil, fmt.Errorf("recursion: message has %d entries, expected 2^%d", len(message), ell)
	}
	if len(evalPoint) != ell {
		return nil, fmt.Errorf("recursion: eval point has %d coordinates, expected %d", len(evalPoint), ell)
	}

	point := embedSlice(evalPoint)
	claim := claimedValue.Embed()

	eqEmbedded, err := poly.New(poly.EqBasis(point))
	if err != nil {
		return nil, fmt.Errorf("recursion: %w", err)
	}
	msgEmbedded, err := poly.New(embedSlice(message))
	if err != nil {
		return nil, fmt.Errorf("recursion: %w", err)
	}
	prover, err := sumcheck.NewProver([]*poly.Multilinear[field.GF128]{msgEmbedded, eqEmbedded}, claim)
	if err != nil {
		return nil, fmt.Errorf("recursion: %w", err)
	}

	tau0, point, claim, rounds0, err := runSumcheckPrefix(tr, prover, point, claim, shape0.M)
	if err != nil {
		return nil, err
	}

	matrix0 := lowVarsAsRows(message, shape0.M, shape0.K)
	enc0, err := buildEncoder(basis0, shape0.K, cfg.outputWidth(shape0.K))
	if err != nil {
		return nil, fmt.Errorf("recursion: round 0: %w", err)
	}
	tree0, columns0, err := ligero.Commit(enc0, hasher, matrix0)
	if err != nil {
		return nil, fmt.Errorf("recursion: round 0: %w", err)
	}
	tr.AbsorbDigest("recursion/round/root", tree0.Root())
	opening0, err := ligero.Open(tr, tau0, enc0, tree0, columns0, matrix0, cfg.NumQueries)
	if err != nil {
		return nil, fmt.Errorf("recursion: round 0: %w", err)
	}

	sumcheckRounds := [][]sumcheck.RoundPoly[field.GF128]{rounds0}
	laterRounds := make([]*ligero.Opening[field.GF128], 0, len(schedule.Rounds)-1)
	u := opening0.U

	for i := 1; i < len(schedule.Rounds); i++ {
		shape := schedule.Rounds[i]

		eqI, err := poly.New(poly.EqBasis(point))
		if err != nil {
			return nil, fmt.Errorf("recursion: round %d: %w", i, err)
		}
		msgI, err := poly.New(append([]field.GF128(nil), u...))
		if err != nil {
			return nil, fmt.Errorf("recursion: round %d: %w", i, err)
		}
		proverI, err := sumcheck.NewProver([]*poly.Multilinear[field.GF128]{msgI, eqI}, claim)
		if err != nil {
			return nil, fmt.Errorf("recursion: round %d: %w", i, err)
		}
		var tauI []field.GF128
		var roundsI []sumcheck.RoundPoly[field.GF128]
		tauI, point, claim, roundsI, err = runSumcheckPrefix(tr, proverI, point, claim, shape.M)
		if err != nil {
			return nil, fmt.Errorf("recursion: round %d: %w", i, err)
		}
		sumcheckRounds = append(sumcheckRounds, roundsI)

		matrixI := lowVarsAsRows(u, shape.M, shape.K)
		encI, err := buildEncoder(field.StandardBasisGF128(), shape.K, cfg.outputWidth(shape.K))
		if err != nil {
			return nil, fmt.Errorf("recursion: round %d: %w", i, err)
		}
		treeI, columnsI, err := ligero.Commit(encI, hasher, matrixI)
		if err != nil {
			return nil, fmt.Errorf("recursion: round %d: %w", i, err)
		}
		tr.AbsorbDigest("recursion/round/root", treeI.Root())
		openingI, err := ligero.Open(tr, tauI, encI, treeI, columnsI, matrixI, cfg.NumQueries)
		if err != nil {
			return nil, fmt.Errorf("recursion: round %d: %w", i, err)
		}

		laterRounds = append(laterRounds, openingI)
		u = openingI.U
	}

	return &Proof[E]{
		SumcheckRounds: sumcheckRounds,
		Round0:         opening0,
		LaterRounds:    laterRounds,
		FinalPoly:      u,
	}, nil
}

// Verify checks a Proof against the claim that the committed message
// evaluates to claimedValue at evalPoint, replaying every sumcheck round,
// Ligero opening, and the final direct evaluation.
func Verify[E field.Embeddable[E]](tr transcript.Transcript, hasher merkle.Hasher, cfg Config, schedule *Schedule, evalPoint []E, claimedValue E, proof *Proof[E]) (bool, error) {
	shape0 := schedule.Rounds[0]
	if len(evalPoint) != shape0.M+shape0.K {
		return false, fmt.Errorf("recursion: eval point has %d coordinates, expected %d", len(evalPoint), shape0.M+shape0.K)
	}
	if len(proof.SumcheckRounds) != len(schedule.Rounds) {
		return false, fmt.Errorf("recursion: proof has %d recursion levels, schedule expects %d", len(proof.SumcheckRounds), len(schedule.Rounds))
	}
	if len(proof.LaterRounds) != len(schedule.Rounds)-1 {
		return false, fmt.Errorf("recursion: proof has %d later-round openings, expected %d", len(proof.LaterRounds), len(schedule.Rounds)-1)
	}

	point := embedSlice(evalPoint)
	claim := claimedValue.Embed()

	tau0, point, claim, err := replaySumcheckPrefix(tr, proof.SumcheckRounds[0], point, claim, shape0.M)
	if errors.Is(err, errSumcheckRejected) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	tr.AbsorbDigest("recursion/round/root", proof.Round0.Root)
	gf128Enc0, err := ligero.NewGF128Encoder(1<<uint(shape0.K), cfg.outputWidth(shape0.K))
	if err != nil {
		return false, fmt.Errorf("recursion: round 0: %w", err)
	}
	ok, err := ligero.VerifyAt[E](tr, tau0, hasher, gf128Enc0, proof.Round0)
	if err != nil {
		return false, fmt.Errorf("recursion: round 0: %w", err)
	}
	if !ok {
		return false, nil
	}

	for i := 1; i < len(schedule.Rounds); i++ {
		shape := schedule.Rounds[i]
		var tauI []field.GF128
		var verr error
		tauI, point, claim, verr = replaySumcheckPrefix(tr, proof.SumcheckRounds[i], point, claim, shape.M)
		if errors.Is(verr, errSumcheckRejected) {
			return false, nil
		}
		if verr != nil {
			return false, verr
		}

		opening := proof.LaterRounds[i-1]
		tr.AbsorbDigest("recursion/round/root", opening.Root)
		gf128Enc, err := ligero.NewGF128Encoder(1<<uint(shape.K), cfg.outputWidth(shape.K))
		if err != nil {
			return false, fmt.Errorf("recursion: round %d: %w", i, err)
		}
		ok, err := ligero.VerifyAt[field.GF128](tr, tauI, hasher, gf128Enc, opening)
		if err != nil {
			return false, fmt.Errorf("recursion: round %d: %w", i, err)
		}
		if !ok {
			return false, nil
		}
	}

	finalML, err := poly.New(proof.FinalPoly)
	if err != nil {
		return false, fmt.Errorf("recursion: %w", err)
	}
	got, err := finalML.Evaluate(point)
	if err != nil {
		return false, fmt.Errorf("recursion: %w", err)
	}
	return got.Equal(claim), nil
}

// runSumcheckPrefix runs the first mRounds rounds of prover's sumcheck,
// absorbing each round polynomial and squeezing/folding its challenge
// through tr, and returns those challenges as tau alongside the reduced
// (point, claim) pair for the remaining coordinates. The reduction uses the
// eq-tensor identity directly rather than continuing the sumcheck to full
// completion: eq_point(x) factors as a product of single-variable eq terms,
// one per coordinate, so folding coordinate j at r_j multiplies the running
// claim's implicit scalar by eq(point[j], r_j) and leaves the rest of
// eq_point — and hence the claim over the unfolded coordinates — unchanged
// in shape.
func runSumcheckPrefix(tr transcript.Transcript, prover *sumcheck.Prover[field.GF128], point []field.GF128, claim field.GF128, mRounds int) ([]field.GF128, []field.GF128, field.GF128, []sumcheck.RoundPoly[field.GF128], error) {
	tau := make([]field.GF128, mRounds)
	polys := make([]sumcheck.RoundPoly[field.GF128], mRounds)
	scalar := claim.One()
	currentClaim := claim
	for j := 0; j < mRounds; j++ {
		rp, err := prover.Round()
		if err != nil {
			return nil, nil, field.GF128{}, nil, fmt.Errorf("recursion: sumcheck round %d: %w", j, err)
		}
		for _, c := range rp.Coeffs {
			tr.AbsorbField("recursion/sumcheck", c)
		}
		if err := sumcheck.CheckRound(rp, currentClaim); err != nil {
			return nil, nil, field.GF128{}, nil, fmt.Errorf("recursion: %w", err)
		}
		r := tr.SqueezeField("recursion/sumcheck/r")
		prover.Fold(r)
		currentClaim = sumcheck.NextClaim(rp, r)
		scalar = scalar.Mul(eqSingle(point[j], r))
		tau[j] = r
		polys[j] = rp
	}
	nextClaim, err := reduceClaim(currentClaim, scalar)
	if err != nil {
		return nil, nil, field.GF128{}, nil, err
	}
	nextPoint := append([]field.GF128(nil), point[mRounds:]...)
	return tau, nextPoint, nextClaim, polys, nil
}

// replaySumcheckPrefix is runSumcheckPrefix's verifier side: it has no
// factors to fold, only the round polynomials the prover already sent, which
// it absorbs, checks, and uses to derive the same (tau, point, claim)
// reduction.
func replaySumcheckPrefix(tr transcript.Transcript, rounds []sumcheck.RoundPoly[field.GF128], point []field.GF128, claim field.GF128, mRounds int) ([]field.GF128, []field.GF128, field.GF128, error) {
	if len(rounds) != mRounds {
		return nil, nil, field.GF128{}, fmt.Errorf("recursion: expected %d sumcheck rounds, got %d", mRounds, len(rounds))
	}
	tau := make([]field.GF128, mRounds)
	scalar := claim.One()
	currentClaim := claim
	for j := 0; j < mRounds; j++ {
		rp := rounds[j]
		for _, c := range rp.Coeffs {
			tr.AbsorbField("recursion/sumcheck", c)
		}
		if err := sumcheck.CheckRound(rp, currentClaim); err != nil {
			return nil, nil, field.GF128{}, fmt.Errorf("%w: %v", errSumcheckRejected, err)
		}
		r := tr.SqueezeField("recursion/sumcheck/r")
		currentClaim = sumcheck.NextClaim(rp, r)
		scalar = scalar.Mul(eqSingle(point[j], r))
		tau[j] = r
	}
	nextClaim, err := reduceClaim(currentClaim, scalar)
	if err != nil {
		return nil, nil, field.GF128{}, err
	}
	nextPoint := append([]field.GF128(nil), point[mRounds:]...)
	return tau, nextPoint, nextClaim, nil
}

// errSumcheckRejected marks a replayed sumcheck round that failed its
// consistency check; Verify reports it as a plain rejection, not an error.
var errSumcheckRejected = errors.New("recursion: sumcheck round rejected")

// lowVarsAsRows lays evals out as 2^m rows by 2^k columns with entry [i][j] =
// evals[j*2^m+i], so eq(tau) row weights bind the low variables the sumcheck
// prefix folds first.
func lowVarsAsRows[E any](evals []E, m, k int) [][]E {
	matrix := make([][]E, 1<<uint(m))
	for i := range matrix {
		matrix[i] = make([]E, 1<<uint(k))
		for j := range matrix[i] {
			matrix[i][j] = evals[j<<uint(m)+i]
		}
	}
	return matrix
}

func reduceClaim(claim, scalar field.GF128) (field.GF128, error) {
	scalarInv, err := scalar.Inv()
	if err != nil {
		return field.GF128{}, fmt.Errorf("recursion: accumulated eq scalar has no inverse: %w", err)
	}
	return claim.Mul(scalarInv), nil
}

// eqSingle computes the single-variable eq basis term eq(a,b) = ab + (1-a)(1-b).
func eqSingle(a, b field.GF128) field.GF128 {
	one := a.One()
	return a.Mul(b).Add(one.Sub(a).Mul(one.Sub(b)))
}

// embedSlice lifts every entry of xs into GF128.
func embedSlice[E field.Embeddable[E]](xs []E) []field.GF128 {
	out := make([]field.GF128, len(xs))
	for i, x := range xs {
		out[i] = x.Embed()
	}
	return out
}

func buildEncoder[E field.Elem[E]](basis []E, k, n int) (*rs.Encoder[E], error) {
	logN := utils.Log2(utils.NextPowerOfTwo(n))
	if logN > len(basis) {
		return nil, fmt.Errorf("output width %d exceeds basis capacity %d", n, 1<<uint(len(basis)))
	}
	return rs.NewEncoder(basis[:logN], 1<<uint(k), n)
}
