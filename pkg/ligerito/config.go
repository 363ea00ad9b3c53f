package ligerito

import (
	"github.com/ligerito-labs/ligerito/internal/ligerito/merkle"
	"github.com/ligerito-labs/ligerito/internal/ligerito/recursion"
	"github.com/ligerito-labs/ligerito/internal/ligerito/transcript"
)

// TranscriptKind selects which Fiat-Shamir transcript implementation a proof
// is bound to. Prover and verifier must agree — see the transcript package.
type TranscriptKind int

const (
	TranscriptHashChain TranscriptKind = iota
	TranscriptSponge
)

// HashKind selects the Merkle leaf/node hash function.
type HashKind int

const (
	HashSHA3 HashKind = iota
	HashBLAKE3
)

// RoundShape is one schedule entry: a matrix of 2^M rows by 2^K columns. It
// mirrors recursion.RoundShape so callers configuring a proof don't need to
// import the internal package directly.
type RoundShape = recursion.RoundShape

// Config is everything both the prover and verifier need to agree on before
// a proof changes hands.
type Config struct {
	// LogPolySize is ℓ: the committed polynomial has 2^ℓ coefficients.
	LogPolySize int

	// Schedule is the sequence of (M, K) round shapes folding the
	// polynomial from 2^LogPolySize entries down to the final base case.
	Schedule []RoundShape

	// InverseRate is the Reed-Solomon code's n/k ratio, identical at every
	// round.
	InverseRate int

	// NumQueries is Q, the number of columns opened per round.
	NumQueries int

	// SecurityBits documents the target soundness level this
	// (InverseRate, NumQueries) pair is meant to achieve; Validate does not
	// derive NumQueries from it; callers pick both together.
	SecurityBits int

	// Transcript selects HashChain or Sponge.
	Transcript TranscriptKind

	// Hash selects the Merkle hasher.
	Hash HashKind

	// DomainTag seeds the transcript, separating proofs for unrelated
	// protocols or applications from colliding.
	DomainTag string
}

// DefaultConfig returns a modest single-round configuration for a
// 2^logPolySize-entry polynomial: one round whose matrix splits the
// variables evenly between rows and columns (any odd one goes to the
// columns), no recursion past that round's base case, inverse rate 2, and a
// query count appropriate for quick experimentation rather than production
// soundness.
func DefaultConfig(logPolySize int) *Config {
	return &Config{
		LogPolySize:  logPolySize,
		Schedule:     []RoundShape{{M: logPolySize / 2, K: logPolySize - logPolySize/2}},
		InverseRate:  2,
		NumQueries:   48,
		SecurityBits: 100,
		Transcript:   TranscriptHashChain,
		Hash:         HashSHA3,
		DomainTag:    "ligerito/v1",
	}
}

// Validate checks internal consistency: the schedule must account for every
// variable exactly once, the inverse rate must be at least 2, the query
// count must be positive, and the
// domain tag must be set so two unrelated applications can't cross-bind
// transcripts.
func (c *Config) Validate() error {
	if c.LogPolySize < 0 {
		return newError(ErrInvalidConfig, nil, "log poly size must be non-negative, got %d", c.LogPolySize)
	}
	if _, err := recursion.NewSchedule(c.LogPolySize, c.Schedule); err != nil {
		return newError(ErrInvalidConfig, err, "schedule does not cover the configured polynomial size")
	}
	if c.InverseRate < 2 {
		return newError(ErrInvalidConfig, nil, "inverse rate must be at least 2, got %d", c.InverseRate)
	}
	if c.NumQueries <= 0 {
		return newError(ErrInvalidConfig, nil, "num queries must be positive, got %d", c.NumQueries)
	}
	if c.DomainTag == "" {
		return newError(ErrInvalidConfig, nil, "domain tag must be set")
	}
	return nil
}

func (c *Config) schedule() (*recursion.Schedule, error) {
	return recursion.NewSchedule(c.LogPolySize, c.Schedule)
}

func (c *Config) recursionConfig() recursion.Config {
	return recursion.Config{InverseRate: c.InverseRate, NumQueries: c.NumQueries}
}

func (c *Config) newTranscript() transcript.Transcript {
	if c.Transcript == TranscriptSponge {
		return transcript.NewSponge(c.DomainTag)
	}
	return transcript.NewHashChain(c.DomainTag)
}

func (c *Config) hasher() merkle.Hasher {
	if c.Hash == HashBLAKE3 {
		return merkle.Blake3Hasher{}
	}
	return merkle.Sha3Hasher{}
}
