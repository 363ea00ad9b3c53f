// Command ligerito-prove reads a proof or verification request as a single
// line of JSON on stdin and writes its result to stdout as a single line of
// JSON.
package main

import (
	"bufio"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ligerito-labs/ligerito/internal/ligerito/field"
	"github.com/ligerito-labs/ligerito/pkg/ligerito"
)

// Request is either a prove or a verify request, distinguished by Mode.
type Request struct {
	Mode string `json:"mode"` // "prove" or "verify"

	// Field is one of "gf16", "gf32", "gf64", "gf128".
	Field string `json:"field"`

	LogPolySize int                  `json:"log_poly_size"`
	Schedule    []ligerito.RoundShape `json:"schedule"`
	InverseRate int                  `json:"inverse_rate"`
	NumQueries  int                  `json:"num_queries"`
	DomainTag   string               `json:"domain_tag"`

	// Coeffs is required for mode "prove": the polynomial's coefficients,
	// each the element's packed bit pattern truncated to the field's width
	// (for gf128, the Lo limb; Hi is zero). EvalPoint and ClaimedValue use
	// the same encoding.
	Coeffs []uint64 `json:"coeffs,omitempty"`

	EvalPoint    []uint64 `json:"eval_point"`
	ClaimedValue uint64   `json:"claimed_value"`

	// Proof is required for mode "verify": base64-encoded proof bytes.
	Proof string `json:"proof,omitempty"`
}

// Response reports a prove or verify outcome.
type Response struct {
	Proof    string `json:"proof,omitempty"`
	Verified *bool  `json:"verified,omitempty"`
	Error    string `json:"error,omitempty"`
}

func main() {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<24)
	if !scanner.Scan() {
		fatal("failed to read request line")
	}

	var req Request
	if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
		fatal(fmt.Sprintf("failed to parse request: %v", err))
	}

	resp := handle(req)
	out, err := json.Marshal(resp)
	if err != nil {
		fatal(fmt.Sprintf("failed to serialize response: %v", err))
	}
	os.Stdout.Write(out)
	os.Stdout.Write([]byte("\n"))
	if resp.Error != "" {
		os.Exit(1)
	}
}

func handle(req Request) Response {
	cfg := &ligerito.Config{
		LogPolySize: req.LogPolySize,
		Schedule:    req.Schedule,
		InverseRate: req.InverseRate,
		NumQueries:  req.NumQueries,
		Hash:        ligerito.HashSHA3,
		Transcript:  ligerito.TranscriptHashChain,
		DomainTag:   req.DomainTag,
	}
	if cfg.DomainTag == "" {
		cfg.DomainTag = "ligerito/v1"
	}

	switch req.Mode {
	case "prove":
		return proveRequest(cfg, req)
	case "verify":
		return verifyRequest(cfg, req)
	default:
		return Response{Error: fmt.Sprintf("unknown mode %q", req.Mode)}
	}
}

func proveRequest(cfg *ligerito.Config, req Request) Response {
	switch req.Field {
	case "gf16":
		return proveWith[field.GF16](cfg, req, func(v uint64) field.GF16 { return field.GF16(v) })
	case "gf32":
		return proveWith[field.GF32](cfg, req, func(v uint64) field.GF32 { return field.GF32(v) })
	case "gf64":
		return proveWith[field.GF64](cfg, req, func(v uint64) field.GF64 { return field.GF64(v) })
	case "gf128":
		return proveWith[field.GF128](cfg, req, func(v uint64) field.GF128 { return field.GF128{Lo: field.GF64(v)} })
	default:
		return Response{Error: fmt.Sprintf("unknown field %q", req.Field)}
	}
}

func verifyRequest(cfg *ligerito.Config, req Request) Response {
	switch req.Field {
	case "gf16":
		return verifyWith[field.GF16](cfg, req, func(v uint64) field.GF16 { return field.GF16(v) })
	case "gf32":
		return verifyWith[field.GF32](cfg, req, func(v uint64) field.GF32 { return field.GF32(v) })
	case "gf64":
		return verifyWith[field.GF64](cfg, req, func(v uint64) field.GF64 { return field.GF64(v) })
	case "gf128":
		return verifyWith[field.GF128](cfg, req, func(v uint64) field.GF128 { return field.GF128{Lo: field.GF64(v)} })
	default:
		return Response{Error: fmt.Sprintf("unknown field %q", req.Field)}
	}
}

func proveWith[E field.Embeddable[E]](cfg *ligerito.Config, req Request, from func(uint64) E) Response {
	coeffs := make([]E, len(req.Coeffs))
	for i, v := range req.Coeffs {
		coeffs[i] = from(v)
	}
	point := make([]E, len(req.EvalPoint))
	for i, v := range req.EvalPoint {
		point[i] = from(v)
	}
	claimed := from(req.ClaimedValue)

	proof, err := ligerito.Prove[E](cfg, coeffs, point, claimed)
	if err != nil {
		return Response{Error: err.Error()}
	}
	return Response{Proof: base64.StdEncoding.EncodeToString(proof)}
}

func verifyWith[E field.Embeddable[E]](cfg *ligerito.Config, req Request, from func(uint64) E) Response {
	raw, err := base64.StdEncoding.DecodeString(req.Proof)
	if err != nil {
		return Response{Error: fmt.Sprintf("invalid base64 proof: %v", err)}
	}
	point := make([]E, len(req.EvalPoint))
	for i, v := range req.EvalPoint {
		point[i] = from(v)
	}
	claimed := from(req.ClaimedValue)

	ok, err := ligerito.Verify[E](cfg, ligerito.Proof(raw), point, claimed)
	if err != nil {
		return Response{Error: err.Error()}
	}
	return Response{Verified: &ok}
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, "ligerito-prove: ERROR:", msg)
	os.Exit(1)
}
