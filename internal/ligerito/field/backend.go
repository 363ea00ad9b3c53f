package field

import (
	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sys/cpu"
)

// Backend identifies which GF(2^16) carryless-multiply implementation the
// package dispatches through. All three MUST agree bit-for-bit; Backend only
// changes which code path is exercised, never the result.
type Backend int

const (
	// BackendScalar is the bit-sliced shift-and-xor carryless multiply.
	// Always available, used as the universal fallback.
	BackendScalar Backend = iota
	// BackendTable decomposes operands into 4-bit nibbles, looks up all
	// sixteen nibble products in a precomputed 16x16 table and recombines
	// them by shifted XOR accumulation; no Karatsuba reduction is applied.
	BackendTable
	// BackendWideLane decomposes operands into 8-bit lanes (the widest
	// lane a single carryless-multiply instruction covers on the
	// platforms we target) and recombines the same way as BackendTable.
	// Selected only when the host exposes a wide carryless-multiply
	// capability.
	BackendWideLane
)

func (b Backend) String() string {
	switch b {
	case BackendScalar:
		return "scalar"
	case BackendTable:
		return "table"
	case BackendWideLane:
		return "wide-lane"
	default:
		return "unknown"
	}
}

// activeBackend is chosen once at package initialization by probing CPU
// capabilities. It is never re-probed on the hot path: every GF(2^16)
// multiply reads this package-level variable directly.
var activeBackend = detectBackend()

// SelectedBackend reports the backend chosen for this process. Exposed so
// callers (and tests) can confirm which code path is live without relying on
// undocumented internals.
func SelectedBackend() Backend {
	return activeBackend
}

// ForceBackend overrides the active backend. Intended for tests that need to
// exercise all three code paths and assert they agree; production code
// should rely on the capability-driven default.
func ForceBackend(b Backend) (restore func()) {
	prev := activeBackend
	activeBackend = b
	return func() { activeBackend = prev }
}

func detectBackend() Backend {
	if cpu.X86.HasPCLMULQDQ || cpu.ARM64.HasPMULL {
		return BackendWideLane
	}
	if cpuid.CPU.Supports(cpuid.SSE2) {
		return BackendTable
	}
	return BackendScalar
}

// clmul16 computes the carryless (GF(2)[X]) product of two 16-bit values as
// a 32-bit polynomial, dispatching through the active backend.
func clmul16(a, b uint16) uint32 {
	switch activeBackend {
	case BackendWideLane:
		return clmulWideLane(a, b)
	case BackendTable:
		return clmulTable(a, b)
	default:
		return clmulScalar(a, b)
	}
}

// clmulScalar is the bit-sliced shift-and-xor carryless multiply: the
// reference implementation every other backend must match exactly. The
// per-bit contribution is folded in through an arithmetic mask rather than a
// branch on b, so the instruction sequence is identical for every b.
func clmulScalar(a, b uint16) uint32 {
	var result uint32
	wa := uint32(a)
	for i := 0; i < 16; i++ {
		mask := uint32(0) - uint32((b>>uint(i))&1)
		result ^= (wa << uint(i)) & mask
	}
	return result
}

// nibbleClmulTable[x][y] holds the 8-bit carryless product of two 4-bit
// values, precomputed once at init from the public indices 0..15.
var nibbleClmulTable [16][16]uint16

func init() {
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			nibbleClmulTable[x][y] = uint16(clmulScalar(uint16(x), uint16(y)))
		}
	}
}

// ctEqMask4 returns 0xFFFF if the low 4 bits of a and b are equal, 0
// otherwise, computed without branching.
func ctEqMask4(a, b uint16) uint16 {
	diff := (a ^ b) & 0xF
	diff |= diff >> 2
	diff |= diff >> 1
	return (diff & 1) - 1
}

// ctLookupNibble returns nibbleClmulTable[x][y] without indexing the table
// by a secret-derived location: it walks every entry and masks in the one
// whose coordinates match, so the memory access pattern is identical for
// every x, y.
func ctLookupNibble(x, y uint16) uint16 {
	var result uint16
	for row := uint16(0); row < 16; row++ {
		rowMask := ctEqMask4(x, row)
		for col := uint16(0); col < 16; col++ {
			result |= nibbleClmulTable[row][col] & rowMask & ctEqMask4(y, col)
		}
	}
	return result
}

// clmulTable decomposes each 16-bit operand into four nibbles and recombines
// the sixteen nibble products via shifted XOR accumulation (schoolbook, not
// Karatsuba-reduced, since the nibble table already makes every sub-product
// O(1)). Every nibble pair is looked up and accumulated unconditionally —
// there is no early exit on a zero nibble and no direct indexing by a
// secret-derived value.
func clmulTable(a, b uint16) uint32 {
	var result uint32
	for i := 0; i < 4; i++ {
		ai := (a >> uint(4*i)) & 0xF
		for j := 0; j < 4; j++ {
			bj := (b >> uint(4*j)) & 0xF
			result ^= uint32(ctLookupNibble(ai, bj)) << uint(4*(i+j))
		}
	}
	return result
}

// clmulByteCT computes the carryless product of two byte-range values by
// decomposing each into two nibbles and routing every sub-product through
// ctLookupNibble, the same constant-time primitive clmulTable uses.
func clmulByteCT(a, b uint16) uint16 {
	var result uint16
	for i := 0; i < 2; i++ {
		ai := (a >> uint(4*i)) & 0xF
		for j := 0; j < 2; j++ {
			bj := (b >> uint(4*j)) & 0xF
			result ^= ctLookupNibble(ai, bj) << uint(4*(i+j))
		}
	}
	return result
}

// clmulWideLane decomposes each operand into two bytes and recombines via
// the same shifted-XOR schedule as clmulTable, but over 8-bit lanes. Chosen
// when the host exposes a wide carryless-multiply capability; this software
// fallback still routes every lane product through clmulByteCT rather than a
// secret-indexed byte table, since no assembly PCLMULQDQ/PMULL path is wired
// up in this tree.
func clmulWideLane(a, b uint16) uint32 {
	aLo, aHi := a&0xFF, a>>8
	bLo, bHi := b&0xFF, b>>8

	lo := uint32(clmulByteCT(aLo, bLo))
	hi := uint32(clmulByteCT(aHi, bHi))
	mid := uint32(clmulByteCT(aLo, bHi)) ^ uint32(clmulByteCT(aHi, bLo))

	return lo ^ (mid << 8) ^ (hi << 16)
}
