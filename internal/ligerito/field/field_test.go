package field

import (
	"testing"
)

func TestGF16FieldAxioms(t *testing.T) {
	for i := 0; i < 2000; i++ {
		a, _ := RandomGF16()
		b, _ := RandomGF16()
		c, _ := RandomGF16()

		if a.Add(b) != b.Add(a) {
			t.Fatalf("addition not commutative")
		}
		if a.Add(b).Add(c) != a.Add(b.Add(c)) {
			t.Fatalf("addition not associative")
		}
		lhs := a.Mul(b.Add(c))
		rhs := a.Mul(b).Add(a.Mul(c))
		if lhs != rhs {
			t.Fatalf("distributivity failed: %v != %v", lhs, rhs)
		}
		if !a.IsZero() {
			inv, err := a.Inv()
			if err != nil {
				t.Fatalf("unexpected inverse error: %v", err)
			}
			if !a.Mul(inv).IsOne() {
				t.Fatalf("a * a^-1 != 1")
			}
		}
	}
}

func TestGF16InverseOfZero(t *testing.T) {
	if _, err := Zero16.Inv(); err != ErrInverseOfZero {
		t.Fatalf("expected ErrInverseOfZero, got %v", err)
	}
}

func TestGF16BackendsAgree(t *testing.T) {
	for i := 0; i < 100000; i++ {
		a, _ := RandomGF16()
		b, _ := RandomGF16()

		results := make(map[Backend]GF16)
		for _, backend := range []Backend{BackendScalar, BackendTable, BackendWideLane} {
			restore := ForceBackend(backend)
			results[backend] = a.Mul(b)
			restore()
		}
		if results[BackendScalar] != results[BackendTable] || results[BackendScalar] != results[BackendWideLane] {
			t.Fatalf("backends disagree for a=%v b=%v: %v", a, b, results)
		}
	}
}

func TestTowerHomomorphismGF16ToGF32(t *testing.T) {
	for i := 0; i < 1000; i++ {
		a, _ := RandomGF16()
		b, _ := RandomGF16()

		if EmbedFromGF16(a.Add(b)) != EmbedFromGF16(a).Add(EmbedFromGF16(b)) {
			t.Fatalf("embedding does not preserve addition")
		}
		if EmbedFromGF16(a.Mul(b)) != EmbedFromGF16(a).Mul(EmbedFromGF16(b)) {
			t.Fatalf("embedding does not preserve multiplication")
		}
	}
}

func TestTowerHomomorphismGF32ToGF64(t *testing.T) {
	for i := 0; i < 1000; i++ {
		a, _ := RandomGF32()
		b, _ := RandomGF32()

		if EmbedFromGF32(a.Add(b)) != EmbedFromGF32(a).Add(EmbedFromGF32(b)) {
			t.Fatalf("embedding does not preserve addition")
		}
		if EmbedFromGF32(a.Mul(b)) != EmbedFromGF32(a).Mul(EmbedFromGF32(b)) {
			t.Fatalf("embedding does not preserve multiplication")
		}
	}
}

func TestTowerHomomorphismGF64ToGF128(t *testing.T) {
	for i := 0; i < 1000; i++ {
		a, _ := RandomGF64()
		b, _ := RandomGF64()

		if EmbedFromGF64(a.Add(b)) != EmbedFromGF64(a).Add(EmbedFromGF64(b)) {
			t.Fatalf("embedding does not preserve addition")
		}
		if EmbedFromGF64(a.Mul(b)) != EmbedFromGF64(a).Mul(EmbedFromGF64(b)) {
			t.Fatalf("embedding does not preserve multiplication")
		}
	}
}

func TestGF128FieldAxioms(t *testing.T) {
	for i := 0; i < 1000; i++ {
		a, _ := RandomGF128()
		b, _ := RandomGF128()
		c, _ := RandomGF128()

		if a.Add(b) != b.Add(a) {
			t.Fatalf("addition not commutative")
		}
		lhs := a.Mul(b.Add(c))
		rhs := a.Mul(b).Add(a.Mul(c))
		if lhs != rhs {
			t.Fatalf("distributivity failed")
		}
		if !a.IsZero() {
			inv, err := a.Inv()
			if err != nil {
				t.Fatalf("unexpected inverse error: %v", err)
			}
			if !a.Mul(inv).IsOne() {
				t.Fatalf("a * a^-1 != 1")
			}
		}
	}
}

func TestGF128BytesRoundTrip(t *testing.T) {
	for i := 0; i < 100; i++ {
		a, _ := RandomGF128()
		b := GF128FromBytes(a.Bytes())
		if a != b {
			t.Fatalf("round trip mismatch: %v != %v", a, b)
		}
	}
}

func TestGF32BytesRoundTrip(t *testing.T) {
	for i := 0; i < 100; i++ {
		a, _ := RandomGF32()
		b := GF32FromBytes(a.Bytes())
		if a != b {
			t.Fatalf("round trip mismatch: %v != %v", a, b)
		}
	}
}
