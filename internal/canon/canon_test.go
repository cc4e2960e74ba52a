package canon

import (
	"crypto/rand"
	"testing"

	"github.com/ccoin/xfr/internal/algebra"
)

func TestMarshalDeterministic(t *testing.T) {
	type record struct {
		B []byte
		A uint64
	}
	r := record{A: 7, B: []byte("hello")}

	out1, err := Marshal(r)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	out2, err := Marshal(r)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out1) != string(out2) {
		t.Errorf("canonical encoding should be deterministic across calls")
	}
}

func TestScalarRoundTripThroughCanon(t *testing.T) {
	s, err := algebra.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar failed: %v", err)
	}
	data, err := Marshal(s)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded algebra.Scalar
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !decoded.Equal(s) {
		t.Errorf("scalar did not round-trip through canonical CBOR")
	}
}

func TestG1RoundTripThroughCanon(t *testing.T) {
	p := algebra.G1Base().Mul(algebra.NewScalarFromUint64(777))
	data, err := Marshal(p)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded algebra.G1
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !decoded.Equal(p) {
		t.Errorf("G1 point did not round-trip through canonical CBOR")
	}
}

func TestMapRoundTripThroughCanon(t *testing.T) {
	m1 := map[string]int{"zeta": 1, "alpha": 2, "mid": 3}
	out, err := Marshal(m1)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var roundTripped map[string]int
	if err := Unmarshal(out, &roundTripped); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(roundTripped) != 3 || roundTripped["alpha"] != 2 {
		t.Errorf("map did not round-trip correctly: %v", roundTripped)
	}
}
