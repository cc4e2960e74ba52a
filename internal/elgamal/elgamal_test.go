package elgamal

import (
	"crypto/rand"
	"testing"

	"github.com/ccoin/xfr/internal/algebra"
)

func TestDecryptBruteForceRoundTrip(t *testing.T) {
	pk, sk, err := GenKeyPair(rand.Reader)
	if err != nil {
		t.Fatalf("GenKeyPair failed: %v", err)
	}
	const want = uint64(4242)
	ct, err := EncryptUint64(rand.Reader, pk, want)
	if err != nil {
		t.Fatalf("EncryptUint64 failed: %v", err)
	}
	got, err := DecryptBruteForceU64(ct, sk, 1<<16)
	if err != nil {
		t.Fatalf("DecryptBruteForceU64 failed: %v", err)
	}
	if got != want {
		t.Errorf("decrypted %d, want %d", got, want)
	}
}

func TestDecryptBruteForceBoundExceeded(t *testing.T) {
	pk, sk, err := GenKeyPair(rand.Reader)
	if err != nil {
		t.Fatalf("GenKeyPair failed: %v", err)
	}
	ct, err := EncryptUint64(rand.Reader, pk, 1000)
	if err != nil {
		t.Fatalf("EncryptUint64 failed: %v", err)
	}
	if _, err := DecryptBruteForceU64(ct, sk, 10); err == nil {
		t.Errorf("expected an error when the plaintext exceeds the search bound")
	}
}

func TestDecryptAgainstCandidates(t *testing.T) {
	pk, sk, err := GenKeyPair(rand.Reader)
	if err != nil {
		t.Fatalf("GenKeyPair failed: %v", err)
	}
	candidates := []algebra.Scalar{
		algebra.NewScalarFromUint64(1),
		algebra.NewScalarFromUint64(2),
		algebra.NewScalarFromUint64(3),
	}
	ct, err := Encrypt(rand.Reader, pk, candidates[1])
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	idx, err := DecryptAgainstCandidates(ct, sk, candidates)
	if err != nil {
		t.Fatalf("DecryptAgainstCandidates failed: %v", err)
	}
	if idx != 1 {
		t.Errorf("expected index 1, got %d", idx)
	}

	notInSet, err := Encrypt(rand.Reader, pk, algebra.NewScalarFromUint64(99))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if _, err := DecryptAgainstCandidates(notInSet, sk, candidates); err == nil {
		t.Errorf("expected an error when the plaintext is not in the candidate set")
	}
}

func TestVerifyPlaintextU64(t *testing.T) {
	pk, sk, err := GenKeyPair(rand.Reader)
	if err != nil {
		t.Fatalf("GenKeyPair failed: %v", err)
	}
	ct, err := EncryptUint64(rand.Reader, pk, 7)
	if err != nil {
		t.Fatalf("EncryptUint64 failed: %v", err)
	}
	if !VerifyPlaintextU64(ct, sk, 7) {
		t.Errorf("VerifyPlaintextU64 should accept the true plaintext")
	}
	if VerifyPlaintextU64(ct, sk, 8) {
		t.Errorf("VerifyPlaintextU64 should reject a wrong plaintext")
	}
}

func TestCiphertextBytesRoundTrip(t *testing.T) {
	pk, _, err := GenKeyPair(rand.Reader)
	if err != nil {
		t.Fatalf("GenKeyPair failed: %v", err)
	}
	ct, err := EncryptUint64(rand.Reader, pk, 55)
	if err != nil {
		t.Fatalf("EncryptUint64 failed: %v", err)
	}
	decoded, err := CiphertextFromBytes(ct.Bytes())
	if err != nil {
		t.Fatalf("CiphertextFromBytes failed: %v", err)
	}
	if !decoded.C1.Equal(ct.C1) || !decoded.C2.Equal(ct.C2) {
		t.Errorf("ciphertext did not round-trip through bytes")
	}
}
