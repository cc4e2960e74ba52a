package multisig

import (
	"crypto/rand"
	"testing"
)

func TestSignVerifyMultisig(t *testing.T) {
	k1, err := GenKeyPair(rand.Reader)
	if err != nil {
		t.Fatalf("GenKeyPair failed: %v", err)
	}
	k2, err := GenKeyPair(rand.Reader)
	if err != nil {
		t.Fatalf("GenKeyPair failed: %v", err)
	}
	msg := []byte("transfer body bytes")

	sig, err := SignMultisig(rand.Reader, []XfrKeyPair{k1, k2}, msg)
	if err != nil {
		t.Fatalf("SignMultisig failed: %v", err)
	}
	if err := VerifyMultisig([]XfrPublicKey{k1.Public, k2.Public}, msg, sig); err != nil {
		t.Errorf("valid multisig should verify, got: %v", err)
	}
}

func TestVerifyMultisigRejectsWrongOrder(t *testing.T) {
	k1, _ := GenKeyPair(rand.Reader)
	k2, _ := GenKeyPair(rand.Reader)
	msg := []byte("transfer body bytes")

	sig, err := SignMultisig(rand.Reader, []XfrKeyPair{k1, k2}, msg)
	if err != nil {
		t.Fatalf("SignMultisig failed: %v", err)
	}
	if err := VerifyMultisig([]XfrPublicKey{k2.Public, k1.Public}, msg, sig); err == nil {
		t.Errorf("verification should fail when public key order is swapped")
	}
}

func TestVerifyMultisigRejectsTamperedMessage(t *testing.T) {
	k1, _ := GenKeyPair(rand.Reader)
	msg := []byte("original")
	sig, err := SignMultisig(rand.Reader, []XfrKeyPair{k1}, msg)
	if err != nil {
		t.Fatalf("SignMultisig failed: %v", err)
	}
	if err := VerifyMultisig([]XfrPublicKey{k1.Public}, []byte("tampered"), sig); err == nil {
		t.Errorf("verification should fail for a tampered message")
	}
}

func TestMultiSigBytesRoundTrip(t *testing.T) {
	k1, _ := GenKeyPair(rand.Reader)
	k2, _ := GenKeyPair(rand.Reader)
	msg := []byte("round trip")
	sig, err := SignMultisig(rand.Reader, []XfrKeyPair{k1, k2}, msg)
	if err != nil {
		t.Fatalf("SignMultisig failed: %v", err)
	}
	decoded, err := MultiSigFromBytes(sig.Bytes(), sig.Len())
	if err != nil {
		t.Fatalf("MultiSigFromBytes failed: %v", err)
	}
	if err := VerifyMultisig([]XfrPublicKey{k1.Public, k2.Public}, msg, decoded); err != nil {
		t.Errorf("decoded multisig should still verify, got: %v", err)
	}
}

func TestMultiSigCBORRoundTrip(t *testing.T) {
	k1, _ := GenKeyPair(rand.Reader)
	msg := []byte("cbor round trip")
	sig, err := SignMultisig(rand.Reader, []XfrKeyPair{k1}, msg)
	if err != nil {
		t.Fatalf("SignMultisig failed: %v", err)
	}
	data, err := sig.MarshalCBOR()
	if err != nil {
		t.Fatalf("MarshalCBOR failed: %v", err)
	}
	var decoded XfrMultiSig
	if err := decoded.UnmarshalCBOR(data); err != nil {
		t.Fatalf("UnmarshalCBOR failed: %v", err)
	}
	if err := VerifyMultisig([]XfrPublicKey{k1.Public}, msg, decoded); err != nil {
		t.Errorf("CBOR round-tripped multisig should still verify, got: %v", err)
	}
}
