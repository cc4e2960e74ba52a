package tracing

import (
	"crypto/rand"
	"testing"

	"github.com/ccoin/xfr/internal/algebra"
	"github.com/ccoin/xfr/internal/elgamal"
	"github.com/ccoin/xfr/internal/multisig"
	"github.com/ccoin/xfr/internal/pedersen"
	"github.com/ccoin/xfr/pkg/types"
)

func TestProveVerifyEncEqualityRoundTrip(t *testing.T) {
	pp := pedersen.DefaultPublicParams()
	pk, sk, err := elgamal.GenKeyPair(rand.Reader)
	if err != nil {
		t.Fatalf("GenKeyPair failed: %v", err)
	}
	value := algebra.NewScalarFromUint64(321)
	blind, _ := pedersen.RandomBlind(rand.Reader)
	random, _ := algebra.RandomScalar(rand.Reader)

	proof, commit, ct, err := ProveEncEquality(rand.Reader, pp, pk, value, blind, random)
	if err != nil {
		t.Fatalf("ProveEncEquality failed: %v", err)
	}
	if !VerifyEncEquality(pp, pk, commit, ct, proof) {
		t.Errorf("an honestly generated EncEquality proof should verify")
	}
	if !elgamal.VerifyPlaintextScalar(ct, sk, value) {
		t.Errorf("ciphertext should decrypt to the committed value under the tracer's secret key")
	}
}

func TestVerifyEncEqualityRejectsWrongCommitment(t *testing.T) {
	pp := pedersen.DefaultPublicParams()
	pk, _, err := elgamal.GenKeyPair(rand.Reader)
	if err != nil {
		t.Fatalf("GenKeyPair failed: %v", err)
	}
	value := algebra.NewScalarFromUint64(10)
	blind, _ := pedersen.RandomBlind(rand.Reader)
	random, _ := algebra.RandomScalar(rand.Reader)

	proof, _, ct, err := ProveEncEquality(rand.Reader, pp, pk, value, blind, random)
	if err != nil {
		t.Fatalf("ProveEncEquality failed: %v", err)
	}
	wrongCommit := pp.Commit(algebra.NewScalarFromUint64(11), blind)
	if VerifyEncEquality(pp, pk, wrongCommit, ct, proof) {
		t.Errorf("EncEquality proof should not verify against a mismatched commitment")
	}
}

func TestTraceAssetsAndVerifyTracingCtexts(t *testing.T) {
	keys, err := GenTracerKeyPair(rand.Reader)
	if err != nil {
		t.Fatalf("GenTracerKeyPair failed: %v", err)
	}
	signer, err := multisig.GenKeyPair(rand.Reader)
	if err != nil {
		t.Fatalf("GenKeyPair failed: %v", err)
	}

	var assetType types.AssetType
	assetType[0] = 42
	amountCt, err := elgamal.EncryptUint64(rand.Reader, keys.RecordDataPub, 1000)
	if err != nil {
		t.Fatalf("EncryptUint64 failed: %v", err)
	}
	typeCt, err := elgamal.Encrypt(rand.Reader, keys.RecordDataPub, algebra.AssetTypeToScalar(assetType))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	bar := types.BlindAssetRecord{
		PublicKey: signer.Public,
		Amount:    types.NonConfidentialAmount(1000),
		AssetType: types.NonConfidentialAssetType(assetType),
	}
	memo := types.AssetTracerMemo{
		EncKey:        keys.RecordDataPub,
		AttrsEncKey:   keys.AttrsPub,
		LockAmount:    &amountCt,
		LockAssetType: &typeCt,
	}
	body := &types.XfrBody{
		Inputs:            []types.BlindAssetRecord{bar},
		AssetTracingMemos: [][]types.AssetTracerMemo{{memo}},
	}

	recovered, err := TraceAssets(body, keys, []types.AssetType{assetType}, 0)
	if err != nil {
		t.Fatalf("TraceAssets failed: %v", err)
	}
	if len(recovered) != 1 || recovered[0].Amount != 1000 || recovered[0].AssetType != assetType {
		t.Fatalf("unexpected recovered data: %+v", recovered)
	}

	if err := VerifyTracingCtexts(body, keys, recovered); err != nil {
		t.Errorf("VerifyTracingCtexts should accept the true recovered data, got: %v", err)
	}

	wrong := []RecordData{{Amount: 999, AssetType: assetType, PublicKey: signer.Public}}
	if err := VerifyTracingCtexts(body, keys, wrong); err == nil {
		t.Errorf("VerifyTracingCtexts should reject a wrong expected amount")
	}
}

func TestFindTracingMemosRejectsMismatchedLength(t *testing.T) {
	keys, err := GenTracerKeyPair(rand.Reader)
	if err != nil {
		t.Fatalf("GenTracerKeyPair failed: %v", err)
	}
	body := &types.XfrBody{
		Inputs:            make([]types.BlindAssetRecord, 2),
		AssetTracingMemos: [][]types.AssetTracerMemo{{}},
	}
	if _, err := FindTracingMemos(body, keys.RecordDataPub); err == nil {
		t.Errorf("expected an error when memo count does not match record count")
	}
}
