package assetproof

import (
	"crypto/rand"
	"testing"

	"github.com/ccoin/xfr/internal/algebra"
	"github.com/ccoin/xfr/internal/pedersen"
)

func commitAssetType(pp *pedersen.PublicParams, assetType [16]byte, blind algebra.Scalar) algebra.G1 {
	return pp.Commit(algebra.AssetTypeToScalar(assetType), blind)
}

func TestProveVerifyRoundTrip(t *testing.T) {
	pp := pedersen.DefaultPublicParams()
	var at [16]byte
	at[0] = 9

	r0, _ := pedersen.RandomBlind(rand.Reader)
	r1, _ := pedersen.RandomBlind(rand.Reader)
	r2, _ := pedersen.RandomBlind(rand.Reader)
	blinds := []algebra.Scalar{r0, r1, r2}
	commits := []algebra.G1{
		commitAssetType(pp, at, r0),
		commitAssetType(pp, at, r1),
		commitAssetType(pp, at, r2),
	}

	proof, err := Prove(rand.Reader, pp, commits, blinds)
	if err != nil {
		t.Fatalf("Prove failed: %v", err)
	}
	if !Verify(pp, commits, proof) {
		t.Errorf("an honestly generated asset-equality proof should verify")
	}
}

func TestVerifyRejectsDifferingAssetType(t *testing.T) {
	pp := pedersen.DefaultPublicParams()
	var at0, at1 [16]byte
	at0[0] = 1
	at1[0] = 2

	r0, _ := pedersen.RandomBlind(rand.Reader)
	r1, _ := pedersen.RandomBlind(rand.Reader)
	blinds := []algebra.Scalar{r0, r1}
	commits := []algebra.G1{
		commitAssetType(pp, at0, r0),
		commitAssetType(pp, at1, r1),
	}

	// Prove never checks that the cleartext types actually match; a
	// mismatched pair makes the commitment difference carry a G
	// component the blind-difference witness can't account for, so the
	// resulting proof fails verification.
	proof, err := Prove(rand.Reader, pp, commits, blinds)
	if err != nil {
		t.Fatalf("Prove failed: %v", err)
	}
	if Verify(pp, commits, proof) {
		t.Errorf("an asset-equality proof over mismatched asset types should not verify")
	}
}

func TestBatchVerifyFailsOnFirstBadInstance(t *testing.T) {
	pp := pedersen.DefaultPublicParams()
	var at [16]byte
	at[0] = 5
	r0, _ := pedersen.RandomBlind(rand.Reader)
	r1, _ := pedersen.RandomBlind(rand.Reader)
	blinds := []algebra.Scalar{r0, r1}
	goodCommits := []algebra.G1{
		commitAssetType(pp, at, r0),
		commitAssetType(pp, at, r1),
	}
	proof, err := Prove(rand.Reader, pp, goodCommits, blinds)
	if err != nil {
		t.Fatalf("Prove failed: %v", err)
	}

	var other [16]byte
	other[0] = 6
	badCommits := []algebra.G1{
		commitAssetType(pp, at, r0),
		commitAssetType(pp, other, r1),
	}

	instances := []Instance{
		{TypeCommits: goodCommits, Proof: proof},
		{TypeCommits: badCommits, Proof: proof},
	}
	if err := BatchVerify(pp, instances); err == nil {
		t.Errorf("BatchVerify should fail when any instance is invalid")
	}
}
