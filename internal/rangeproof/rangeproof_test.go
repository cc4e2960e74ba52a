package rangeproof

import (
	"crypto/rand"
	"testing"

	"github.com/ccoin/xfr/internal/algebra"
	"github.com/ccoin/xfr/internal/pedersen"
)

func TestRangeProveVerifyRoundTrip(t *testing.T) {
	pp := pedersen.DefaultPublicParams()

	rl, _ := pedersen.RandomBlind(rand.Reader)
	rh, _ := pedersen.RandomBlind(rand.Reader)
	lowOpen := Opening{Value: 123, Blind: rl}
	highOpen := Opening{Value: 0, Blind: rh}

	proof, err := RangeProve(rand.Reader, pp, []Opening{lowOpen}, []Opening{highOpen})
	if err != nil {
		t.Fatalf("RangeProve failed: %v", err)
	}

	commitLow := pp.CommitUint64(uint64(lowOpen.Value), lowOpen.Blind)
	commitHigh := pp.CommitUint64(uint64(highOpen.Value), highOpen.Blind)

	if !Verify(pp, []algebra.G1{commitLow}, []algebra.G1{commitHigh}, proof) {
		t.Errorf("an honestly generated range proof should verify")
	}
}

func TestVerifyRejectsWrongCommitment(t *testing.T) {
	pp := pedersen.DefaultPublicParams()
	rl, _ := pedersen.RandomBlind(rand.Reader)
	rh, _ := pedersen.RandomBlind(rand.Reader)
	lowOpen := Opening{Value: 10, Blind: rl}
	highOpen := Opening{Value: 0, Blind: rh}

	proof, err := RangeProve(rand.Reader, pp, []Opening{lowOpen}, []Opening{highOpen})
	if err != nil {
		t.Fatalf("RangeProve failed: %v", err)
	}

	wrongCommit := pp.CommitUint64(11, lowOpen.Blind)
	commitHigh := pp.CommitUint64(uint64(highOpen.Value), highOpen.Blind)
	if Verify(pp, []algebra.G1{wrongCommit}, []algebra.G1{commitHigh}, proof) {
		t.Errorf("a range proof should not verify against a mismatched commitment")
	}
}

func TestNonNegativeRoundTrip(t *testing.T) {
	pp := pedersen.DefaultPublicParams()
	blind, _ := pedersen.RandomBlind(rand.Reader)
	const value = uint64(5_000_000)

	proof, err := ProveNonNegative(rand.Reader, pp, value, blind, 64)
	if err != nil {
		t.Fatalf("ProveNonNegative failed: %v", err)
	}
	commit := pp.CommitUint64(value, blind)
	if !VerifyNonNegative(pp, commit, proof) {
		t.Errorf("an honestly generated non-negativity proof should verify")
	}
}

func TestBatchVerifyFailsOnFirstBadInstance(t *testing.T) {
	pp := pedersen.DefaultPublicParams()
	rl, _ := pedersen.RandomBlind(rand.Reader)
	rh, _ := pedersen.RandomBlind(rand.Reader)
	lowOpen := Opening{Value: 1, Blind: rl}
	highOpen := Opening{Value: 0, Blind: rh}
	proof, err := RangeProve(rand.Reader, pp, []Opening{lowOpen}, []Opening{highOpen})
	if err != nil {
		t.Fatalf("RangeProve failed: %v", err)
	}
	goodLow := pp.CommitUint64(1, lowOpen.Blind)
	goodHigh := pp.CommitUint64(0, highOpen.Blind)
	badLow := pp.CommitUint64(2, lowOpen.Blind)

	instances := []Instance{
		{CommitsLow: []algebra.G1{goodLow}, CommitsHigh: []algebra.G1{goodHigh}, Proof: proof},
		{CommitsLow: []algebra.G1{badLow}, CommitsHigh: []algebra.G1{goodHigh}, Proof: proof},
	}
	if err := BatchVerify(pp, instances); err == nil {
		t.Errorf("BatchVerify should fail when any instance is invalid")
	}
}
