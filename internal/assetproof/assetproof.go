// Package assetproof implements the asset-equality proof collaborator
// named in spec §6: a proof that the committed asset types of every input
// and output record are equal, for the single-asset confidential path.
//
// Construction: fix the first record's asset-type commitment C0. For
// every other record's commitment Ci, Ci - C0 = (t_i - t0)*G + (r_i -
// r0)*H. If t_i == t0, this difference is a pure H-multiple, so a
// Schnorr proof of knowledge of discrete log (base H) of Ci - C0
// demonstrates equality without revealing the asset type. This is the
// standard Chaum-Pedersen equality-of-plaintext technique specialized to
// a star topology against the first commitment.
package assetproof

import (
	"io"

	"github.com/ccoin/xfr/internal/algebra"
	"github.com/ccoin/xfr/internal/pedersen"
	"github.com/ccoin/xfr/pkg/xfrerr"
)

// schnorrH is a Schnorr proof of knowledge of discrete log base H.
type schnorrH struct {
	A algebra.G1
	S algebra.Scalar
}

// Proof is an asset-equality proof over the concatenation of input and
// output asset-type commitments.
type Proof struct {
	Diffs []schnorrH // one per record after the first
}

func proveKnowledgeH(rng io.Reader, pp *pedersen.PublicParams, y algebra.G1, x algebra.Scalar) (schnorrH, error) {
	k, err := algebra.RandomScalar(rng)
	if err != nil {
		return schnorrH{}, err
	}
	a := pp.H.Mul(k)
	c := algebra.ScalarFromHash(a.Bytes(), y.Bytes())
	s := k.Add(c.Mul(x))
	return schnorrH{A: a, S: s}, nil
}

func verifyKnowledgeH(pp *pedersen.PublicParams, y algebra.G1, pf schnorrH) bool {
	c := algebra.ScalarFromHash(pf.A.Bytes(), y.Bytes())
	lhs := pp.H.Mul(pf.S)
	rhs := pf.A.Add(y.Mul(c))
	return lhs.Equal(rhs)
}

// Prove builds an equality proof over typeCommits (inputs then outputs,
// in order), given the matching blinding factors. All records must carry
// the same cleartext asset type, verified by the caller beforehand (an
// honest prover never calls this otherwise).
func Prove(rng io.Reader, pp *pedersen.PublicParams, typeCommits []algebra.G1, blinds []algebra.Scalar) (Proof, error) {
	if len(typeCommits) != len(blinds) || len(typeCommits) == 0 {
		return Proof{}, xfrerr.ErrParameter
	}
	proof := Proof{Diffs: make([]schnorrH, len(typeCommits)-1)}
	c0 := typeCommits[0]
	r0 := blinds[0]
	for i := 1; i < len(typeCommits); i++ {
		y := typeCommits[i].Sub(c0)
		x := blinds[i].Sub(r0)
		pf, err := proveKnowledgeH(rng, pp, y, x)
		if err != nil {
			return Proof{}, err
		}
		proof.Diffs[i-1] = pf
	}
	return proof, nil
}

// Verify checks an equality proof against the commitments it claims
// cover.
func Verify(pp *pedersen.PublicParams, typeCommits []algebra.G1, proof Proof) bool {
	if len(typeCommits) == 0 || len(proof.Diffs) != len(typeCommits)-1 {
		return false
	}
	c0 := typeCommits[0]
	for i := 1; i < len(typeCommits); i++ {
		y := typeCommits[i].Sub(c0)
		if !verifyKnowledgeH(pp, y, proof.Diffs[i-1]) {
			return false
		}
	}
	return true
}

// Instance bundles one body's asset-equality proof with the commitments
// it opens, for BatchVerify.
type Instance struct {
	TypeCommits []algebra.G1
	Proof       Proof
}

// BatchVerify checks many asset-equality instances pooled across bodies,
// per spec §4.2's batched content verification; the first invalid
// instance fails the whole batch.
func BatchVerify(pp *pedersen.PublicParams, instances []Instance) error {
	for _, inst := range instances {
		if !Verify(pp, inst.TypeCommits, inst.Proof) {
			return xfrerr.ErrVerifyConfidentialAsset
		}
	}
	return nil
}
