// Package tracing implements the asset-tracing subsystem of spec §4.3:
// locating tracer memos attached to a note, decrypting them, and
// verifying that recovered plaintexts match expected values. It also
// hosts the EncEquality sigma protocol the tracing proof generator uses
// to bind a tracer ciphertext to the same value a record's commitment or
// cleartext field carries.
package tracing

import (
	"io"

	"github.com/ccoin/xfr/internal/algebra"
	"github.com/ccoin/xfr/internal/elgamal"
	"github.com/ccoin/xfr/internal/pedersen"
	"github.com/ccoin/xfr/pkg/types"
)

// ProveEncEquality proves that commit = Commit(value, blind) and
// ciphertext = Encrypt(value, pk; random) hide the same scalar, without
// revealing value, blind, or random. It is a generalized Schnorr proof
// of the linear relation described on types.EncEqualityProof.
func ProveEncEquality(rng io.Reader, pp *pedersen.PublicParams, pk elgamal.PublicKey, value, blind, random algebra.Scalar) (types.EncEqualityProof, algebra.G1, elgamal.Ciphertext, error) {
	rv, err := algebra.RandomScalar(rng)
	if err != nil {
		return types.EncEqualityProof{}, algebra.G1{}, elgamal.Ciphertext{}, err
	}
	rr, err := algebra.RandomScalar(rng)
	if err != nil {
		return types.EncEqualityProof{}, algebra.G1{}, elgamal.Ciphertext{}, err
	}
	rk, err := algebra.RandomScalar(rng)
	if err != nil {
		return types.EncEqualityProof{}, algebra.G1{}, elgamal.Ciphertext{}, err
	}

	commit := pp.Commit(value, blind)
	ct := elgamal.Ciphertext{
		C1: pp.G.Mul(random),
		C2: pp.G.Mul(value).Add(pk.Point.Mul(random)),
	}

	a1 := pp.G.Mul(rv).Add(pp.H.Mul(rr))
	a2 := pp.G.Mul(rk)
	a3 := pp.G.Mul(rv).Add(pk.Point.Mul(rk))

	c := algebra.ScalarFromHash(a1.Bytes(), a2.Bytes(), a3.Bytes(), commit.Bytes(), ct.C1.Bytes(), ct.C2.Bytes())
	sv := rv.Add(c.Mul(value))
	sr := rr.Add(c.Mul(blind))
	sk := rk.Add(c.Mul(random))

	proof := types.EncEqualityProof{A1: a1, A2: a2, A3: a3, Sv: sv, Sr: sr, Sk: sk}
	return proof, commit, ct, nil
}

// VerifyEncEquality checks an EncEqualityProof against the commitment
// and ciphertext it claims to bind.
func VerifyEncEquality(pp *pedersen.PublicParams, pk elgamal.PublicKey, commit algebra.G1, ct elgamal.Ciphertext, proof types.EncEqualityProof) bool {
	c := algebra.ScalarFromHash(proof.A1.Bytes(), proof.A2.Bytes(), proof.A3.Bytes(), commit.Bytes(), ct.C1.Bytes(), ct.C2.Bytes())

	lhs1 := pp.G.Mul(proof.Sv).Add(pp.H.Mul(proof.Sr))
	rhs1 := proof.A1.Add(commit.Mul(c))
	if !lhs1.Equal(rhs1) {
		return false
	}
	lhs2 := pp.G.Mul(proof.Sk)
	rhs2 := proof.A2.Add(ct.C1.Mul(c))
	if !lhs2.Equal(rhs2) {
		return false
	}
	lhs3 := pp.G.Mul(proof.Sv).Add(pk.Point.Mul(proof.Sk))
	rhs3 := proof.A3.Add(ct.C2.Mul(c))
	return lhs3.Equal(rhs3)
}
