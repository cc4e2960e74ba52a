// Package pedersen implements the scalar commitment module described in
// spec §2 as an external collaborator ("C"): commitments to amounts
// (split as two 32-bit limbs) and to asset types.
package pedersen

import (
	"io"

	"github.com/ccoin/xfr/internal/algebra"
)

// PublicParams groups the Pedersen generators shared by every commitment
// in the system. It is passed by pointer so verification call sites may
// reuse it without recomputing generators, per spec §5.
type PublicParams struct {
	G algebra.G1 // value generator
	H algebra.G1 // blinding generator, no known discrete-log relation to G
}

// DefaultPublicParams exposes the standard generators: the BLS12-381 G1
// base point for G, and a hash-derived point for H, following the
// derivation shape of the teacher's InitializeGenerators but with a real
// hash-to-scalar instead of a toy XOR.
func DefaultPublicParams() *PublicParams {
	return &PublicParams{
		G: algebra.G1Base(),
		H: algebra.G1FromHash("CCOIN_XFR_PEDERSEN_H"),
	}
}

// Commit computes C = value*G + blind*H.
func (pp *PublicParams) Commit(value, blind algebra.Scalar) algebra.G1 {
	return pp.G.Mul(value).Add(pp.H.Mul(blind))
}

// CommitUint64 commits a plain u64 value (used for amount limbs).
func (pp *PublicParams) CommitUint64(value uint64, blind algebra.Scalar) algebra.G1 {
	return pp.Commit(algebra.NewScalarFromUint64(value), blind)
}

// CommitZeroBlind commits a plain u64 value with a zero blinding factor,
// used when preparing asset-mix verifier input for non-confidential
// (revealed) amount limbs, per spec §4.2. Revealed asset types go through
// CommitAssetType with a zero blind instead.
func (pp *PublicParams) CommitZeroBlind(value uint64) algebra.G1 {
	return pp.CommitUint64(value, algebra.NewScalarFromUint64(0))
}

// CommitAssetType commits the 16-byte asset type identifier interpreted
// as a 128-bit little-endian scalar, per spec §3.
func (pp *PublicParams) CommitAssetType(assetType [16]byte, blind algebra.Scalar) algebra.G1 {
	return pp.Commit(algebra.AssetTypeToScalar(assetType), blind)
}

// Verify reports whether commitment opens to (value, blind) under pp.
func (pp *PublicParams) Verify(commitment algebra.G1, value, blind algebra.Scalar) bool {
	return commitment.Equal(pp.Commit(value, blind))
}

// RandomBlind draws a blinding factor from rng.
func RandomBlind(rng io.Reader) (algebra.Scalar, error) {
	return algebra.RandomScalar(rng)
}
