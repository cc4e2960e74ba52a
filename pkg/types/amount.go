// Package types defines the on-wire and sender-side data model of the
// confidential transfer core: blind and open asset records, tracer
// memos, and the transfer body/note that wraps them.
package types

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/ccoin/xfr/internal/algebra"
	"github.com/ccoin/xfr/internal/multisig"
	"github.com/ccoin/xfr/pkg/xfrerr"
)

// AssetType is an opaque 16-byte asset identifier, interpreted as a
// 128-bit little-endian scalar when committed.
type AssetType [16]byte

// MarshalCBOR encodes the asset type as a canonical CBOR byte string
// rather than the default array-of-integers an array type would get.
func (a AssetType) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(a[:])
}

// UnmarshalCBOR decodes the inverse of MarshalCBOR.
func (a *AssetType) UnmarshalCBOR(data []byte) error {
	var b []byte
	if err := cbor.Unmarshal(data, &b); err != nil {
		return err
	}
	if len(b) != len(a) {
		return xfrerr.ErrInconsistentStructure
	}
	copy(a[:], b)
	return nil
}

// XfrPublicKey is the public key space shared by commitments, ElGamal
// tracer keys, and multisig signers.
type XfrPublicKey = multisig.XfrPublicKey

// XfrAmount is a BlindAssetRecord's amount field: either revealed in the
// clear, or hidden behind commitments to its two 32-bit limbs.
type XfrAmount struct {
	Confidential bool       `cbor:"confidential"`
	CommitLow    algebra.G1 `cbor:"commit_low"`
	CommitHigh   algebra.G1 `cbor:"commit_high"`
	Amount       uint64     `cbor:"amount"` // meaningful only when !Confidential
}

// NonConfidentialAmount builds a revealed XfrAmount.
func NonConfidentialAmount(v uint64) XfrAmount {
	return XfrAmount{Amount: v}
}

// ConfidentialAmount builds a hidden XfrAmount from its limb commitments.
func ConfidentialAmount(low, high algebra.G1) XfrAmount {
	return XfrAmount{Confidential: true, CommitLow: low, CommitHigh: high}
}

// XfrAssetType is a BlindAssetRecord's asset-type field: either revealed,
// or hidden behind a single commitment.
type XfrAssetType struct {
	Confidential bool       `cbor:"confidential"`
	Commit       algebra.G1 `cbor:"commit"`
	AssetType    AssetType  `cbor:"asset_type"` // meaningful only when !Confidential
}

// NonConfidentialAssetType builds a revealed XfrAssetType.
func NonConfidentialAssetType(t AssetType) XfrAssetType {
	return XfrAssetType{AssetType: t}
}

// ConfidentialAssetType builds a hidden XfrAssetType from its commitment.
func ConfidentialAssetType(c algebra.G1) XfrAssetType {
	return XfrAssetType{Confidential: true, Commit: c}
}
