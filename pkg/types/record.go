package types

import (
	"github.com/ccoin/xfr/internal/algebra"
	"github.com/ccoin/xfr/internal/elgamal"
)

// BlindAssetRecord is the on-wire asset record: a public key plus an
// amount and asset type that are each independently either revealed or
// hidden behind commitments.
type BlindAssetRecord struct {
	PublicKey XfrPublicKey `cbor:"public_key"`
	Amount    XfrAmount    `cbor:"amount"`
	AssetType XfrAssetType `cbor:"asset_type"`
}

// OpenAssetRecord is the sender's view of a BlindAssetRecord: the record
// itself plus the cleartext values and blinding factors needed to open
// any commitments it carries.
type OpenAssetRecord struct {
	BlindRecord     BlindAssetRecord `cbor:"blind_record"`
	Amount          uint64           `cbor:"amount"`
	AssetType       AssetType        `cbor:"asset_type"`
	AmountBlindLow  algebra.Scalar   `cbor:"amount_blind_low"`
	AmountBlindHigh algebra.Scalar   `cbor:"amount_blind_high"`
	TypeBlind       algebra.Scalar   `cbor:"type_blind"`
}

// AssetTracerMemo is a per-tracer payload attached to a record. EncKey
// identifies the tracer addressed by this memo (the key find_tracing_memos
// matches against); AttrsEncKey is a second key used only for identity
// attribute ciphertexts, mirroring the source's separate
// record_data_dec_key / attrs_dec_key halves of a tracer's decryption
// key. A nil ciphertext field means that piece of data is not locked for
// this tracer and must be read from the record in the clear instead.
type AssetTracerMemo struct {
	EncKey         elgamal.PublicKey    `cbor:"enc_key"`
	AttrsEncKey    elgamal.PublicKey    `cbor:"attrs_enc_key"`
	LockAmount     *elgamal.Ciphertext  `cbor:"lock_amount"`
	LockAssetType  *elgamal.Ciphertext  `cbor:"lock_asset_type"`
	LockAttributes []elgamal.Ciphertext `cbor:"lock_attributes"`
}

// OwnerMemo is a recipient-directed encrypted payload opaque to the
// tracing subsystem.
type OwnerMemo struct {
	Blob []byte `cbor:"blob"`
}

// AssetRecord is an OpenAssetRecord plus the tracer memos, identity
// proofs, and owner memo attached at construction time. IdentityProofs
// are opaque: anonymous-credential internals are out of scope (spec §1).
type AssetRecord struct {
	Open           OpenAssetRecord   `cbor:"open"`
	TracerMemos    []AssetTracerMemo `cbor:"tracer_memos"`
	IdentityProofs [][]byte          `cbor:"identity_proofs"`
	OwnerMemo      *OwnerMemo        `cbor:"owner_memo"`
}
