package types

import (
	"github.com/ccoin/xfr/internal/algebra"
	"github.com/ccoin/xfr/internal/assetmix"
	"github.com/ccoin/xfr/internal/assetproof"
	"github.com/ccoin/xfr/internal/elgamal"
	"github.com/ccoin/xfr/internal/multisig"
	"github.com/ccoin/xfr/internal/rangeproof"
)

// XfrType enumerates the six confidentiality regimes a transfer can fall
// into, per spec §4.1's classifier decision table.
type XfrType int

const (
	NonConfidentialSingleAsset XfrType = iota
	ConfAmtNonConfTypeSingle
	ConfTypeNonConfAmtSingle
	ConfidentialSingleAsset
	NonConfidentialMultiAsset
	ConfidentialMultiAsset
)

func (t XfrType) String() string {
	switch t {
	case NonConfidentialSingleAsset:
		return "NonConfidential_SingleAsset"
	case ConfAmtNonConfTypeSingle:
		return "ConfAmt_NonConfType_Single"
	case ConfTypeNonConfAmtSingle:
		return "ConfType_NonConfAmt_Single"
	case ConfidentialSingleAsset:
		return "Confidential_SingleAsset"
	case NonConfidentialMultiAsset:
		return "NonConfidential_MultiAsset"
	case ConfidentialMultiAsset:
		return "Confidential_MultiAsset"
	default:
		return "Unknown"
	}
}

// AssetTypeAndAmountProofKind tags which of the five proof shapes a body
// carries.
type AssetTypeAndAmountProofKind int

const (
	ProofNone AssetTypeAndAmountProofKind = iota
	ProofConfAmount
	ProofConfAsset
	ProofConfAll
	ProofAssetMix
)

// AssetTypeAndAmountProof is the tagged union of proof shapes named in
// spec §4.2. Exactly the fields matching Kind are populated.
type AssetTypeAndAmountProof struct {
	Kind          AssetTypeAndAmountProofKind `cbor:"kind"`
	RangeProof    *rangeproof.Proof           `cbor:"range_proof"`
	AssetProof    *assetproof.Proof           `cbor:"asset_proof"`
	AssetMixProof *assetmix.Proof             `cbor:"asset_mix_proof"`
}

// EncEqualityProof proves a Pedersen commitment and an ElGamal ciphertext
// open to the same scalar, grounding the tracing proof generator's "the
// tracer ciphertexts commit to the same amount/type/identity as the
// record" obligation (spec §4.3). It is a generalized Schnorr proof of
// the linear relation K = v*G + r*H, C1 = k*G, C2 = v*G + k*PK for
// secret (v, r, k).
type EncEqualityProof struct {
	A1 algebra.G1     `cbor:"a1"`
	A2 algebra.G1     `cbor:"a2"`
	A3 algebra.G1     `cbor:"a3"`
	Sv algebra.Scalar `cbor:"sv"`
	Sr algebra.Scalar `cbor:"sr"`
	Sk algebra.Scalar `cbor:"sk"`
}

// TrackingProof bundles the per-memo proofs the tracing proof generator
// attaches to one record: that the memo's amount and asset-type
// ciphertexts commit to the record's true values. Either proof stays nil
// when the corresponding memo field is unlocked (readable in the clear,
// needing no proof). AttributeProofs is never populated: locked identity
// attributes carry no proof and are checked only by the tracer's own
// decryption.
type TrackingProof struct {
	AmountProof     *EncEqualityProof  `cbor:"amount_proof"`
	AssetTypeProof  *EncEqualityProof  `cbor:"asset_type_proof"`
	AttributeProofs []EncEqualityProof `cbor:"attribute_proofs"`
}

// AssetTrackingProof is the tracing half of XfrProofs: one list of
// per-memo TrackingProofs per input, then per output, index-aligned with
// XfrBody.AssetTracingMemos.
type AssetTrackingProof struct {
	InputProofs  [][]TrackingProof `cbor:"input_proofs"`
	OutputProofs [][]TrackingProof `cbor:"output_proofs"`
}

// XfrProofs is the full proof payload of a transfer body.
type XfrProofs struct {
	AssetTypeAndAmountProof AssetTypeAndAmountProof `cbor:"asset_type_and_amount_proof"`
	AssetTrackingProof      AssetTrackingProof       `cbor:"asset_tracking_proof"`
}

// XfrBody is the unsigned transfer body: inputs, outputs, the proofs
// binding them, and the memos attached to each record.
type XfrBody struct {
	Inputs            []BlindAssetRecord  `cbor:"inputs"`
	Outputs           []BlindAssetRecord  `cbor:"outputs"`
	Proofs            XfrProofs           `cbor:"proofs"`
	AssetTracingMemos [][]AssetTracerMemo `cbor:"asset_tracing_memos"`
	OwnersMemos       []*OwnerMemo        `cbor:"owners_memos"`
}

// XfrNote is a signed XfrBody, ready for transmission.
type XfrNote struct {
	Body     XfrBody              `cbor:"body"`
	Multisig multisig.XfrMultiSig `cbor:"multisig"`
}

// IdentityTracingPolicy names the credential commitment and attribute
// reveal map a record's identity proofs must satisfy. The underlying
// anonymous-credential scheme is out of scope (spec §1); this carries
// only the opaque commitment bytes and which attribute slots the policy
// requires proofs for.
type IdentityTracingPolicy struct {
	CredentialCommitment []byte `cbor:"credential_commitment"`
	RevealMap            []bool `cbor:"reveal_map"`
}

// TracingPolicy names one tracer addressed by a record, and whether the
// record's identity attributes are additionally locked for that tracer
// (a non-nil IdentityTracing). The attributes are encrypted under
// AttrsEncKey; nothing checks them against the credential commitment.
type TracingPolicy struct {
	TracerEncKey    elgamal.PublicKey      `cbor:"tracer_enc_key"`
	AttrsEncKey     elgamal.PublicKey      `cbor:"attrs_enc_key"`
	AssetTracing    bool                   `cbor:"asset_tracing"`
	IdentityTracing *IdentityTracingPolicy `cbor:"identity_tracing"`
}

// XfrNotePolicies holds the tracing policies for a note's inputs and
// outputs, aligned by index. A nil entry means that record carries no
// tracing policy. Owned, index-aligned storage per spec §9's guidance
// against borrowed references.
type XfrNotePolicies struct {
	Inputs  []*TracingPolicy `cbor:"inputs"`
	Outputs []*TracingPolicy `cbor:"outputs"`
}
