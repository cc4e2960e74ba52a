package xfr

import (
	"io"

	"github.com/ccoin/xfr/internal/algebra"
	"github.com/ccoin/xfr/internal/assetmix"
	"github.com/ccoin/xfr/internal/assetproof"
	"github.com/ccoin/xfr/internal/pedersen"
	"github.com/ccoin/xfr/internal/rangeproof"
	"github.com/ccoin/xfr/pkg/common"
	"github.com/ccoin/xfr/pkg/types"
	"github.com/ccoin/xfr/pkg/xfrerr"
)

// scalar2Pow32 weights a high amount limb in the combined-amount
// reduction `low + 2^32*high`, per spec §4.2's mixing-proof tuple and
// §4.2's asset-mix verifier input preparation.
var scalar2Pow32 = algebra.NewScalarFromUint64(1 << 32)

var zeroScalar = algebra.NewScalarFromUint64(0)

// barAmountCommits returns a BAR's amount-limb commitments: the stored
// commitments if confidential, or zero-blind commitments to the
// cleartext limbs otherwise, per spec §4.2's "Asset-mix verifier input
// preparation" generalized to every proof path that needs a uniform
// commitment set regardless of confidentiality.
func barAmountCommits(pp *pedersen.PublicParams, bar types.BlindAssetRecord) (low, high algebra.G1) {
	if bar.Amount.Confidential {
		return bar.Amount.CommitLow, bar.Amount.CommitHigh
	}
	lo, hi := common.SplitAmount(bar.Amount.Amount)
	return pp.CommitZeroBlind(uint64(lo)), pp.CommitZeroBlind(uint64(hi))
}

// barTypeCommit is barAmountCommits' asset-type counterpart.
func barTypeCommit(pp *pedersen.PublicParams, bar types.BlindAssetRecord) algebra.G1 {
	if bar.AssetType.Confidential {
		return bar.AssetType.Commit
	}
	return pp.CommitAssetType(bar.AssetType.AssetType, zeroScalar)
}

// recordAmountOpenings is the prover's counterpart to barAmountCommits:
// the real limb openings for a confidential amount, or the cleartext
// limbs with a zero blind otherwise, so the resulting commitment always
// matches what the verifier independently derives from the BAR alone.
func recordAmountOpenings(r types.OpenAssetRecord) (low, high rangeproof.Opening) {
	lo, hi := common.SplitAmount(r.Amount)
	if r.BlindRecord.Amount.Confidential {
		return rangeproof.Opening{Value: lo, Blind: r.AmountBlindLow},
			rangeproof.Opening{Value: hi, Blind: r.AmountBlindHigh}
	}
	return rangeproof.Opening{Value: lo, Blind: zeroScalar},
		rangeproof.Opening{Value: hi, Blind: zeroScalar}
}

// recordTypeOpening is recordAmountOpenings' asset-type counterpart.
func recordTypeOpening(r types.OpenAssetRecord) algebra.Scalar {
	if r.BlindRecord.AssetType.Confidential {
		return r.TypeBlind
	}
	return zeroScalar
}

// combinedAmountCommitAndBlind reduces a record's two limb commitments
// (and the prover's matching blinds) to the single combined commitment
// and blind the asset-mixing proof operates on, per spec §4.2:
// combined_amount_blind = r_low + 2^32*r_high, and homomorphically
// combined_commit = commit_low + 2^32*commit_high.
func combinedAmountCommitAndBlind(pp *pedersen.PublicParams, r types.OpenAssetRecord) (algebra.G1, algebra.Scalar) {
	lowOpen, highOpen := recordAmountOpenings(r)
	lowCommit, highCommit := barAmountCommits(pp, r.BlindRecord)
	commit := lowCommit.Add(highCommit.Mul(scalar2Pow32))
	blind := lowOpen.Blind.Add(highOpen.Blind.Mul(scalar2Pow32))
	return commit, blind
}

// buildRangeProof proves every input and output record's amount limbs
// are in range, covering non-confidential records with a zero-blind
// synthetic opening so the commitment set is uniform across the whole
// transfer.
func buildRangeProof(rng io.Reader, pp *pedersen.PublicParams, inputs, outputs []types.OpenAssetRecord) (rangeproof.Proof, error) {
	lows := make([]rangeproof.Opening, 0, len(inputs)+len(outputs))
	highs := make([]rangeproof.Opening, 0, len(inputs)+len(outputs))
	for _, r := range inputs {
		lo, hi := recordAmountOpenings(r)
		lows = append(lows, lo)
		highs = append(highs, hi)
	}
	for _, r := range outputs {
		lo, hi := recordAmountOpenings(r)
		lows = append(lows, lo)
		highs = append(highs, hi)
	}
	return rangeproof.RangeProve(rng, pp, lows, highs)
}

// rangeProofCommits mirrors buildRangeProof on the verifier side: the
// low/high commitment vectors a Proof must be checked against.
func rangeProofCommits(pp *pedersen.PublicParams, inputs, outputs []types.BlindAssetRecord) (lows, highs []algebra.G1) {
	lows = make([]algebra.G1, 0, len(inputs)+len(outputs))
	highs = make([]algebra.G1, 0, len(inputs)+len(outputs))
	for _, bar := range inputs {
		lo, hi := barAmountCommits(pp, bar)
		lows = append(lows, lo)
		highs = append(highs, hi)
	}
	for _, bar := range outputs {
		lo, hi := barAmountCommits(pp, bar)
		lows = append(lows, lo)
		highs = append(highs, hi)
	}
	return
}

// buildAssetProof proves every input and output record's asset type is
// equal, covering non-confidential records with a zero-blind synthetic
// commitment. Callers must already have confirmed all records share one
// cleartext asset type (an honest prover never calls this otherwise).
func buildAssetProof(rng io.Reader, pp *pedersen.PublicParams, inputs, outputs []types.OpenAssetRecord) (assetproof.Proof, error) {
	typeCommits := make([]algebra.G1, 0, len(inputs)+len(outputs))
	blinds := make([]algebra.Scalar, 0, len(inputs)+len(outputs))
	for _, r := range inputs {
		typeCommits = append(typeCommits, barTypeCommit(pp, r.BlindRecord))
		blinds = append(blinds, recordTypeOpening(r))
	}
	for _, r := range outputs {
		typeCommits = append(typeCommits, barTypeCommit(pp, r.BlindRecord))
		blinds = append(blinds, recordTypeOpening(r))
	}
	return assetproof.Prove(rng, pp, typeCommits, blinds)
}

// assetProofCommits mirrors buildAssetProof on the verifier side.
func assetProofCommits(pp *pedersen.PublicParams, inputs, outputs []types.BlindAssetRecord) []algebra.G1 {
	typeCommits := make([]algebra.G1, 0, len(inputs)+len(outputs))
	for _, bar := range inputs {
		typeCommits = append(typeCommits, barTypeCommit(pp, bar))
	}
	for _, bar := range outputs {
		typeCommits = append(typeCommits, barTypeCommit(pp, bar))
	}
	return typeCommits
}

// toMixRecord reduces an OpenAssetRecord to the combined-amount tuple
// package assetmix operates on, including the prover's cleartext asset
// type so Prove can group records internally without that grouping ever
// crossing into the proof it returns.
func toMixRecord(pp *pedersen.PublicParams, r types.OpenAssetRecord) assetmix.Record {
	amountCommit, amountBlind := combinedAmountCommitAndBlind(pp, r)
	return assetmix.Record{
		AssetType:    r.AssetType,
		TypeCommit:   barTypeCommit(pp, r.BlindRecord),
		TypeBlind:    recordTypeOpening(r),
		AmountCommit: amountCommit,
		AmountBlind:  amountBlind,
		Amount:       r.Amount,
	}
}

// buildAssetMixProof builds the asset-mixing proof for a multi-asset
// confidential transfer, per spec §4.2.
func buildAssetMixProof(rng io.Reader, pp *pedersen.PublicParams, inputs, outputs []types.OpenAssetRecord) (assetmix.Proof, error) {
	mixInputs := make([]assetmix.Record, len(inputs))
	for i, r := range inputs {
		mixInputs[i] = toMixRecord(pp, r)
	}
	mixOutputs := make([]assetmix.Record, len(outputs))
	for i, r := range outputs {
		mixOutputs[i] = toMixRecord(pp, r)
	}
	return assetmix.Prove(rng, pp, mixInputs, mixOutputs)
}

// mixCommits mirrors toMixRecord on the verifier side, building the
// combined commitment pair a BAR reduces to without any blinding
// knowledge.
func mixCommits(pp *pedersen.PublicParams, bars []types.BlindAssetRecord) []assetmix.Record {
	out := make([]assetmix.Record, len(bars))
	for i, bar := range bars {
		lowCommit, highCommit := barAmountCommits(pp, bar)
		out[i] = assetmix.Record{
			TypeCommit:   barTypeCommit(pp, bar),
			AmountCommit: lowCommit.Add(highCommit.Mul(scalar2Pow32)),
		}
	}
	return out
}

// BuildAssetTypeAndAmountProof constructs the proof variant appropriate
// to xfrType, per spec §4.2's single-asset and multi-asset dispatch
// tables. Callers must have already run the classifier and
// CheckAssetAmount on inputs and outputs.
func BuildAssetTypeAndAmountProof(rng io.Reader, pp *pedersen.PublicParams, xfrType types.XfrType, inputs, outputs []types.OpenAssetRecord) (types.AssetTypeAndAmountProof, error) {
	switch xfrType {
	case types.NonConfidentialSingleAsset, types.NonConfidentialMultiAsset:
		return types.AssetTypeAndAmountProof{Kind: types.ProofNone}, nil

	case types.ConfAmtNonConfTypeSingle:
		rp, err := buildRangeProof(rng, pp, inputs, outputs)
		if err != nil {
			return types.AssetTypeAndAmountProof{}, err
		}
		return types.AssetTypeAndAmountProof{Kind: types.ProofConfAmount, RangeProof: &rp}, nil

	case types.ConfTypeNonConfAmtSingle:
		ap, err := buildAssetProof(rng, pp, inputs, outputs)
		if err != nil {
			return types.AssetTypeAndAmountProof{}, err
		}
		return types.AssetTypeAndAmountProof{Kind: types.ProofConfAsset, AssetProof: &ap}, nil

	case types.ConfidentialSingleAsset:
		rp, err := buildRangeProof(rng, pp, inputs, outputs)
		if err != nil {
			return types.AssetTypeAndAmountProof{}, err
		}
		ap, err := buildAssetProof(rng, pp, inputs, outputs)
		if err != nil {
			return types.AssetTypeAndAmountProof{}, err
		}
		return types.AssetTypeAndAmountProof{Kind: types.ProofConfAll, RangeProof: &rp, AssetProof: &ap}, nil

	case types.ConfidentialMultiAsset:
		amp, err := buildAssetMixProof(rng, pp, inputs, outputs)
		if err != nil {
			return types.AssetTypeAndAmountProof{}, err
		}
		return types.AssetTypeAndAmountProof{Kind: types.ProofAssetMix, AssetMixProof: &amp}, nil

	default:
		return types.AssetTypeAndAmountProof{}, xfrerr.ErrCreationAssetAmount
	}
}
