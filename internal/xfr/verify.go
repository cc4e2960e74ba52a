package xfr

import (
	"math/big"

	"github.com/ccoin/xfr/internal/assetmix"
	"github.com/ccoin/xfr/internal/assetproof"
	"github.com/ccoin/xfr/internal/pedersen"
	"github.com/ccoin/xfr/internal/rangeproof"
	"github.com/ccoin/xfr/pkg/common"
	"github.com/ccoin/xfr/pkg/types"
	"github.com/ccoin/xfr/pkg/xfrerr"
)

// verifyPlainAmounts checks Σ inputs ≥ Σ outputs (u128 promoted) over
// revealed amounts, with no grouping by asset type: the single-asset
// ConfAsset path this guards already has a uniform asset type.
func verifyPlainAmounts(inputs, outputs []types.BlindAssetRecord) error {
	inVals := make([]*big.Int, len(inputs))
	for i, bar := range inputs {
		if bar.Amount.Confidential {
			return xfrerr.ErrInconsistentStructure
		}
		inVals[i] = new(big.Int).SetUint64(bar.Amount.Amount)
	}
	outVals := make([]*big.Int, len(outputs))
	for i, bar := range outputs {
		if bar.Amount.Confidential {
			return xfrerr.ErrInconsistentStructure
		}
		outVals[i] = new(big.Int).SetUint64(bar.Amount.Amount)
	}
	balance := new(big.Int).Sub(common.SafeSumI128(inVals...), common.SafeSumI128(outVals...))
	if balance.Sign() < 0 {
		return xfrerr.ErrVerifyAssetAmount
	}
	return nil
}

// verifyPlainAsset checks that every revealed asset type in records
// agrees with the first, guarding the ConfAmount path's implicit
// single-asset assumption.
func verifyPlainAsset(records []types.BlindAssetRecord) error {
	if len(records) == 0 {
		return nil
	}
	if records[0].AssetType.Confidential {
		return xfrerr.ErrInconsistentStructure
	}
	first := records[0].AssetType.AssetType
	for _, bar := range records {
		if bar.AssetType.Confidential || bar.AssetType.AssetType != first {
			return xfrerr.ErrVerifyAssetAmount
		}
	}
	return nil
}

// verifyPlainAssetMix runs check_asset_amount's grouped signed-sum test
// against fully revealed BAR amounts, guarding the NoProof multi-asset
// path.
func verifyPlainAssetMix(inputs, outputs []types.BlindAssetRecord) error {
	type group struct{ in, out []*big.Int }
	groups := make(map[types.AssetType]*group)
	get := func(t types.AssetType) *group {
		g, ok := groups[t]
		if !ok {
			g = &group{}
			groups[t] = g
		}
		return g
	}
	for _, bar := range inputs {
		if bar.Amount.Confidential || bar.AssetType.Confidential {
			return xfrerr.ErrInconsistentStructure
		}
		g := get(bar.AssetType.AssetType)
		g.in = append(g.in, new(big.Int).SetUint64(bar.Amount.Amount))
	}
	for _, bar := range outputs {
		if bar.Amount.Confidential || bar.AssetType.Confidential {
			return xfrerr.ErrInconsistentStructure
		}
		g := get(bar.AssetType.AssetType)
		g.out = append(g.out, new(big.Int).SetUint64(bar.Amount.Amount))
	}
	for _, g := range groups {
		balance := new(big.Int).Sub(common.SafeSumI128(g.in...), common.SafeSumI128(g.out...))
		if balance.Sign() < 0 {
			return xfrerr.ErrVerifyAssetAmount
		}
	}
	return nil
}

// VerifyXfrBodyContent checks the asset_type_and_amount_proof of one
// body, per spec §4.2. It is the single-body specialization of
// BatchVerifyXfrBodyContent.
func VerifyXfrBodyContent(pp *pedersen.PublicParams, body *types.XfrBody) error {
	return BatchVerifyXfrBodyContent(pp, []*types.XfrBody{body})
}

// BatchVerifyXfrBodyContent implements batch_verify_xfr_body_asset_records:
// it partitions every body's asset_type_and_amount_proof into the three
// proof-kind pools (range, asset-equality, asset-mix), runs the
// non-proof plain-path checks immediately, then batch-verifies each
// pool once across all bodies.
func BatchVerifyXfrBodyContent(pp *pedersen.PublicParams, bodies []*types.XfrBody) error {
	var rangeInstances []rangeproof.Instance
	var assetInstances []assetproof.Instance
	var mixInstances []assetmix.Instance

	for _, body := range bodies {
		proof := body.Proofs.AssetTypeAndAmountProof
		switch proof.Kind {
		case types.ProofNone:
			if len(body.Inputs) > 0 {
				multiAsset := false
				first := body.Inputs[0].AssetType.AssetType
				for _, bar := range append(append([]types.BlindAssetRecord{}, body.Inputs...), body.Outputs...) {
					if bar.AssetType.AssetType != first {
						multiAsset = true
						break
					}
				}
				if multiAsset {
					if err := verifyPlainAssetMix(body.Inputs, body.Outputs); err != nil {
						return err
					}
				}
				// Pure single-asset NoProof needs no further check: the
				// balance was already enforced at creation and nothing
				// here is forgeable without a proof to carry it.
			}

		case types.ProofConfAmount:
			if proof.RangeProof == nil {
				return xfrerr.ErrInconsistentStructure
			}
			if err := verifyPlainAsset(append(append([]types.BlindAssetRecord{}, body.Inputs...), body.Outputs...)); err != nil {
				return err
			}
			lows, highs := rangeProofCommits(pp, body.Inputs, body.Outputs)
			rangeInstances = append(rangeInstances, rangeproof.Instance{CommitsLow: lows, CommitsHigh: highs, Proof: *proof.RangeProof})

		case types.ProofConfAsset:
			if proof.AssetProof == nil {
				return xfrerr.ErrInconsistentStructure
			}
			if err := verifyPlainAmounts(body.Inputs, body.Outputs); err != nil {
				return err
			}
			typeCommits := assetProofCommits(pp, body.Inputs, body.Outputs)
			assetInstances = append(assetInstances, assetproof.Instance{TypeCommits: typeCommits, Proof: *proof.AssetProof})

		case types.ProofConfAll:
			if proof.RangeProof == nil || proof.AssetProof == nil {
				return xfrerr.ErrInconsistentStructure
			}
			lows, highs := rangeProofCommits(pp, body.Inputs, body.Outputs)
			rangeInstances = append(rangeInstances, rangeproof.Instance{CommitsLow: lows, CommitsHigh: highs, Proof: *proof.RangeProof})
			typeCommits := assetProofCommits(pp, body.Inputs, body.Outputs)
			assetInstances = append(assetInstances, assetproof.Instance{TypeCommits: typeCommits, Proof: *proof.AssetProof})

		case types.ProofAssetMix:
			if proof.AssetMixProof == nil {
				return xfrerr.ErrInconsistentStructure
			}
			mixInputs := mixCommits(pp, body.Inputs)
			mixOutputs := mixCommits(pp, body.Outputs)
			mixInstances = append(mixInstances, assetmix.Instance{Inputs: mixInputs, Outputs: mixOutputs, Proof: *proof.AssetMixProof})

		default:
			return xfrerr.ErrInconsistentStructure
		}
	}

	if err := rangeproof.BatchVerify(pp, rangeInstances); err != nil {
		return err
	}
	if err := assetproof.BatchVerify(pp, assetInstances); err != nil {
		return err
	}
	if err := assetmix.BatchVerify(pp, mixInstances); err != nil {
		return err
	}
	return nil
}
