// Package xfr implements the transfer-note construction and
// verification engine: the Record Classifier, Proof Generator, Tracing
// Proof Generator, Signer, and Body Verifier components of spec §2.
package xfr

import (
	"github.com/ccoin/xfr/pkg/types"
)

// Classify maps the concatenation of input and output records to one of
// the six XfrType variants, per spec §4.1's decision table. records must
// be inputs followed by outputs, and must be non-empty.
func Classify(records []types.OpenAssetRecord) types.XfrType {
	first := records[0].AssetType
	multiAsset := false
	var allConf, amtOnlyConf, typeOnlyConf bool

	for _, r := range records {
		if r.AssetType != first {
			multiAsset = true
		}
		confAmt := r.BlindRecord.Amount.Confidential
		confType := r.BlindRecord.AssetType.Confidential
		switch {
		case confAmt && confType:
			allConf = true
		case confAmt:
			amtOnlyConf = true
		case confType:
			typeOnlyConf = true
		}
	}

	if multiAsset {
		if allConf || amtOnlyConf || typeOnlyConf {
			return types.ConfidentialMultiAsset
		}
		return types.NonConfidentialMultiAsset
	}
	if allConf {
		return types.ConfidentialSingleAsset
	}
	if amtOnlyConf && typeOnlyConf {
		return types.ConfidentialSingleAsset
	}
	if amtOnlyConf {
		return types.ConfAmtNonConfTypeSingle
	}
	if typeOnlyConf {
		return types.ConfTypeNonConfAmtSingle
	}
	return types.NonConfidentialSingleAsset
}
