package xfr

import (
	"crypto/rand"
	"testing"

	"github.com/ccoin/xfr/internal/multisig"
	"github.com/ccoin/xfr/internal/pedersen"
	"github.com/ccoin/xfr/pkg/common"
	"github.com/ccoin/xfr/pkg/types"
)

// recordOpts configures newOAR's confidentiality and asset type.
type recordOpts struct {
	assetType  types.AssetType
	amount     uint64
	confAmount bool
	confType   bool
}

func newOAR(t *testing.T, pp *pedersen.PublicParams, signer multisig.XfrKeyPair, o recordOpts) types.OpenAssetRecord {
	t.Helper()
	lo, hi := common.SplitAmount(o.amount)

	oar := types.OpenAssetRecord{
		Amount:    o.amount,
		AssetType: o.assetType,
	}
	bar := types.BlindAssetRecord{PublicKey: signer.Public}

	if o.confAmount {
		blindLow, err := pedersen.RandomBlind(rand.Reader)
		if err != nil {
			t.Fatalf("RandomBlind failed: %v", err)
		}
		blindHigh, err := pedersen.RandomBlind(rand.Reader)
		if err != nil {
			t.Fatalf("RandomBlind failed: %v", err)
		}
		oar.AmountBlindLow = blindLow
		oar.AmountBlindHigh = blindHigh
		bar.Amount = types.ConfidentialAmount(
			pp.CommitUint64(uint64(lo), blindLow),
			pp.CommitUint64(uint64(hi), blindHigh),
		)
	} else {
		bar.Amount = types.NonConfidentialAmount(o.amount)
	}

	if o.confType {
		typeBlind, err := pedersen.RandomBlind(rand.Reader)
		if err != nil {
			t.Fatalf("RandomBlind failed: %v", err)
		}
		oar.TypeBlind = typeBlind
		bar.AssetType = types.ConfidentialAssetType(pp.CommitAssetType(o.assetType, typeBlind))
	} else {
		bar.AssetType = types.NonConfidentialAssetType(o.assetType)
	}

	oar.BlindRecord = bar
	return oar
}
