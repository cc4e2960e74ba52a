package xfr

import (
	"crypto/rand"
	"testing"

	"github.com/ccoin/xfr/internal/multisig"
	"github.com/ccoin/xfr/internal/pedersen"
	"github.com/ccoin/xfr/pkg/types"
)

func TestCheckKeysAcceptsMatchingOrder(t *testing.T) {
	pp := pedersen.DefaultPublicParams()
	signer, err := multisig.GenKeyPair(rand.Reader)
	if err != nil {
		t.Fatalf("GenKeyPair failed: %v", err)
	}
	var at types.AssetType
	at[0] = 1
	oar := newOAR(t, pp, signer, recordOpts{assetType: at, amount: 10})
	if err := CheckKeys([]types.OpenAssetRecord{oar}, []multisig.XfrKeyPair{signer}); err != nil {
		t.Errorf("CheckKeys should accept matching keys, got: %v", err)
	}
}

func TestCheckKeysRejectsMismatch(t *testing.T) {
	pp := pedersen.DefaultPublicParams()
	signer, _ := multisig.GenKeyPair(rand.Reader)
	other, _ := multisig.GenKeyPair(rand.Reader)
	var at types.AssetType
	at[0] = 1
	oar := newOAR(t, pp, signer, recordOpts{assetType: at, amount: 10})
	if err := CheckKeys([]types.OpenAssetRecord{oar}, []multisig.XfrKeyPair{other}); err == nil {
		t.Errorf("CheckKeys should reject a record whose public key doesn't match its key pair")
	}
}

func TestCheckAssetAmountBalances(t *testing.T) {
	pp := pedersen.DefaultPublicParams()
	signer, _ := multisig.GenKeyPair(rand.Reader)
	var at types.AssetType
	at[0] = 1
	inputs := []types.OpenAssetRecord{newOAR(t, pp, signer, recordOpts{assetType: at, amount: 100})}
	outputs := []types.OpenAssetRecord{newOAR(t, pp, signer, recordOpts{assetType: at, amount: 60})}
	if err := CheckAssetAmount(inputs, outputs); err != nil {
		t.Errorf("CheckAssetAmount should accept a balanced transfer, got: %v", err)
	}
}

func TestCheckAssetAmountRejectsOverspend(t *testing.T) {
	pp := pedersen.DefaultPublicParams()
	signer, _ := multisig.GenKeyPair(rand.Reader)
	var at types.AssetType
	at[0] = 1
	inputs := []types.OpenAssetRecord{newOAR(t, pp, signer, recordOpts{assetType: at, amount: 50})}
	outputs := []types.OpenAssetRecord{newOAR(t, pp, signer, recordOpts{assetType: at, amount: 60})}
	if err := CheckAssetAmount(inputs, outputs); err == nil {
		t.Errorf("CheckAssetAmount should reject outputs exceeding inputs for one asset type")
	}
}

func TestCheckAssetAmountTracksAssetTypesIndependently(t *testing.T) {
	pp := pedersen.DefaultPublicParams()
	signer, _ := multisig.GenKeyPair(rand.Reader)
	var a, b types.AssetType
	a[0] = 1
	b[0] = 2
	inputs := []types.OpenAssetRecord{
		newOAR(t, pp, signer, recordOpts{assetType: a, amount: 10}),
		newOAR(t, pp, signer, recordOpts{assetType: b, amount: 5}),
	}
	outputs := []types.OpenAssetRecord{
		newOAR(t, pp, signer, recordOpts{assetType: a, amount: 10}),
		newOAR(t, pp, signer, recordOpts{assetType: b, amount: 10}),
	}
	if err := CheckAssetAmount(inputs, outputs); err == nil {
		t.Errorf("CheckAssetAmount should reject an overspend isolated to one asset type even when another balances")
	}
}
