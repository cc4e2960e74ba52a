package xfr

import (
	"math/big"

	"github.com/ccoin/xfr/internal/multisig"
	"github.com/ccoin/xfr/pkg/common"
	"github.com/ccoin/xfr/pkg/types"
	"github.com/ccoin/xfr/pkg/xfrerr"
)

// CheckKeys verifies that every input OAR's public key matches the
// corresponding key pair's public key, per spec §4.2.
func CheckKeys(inputs []types.OpenAssetRecord, keyPairs []multisig.XfrKeyPair) error {
	if len(inputs) != len(keyPairs) {
		return xfrerr.ErrParameter
	}
	for i, r := range inputs {
		if !r.BlindRecord.PublicKey.Equal(keyPairs[i].Public) {
			return xfrerr.ErrParameter
		}
	}
	return nil
}

// CheckAssetAmount groups inputs and outputs by asset type and requires
// every group's signed 128-bit balance (inputs minus outputs) to be
// non-negative, per spec §4.2.
func CheckAssetAmount(inputs, outputs []types.OpenAssetRecord) error {
	type group struct {
		in, out []*big.Int
	}
	groups := make(map[types.AssetType]*group)
	get := func(t types.AssetType) *group {
		g, ok := groups[t]
		if !ok {
			g = &group{}
			groups[t] = g
		}
		return g
	}
	for _, r := range inputs {
		g := get(r.AssetType)
		g.in = append(g.in, new(big.Int).SetUint64(r.Amount))
	}
	for _, r := range outputs {
		g := get(r.AssetType)
		g.out = append(g.out, new(big.Int).SetUint64(r.Amount))
	}
	for _, g := range groups {
		balance := new(big.Int).Sub(common.SafeSumI128(g.in...), common.SafeSumI128(g.out...))
		if balance.Sign() < 0 {
			return xfrerr.ErrCreationAssetAmount
		}
	}
	return nil
}
