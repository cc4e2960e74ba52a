package xfr

import (
	"testing"

	"github.com/ccoin/xfr/internal/multisig"
	"github.com/ccoin/xfr/internal/pedersen"
	"github.com/ccoin/xfr/pkg/types"
)

func TestClassify(t *testing.T) {
	pp := pedersen.DefaultPublicParams()
	var a, b types.AssetType
	a[0] = 1
	b[0] = 2

	signer := multisig.XfrKeyPair{}

	cases := []struct {
		name       string
		multiAsset bool
		confAmount bool
		confType   bool
		want       types.XfrType
	}{
		{"single_plain", false, false, false, types.NonConfidentialSingleAsset},
		{"single_conf_amount", false, true, false, types.ConfAmtNonConfTypeSingle},
		{"single_conf_type", false, false, true, types.ConfTypeNonConfAmtSingle},
		{"single_conf_all", false, true, true, types.ConfidentialSingleAsset},
		{"multi_plain", true, false, false, types.NonConfidentialMultiAsset},
		{"multi_conf_amount", true, true, false, types.ConfidentialMultiAsset},
		{"multi_conf_type", true, false, true, types.ConfidentialMultiAsset},
		{"multi_conf_all", true, true, true, types.ConfidentialMultiAsset},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			at1, at2 := a, a
			if c.multiAsset {
				at2 = b
			}
			r1 := newOAR(t, pp, signer, recordOpts{assetType: at1, amount: 10, confAmount: c.confAmount, confType: c.confType})
			r2 := newOAR(t, pp, signer, recordOpts{assetType: at2, amount: 10, confAmount: c.confAmount, confType: c.confType})
			got := Classify([]types.OpenAssetRecord{r1, r2})
			if got != c.want {
				t.Errorf("Classify() = %v, want %v", got, c.want)
			}
		})
	}
}
