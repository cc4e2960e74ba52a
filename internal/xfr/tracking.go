package xfr

import (
	"io"

	"github.com/ccoin/xfr/internal/algebra"
	"github.com/ccoin/xfr/internal/elgamal"
	"github.com/ccoin/xfr/internal/pedersen"
	"github.com/ccoin/xfr/internal/tracing"
	"github.com/ccoin/xfr/pkg/types"
	"github.com/ccoin/xfr/pkg/xfrerr"
)

// barCombinedAmountCommit reduces a BAR's two limb commitments to the
// single full-amount commitment the tracing proof generator binds
// tracer ciphertexts to, mirroring combinedAmountCommitAndBlind on the
// verifier side (no blinding knowledge required).
func barCombinedAmountCommit(pp *pedersen.PublicParams, bar types.BlindAssetRecord) algebra.G1 {
	low, high := barAmountCommits(pp, bar)
	return low.Add(high.Mul(scalar2Pow32))
}

// buildRecordTracking constructs the tracer memo and binding proofs for
// one record under one tracing policy, per spec §4.3's tracing proof
// generator obligation. Identity attributes are locked for the tracer
// but carry no EncEquality proof: unlike amount and asset type, they are
// not independently committed anywhere else in the body for a
// third-party verifier to bind against, so their only check is the
// tracer's own decryption at extraction time (spec §4.3's
// verify_identity_attributes).
func buildRecordTracking(rng io.Reader, pp *pedersen.PublicParams, r types.OpenAssetRecord, policy *types.TracingPolicy, attrs []uint32) (types.AssetTracerMemo, types.TrackingProof, error) {
	memo := types.AssetTracerMemo{EncKey: policy.TracerEncKey, AttrsEncKey: policy.AttrsEncKey}
	var tp types.TrackingProof

	if policy.AssetTracing {
		amountScalar := algebra.NewScalarFromUint64(r.Amount)
		_, combinedBlind := combinedAmountCommitAndBlind(pp, r)
		randAmt, err := algebra.RandomScalar(rng)
		if err != nil {
			return types.AssetTracerMemo{}, types.TrackingProof{}, err
		}
		ampProof, _, amtCt, err := tracing.ProveEncEquality(rng, pp, policy.TracerEncKey, amountScalar, combinedBlind, randAmt)
		if err != nil {
			return types.AssetTracerMemo{}, types.TrackingProof{}, err
		}
		memo.LockAmount = &amtCt
		tp.AmountProof = &ampProof

		typeScalar := algebra.AssetTypeToScalar(r.AssetType)
		typeBlind := recordTypeOpening(r)
		randType, err := algebra.RandomScalar(rng)
		if err != nil {
			return types.AssetTracerMemo{}, types.TrackingProof{}, err
		}
		typeProof, _, typeCt, err := tracing.ProveEncEquality(rng, pp, policy.TracerEncKey, typeScalar, typeBlind, randType)
		if err != nil {
			return types.AssetTracerMemo{}, types.TrackingProof{}, err
		}
		memo.LockAssetType = &typeCt
		tp.AssetTypeProof = &typeProof
	}

	if policy.IdentityTracing != nil && len(attrs) > 0 {
		memo.LockAttributes = make([]elgamal.Ciphertext, len(attrs))
		for i, a := range attrs {
			ct, err := elgamal.EncryptUint64(rng, policy.AttrsEncKey, uint64(a))
			if err != nil {
				return types.AssetTracerMemo{}, types.TrackingProof{}, err
			}
			memo.LockAttributes[i] = ct
		}
	}

	return memo, tp, nil
}

// verifyRecordTracking checks one record's tracer memo and binding
// proofs against its policy, per spec §4.2 step 2
// (batch_verify_tracer_tracking_proof). A nil policy means the record
// carries no tracing obligation and is skipped.
func verifyRecordTracking(pp *pedersen.PublicParams, bar types.BlindAssetRecord, policy *types.TracingPolicy, memos []types.AssetTracerMemo, proofs []types.TrackingProof) error {
	if policy == nil {
		return nil
	}
	if len(memos) != 1 || len(proofs) != 1 {
		return xfrerr.ErrInconsistentStructure
	}
	memo := memos[0]
	tp := proofs[0]
	if !memo.EncKey.Point.Equal(policy.TracerEncKey.Point) || !memo.AttrsEncKey.Point.Equal(policy.AttrsEncKey.Point) {
		return xfrerr.ErrInconsistentStructure
	}

	if policy.AssetTracing {
		if memo.LockAmount == nil || tp.AmountProof == nil {
			return xfrerr.ErrInconsistentStructure
		}
		amountCommit := barCombinedAmountCommit(pp, bar)
		if !tracing.VerifyEncEquality(pp, policy.TracerEncKey, amountCommit, *memo.LockAmount, *tp.AmountProof) {
			return xfrerr.ErrVerifyTracking
		}

		if memo.LockAssetType == nil || tp.AssetTypeProof == nil {
			return xfrerr.ErrInconsistentStructure
		}
		typeCommit := barTypeCommit(pp, bar)
		if !tracing.VerifyEncEquality(pp, policy.TracerEncKey, typeCommit, *memo.LockAssetType, *tp.AssetTypeProof) {
			return xfrerr.ErrVerifyTracking
		}
	}

	return nil
}

// BatchVerifyTrackingProofs checks every input and output record's
// tracer memos against the note's policies, per spec §4.2's
// verify_xfr_body step 2.
func BatchVerifyTrackingProofs(pp *pedersen.PublicParams, body *types.XfrBody, policies *types.XfrNotePolicies) error {
	if policies == nil {
		return nil
	}
	if len(body.AssetTracingMemos) != len(body.Inputs)+len(body.Outputs) {
		return xfrerr.ErrInconsistentStructure
	}

	for i, bar := range body.Inputs {
		var policy *types.TracingPolicy
		if i < len(policies.Inputs) {
			policy = policies.Inputs[i]
		}
		var tp []types.TrackingProof
		if i < len(body.Proofs.AssetTrackingProof.InputProofs) {
			tp = body.Proofs.AssetTrackingProof.InputProofs[i]
		}
		if err := verifyRecordTracking(pp, bar, policy, body.AssetTracingMemos[i], tp); err != nil {
			return err
		}
	}
	for i, bar := range body.Outputs {
		var policy *types.TracingPolicy
		if i < len(policies.Outputs) {
			policy = policies.Outputs[i]
		}
		var tp []types.TrackingProof
		if i < len(body.Proofs.AssetTrackingProof.OutputProofs) {
			tp = body.Proofs.AssetTrackingProof.OutputProofs[i]
		}
		if err := verifyRecordTracking(pp, bar, policy, body.AssetTracingMemos[len(body.Inputs)+i], tp); err != nil {
			return err
		}
	}
	return nil
}
