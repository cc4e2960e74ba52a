package xfr

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/ccoin/xfr/internal/canon"
	"github.com/ccoin/xfr/internal/multisig"
	"github.com/ccoin/xfr/internal/pedersen"
	"github.com/ccoin/xfr/pkg/types"
	"github.com/ccoin/xfr/pkg/xfrerr"
)

// Engine hosts the transfer-note construction and verification pipeline
// of spec §2: classifier, proof generator, tracing proof generator,
// signer, and body verifier, all sharing one set of Pedersen parameters.
type Engine struct {
	pp     *pedersen.PublicParams
	logger *zap.Logger
}

// NewEngine builds an Engine. A nil pp defaults to
// pedersen.DefaultPublicParams(); a nil logger defaults to zap.NewNop(),
// matching the teacher's functional-struct-default idiom.
func NewEngine(pp *pedersen.PublicParams, logger *zap.Logger) *Engine {
	if pp == nil {
		pp = pedersen.DefaultPublicParams()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{pp: pp, logger: logger}
}

// GenParams bundles gen_xfr_body/gen_xfr_note's inputs. InputAttrs and
// OutputAttrs are index-aligned with Inputs/Outputs and only consulted
// for records whose policy carries IdentityTracing; OwnerMemos is
// index-aligned with Outputs and may be left nil.
type GenParams struct {
	Inputs      []types.OpenAssetRecord
	Outputs     []types.OpenAssetRecord
	KeyPairs    []multisig.XfrKeyPair
	Policies    *types.XfrNotePolicies
	InputAttrs  [][]uint32
	OutputAttrs [][]uint32
	OwnerMemos  []*types.OwnerMemo
}

func concatRecords(inputs, outputs []types.OpenAssetRecord) []types.OpenAssetRecord {
	out := make([]types.OpenAssetRecord, 0, len(inputs)+len(outputs))
	out = append(out, inputs...)
	out = append(out, outputs...)
	return out
}

func policyAt(policies []*types.TracingPolicy, i int) *types.TracingPolicy {
	if i < len(policies) {
		return policies[i]
	}
	return nil
}

func attrsAt(attrs [][]uint32, i int) []uint32 {
	if i < len(attrs) {
		return attrs[i]
	}
	return nil
}

// GenXfrBody implements spec §4.2's body assembly: classify, check
// balances, build the asset_type_and_amount_proof, build tracing
// memos/proofs, and emit the XfrBody.
func (e *Engine) GenXfrBody(ctx context.Context, rng io.Reader, p GenParams) (*types.XfrBody, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := CheckKeys(p.Inputs, p.KeyPairs); err != nil {
		e.logger.Warn("gen_xfr_body: check_keys failed", zap.Error(err))
		return nil, err
	}
	if err := CheckAssetAmount(p.Inputs, p.Outputs); err != nil {
		e.logger.Warn("gen_xfr_body: check_asset_amount failed", zap.Error(err))
		return nil, err
	}

	xfrType := Classify(concatRecords(p.Inputs, p.Outputs))
	e.logger.Debug("gen_xfr_body: classified", zap.String("xfr_type", xfrType.String()))

	proof, err := BuildAssetTypeAndAmountProof(rng, e.pp, xfrType, p.Inputs, p.Outputs)
	if err != nil {
		e.logger.Warn("gen_xfr_body: proof generation failed", zap.Error(err))
		return nil, err
	}

	inputMemos := make([][]types.AssetTracerMemo, len(p.Inputs))
	outputMemos := make([][]types.AssetTracerMemo, len(p.Outputs))
	inputProofs := make([][]types.TrackingProof, len(p.Inputs))
	outputProofs := make([][]types.TrackingProof, len(p.Outputs))

	var policies *types.XfrNotePolicies
	if p.Policies != nil {
		policies = p.Policies
	}

	for i, r := range p.Inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var policy *types.TracingPolicy
		if policies != nil {
			policy = policyAt(policies.Inputs, i)
		}
		if policy == nil {
			continue
		}
		memo, tp, err := buildRecordTracking(rng, e.pp, r, policy, attrsAt(p.InputAttrs, i))
		if err != nil {
			return nil, err
		}
		inputMemos[i] = []types.AssetTracerMemo{memo}
		inputProofs[i] = []types.TrackingProof{tp}
	}
	for i, r := range p.Outputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var policy *types.TracingPolicy
		if policies != nil {
			policy = policyAt(policies.Outputs, i)
		}
		if policy == nil {
			continue
		}
		memo, tp, err := buildRecordTracking(rng, e.pp, r, policy, attrsAt(p.OutputAttrs, i))
		if err != nil {
			return nil, err
		}
		outputMemos[i] = []types.AssetTracerMemo{memo}
		outputProofs[i] = []types.TrackingProof{tp}
	}

	inputBARs := make([]types.BlindAssetRecord, len(p.Inputs))
	for i, r := range p.Inputs {
		inputBARs[i] = r.BlindRecord
	}
	outputBARs := make([]types.BlindAssetRecord, len(p.Outputs))
	for i, r := range p.Outputs {
		outputBARs[i] = r.BlindRecord
	}

	ownerMemos := p.OwnerMemos
	if ownerMemos == nil {
		ownerMemos = make([]*types.OwnerMemo, len(p.Outputs))
	}

	body := &types.XfrBody{
		Inputs:  inputBARs,
		Outputs: outputBARs,
		Proofs: types.XfrProofs{
			AssetTypeAndAmountProof: proof,
			AssetTrackingProof: types.AssetTrackingProof{
				InputProofs:  inputProofs,
				OutputProofs: outputProofs,
			},
		},
		AssetTracingMemos: append(append([][]types.AssetTracerMemo{}, inputMemos...), outputMemos...),
		OwnersMemos:       ownerMemos,
	}
	return body, nil
}

// GenXfrNote implements spec §4.2's signing step: serialize the body
// canonically, sign it with every input key pair, attach the multisig.
func (e *Engine) GenXfrNote(ctx context.Context, rng io.Reader, p GenParams) (*types.XfrNote, error) {
	body, err := e.GenXfrBody(ctx, rng, p)
	if err != nil {
		return nil, err
	}
	msg, err := canon.Marshal(body)
	if err != nil {
		return nil, err
	}
	sig, err := multisig.SignMultisig(rng, p.KeyPairs, msg)
	if err != nil {
		return nil, err
	}
	return &types.XfrNote{Body: *body, Multisig: sig}, nil
}

// VerifyXfrNote implements verify_xfr_note = verify_multisig ∘
// verify_xfr_body.
func (e *Engine) VerifyXfrNote(ctx context.Context, note *types.XfrNote, policies *types.XfrNotePolicies) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := canon.Marshal(&note.Body)
	if err != nil {
		return err
	}
	pubKeys := make([]types.XfrPublicKey, len(note.Body.Inputs))
	for i, bar := range note.Body.Inputs {
		pubKeys[i] = bar.PublicKey
	}
	if err := multisig.VerifyMultisig(pubKeys, msg, note.Multisig); err != nil {
		e.logger.Warn("verify_xfr_note: multisig rejected", zap.Error(err))
		return err
	}
	return e.VerifyXfrBody(ctx, &note.Body, policies)
}

// VerifyXfrBody implements verify_xfr_body: batched content
// verification followed by tracing-proof verification against policies.
func (e *Engine) VerifyXfrBody(ctx context.Context, body *types.XfrBody, policies *types.XfrNotePolicies) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := VerifyXfrBodyContent(e.pp, body); err != nil {
		e.logger.Warn("verify_xfr_body: content proof rejected", zap.Error(err))
		return err
	}
	if err := BatchVerifyTrackingProofs(e.pp, body, policies); err != nil {
		e.logger.Warn("verify_xfr_body: tracking proof rejected", zap.Error(err))
		return err
	}
	return nil
}

// BatchVerifyXfrNotes verifies many notes' multisigs individually (each
// over its own message and key set) then pools their bodies' content
// and tracing proofs through the batched verifiers, per spec §4.2 and
// §5's batching-is-a-throughput-optimization guidance.
func (e *Engine) BatchVerifyXfrNotes(ctx context.Context, notes []*types.XfrNote, policies []*types.XfrNotePolicies) error {
	if len(policies) != 0 && len(policies) != len(notes) {
		return xfrerr.ErrParameter
	}
	bodies := make([]*types.XfrBody, len(notes))
	for i, note := range notes {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg, err := canon.Marshal(&note.Body)
		if err != nil {
			return err
		}
		pubKeys := make([]types.XfrPublicKey, len(note.Body.Inputs))
		for j, bar := range note.Body.Inputs {
			pubKeys[j] = bar.PublicKey
		}
		if err := multisig.VerifyMultisig(pubKeys, msg, note.Multisig); err != nil {
			return err
		}
		bodies[i] = &note.Body
	}
	if err := BatchVerifyXfrBodyContent(e.pp, bodies); err != nil {
		return err
	}
	for i, body := range bodies {
		var pol *types.XfrNotePolicies
		if i < len(policies) {
			pol = policies[i]
		}
		if err := BatchVerifyTrackingProofs(e.pp, body, pol); err != nil {
			return err
		}
	}
	return nil
}
