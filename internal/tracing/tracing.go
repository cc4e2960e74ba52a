package tracing

import (
	"io"

	"github.com/ccoin/xfr/internal/algebra"
	"github.com/ccoin/xfr/internal/elgamal"
	"github.com/ccoin/xfr/pkg/types"
	"github.com/ccoin/xfr/pkg/xfrerr"
)

// defaultMaxAmountScan bounds DecryptBruteForceU64's search when the
// caller does not supply a tighter known ceiling.
const defaultMaxAmountScan = 1 << 32

// TracerKeyPair is a tracer's full key material: a record-data key pair
// used for amount and asset-type ciphertexts, and a separate attributes
// key pair for identity attribute ciphertexts, matching the source's
// record_data_dec_key / attrs_dec_key split (spec §4.3).
type TracerKeyPair struct {
	RecordDataPub elgamal.PublicKey
	RecordDataSec elgamal.SecretKey
	AttrsPub      elgamal.PublicKey
	AttrsSec      elgamal.SecretKey
}

// GenTracerKeyPair draws a fresh tracer key pair from rng.
func GenTracerKeyPair(rng io.Reader) (TracerKeyPair, error) {
	recPub, recSec, err := elgamal.GenKeyPair(rng)
	if err != nil {
		return TracerKeyPair{}, err
	}
	attrPub, attrSec, err := elgamal.GenKeyPair(rng)
	if err != nil {
		return TracerKeyPair{}, err
	}
	return TracerKeyPair{RecordDataPub: recPub, RecordDataSec: recSec, AttrsPub: attrPub, AttrsSec: attrSec}, nil
}

// MemoMatch pairs a record with one tracer memo addressed to it.
type MemoMatch struct {
	Record types.BlindAssetRecord
	Memo   types.AssetTracerMemo
}

// FindTracingMemos walks a body's inputs then outputs, paired with their
// memo lists, and returns every (record, memo) pair whose memo targets
// tracerEncKey. Order is preserved. Fails if the body's
// |asset_tracing_memos| = |inputs| + |outputs| invariant is violated.
func FindTracingMemos(body *types.XfrBody, tracerEncKey elgamal.PublicKey) ([]MemoMatch, error) {
	total := len(body.Inputs) + len(body.Outputs)
	if len(body.AssetTracingMemos) != total {
		return nil, xfrerr.ErrInconsistentStructure
	}
	var matches []MemoMatch
	for i := 0; i < len(body.Inputs); i++ {
		for _, memo := range body.AssetTracingMemos[i] {
			if memo.EncKey.Point.Equal(tracerEncKey.Point) {
				matches = append(matches, MemoMatch{Record: body.Inputs[i], Memo: memo})
			}
		}
	}
	for i := 0; i < len(body.Outputs); i++ {
		memos := body.AssetTracingMemos[len(body.Inputs)+i]
		for _, memo := range memos {
			if memo.EncKey.Point.Equal(tracerEncKey.Point) {
				matches = append(matches, MemoMatch{Record: body.Outputs[i], Memo: memo})
			}
		}
	}
	return matches, nil
}

// RecordData is the tracer's recovered view of one tracer-addressed
// record: its amount, asset type, identity attributes, and owning
// public key.
type RecordData struct {
	Amount     uint64
	AssetType  types.AssetType
	Attributes []uint32
	PublicKey  types.XfrPublicKey
}

// ExtractTrackingInfo recovers RecordData for every match, per spec
// §4.3: plaintext fields are read straight from the record; locked
// fields are decrypted with the tracer's keys, amounts by bounded
// brute-force search and asset types by trial against candidateTypes.
func ExtractTrackingInfo(matches []MemoMatch, keys TracerKeyPair, candidateTypes []types.AssetType, maxAmountScan uint64) ([]RecordData, error) {
	if maxAmountScan == 0 {
		maxAmountScan = defaultMaxAmountScan
	}
	out := make([]RecordData, len(matches))
	for i, m := range matches {
		rd := RecordData{PublicKey: m.Record.PublicKey}

		if m.Memo.LockAmount == nil {
			if m.Record.Amount.Confidential {
				return nil, xfrerr.ErrInconsistentStructure
			}
			rd.Amount = m.Record.Amount.Amount
		} else {
			v, err := elgamal.DecryptBruteForceU64(*m.Memo.LockAmount, keys.RecordDataSec, maxAmountScan)
			if err != nil {
				return nil, xfrerr.ErrAssetTracingExtraction
			}
			rd.Amount = v
		}

		if m.Memo.LockAssetType == nil {
			if m.Record.AssetType.Confidential {
				return nil, xfrerr.ErrInconsistentStructure
			}
			rd.AssetType = m.Record.AssetType.AssetType
		} else {
			candidates := make([]algebra.Scalar, len(candidateTypes))
			for j, t := range candidateTypes {
				candidates[j] = algebra.AssetTypeToScalar(t)
			}
			idx, err := elgamal.DecryptAgainstCandidates(*m.Memo.LockAssetType, keys.RecordDataSec, candidates)
			if err != nil {
				return nil, xfrerr.ErrAssetTracingExtraction
			}
			rd.AssetType = candidateTypes[idx]
		}

		if len(m.Memo.LockAttributes) > 0 {
			attrs := make([]uint32, len(m.Memo.LockAttributes))
			for j, ct := range m.Memo.LockAttributes {
				v, err := elgamal.DecryptBruteForceU64(ct, keys.AttrsSec, maxAmountScan)
				if err != nil {
					return nil, xfrerr.ErrIdentityTracingExtraction
				}
				attrs[j] = uint32(v)
			}
			rd.Attributes = attrs
		}

		out[i] = rd
	}
	return out, nil
}

// VerifyTracingMemos checks that every match's memo is consistent with
// the corresponding expected RecordData, per spec §4.3.
func VerifyTracingMemos(matches []MemoMatch, keys TracerKeyPair, expected []RecordData) error {
	if len(matches) != len(expected) {
		return xfrerr.ErrParameter
	}
	for i, m := range matches {
		exp := expected[i]

		if m.Memo.LockAmount == nil {
			if m.Record.Amount.Confidential || m.Record.Amount.Amount != exp.Amount {
				return xfrerr.ErrAssetTracingExtraction
			}
		} else if !elgamal.VerifyPlaintextU64(*m.Memo.LockAmount, keys.RecordDataSec, exp.Amount) {
			return xfrerr.ErrAssetTracingExtraction
		}

		if m.Memo.LockAssetType == nil {
			if m.Record.AssetType.Confidential || m.Record.AssetType.AssetType != exp.AssetType {
				return xfrerr.ErrAssetTracingExtraction
			}
		} else if !elgamal.VerifyPlaintextScalar(*m.Memo.LockAssetType, keys.RecordDataSec, algebra.AssetTypeToScalar(exp.AssetType)) {
			return xfrerr.ErrAssetTracingExtraction
		}

		if len(m.Memo.LockAttributes) > 0 {
			if len(m.Memo.LockAttributes) != len(exp.Attributes) {
				return xfrerr.ErrIdentityTracingExtraction
			}
			for j, ct := range m.Memo.LockAttributes {
				if !elgamal.VerifyPlaintextU64(ct, keys.AttrsSec, uint64(exp.Attributes[j])) {
					return xfrerr.ErrIdentityTracingExtraction
				}
			}
		}
	}
	return nil
}

// TraceAssets composes FindTracingMemos and ExtractTrackingInfo.
func TraceAssets(body *types.XfrBody, keys TracerKeyPair, candidateTypes []types.AssetType, maxAmountScan uint64) ([]RecordData, error) {
	matches, err := FindTracingMemos(body, keys.RecordDataPub)
	if err != nil {
		return nil, err
	}
	return ExtractTrackingInfo(matches, keys, candidateTypes, maxAmountScan)
}

// VerifyTracingCtexts composes FindTracingMemos and VerifyTracingMemos.
func VerifyTracingCtexts(body *types.XfrBody, keys TracerKeyPair, expected []RecordData) error {
	matches, err := FindTracingMemos(body, keys.RecordDataPub)
	if err != nil {
		return err
	}
	return VerifyTracingMemos(matches, keys, expected)
}
