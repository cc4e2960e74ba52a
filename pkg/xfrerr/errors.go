// Package xfrerr defines the error taxonomy shared by the confidential
// transfer engine and tracing subsystem.
package xfrerr

import "errors"

var (
	// ErrParameter signals a caller-supplied length/shape mismatch: key
	// count, memo count, or expected-vector count.
	ErrParameter = errors.New("xfr: parameter error")

	// ErrCreationAssetAmount signals a construction-time failure: negative
	// per-asset balance, or a classifier/proof-kind mismatch.
	ErrCreationAssetAmount = errors.New("xfr: asset amount error at creation")

	// ErrVerifyAssetAmount signals a verification-time plain-path balance
	// or asset-equality failure.
	ErrVerifyAssetAmount = errors.New("xfr: asset amount error at verification")

	// ErrVerifyConfidentialAmount signals rejection of a batched range proof.
	ErrVerifyConfidentialAmount = errors.New("xfr: confidential amount proof rejected")

	// ErrVerifyConfidentialAsset signals rejection of a batched asset-equality proof.
	ErrVerifyConfidentialAsset = errors.New("xfr: confidential asset proof rejected")

	// ErrVerifyAssetMix signals rejection of a batched asset-mixing proof.
	ErrVerifyAssetMix = errors.New("xfr: asset mix proof rejected")

	// ErrVerifyMultisig signals an invalid multi-signature.
	ErrVerifyMultisig = errors.New("xfr: multisig verification failed")

	// ErrVerifyTracking signals a tracing proof failure.
	ErrVerifyTracking = errors.New("xfr: tracing proof verification failed")

	// ErrInconsistentStructure signals a violated body invariant: memo
	// count mismatch, or a confidential record with no plaintext
	// available where one is required.
	ErrInconsistentStructure = errors.New("xfr: inconsistent structure")

	// ErrAssetTracingExtraction signals recovered asset/amount plaintext
	// disagreeing with an expected value.
	ErrAssetTracingExtraction = errors.New("xfr: asset tracing extraction failed")

	// ErrIdentityTracingExtraction signals recovered identity attributes
	// disagreeing with expected values.
	ErrIdentityTracingExtraction = errors.New("xfr: identity tracing extraction failed")
)
