// Package multisig implements the Signer (S) component of spec §2: a
// Schnorr-based multi-signature over the canonical byte encoding of a
// transfer body, computed with every input key's private key.
//
// Keys live in the same BLS12-381 G1 group as the Pedersen commitments
// (spec §3 ties each BlindAssetRecord.public_key to the signer's public
// key), so no unrelated signature curve is introduced.
package multisig

import (
	"encoding/binary"
	"io"

	"github.com/ccoin/xfr/internal/algebra"
	"github.com/ccoin/xfr/pkg/xfrerr"
	"github.com/fxamacker/cbor/v2"
)

// XfrPublicKey is a signer's public key: pk = sk*G1Base().
type XfrPublicKey struct {
	Point algebra.G1
}

// XfrSecretKey is a signer's private scalar.
type XfrSecretKey struct {
	Scalar algebra.Scalar
}

// XfrKeyPair couples a secret key with its public key.
type XfrKeyPair struct {
	Public  XfrPublicKey
	Private XfrSecretKey
}

// GenKeyPair draws a fresh key pair from rng.
func GenKeyPair(rng io.Reader) (XfrKeyPair, error) {
	sk, err := algebra.RandomScalar(rng)
	if err != nil {
		return XfrKeyPair{}, err
	}
	pub := algebra.G1Base().Mul(sk)
	return XfrKeyPair{
		Public:  XfrPublicKey{Point: pub},
		Private: XfrSecretKey{Scalar: sk},
	}, nil
}

// Equal reports whether two public keys are the same curve point.
func (pk XfrPublicKey) Equal(other XfrPublicKey) bool {
	return pk.Point.Equal(other.Point)
}

// Bytes returns the compressed point encoding of the public key.
func (pk XfrPublicKey) Bytes() []byte {
	return pk.Point.Bytes()
}

// schnorrSig is a single Schnorr signature: (R, s) with s = r + e*sk.
type schnorrSig struct {
	R algebra.G1
	S algebra.Scalar
}

// XfrMultiSig is the transfer-note signature: one Schnorr signature per
// input key pair, in input order, matching spec §4.2's signing step.
type XfrMultiSig struct {
	sigs []schnorrSig
}

func challenge(pub XfrPublicKey, r algebra.G1, msg []byte) algebra.Scalar {
	return algebra.ScalarFromHash(pub.Bytes(), r.Bytes(), msg)
}

// signOne produces a Schnorr signature over msg under kp.
func signOne(rng io.Reader, kp XfrKeyPair, msg []byte) (schnorrSig, error) {
	k, err := algebra.RandomScalar(rng)
	if err != nil {
		return schnorrSig{}, err
	}
	r := algebra.G1Base().Mul(k)
	e := challenge(kp.Public, r, msg)
	s := k.Add(e.Mul(kp.Private.Scalar))
	return schnorrSig{R: r, S: s}, nil
}

func verifyOne(pub XfrPublicKey, msg []byte, sig schnorrSig) bool {
	e := challenge(pub, sig.R, msg)
	lhs := algebra.G1Base().Mul(sig.S)
	rhs := sig.R.Add(pub.Point.Mul(e))
	return lhs.Equal(rhs)
}

// SignMultisig signs msg with every key pair in keys, in order, forming
// the transfer-note multisig.
func SignMultisig(rng io.Reader, keys []XfrKeyPair, msg []byte) (XfrMultiSig, error) {
	sigs := make([]schnorrSig, len(keys))
	for i, kp := range keys {
		sig, err := signOne(rng, kp, msg)
		if err != nil {
			return XfrMultiSig{}, err
		}
		sigs[i] = sig
	}
	return XfrMultiSig{sigs: sigs}, nil
}

// VerifyMultisig verifies msg against pubKeys in order. Any mismatch in
// length or any failing per-key signature yields
// xfrerr.ErrVerifyMultisig.
func VerifyMultisig(pubKeys []XfrPublicKey, msg []byte, sig XfrMultiSig) error {
	if len(pubKeys) != len(sig.sigs) {
		return xfrerr.ErrVerifyMultisig
	}
	for i, pub := range pubKeys {
		if !verifyOne(pub, msg, sig.sigs[i]) {
			return xfrerr.ErrVerifyMultisig
		}
	}
	return nil
}

// Len reports how many per-key signatures the multisig carries.
func (m XfrMultiSig) Len() int { return len(m.sigs) }

// Bytes returns a canonical byte encoding of the multisig: each
// signature's R (48 bytes) and S (32 bytes) concatenated in order.
func (m XfrMultiSig) Bytes() []byte {
	out := make([]byte, 0, len(m.sigs)*(algebra.G1CompressedLen+algebra.ScalarBytesLen))
	for _, s := range m.sigs {
		out = append(out, s.R.Bytes()...)
		out = append(out, s.S.Bytes()...)
	}
	return out
}

// MultiSigFromBytes decodes a multisig with the given expected signer
// count, the inverse of Bytes.
func MultiSigFromBytes(b []byte, count int) (XfrMultiSig, error) {
	const stride = algebra.G1CompressedLen + algebra.ScalarBytesLen
	if len(b) != stride*count {
		return XfrMultiSig{}, xfrerr.ErrParameter
	}
	sigs := make([]schnorrSig, count)
	for i := 0; i < count; i++ {
		off := i * stride
		r, err := algebra.G1FromBytes(b[off : off+algebra.G1CompressedLen])
		if err != nil {
			return XfrMultiSig{}, xfrerr.ErrInconsistentStructure
		}
		s, err := algebra.ScalarFromBytes(b[off+algebra.G1CompressedLen : off+stride])
		if err != nil {
			return XfrMultiSig{}, xfrerr.ErrInconsistentStructure
		}
		sigs[i] = schnorrSig{R: r, S: s}
	}
	return XfrMultiSig{sigs: sigs}, nil
}

// selfDescribingBytes prefixes Bytes with a 4-byte big-endian signer
// count, so the multisig can round-trip through CBOR without an external
// count parameter.
func (m XfrMultiSig) selfDescribingBytes() []byte {
	out := make([]byte, 4, 4+len(m.sigs)*(algebra.G1CompressedLen+algebra.ScalarBytesLen))
	binary.BigEndian.PutUint32(out, uint32(len(m.sigs)))
	return append(out, m.Bytes()...)
}

// MarshalCBOR encodes the multisig as a canonical CBOR byte string.
func (m XfrMultiSig) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(m.selfDescribingBytes())
}

// UnmarshalCBOR decodes the inverse of MarshalCBOR.
func (m *XfrMultiSig) UnmarshalCBOR(data []byte) error {
	var raw []byte
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) < 4 {
		return xfrerr.ErrInconsistentStructure
	}
	count := binary.BigEndian.Uint32(raw[:4])
	decoded, err := MultiSigFromBytes(raw[4:], int(count))
	if err != nil {
		return err
	}
	*m = decoded
	return nil
}
