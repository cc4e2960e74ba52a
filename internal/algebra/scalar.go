// Package algebra wraps the BLS12-381 scalar field and groups used
// throughout the confidential transfer engine. It is the sole place curve
// arithmetic is touched; every other package goes through it.
package algebra

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/fxamacker/cbor/v2"
)

// ScalarBytesLen is the canonical fixed-width encoding length of a Scalar:
// four 8-byte big-endian limbs.
const ScalarBytesLen = 32

// ErrInvalidScalarBytes is returned when a byte slice cannot be decoded
// into a field element.
var ErrInvalidScalarBytes = errors.New("algebra: invalid scalar encoding")

// Scalar is an element of the BLS12-381 scalar field Fr.
type Scalar struct {
	el fr.Element
}

// NewScalarFromUint64 builds a Scalar from a u64 value.
func NewScalarFromUint64(v uint64) Scalar {
	var s Scalar
	s.el.SetUint64(v)
	return s
}

// NewScalarFromBigInt reduces a big.Int into the scalar field.
func NewScalarFromBigInt(v *big.Int) Scalar {
	var s Scalar
	s.el.SetBigInt(v)
	return s
}

// RandomScalar draws a uniformly random scalar from rng, which must be a
// cryptographically secure source (the caller-supplied CSPRNG of spec §5).
func RandomScalar(rng io.Reader) (Scalar, error) {
	if rng == nil {
		rng = rand.Reader
	}
	var buf [64]byte
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		return Scalar{}, err
	}
	var s Scalar
	s.el.SetBytes(buf[:])
	return s, nil
}

// ScalarFromHash derives a deterministic scalar from arbitrary transcript
// bytes, used for Fiat-Shamir challenges. It never touches any RNG trait
// bridging; it hashes straight into the field via SHA-256 widened to 64
// bytes, matching gnark-crypto's wide-reduction SetBytes.
func ScalarFromHash(parts ...[]byte) Scalar {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	digest := h.Sum(nil)
	// Widen to 64 bytes so SetBytes performs a uniform wide reduction
	// rather than a narrow one biased toward small values.
	h2 := sha256.Sum256(digest)
	wide := append(digest, h2[:]...)
	var s Scalar
	s.el.SetBytes(wide)
	return s
}

// Add returns s + other.
func (s Scalar) Add(other Scalar) Scalar {
	var r Scalar
	r.el.Add(&s.el, &other.el)
	return r
}

// Sub returns s - other.
func (s Scalar) Sub(other Scalar) Scalar {
	var r Scalar
	r.el.Sub(&s.el, &other.el)
	return r
}

// Mul returns s * other.
func (s Scalar) Mul(other Scalar) Scalar {
	var r Scalar
	r.el.Mul(&s.el, &other.el)
	return r
}

// Neg returns -s.
func (s Scalar) Neg() Scalar {
	var r Scalar
	r.el.Neg(&s.el)
	return r
}

// IsZero reports whether s is the additive identity.
func (s Scalar) IsZero() bool {
	return s.el.IsZero()
}

// Equal reports whether s == other.
func (s Scalar) Equal(other Scalar) bool {
	return s.el.Equal(&other.el)
}

// BigInt returns the canonical (non-Montgomery) big.Int representation.
func (s Scalar) BigInt() *big.Int {
	return s.el.BigInt(new(big.Int))
}

// Bytes encodes s as ScalarBytesLen big-endian bytes (four 8-byte limbs in
// declaration order, per spec §6).
func (s Scalar) Bytes() []byte {
	b := s.el.Bytes()
	return b[:]
}

// ScalarFieldModulus returns the BLS12-381 scalar field's modulus.
func ScalarFieldModulus() *big.Int {
	return fr.Modulus()
}

// ScalarFromBytes decodes a canonical big-endian scalar encoding.
func ScalarFromBytes(b []byte) (Scalar, error) {
	if len(b) != ScalarBytesLen {
		return Scalar{}, ErrInvalidScalarBytes
	}
	var s Scalar
	s.el.SetBytes(b)
	return s, nil
}

// MarshalCBOR encodes s as a canonical CBOR byte string, per spec §6's
// "scalars: 4 x 8-byte big-endian limbs" requirement.
func (s Scalar) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(s.Bytes())
}

// UnmarshalCBOR decodes the inverse of MarshalCBOR.
func (s *Scalar) UnmarshalCBOR(data []byte) error {
	var b []byte
	if err := cbor.Unmarshal(data, &b); err != nil {
		return err
	}
	dec, err := ScalarFromBytes(b)
	if err != nil {
		return err
	}
	*s = dec
	return nil
}
