package algebra

import (
	"errors"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/fxamacker/cbor/v2"
)

// G1CompressedLen and G2CompressedLen are the curve-library compressed
// point lengths named in spec §6: 48 bytes for the G1 side, 96 for G2.
const (
	G1CompressedLen = 48
	G2CompressedLen = 96
)

// ErrInvalidPoint is returned when a byte slice does not decompress to a
// valid curve point. Callers must treat decompression as fallible (spec
// §9) rather than panicking.
var ErrInvalidPoint = errors.New("algebra: invalid curve point encoding")

// G1 is a point on the BLS12-381 G1 curve, used for Pedersen commitments
// and ElGamal ciphertexts.
type G1 struct {
	p bls12381.G1Affine
}

// G1Base returns the standard BLS12-381 G1 generator.
func G1Base() G1 {
	_, _, g1, _ := bls12381.Generators()
	return G1{p: g1}
}

// G1Identity returns the G1 point at infinity.
func G1Identity() G1 {
	var g G1
	g.p.X.SetZero()
	g.p.Y.SetZero()
	return g
}

// G1FromHash derives a generator with no known discrete-log relation to
// the base point by hashing a domain-separation tag to a scalar and
// multiplying the base point by it (following the shape of the teacher's
// InitializeGenerators, generalized from an XOR toy hash to SHA-256).
func G1FromHash(tag string) G1 {
	s := ScalarFromHash([]byte(tag))
	return G1Base().Mul(s)
}

// Mul returns s * g.
func (g G1) Mul(s Scalar) G1 {
	var r bls12381.G1Affine
	r.ScalarMultiplication(&g.p, s.BigInt())
	return G1{p: r}
}

// MulUint64 returns v * g for a plain u64 scalar (zero-blinding commitments
// to revealed amounts, per spec §4.2's asset-mix input preparation).
func (g G1) MulUint64(v uint64) G1 {
	return g.Mul(NewScalarFromUint64(v))
}

// Add returns g + other.
func (g G1) Add(other G1) G1 {
	var r bls12381.G1Affine
	r.Add(&g.p, &other.p)
	return G1{p: r}
}

// Sub returns g - other.
func (g G1) Sub(other G1) G1 {
	var r bls12381.G1Affine
	r.Sub(&g.p, &other.p)
	return G1{p: r}
}

// Neg returns -g.
func (g G1) Neg() G1 {
	var r bls12381.G1Affine
	r.Neg(&g.p)
	return G1{p: r}
}

// Equal reports whether g == other.
func (g G1) Equal(other G1) bool {
	return g.p.Equal(&other.p)
}

// Bytes returns the 48-byte compressed encoding.
func (g G1) Bytes() []byte {
	b := g.p.Bytes()
	return b[:]
}

// G1FromBytes decompresses a 48-byte point encoding. It never panics on
// malformed input; callers surface ErrInvalidPoint as
// xfrerr.ErrInconsistentStructure per spec §9.
func G1FromBytes(b []byte) (G1, error) {
	if len(b) != G1CompressedLen {
		return G1{}, ErrInvalidPoint
	}
	var p bls12381.G1Affine
	if _, err := p.SetBytes(b); err != nil {
		return G1{}, ErrInvalidPoint
	}
	return G1{p: p}, nil
}

// MarshalCBOR encodes g as a canonical CBOR byte string, per spec §6's
// "group elements: curve-library compressed form" requirement.
func (g G1) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(g.Bytes())
}

// UnmarshalCBOR decodes the inverse of MarshalCBOR.
func (g *G1) UnmarshalCBOR(data []byte) error {
	var b []byte
	if err := cbor.Unmarshal(data, &b); err != nil {
		return err
	}
	dec, err := G1FromBytes(b)
	if err != nil {
		return err
	}
	*g = dec
	return nil
}

// G2 is a point on the BLS12-381 G2 curve. It is a general-purpose
// wrapper: tracer and signer keys live in G1, not G2.
type G2 struct {
	p bls12381.G2Affine
}

// G2Base returns the standard BLS12-381 G2 generator.
func G2Base() G2 {
	_, _, _, g2 := bls12381.Generators()
	return G2{p: g2}
}

// Mul returns s * g.
func (g G2) Mul(s Scalar) G2 {
	var r bls12381.G2Affine
	r.ScalarMultiplication(&g.p, s.BigInt())
	return G2{p: r}
}

// Add returns g + other.
func (g G2) Add(other G2) G2 {
	var r bls12381.G2Affine
	r.Add(&g.p, &other.p)
	return G2{p: r}
}

// Equal reports whether g == other.
func (g G2) Equal(other G2) bool {
	return g.p.Equal(&other.p)
}

// Bytes returns the 96-byte compressed encoding.
func (g G2) Bytes() []byte {
	b := g.p.Bytes()
	return b[:]
}

// G2FromBytes decompresses a 96-byte point encoding.
func G2FromBytes(b []byte) (G2, error) {
	if len(b) != G2CompressedLen {
		return G2{}, ErrInvalidPoint
	}
	var p bls12381.G2Affine
	if _, err := p.SetBytes(b); err != nil {
		return G2{}, ErrInvalidPoint
	}
	return G2{p: p}, nil
}

// MarshalCBOR encodes g as a canonical CBOR byte string.
func (g G2) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(g.Bytes())
}

// UnmarshalCBOR decodes the inverse of MarshalCBOR.
func (g *G2) UnmarshalCBOR(data []byte) error {
	var b []byte
	if err := cbor.Unmarshal(data, &b); err != nil {
		return err
	}
	dec, err := G2FromBytes(b)
	if err != nil {
		return err
	}
	*g = dec
	return nil
}

// AssetTypeToScalar interprets a 16-byte asset type identifier as a
// 128-bit little-endian scalar, per spec §3.
func AssetTypeToScalar(assetType [16]byte) Scalar {
	be := make([]byte, 16)
	for i := 0; i < 16; i++ {
		be[i] = assetType[15-i]
	}
	return NewScalarFromBigInt(new(big.Int).SetBytes(be))
}
