// Package common provides shared byte, integer, and safe-arithmetic
// helpers used across the confidential transfer engine.
package common

import (
	"encoding/hex"
	"errors"
	"math/big"
)

// ErrSumOverflow is returned by SafeSumU64 when the running total would
// not fit in a uint64.
var ErrSumOverflow = errors.New("common: sum overflows uint64")

// HexToBytes converts a hex string to bytes, tolerating a 0x/0X prefix.
func HexToBytes(s string) ([]byte, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	return hex.DecodeString(s)
}

// BytesToHex converts bytes to a hex string with a 0x prefix.
func BytesToHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// BigIntToBytes converts a big.Int to a fixed-size big-endian byte slice.
func BigIntToBytes(n *big.Int, size int) []byte {
	if n == nil {
		return make([]byte, size)
	}
	b := n.Bytes()
	if len(b) >= size {
		return b[len(b)-size:]
	}
	result := make([]byte, size)
	copy(result[size-len(b):], b)
	return result
}

// BytesToBigInt converts a big-endian byte slice to a big.Int.
func BytesToBigInt(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// CopyBytes returns a copy of a byte slice.
func CopyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}

// ConcatBytes concatenates multiple byte slices into one allocation.
func ConcatBytes(slices ...[]byte) []byte {
	total := 0
	for _, s := range slices {
		total += len(s)
	}
	result := make([]byte, 0, total)
	for _, s := range slices {
		result = append(result, s...)
	}
	return result
}

// SplitAmount splits a u64 amount into its low and high 32-bit limbs:
// (amount & 0xFFFFFFFF, amount >> 32), per spec §3.
func SplitAmount(amount uint64) (low, high uint32) {
	return uint32(amount & 0xFFFFFFFF), uint32(amount >> 32)
}

// CombineAmount re-combines limbs produced by SplitAmount: low + 2^32*high.
func CombineAmount(low, high uint32) uint64 {
	return uint64(low) + (uint64(high) << 32)
}

// SafeSumU64 sums a list of uint64 values, returning ErrSumOverflow instead
// of silently wrapping, per spec §8 property 9 (integer safety).
func SafeSumU64(values ...uint64) (uint64, error) {
	var total uint64
	for _, v := range values {
		next := total + v
		if next < total {
			return 0, ErrSumOverflow
		}
		total = next
	}
	return total, nil
}

// SafeSumI128 sums a list of int64-promoted-to-128-bit values using
// big.Int, used by the asset-balance accounting of spec §4.2 to avoid
// overflow when computing signed per-asset-type deltas.
func SafeSumI128(values ...*big.Int) *big.Int {
	total := new(big.Int)
	for _, v := range values {
		total.Add(total, v)
	}
	return total
}
