// Package canon implements the schema-free canonical encoding named in
// spec §2 ("BS": the byte-serialization step every signature and hash is
// computed over). It wraps fxamacker/cbor/v2 in canonical mode (RFC 7049
// §3.9 deterministic encoding): map keys sorted, no indefinite-length
// items, shortest-form integers. Two encoders producing the same value
// always produce the same bytes, which is the property signing and
// content-addressing both need.
package canon

import (
	"github.com/fxamacker/cbor/v2"
)

var encMode = mustEncMode()

func mustEncMode() cbor.EncMode {
	opts := cbor.CanonicalEncOptions()
	mode, err := opts.EncMode()
	if err != nil {
		panic(err)
	}
	return mode
}

// Marshal encodes v as canonical CBOR.
func Marshal(v interface{}) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes canonical (or any valid) CBOR into v.
func Unmarshal(data []byte, v interface{}) error {
	return cbor.Unmarshal(data, v)
}
