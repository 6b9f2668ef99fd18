package compressionkey

import (
	"encoding/base64"
	"math/big"
)

// padWithZeros left-pads b with zero bytes to the given size. If b is
// already size bytes or longer, it is returned unchanged.
func padWithZeros(b []byte, size int) []byte {
	if len(b) >= size {
		return b
	}
	padded := make([]byte, size)
	copy(padded[size-len(b):], b)
	return padded
}

// base64urlEncode encodes b as Base64url, Base64 without padding.
func base64urlEncode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func base64urlDecode(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}

// zeroBytes overwrites b with zeros so key material does not linger in
// memory longer than needed.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// zeroScalar clears a scalar in place. SetBytes reuses the existing limb
// array when it is large enough, so the original words are overwritten
// before the value is dropped.
func zeroScalar(d *big.Int) {
	if d == nil {
		return
	}
	var ones [KeyLength]byte
	for i := range ones {
		ones[i] = 0xff
	}
	d.SetBytes(ones[:])
	d.SetInt64(0)
}
