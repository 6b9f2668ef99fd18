package compressionkey

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160"
)

// Hash256 does two rounds of SHA256 hashing. Every checksum in this
// package is the first four bytes of this digest.
func Hash256(data []byte) []byte {
	h := sha256.Sum256(data)
	h1 := sha256.Sum256(h[:])
	return h1[:]
}

// Hash160 calculates the hash ripemd160(sha256(b)).
func Hash160(b []byte) []byte {
	h := sha256.Sum256(b)
	hasher := ripemd160.New()
	hasher.Write(h[:])
	return hasher.Sum(nil)
}
