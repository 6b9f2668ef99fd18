package compressionkey

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
)

const (
	// CompressedKeyLength is the length, in bytes, of a public key
	// serialized in SEC compressed format.
	CompressedKeyLength = 33

	// UncompressedKeyLength is the length, in bytes, of a public key
	// serialized in SEC uncompressed format.
	UncompressedKeyLength = 65
)

// PublicKey represents a secp256k1 public key.
type PublicKey struct {
	publicKey *ecdsa.PublicKey
}

// We must deal with compressed keys ourselves, because
// elliptic.UnmarshalCompressed cannot handle secp256k1.
func unmarshalCompressed(serialized []byte) (*PublicKey, error) {
	if len(serialized) != CompressedKeyLength {
		return nil, fmt.Errorf("%w: invalid serialized compressed public key",
			ErrInvalidFormat)
	}

	even := false
	if serialized[0] == 0x02 {
		even = true
	} else if serialized[0] == 0x03 {
		even = false
	} else {
		return nil, fmt.Errorf("%w: invalid serialized compressed public key",
			ErrInvalidFormat)
	}
	x := new(big.Int).SetBytes(serialized[1:])
	P := btcec.S256().CurveParams.P
	sqrtExp := new(big.Int).Add(P, big.NewInt(1))
	sqrtExp = sqrtExp.Div(sqrtExp, big.NewInt(4))
	alpha := new(big.Int).Exp(x, big.NewInt(3), P)
	alpha.Add(alpha, btcec.S256().B)
	beta := new(big.Int).Exp(alpha, sqrtExp, P)
	var evenBeta *big.Int
	var oddBeta *big.Int
	if new(big.Int).Mod(beta, big.NewInt(2)).Cmp(big.NewInt(0)) == 0 {
		evenBeta = beta
		oddBeta = new(big.Int).Sub(P, beta)
	} else {
		evenBeta = new(big.Int).Sub(P, beta)
		oddBeta = beta
	}
	var y *big.Int
	if even {
		y = evenBeta
	} else {
		y = oddBeta
	}
	// The square root above only exists if x is actually on the curve.
	if !btcec.S256().IsOnCurve(x, y) {
		return nil, fmt.Errorf("%w: point is not on the curve", ErrInvalidFormat)
	}
	return &PublicKey{publicKey: &ecdsa.PublicKey{
		Curve: btcec.S256(),
		X:     x,
		Y:     y}}, nil
}

// NewPublicKeyFromBytes creates a public key from its serialized
// representation, either in SEC compressed (33 bytes) or uncompressed
// (65 bytes) format.
func NewPublicKeyFromBytes(b []byte) (*PublicKey, error) {
	switch len(b) {
	case UncompressedKeyLength:
		x, y := elliptic.Unmarshal(btcec.S256(), b)
		if x == nil {
			return nil, fmt.Errorf("%w: invalid serialized public key",
				ErrInvalidFormat)
		}
		return &PublicKey{publicKey: &ecdsa.PublicKey{
			Curve: btcec.S256(),
			X:     x,
			Y:     y}}, nil
	case CompressedKeyLength:
		return unmarshalCompressed(b)
	}
	return nil, fmt.Errorf("%w: public key must be %d or %d bytes long, got %d",
		ErrInvalidFormat, CompressedKeyLength, UncompressedKeyLength, len(b))
}

// Bytes returns the public key serialized in SEC uncompressed format.
// The result is 65 bytes long.
func (pbk *PublicKey) Bytes() []byte {
	return elliptic.Marshal(pbk.publicKey.Curve, pbk.publicKey.X, pbk.publicKey.Y)
}

// CompressedBytes returns the public key serialized in SEC compressed
// format. The result is 33 bytes long.
func (pbk *PublicKey) CompressedBytes() []byte {
	return elliptic.MarshalCompressed(pbk.publicKey.Curve, pbk.publicKey.X, pbk.publicKey.Y)
}

// serialized returns the public key in the requested SEC format.
func (pbk *PublicKey) serialized(compressed bool) []byte {
	if compressed {
		return pbk.CompressedBytes()
	}
	return pbk.Bytes()
}

// X returns X component of the public key.
func (pbk *PublicKey) X() *big.Int {
	return pbk.publicKey.X
}

// Y returns Y component of the public key.
func (pbk *PublicKey) Y() *big.Int {
	return pbk.publicKey.Y
}

// Address returns the address of this public key on the network described
// by profile. Both the address model and the version bytes come from the
// profile.
func (pbk *PublicKey) Address(profile NetworkProfile, compressed bool) (string, error) {
	return profile.Address(pbk.serialized(compressed))
}

// Equal returns true if this key is equal to the other key.
func (pbk *PublicKey) Equal(other *PublicKey) bool {
	if other == nil {
		return false
	}
	return pbk.publicKey.X.Cmp(other.publicKey.X) == 0 &&
		pbk.publicKey.Y.Cmp(other.publicKey.Y) == 0
}

// EqualSerializedCompressed returns true if this key is equal to the other,
// given as serialized compressed representation.
func (pbk *PublicKey) EqualSerializedCompressed(other []byte) bool {
	return bytes.Equal(pbk.CompressedBytes(), other)
}

// ToECDSA returns this key as crypto/ecdsa public key.
func (pbk *PublicKey) ToECDSA() *ecdsa.PublicKey {
	return pbk.publicKey
}
