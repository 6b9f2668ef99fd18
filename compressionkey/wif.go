package compressionkey

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcutil/base58"
)

// compressionSuffix follows the key bytes in WIF when the public key is
// meant to be serialized in compressed form.
const compressionSuffix = 0x01

// WIF returns the private key in Wallet Import Format, using the WIF
// version byte of the given network profile. If compressed is true, the
// encoding carries a marker telling that the matching public key must be
// serialized in compressed form.
// See https://en.bitcoin.it/wiki/Wallet_import_format.
func (pk *PrivateKey) WIF(profile NetworkProfile, compressed bool) string {
	kb := pk.Bytes()
	defer zeroBytes(kb)
	payload := make([]byte, 0, 2+KeyLength+checkSumLength)
	payload = append(payload, profile.WIFVersion)
	payload = append(payload, kb...)
	if compressed {
		payload = append(payload, compressionSuffix)
	}
	payload = append(payload, Hash256(payload)[0:checkSumLength]...)
	defer zeroBytes(payload)
	return base58.Encode(payload)
}

// NewPrivateKeyFromWIF creates a private key from its Wallet Import
// Format encoding. The second return value tells if the WIF designates a
// compressed public key. The version byte is not interpreted, so WIF from
// any network can be decoded.
func NewPrivateKeyFromWIF(wif string) (*PrivateKey, bool, error) {
	raw := base58.Decode(wif)
	defer zeroBytes(raw)
	if len(raw) < 1+KeyLength+checkSumLength {
		return nil, false, fmt.Errorf("%w: WIF is too short", ErrInvalidFormat)
	}
	payload := raw[:len(raw)-checkSumLength]
	checkSum := raw[len(raw)-checkSumLength:]
	if !bytes.Equal(Hash256(payload)[0:checkSumLength], checkSum) {
		return nil, false, fmt.Errorf("%w: WIF checksum mismatch", ErrInvalidFormat)
	}
	compressed := false
	switch len(payload) {
	case 1 + KeyLength:
	case 2 + KeyLength:
		if payload[1+KeyLength] != compressionSuffix {
			return nil, false, fmt.Errorf("%w: bad compression marker", ErrInvalidFormat)
		}
		compressed = true
	default:
		return nil, false, fmt.Errorf("%w: WIF payload must be %d or %d bytes long, got %d",
			ErrInvalidFormat, 1+KeyLength, 2+KeyLength, len(payload))
	}
	key, err := NewPrivateKeyFromBytes(payload[1 : 1+KeyLength])
	if err != nil {
		return nil, false, err
	}
	return key, compressed, nil
}
