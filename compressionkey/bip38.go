package compressionkey

import (
	"bytes"
	"crypto/aes"
	"fmt"

	"github.com/btcsuite/btcutil/base58"
	"golang.org/x/crypto/scrypt"
)

// An encrypted key record is laid out as follows: a two byte prefix
// (0x01 followed by 0x42 or 0x43), a flag byte, four bytes of address
// hash salt, and two 16-byte encrypted halves of the key. Base58Check
// adds a four byte checksum over the whole record.
const (
	recordPrefix   = 0x01
	recordNonMult  = 0x42
	recordECMult   = 0x43
	recordLength   = 39
	saltLength     = 4
	checkSumLength = 4

	flagBase       = 0xc0
	flagCompressed = 0x20
)

// scrypt parameters are fixed by the encrypted key format.
const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 8
	scryptKeyLen = 64
)

// ErrIntegrityCheck is returned when the address recomputed from a
// decrypted key does not match the hash stored in the record. In
// practice this means the passphrase is wrong.
var ErrIntegrityCheck = fmt.Errorf("address hash mismatch, wrong passphrase or corrupted record")

// ErrUnsupportedMode is returned for well-formed records that use the
// EC multiplication scheme, which this package does not implement.
var ErrUnsupportedMode = fmt.Errorf("EC multiplied keys are not supported")

// stretchPassphrase derives the two 32-byte halves used to conceal the
// key. The passphrase bytes are used as given, no Unicode normalization
// is applied.
func stretchPassphrase(passphrase string, salt []byte) ([]byte, error) {
	return scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, scryptKeyLen)
}

// EncryptKey encrypts a private key under a passphrase, as defined by
// BIP38 for non-EC-multiplied keys. The record binds the key to the
// address it has on the given profile, with the public key serialized in
// compressed or uncompressed form per the compressed flag. The result is
// Base58Check encoded.
// See https://github.com/bitcoin/bips/blob/master/bip-0038.mediawiki.
func EncryptKey(key *PrivateKey, passphrase string, compressed bool, profile NetworkProfile) (string, error) {
	if err := key.validate(); err != nil {
		return "", err
	}
	address, err := key.PublicKey().Address(profile, compressed)
	if err != nil {
		return "", err
	}
	salt := Hash256([]byte(address))[0:saltLength]

	derived, err := stretchPassphrase(passphrase, salt)
	if err != nil {
		return "", err
	}
	defer zeroBytes(derived)
	derivedHalf1 := derived[0:32]
	derivedHalf2 := derived[32:64]

	block, err := aes.NewCipher(derivedHalf2)
	if err != nil {
		return "", err
	}
	kb := key.Bytes()
	defer zeroBytes(kb)
	for i := range kb {
		kb[i] ^= derivedHalf1[i]
	}
	encrypted := make([]byte, KeyLength)
	block.Encrypt(encrypted[0:16], kb[0:16])
	block.Encrypt(encrypted[16:32], kb[16:32])

	flag := byte(flagBase)
	if compressed {
		flag |= flagCompressed
	}
	record := make([]byte, 0, recordLength+checkSumLength)
	record = append(record, recordPrefix, recordNonMult, flag)
	record = append(record, salt...)
	record = append(record, encrypted...)
	record = append(record, Hash256(record)[0:checkSumLength]...)
	return base58.Encode(record), nil
}

// DecryptKey decrypts a key previously encrypted under a passphrase. The
// second return value tells if the record designates a compressed public
// key. The address recomputed on the given profile is checked against the
// hash stored in the record, a mismatch means the passphrase is wrong and
// ErrIntegrityCheck is returned. Records using the EC multiplication
// scheme are rejected with ErrUnsupportedMode.
func DecryptKey(encryptedKey string, passphrase string, profile NetworkProfile) (*PrivateKey, bool, error) {
	raw := base58.Decode(encryptedKey)
	if len(raw) != recordLength+checkSumLength {
		return nil, false, fmt.Errorf("%w: encrypted key must be %d bytes long, got %d",
			ErrInvalidFormat, recordLength+checkSumLength, len(raw))
	}
	record := raw[0:recordLength]
	checkSum := raw[recordLength:]
	if !bytes.Equal(Hash256(record)[0:checkSumLength], checkSum) {
		return nil, false, fmt.Errorf("%w: checksum mismatch", ErrInvalidFormat)
	}
	if record[0] != recordPrefix {
		return nil, false, fmt.Errorf("%w: unknown record prefix 0x%02x",
			ErrInvalidFormat, record[0])
	}
	switch record[1] {
	case recordNonMult:
	case recordECMult:
		return nil, false, ErrUnsupportedMode
	default:
		return nil, false, fmt.Errorf("%w: unknown record type 0x%02x",
			ErrInvalidFormat, record[1])
	}
	flag := record[2]
	if flag&^flagCompressed != flagBase {
		return nil, false, fmt.Errorf("%w: invalid flag byte 0x%02x", ErrInvalidFormat, flag)
	}
	compressed := flag&flagCompressed != 0
	salt := record[3 : 3+saltLength]

	derived, err := stretchPassphrase(passphrase, salt)
	if err != nil {
		return nil, false, err
	}
	defer zeroBytes(derived)
	derivedHalf1 := derived[0:32]
	derivedHalf2 := derived[32:64]

	block, err := aes.NewCipher(derivedHalf2)
	if err != nil {
		return nil, false, err
	}
	kb := make([]byte, KeyLength)
	defer zeroBytes(kb)
	block.Decrypt(kb[0:16], record[7:23])
	block.Decrypt(kb[16:32], record[23:39])
	for i := range kb {
		kb[i] ^= derivedHalf1[i]
	}

	key, err := NewPrivateKeyFromBytes(kb)
	if err != nil {
		return nil, false, err
	}
	address, err := key.PublicKey().Address(profile, compressed)
	if err != nil {
		key.Zero()
		return nil, false, err
	}
	if !bytes.Equal(Hash256([]byte(address))[0:saltLength], salt) {
		key.Zero()
		return nil, false, ErrIntegrityCheck
	}
	return key, compressed, nil
}
