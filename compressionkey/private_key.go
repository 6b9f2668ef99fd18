package compressionkey

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/btcsuite/btcd/btcec"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/pbkdf2"
)

const (
	PBKDF2_ITER = 16384
	PBKDF2_SIZE = 32

	// KeyLength is the length, in bytes, of a secp256k1 private key.
	KeyLength = 32
)

const curveName = "secp256k1"

// ErrInvalidKey is returned when a scalar is outside the valid range
// for a secp256k1 private key, that is, not in [1, N-1].
var ErrInvalidKey = fmt.Errorf("invalid private key scalar")

// ErrInvalidFormat is returned when encoded key material fails to parse:
// wrong length, bad checksum, unknown prefix and the like.
var ErrInvalidFormat = fmt.Errorf("invalid format")

// PrivateKey represents a secp256k1 private key.
type PrivateKey struct {
	privateKey *ecdsa.PrivateKey
}

// privateKeyJSON struct is used when serializing keys to JWK format.
type privateKeyJSON struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y"`
	D   string `json:"d"`
}

// validScalar tells if d is a valid secp256k1 private key scalar.
func validScalar(d *big.Int) bool {
	return d != nil && d.Sign() > 0 && d.Cmp(btcec.S256().N) < 0
}

// NewPrivateKey creates a new random private key.
func NewPrivateKey() (*PrivateKey, error) {
	privateKey, err := ecdsa.GenerateKey(btcec.S256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate private key, %v", err)
	}
	return &PrivateKey{privateKey: privateKey}, nil
}

// NewPrivateKeyFromSecret creates a private key from secret.
// The secret must be in the range [1, N-1], where N is the order of the
// secp256k1 group, otherwise ErrInvalidKey is returned.
func NewPrivateKeyFromSecret(secret *big.Int) (*PrivateKey, error) {
	if !validScalar(secret) {
		return nil, ErrInvalidKey
	}
	privateKey := &ecdsa.PrivateKey{
		D: new(big.Int).Set(secret)}
	privateKey.PublicKey.Curve = btcec.S256()
	privateKey.PublicKey.X, privateKey.PublicKey.Y =
		privateKey.PublicKey.Curve.ScalarBaseMult(secret.Bytes())
	return &PrivateKey{privateKey: privateKey}, nil
}

// NewPrivateKeyFromBytes creates a private key from its 32-byte big-endian
// representation.
func NewPrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != KeyLength {
		return nil, fmt.Errorf("%w: key must be %d bytes long, got %d",
			ErrInvalidFormat, KeyLength, len(b))
	}
	return NewPrivateKeyFromSecret(new(big.Int).SetBytes(b))
}

// NewPrivateKeyFromPassword creates a private key from password using
// PBKDF2 algorithm. The derived value is reduced to the valid scalar
// range, so every password yields a usable key.
// See https://en.wikipedia.org/wiki/PBKDF2.
func NewPrivateKeyFromPassword(password, salt []byte) (*PrivateKey, error) {
	secret := pbkdf2.Key(password, salt, PBKDF2_ITER, PBKDF2_SIZE, sha256.New)
	defer zeroBytes(secret)
	d := new(big.Int).SetBytes(secret)
	nMinusOne := new(big.Int).Sub(btcec.S256().N, big.NewInt(1))
	d.Mod(d, nMinusOne)
	d.Add(d, big.NewInt(1))
	defer zeroScalar(d)
	return NewPrivateKeyFromSecret(d)
}

// NewPrivateKeyFromMnemonic creates a private key from a BIP39
// mnemonic phrase.
func NewPrivateKeyFromMnemonic(mnemonic string) (*PrivateKey, error) {
	b, err := bip39.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return nil, err
	}
	return NewPrivateKeyFromSecret(new(big.Int).SetBytes(b))
}

// NewPrivateKeyFromFile loads private key from fileName. If no passphrase is
// given, the file is assumed to be in JWK format. If passphrase is given, the
// file is assumed to be in JWE format, containing encrypted JWK key.
func NewPrivateKeyFromFile(fileName string, passphrase string) (*PrivateKey, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to load private key: %v", err)
	}

	var jsonBytes []byte
	if passphrase != "" {
		jsonBytes, err = decryptWithPassphraseJWE(passphrase, string(data))
		if err != nil {
			return nil, err
		}
	} else {
		jsonBytes = data
	}

	return NewPrivateKeyFromJSON(string(jsonBytes))
}

// NewPrivateKeyFromJSON creates private key from JWK-encoded
// representation.
// See https://www.rfc-editor.org/rfc/rfc7517.
func NewPrivateKeyFromJSON(data string) (*PrivateKey, error) {
	var pkJSON privateKeyJSON
	err := json.Unmarshal([]byte(data), &pkJSON)
	if err != nil {
		return nil, err
	}
	if pkJSON.Kty != "EC" {
		return nil, fmt.Errorf("%w: unsupported key type %q", ErrInvalidFormat, pkJSON.Kty)
	}
	if pkJSON.Crv != curveName {
		return nil, fmt.Errorf("%w: unsupported curve %q", ErrInvalidFormat, pkJSON.Crv)
	}
	// JWK uses Base64url encoding, which is Base64 encoding without padding.
	dBytes, err := base64urlDecode(pkJSON.D)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer zeroBytes(dBytes)
	d := new(big.Int)
	d.SetBytes(dBytes)
	defer zeroScalar(d)
	return NewPrivateKeyFromSecret(d)
}

// Secret returns the private key's secret.
func (pk *PrivateKey) Secret() *big.Int {
	return pk.privateKey.D
}

// Bytes returns the private key as 32 bytes, big-endian, padded with
// zeros if necessary.
func (pk *PrivateKey) Bytes() []byte {
	return padWithZeros(pk.privateKey.D.Bytes(), KeyLength)
}

// Save saves the private key to the specified file. If passphrase is empty,
// the file will contain the key in JWK format. Otherwise, the file will
// contain encrypted JWK key in JWE format.
func (pk *PrivateKey) Save(fileName string, passphrase string) error {
	keyJWK, err := pk.MarshalToJSON()
	if err != nil {
		return err
	}
	content := keyJWK
	if passphrase != "" {
		content, err = encryptWithPassphraseJWE(passphrase, []byte(content))
		if err != nil {
			return err
		}
	}

	return os.WriteFile(fileName, []byte(content), 0600)
}

// PublicKey returns the public key derived from this private key.
func (pk *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{publicKey: &pk.privateKey.PublicKey}
}

// Mnemonic returns a mnemonic phrase which can be used to recover this
// private key.
func (pk *PrivateKey) Mnemonic() (string, error) {
	return bip39.NewMnemonic(pk.Bytes())
}

// Equal returns true if this key is equal to the other key.
func (pk *PrivateKey) Equal(other *PrivateKey) bool {
	return pk.privateKey.D.Cmp(other.privateKey.D) == 0
}

// ToECDSA returns this key as crypto/ecdsa private key.
func (pk *PrivateKey) ToECDSA() *ecdsa.PrivateKey {
	return pk.privateKey
}

// Zero overwrites the key's secret scalar. The key must not be used
// afterwards.
func (pk *PrivateKey) Zero() {
	zeroScalar(pk.privateKey.D)
}

// MarshalToJSON returns the key JWK representation,
// see https://www.rfc-editor.org/rfc/rfc7517.
func (pk *PrivateKey) MarshalToJSON() (string, error) {
	xEncoded := base64urlEncode(padWithZeros(pk.PublicKey().X().Bytes(), KeyLength))
	yEncoded := base64urlEncode(padWithZeros(pk.PublicKey().Y().Bytes(), KeyLength))
	dEncoded := base64urlEncode(pk.Bytes())

	b, err := json.Marshal(privateKeyJSON{
		Kty: "EC",
		Crv: curveName,
		X:   xEncoded,
		Y:   yEncoded,
		D:   dEncoded,
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (pk *PrivateKey) validate() error {
	if pk == nil || pk.privateKey == nil || !validScalar(pk.privateKey.D) {
		return ErrInvalidKey
	}
	return nil
}
