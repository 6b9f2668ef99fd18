package compressionkey

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcutil/base58"
	"github.com/ethereum/go-ethereum/crypto"
)

// AddressModel tells how a network derives addresses from public keys.
type AddressModel int

const (
	// UTXOModel networks use Base58Check over Hash160 of the serialized
	// public key, the way Bitcoin does.
	UTXOModel AddressModel = 1
	// AccountModel networks use the last 20 bytes of the Keccak256 hash
	// of the public key, the way Ethereum does.
	AccountModel AddressModel = 2
)

// String returns the address model name as a string.
func (m AddressModel) String() string {
	switch m {
	case UTXOModel:
		return "utxo"
	case AccountModel:
		return "account"
	}
	return "Invalid"
}

// NetworkProfile describes a network for the purpose of deriving
// addresses and encoding private keys. The zero value is not usable,
// use one of the predefined profiles or fill in all the fields for
// the target network.
type NetworkProfile struct {
	// Name identifies the network.
	Name string
	// Model selects the address derivation scheme.
	Model AddressModel
	// AddressVersion is the version byte prepended to Base58Check
	// addresses. Used by UTXOModel networks only.
	AddressVersion byte
	// AddressPrefix is prepended to hex addresses. Used by AccountModel
	// networks only.
	AddressPrefix string
	// WIFVersion is the version byte prepended to keys in WIF.
	WIFVersion byte
}

// BitcoinMainnet is the main Bitcoin network.
var BitcoinMainnet = NetworkProfile{
	Name:           "bitcoin",
	Model:          UTXOModel,
	AddressVersion: 0x00,
	WIFVersion:     0x80,
}

// BitcoinTestnet is the Bitcoin test network (testnet3).
var BitcoinTestnet = NetworkProfile{
	Name:           "bitcoin-testnet",
	Model:          UTXOModel,
	AddressVersion: 0x6f,
	WIFVersion:     0xef,
}

// AccountMainnet is an Ethereum-style account network.
var AccountMainnet = NetworkProfile{
	Name:          "ethereum",
	Model:         AccountModel,
	AddressPrefix: "0x",
	WIFVersion:    0x80,
}

// Address derives the address for a public key on this network. The key
// must be serialized in SEC compressed or uncompressed format.
func (p NetworkProfile) Address(publicKey []byte) (string, error) {
	if len(publicKey) != CompressedKeyLength && len(publicKey) != UncompressedKeyLength {
		return "", fmt.Errorf("%w: public key must be %d or %d bytes long, got %d",
			ErrInvalidFormat, CompressedKeyLength, UncompressedKeyLength, len(publicKey))
	}
	switch p.Model {
	case UTXOModel:
		return p.utxoAddress(publicKey), nil
	case AccountModel:
		return p.accountAddress(publicKey), nil
	}
	return "", fmt.Errorf("unknown address model %d", p.Model)
}

func (p NetworkProfile) utxoAddress(publicKey []byte) string {
	prefix := []byte{p.AddressVersion}
	hash := Hash160(publicKey)
	s1 := bytes.Join([][]byte{prefix, hash}, nil)
	checkSum := Hash256(s1)[0:4]
	addr := bytes.Join([][]byte{s1, checkSum}, nil)
	return base58.Encode(addr)
}

// accountAddress hashes the serialized key without the 0x04 marker of the
// uncompressed form. Compressed keys are hashed whole.
func (p NetworkProfile) accountAddress(publicKey []byte) string {
	body := publicKey
	if body[0] == 0x04 {
		body = body[1:]
	}
	sum := crypto.Keccak256(body)
	return p.AddressPrefix + hex.EncodeToString(sum[12:])
}
