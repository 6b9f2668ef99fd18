package compressionkey

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_NetworkProfile_UTXOAddress(t *testing.T) {
	assert := assert.New(t)

	key, err := NewPrivateKeyFromSecret(big.NewInt(1))
	assert.NoError(err)
	publicKey := key.PublicKey()

	address, err := publicKey.Address(BitcoinMainnet, false)
	assert.NoError(err)
	assert.Equal("1EHNa6Q4Jz2uvNExL497mE43ikXhwF6kZm", address)

	address, err = publicKey.Address(BitcoinMainnet, true)
	assert.NoError(err)
	assert.Equal("1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH", address)
}

func Test_NetworkProfile_TestnetAddress(t *testing.T) {
	assert := assert.New(t)

	key, err := NewPrivateKeyFromSecret(big.NewInt(1))
	assert.NoError(err)
	publicKey := key.PublicKey()

	mainnet, err := publicKey.Address(BitcoinMainnet, true)
	assert.NoError(err)
	testnet, err := publicKey.Address(BitcoinTestnet, true)
	assert.NoError(err)
	assert.NotEqual(mainnet, testnet)
	// Version byte 0x6f puts testnet addresses in the m/n range.
	assert.Contains("mn", testnet[0:1])
}

func Test_NetworkProfile_AccountAddress(t *testing.T) {
	assert := assert.New(t)

	key, err := NewPrivateKeyFromSecret(big.NewInt(1))
	assert.NoError(err)
	publicKey := key.PublicKey()

	address, err := publicKey.Address(AccountMainnet, false)
	assert.NoError(err)
	assert.Equal("0x7e5f4552091a69125d5dfcb7b8c2659029395bdf", address)

	// The compressed form is hashed whole and yields a different address.
	compressedAddress, err := publicKey.Address(AccountMainnet, true)
	assert.NoError(err)
	assert.NotEqual(address, compressedAddress)
	assert.True(strings.HasPrefix(compressedAddress, "0x"))
	assert.Equal(42, len(compressedAddress))
	assert.Equal(strings.ToLower(compressedAddress), compressedAddress)
}

func Test_NetworkProfile_BadPublicKey(t *testing.T) {
	assert := assert.New(t)

	_, err := BitcoinMainnet.Address(nil)
	assert.ErrorIs(err, ErrInvalidFormat)
	_, err = BitcoinMainnet.Address(make([]byte, 64))
	assert.ErrorIs(err, ErrInvalidFormat)
	_, err = AccountMainnet.Address(make([]byte, 66))
	assert.ErrorIs(err, ErrInvalidFormat)
}

func Test_NetworkProfile_UnknownModel(t *testing.T) {
	assert := assert.New(t)

	profile := NetworkProfile{Name: "mystery", Model: AddressModel(99)}
	_, err := profile.Address(make([]byte, CompressedKeyLength))
	assert.Error(err)
}

func Test_AddressModel_String(t *testing.T) {
	assert := assert.New(t)

	assert.EqualValues("utxo", UTXOModel.String())
	assert.EqualValues("account", AccountModel.String())
	assert.EqualValues("Invalid", AddressModel(99).String())
}
