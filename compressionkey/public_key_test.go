package compressionkey

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

const serializedKey5001 = "0357a4f368868a8a6d572991e484e664810ff14c05c0fa023275251151fe0e53d1"

type keyComponents struct {
	X string
	Y string
}

var key5001Components = keyComponents{
	X: "57a4f368868a8a6d572991e484e664810ff14c05c0fa023275251151fe0e53d1",
	Y: "0d6cc87c5bc29b83368e17869e964f2f53d52ea3aa3e5a9efa1fa578123a0c6d",
}

// The generator point, in both SEC forms.
const (
	serializedKey1Compressed   = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	serializedKey1Uncompressed = "0479be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798" +
		"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"
)

func Test_PublicKey_CompressedBytes(t *testing.T) {
	assert := assert.New(t)

	privateKey, err := NewPrivateKeyFromSecret(big.NewInt(5001))
	assert.NoError(err)
	serialized := privateKey.PublicKey().CompressedBytes()
	assert.EqualValues(serializedKey5001, fmt.Sprintf("%x", serialized))

	privateKey, err = NewPrivateKeyFromSecret(big.NewInt(1))
	assert.NoError(err)
	serialized = privateKey.PublicKey().CompressedBytes()
	assert.EqualValues(serializedKey1Compressed, fmt.Sprintf("%x", serialized))
}

func Test_PublicKey_Bytes(t *testing.T) {
	assert := assert.New(t)

	privateKey, err := NewPrivateKeyFromSecret(big.NewInt(1))
	assert.NoError(err)
	serialized := privateKey.PublicKey().Bytes()
	assert.Equal(UncompressedKeyLength, len(serialized))
	assert.EqualValues(serializedKey1Uncompressed, fmt.Sprintf("%x", serialized))
}

func Test_PublicKey_FromCompressedBytes(t *testing.T) {
	assert := assert.New(t)

	serialized, _ := new(big.Int).SetString(serializedKey5001, 16)
	publicKey, err := NewPublicKeyFromBytes(serialized.Bytes())
	assert.NoError(err)
	assert.NotNil(publicKey)
	assert.EqualValues(key5001Components.X, fmt.Sprintf("%064x", publicKey.X()))
	assert.EqualValues(key5001Components.Y, fmt.Sprintf("%064x", publicKey.Y()))
}

func Test_PublicKey_FromBytes(t *testing.T) {
	assert := assert.New(t)

	key, err := NewPrivateKey()
	assert.NoError(err)
	publicKey := key.PublicKey()

	// Uncompressed form round trip.
	decoded, err := NewPublicKeyFromBytes(publicKey.Bytes())
	assert.NoError(err)
	assert.True(publicKey.Equal(decoded))

	// Compressed form round trip.
	decoded, err = NewPublicKeyFromBytes(publicKey.CompressedBytes())
	assert.NoError(err)
	assert.True(publicKey.Equal(decoded))
}

func Test_PublicKey_FromBytes_Errors(t *testing.T) {
	assert := assert.New(t)

	// Wrong lengths.
	_, err := NewPublicKeyFromBytes(nil)
	assert.ErrorIs(err, ErrInvalidFormat)
	_, err = NewPublicKeyFromBytes(make([]byte, 10))
	assert.ErrorIs(err, ErrInvalidFormat)

	// Wrong form marker.
	bad := make([]byte, CompressedKeyLength)
	bad[0] = 0x05
	_, err = NewPublicKeyFromBytes(bad)
	assert.ErrorIs(err, ErrInvalidFormat)

	// x = 5 has no matching y on the curve.
	bad = make([]byte, CompressedKeyLength)
	bad[0] = 0x02
	bad[CompressedKeyLength-1] = 0x05
	_, err = NewPublicKeyFromBytes(bad)
	assert.ErrorIs(err, ErrInvalidFormat)

	// Uncompressed point off the curve.
	key, err := NewPrivateKeyFromSecret(big.NewInt(1))
	assert.NoError(err)
	serialized := key.PublicKey().Bytes()
	serialized[UncompressedKeyLength-1] ^= 0x01
	_, err = NewPublicKeyFromBytes(serialized)
	assert.ErrorIs(err, ErrInvalidFormat)
}

func Test_PublicKey_Address(t *testing.T) {
	assert := assert.New(t)

	secret, _ := new(big.Int).SetString("12345deadbeef", 16)
	privateKey, err := NewPrivateKeyFromSecret(secret)
	assert.NoError(err)
	address, err := privateKey.PublicKey().Address(BitcoinMainnet, true)
	assert.NoError(err)
	assert.Equal("1F1Pn2y6pDb68E5nYJJeba4TLg2U7B6KF1", address)
}

func Test_PublicKey_Equal(t *testing.T) {
	assert := assert.New(t)

	privateKey1, err := NewPrivateKey()
	assert.NoError(err)
	publicKey1 := privateKey1.PublicKey()
	publicKey2, err := NewPublicKeyFromBytes(publicKey1.CompressedBytes())
	assert.NoError(err)

	assert.True(publicKey1.Equal(publicKey2))
	assert.True(publicKey1.EqualSerializedCompressed(publicKey2.CompressedBytes()))
	assert.False(publicKey1.Equal(nil))

	privateKey3, err := NewPrivateKey()
	assert.NoError(err)
	publicKey3 := privateKey3.PublicKey()

	assert.False(publicKey1.Equal(publicKey3))
	assert.False(publicKey1.EqualSerializedCompressed(publicKey3.CompressedBytes()))
}

func Test_PublicKey_ToECDSA(t *testing.T) {
	assert := assert.New(t)

	privateKey, err := NewPrivateKey()
	assert.NoError(err)
	assert.NotNil(privateKey.PublicKey().ToECDSA())
}
