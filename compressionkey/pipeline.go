package compressionkey

// DerivedKeySet collects everything derivable from a single private key
// on a given network: both WIF encodings, both public key serializations
// and both addresses.
type DerivedKeySet struct {
	PrivateKey *PrivateKey
	// WIF encodings of the private key.
	WIFCompressed   string
	WIFUncompressed string
	// SEC serializations of the public key.
	PublicKeyCompressed   []byte
	PublicKeyUncompressed []byte
	// Addresses on the network profile.
	AddressCompressed   string
	AddressUncompressed string
	// Reencrypted is the key encrypted again under the same passphrase
	// and flag it was decrypted with. Only set by
	// NewDerivedKeySetFromEncrypted.
	Reencrypted string
}

// NewDerivedKeySet derives the full set of representations of a private
// key on the given network profile.
func NewDerivedKeySet(key *PrivateKey, profile NetworkProfile) (*DerivedKeySet, error) {
	if err := key.validate(); err != nil {
		return nil, err
	}
	publicKey := key.PublicKey()
	addressCompressed, err := publicKey.Address(profile, true)
	if err != nil {
		return nil, err
	}
	addressUncompressed, err := publicKey.Address(profile, false)
	if err != nil {
		return nil, err
	}
	return &DerivedKeySet{
		PrivateKey:            key,
		WIFCompressed:         key.WIF(profile, true),
		WIFUncompressed:       key.WIF(profile, false),
		PublicKeyCompressed:   publicKey.CompressedBytes(),
		PublicKeyUncompressed: publicKey.Bytes(),
		AddressCompressed:     addressCompressed,
		AddressUncompressed:   addressUncompressed,
	}, nil
}

// NewDerivedKeySetFromEncrypted decrypts an encrypted key and derives the
// full set of its representations on the given network profile. The
// Reencrypted field of the result carries the key encrypted again under
// the same passphrase, which reproduces the input record byte for byte.
func NewDerivedKeySetFromEncrypted(encryptedKey string, passphrase string, profile NetworkProfile) (*DerivedKeySet, error) {
	key, compressed, err := DecryptKey(encryptedKey, passphrase, profile)
	if err != nil {
		return nil, err
	}
	set, err := NewDerivedKeySet(key, profile)
	if err != nil {
		return nil, err
	}
	set.Reencrypted, err = EncryptKey(key, passphrase, compressed, profile)
	if err != nil {
		return nil, err
	}
	return set, nil
}
