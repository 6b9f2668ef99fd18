/*
Package compressionkey converts secp256k1 private keys between their common
encodings and recovers keys from passphrase-encrypted records (BIP38,
non-EC-multiplied form).

The supported operations include:

-- Creating private keys, in various ways, including from encrypted key records and WIF

-- Encrypting a private key under a passphrase into a Base58Check record

-- Deriving public keys, WIF encodings and addresses, for networks described by profiles

-- Expanding an encrypted key into the full set of its representations in one call

-- Saving private key to file, possibly passphrase-protected, and reading it back

See the examples for more information.
*/
package compressionkey
