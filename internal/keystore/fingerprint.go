package keystore

import (
	"encoding/base64"

	"github.com/tv42/zbase32"
	"golang.org/x/crypto/blake2b"
)

const fingerprintBytes = 10

// Fingerprint returns a short zbase32 identifier for a public key, suitable
// for logs and display. It is not a security check.
func Fingerprint(publicKey *[KeySize]byte) string {
	sum := blake2b.Sum256(publicKey[:])
	return zbase32.EncodeToString(sum[:fingerprintBytes])
}

// Fingerprint returns the fingerprint of the pair's public key.
func (kp *KeyPair) Fingerprint() string {
	return Fingerprint(kp.PublicKey)
}

// PublicKeyBase64 returns the public key in standard base64.
func (kp *KeyPair) PublicKeyBase64() string {
	return base64.StdEncoding.EncodeToString(kp.PublicKey[:])
}
