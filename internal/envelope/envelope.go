package envelope

import (
	"crypto/rand"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/sealbox/internal/errors"
	"github.com/PolarWolf314/sealbox/internal/keystore"
	"golang.org/x/crypto/nacl/box"
)

const (
	// NonceSize is the box nonce length prepended to every envelope.
	NonceSize = 24

	// Overhead is the authentication tag length added to every ciphertext.
	Overhead = box.Overhead
)

// nonceReader is the source of per-message nonces.
var nonceReader io.Reader = rand.Reader

// Envelope is a sealed message: the nonce it was sealed with and the
// ciphertext, tag included.
type Envelope struct {
	Nonce      [NonceSize]byte
	Ciphertext []byte
}

// Bytes returns nonce || ciphertext.
func (e *Envelope) Bytes() []byte {
	out := make([]byte, 0, NonceSize+len(e.Ciphertext))
	out = append(out, e.Nonce[:]...)
	return append(out, e.Ciphertext...)
}

// Box is the shared key derived from one key pair. Sealbox encrypts to its own
// public key with its own private key, so the same pair plays sender and
// recipient and the box acts as authenticated self-encryption.
type Box struct {
	shared [keystore.KeySize]byte
}

// NewBox precomputes the shared key for kp.
func NewBox(kp *keystore.KeyPair) *Box {
	b := &Box{}
	box.Precompute(&b.shared, kp.PublicKey, kp.PrivateKey)
	return b
}

// Seal encrypts plaintext under a fresh random nonce.
func (b *Box) Seal(plaintext []byte) (*Envelope, error) {
	env := &Envelope{}
	if _, err := io.ReadFull(nonceReader, env.Nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	env.Ciphertext = box.SealAfterPrecomputation(nil, plaintext, &env.Nonce, &b.shared)
	return env, nil
}

// Open authenticates and decrypts env. No plaintext is returned unless the
// tag verifies.
func (b *Box) Open(env *Envelope) ([]byte, error) {
	plaintext, ok := box.OpenAfterPrecomputation(nil, env.Ciphertext, &env.Nonce, &b.shared)
	if !ok {
		return nil, kerrors.ErrDecryptFailed
	}
	if plaintext == nil {
		// Distinguish a valid empty message from a failure for callers that
		// compare against nil.
		plaintext = []byte{}
	}
	return plaintext, nil
}

// Parse splits serialized nonce || ciphertext. Input shorter than a nonce is
// rejected as ErrDecryptFailed.
func Parse(data []byte) (*Envelope, error) {
	if len(data) < NonceSize {
		return nil, fmt.Errorf("%w: envelope is %d bytes, shorter than the %d-byte nonce",
			kerrors.ErrDecryptFailed, len(data), NonceSize)
	}
	env := &Envelope{Ciphertext: append([]byte(nil), data[NonceSize:]...)}
	copy(env.Nonce[:], data[:NonceSize])
	return env, nil
}

// Seal encrypts plaintext to kp with a fresh nonce.
func Seal(plaintext []byte, kp *keystore.KeyPair) (*Envelope, error) {
	return NewBox(kp).Seal(plaintext)
}

// Open decrypts serialized nonce || ciphertext with kp.
func Open(data []byte, kp *keystore.KeyPair) ([]byte, error) {
	env, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return NewBox(kp).Open(env)
}

// OpenEnvelope decrypts an already parsed envelope with kp.
func OpenEnvelope(env *Envelope, kp *keystore.KeyPair) ([]byte, error) {
	return NewBox(kp).Open(env)
}
