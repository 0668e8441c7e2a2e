package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/sealbox/internal/audit"
	"github.com/PolarWolf314/sealbox/internal/envelope"
)

// EncryptOptions configures the encrypt workflow.
type EncryptOptions struct {
	// Message is the plaintext to seal.
	Message []byte
}

// EncryptResult contains the outcome of an encrypt operation.
type EncryptResult struct {
	// Sealed is the transport text: base64(nonce || ciphertext).
	Sealed string

	// Fingerprint identifies the key pair the message was sealed with.
	Fingerprint string

	// KeysCreated is true when the key pair was generated by this call.
	KeysCreated bool
}

// Encrypt seals a message with the local key pair, generating the pair first
// if it does not exist yet.
//
// An empty message is sealed like any other.
// Returns ErrStorage or ErrKeyGeneration if the key pair is unavailable.
func Encrypt(ctx context.Context, opts EncryptOptions) (*EncryptResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	env, err := loadEnvironment()
	if err != nil {
		return nil, err
	}

	kp, created, err := env.store.LoadOrCreate()
	if err != nil {
		return nil, fmt.Errorf("loading key pair: %w", err)
	}
	fingerprint := kp.Fingerprint()

	sealed, err := envelope.SealString(opts.Message, kp)
	if err != nil {
		env.audit.Log(audit.Entry{Operation: audit.OpEncrypt, Key: fingerprint, Bytes: len(opts.Message)})
		return nil, fmt.Errorf("sealing message: %w", err)
	}

	env.audit.Log(audit.Entry{
		Operation: audit.OpEncrypt,
		Key:       fingerprint,
		Bytes:     len(opts.Message),
		OK:        true,
	})

	return &EncryptResult{
		Sealed:      sealed,
		Fingerprint: fingerprint,
		KeysCreated: created,
	}, nil
}
