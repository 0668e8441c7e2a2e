package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/sealbox/internal/audit"
	"github.com/PolarWolf314/sealbox/internal/envelope"
	kerrors "github.com/PolarWolf314/sealbox/internal/errors"
)

// DecryptOptions configures the decrypt workflow.
type DecryptOptions struct {
	// Sealed is the transport text produced by Encrypt.
	Sealed string
}

// DecryptResult contains the outcome of a decrypt operation.
type DecryptResult struct {
	// Plaintext is the recovered message.
	Plaintext []byte

	// Fingerprint identifies the key pair used to open the message.
	Fingerprint string

	// KeysCreated is true when the key pair was generated by this call, in
	// which case no earlier message can open.
	KeysCreated bool
}

// Decrypt opens a sealed message with the local key pair. Like Encrypt it
// generates the pair if none exists.
//
// Returns ErrEmptyMessage if the input is blank.
// Returns ErrFormat if the input is not valid base64.
// Returns ErrDecryptFailed if the message is truncated, tampered with, or
// was sealed with another key pair. Use kerrors.IsDecryptFailure to treat
// both alike when talking to users.
func Decrypt(ctx context.Context, opts DecryptOptions) (*DecryptResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(opts.Sealed) == "" {
		return nil, kerrors.ErrEmptyMessage
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

	plaintext, err := envelope.OpenString(opts.Sealed, kp)
	if err != nil {
		env.audit.Log(audit.Entry{Operation: audit.OpDecrypt, Key: fingerprint, Bytes: len(opts.Sealed)})
		return nil, fmt.Errorf("opening message: %w", err)
	}

	env.audit.Log(audit.Entry{
		Operation: audit.OpDecrypt,
		Key:       fingerprint,
		Bytes:     len(plaintext),
		OK:        true,
	})

	return &DecryptResult{
		Plaintext:   plaintext,
		Fingerprint: fingerprint,
		KeysCreated: created,
	}, nil
}
