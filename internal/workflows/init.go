package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/sealbox/internal/audit"
)

// InitOptions configures the init workflow.
type InitOptions struct{}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	// Created is true when this call generated the key pair.
	Created bool

	// Fingerprint identifies the active public key.
	Fingerprint string

	PrivateKeyPath string
	PublicKeyPath  string
}

// Init makes sure a key pair exists, generating one on first run.
//
// Returns ErrStorage if the key files cannot be read or written.
// Returns ErrKeyGeneration if a new key pair cannot be generated.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
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

	privatePath, publicPath := env.store.Paths()
	result := &InitResult{
		Created:        created,
		Fingerprint:    kp.Fingerprint(),
		PrivateKeyPath: privatePath,
		PublicKeyPath:  publicPath,
	}

	env.audit.Log(audit.Entry{
		Operation: audit.OpInit,
		Key:       result.Fingerprint,
		OK:        true,
		Created:   created,
	})

	return result, nil
}
