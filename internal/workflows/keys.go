package workflows

import (
	"context"
	"fmt"
	"os"

	kerrors "github.com/PolarWolf314/sealbox/internal/errors"
)

// KeysShowResult describes the active key pair without exposing the private key.
type KeysShowResult struct {
	Fingerprint string

	// PublicKey is the raw public key in standard base64.
	PublicKey string

	PrivateKeyPath string
	PublicKeyPath  string

	// PrivateKeyMode is the permission bits of the private key file.
	PrivateKeyMode os.FileMode
}

// KeysShow reports on the existing key pair. Unlike the other workflows it
// never generates keys.
//
// Returns ErrKeysNotInitialized if no key pair exists.
func KeysShow(ctx context.Context) (*KeysShowResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	env, err := loadEnvironment()
	if err != nil {
		return nil, err
	}

	exists, err := env.store.Exists()
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, kerrors.ErrKeysNotInitialized
	}

	kp, err := env.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading key pair: %w", err)
	}

	privatePath, publicPath := env.store.Paths()
	result := &KeysShowResult{
		Fingerprint:    kp.Fingerprint(),
		PublicKey:      kp.PublicKeyBase64(),
		PrivateKeyPath: privatePath,
		PublicKeyPath:  publicPath,
	}

	if info, err := os.Stat(privatePath); err == nil {
		result.PrivateKeyMode = info.Mode().Perm()
	}

	return result, nil
}
