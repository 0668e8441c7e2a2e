package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/sealbox/internal/keystore"
)

// MigrationResult contains information about an imported key pair.
type MigrationResult struct {
	// Source is the directory the key files were copied from.
	Source string

	// KeysDir is where the key pair lives now.
	KeysDir string

	// Fingerprint identifies the imported public key.
	Fingerprint string

	// BackupPath holds the key pair that was replaced, or "" if there was none.
	BackupPath string
}

// IsLegacyKeyDir checks if dir holds a key pair in the old working-directory
// layout: private_sodium.key and public_sodium.key side by side.
func IsLegacyKeyDir(dir string) bool {
	if dir == "" {
		return false
	}
	exists, err := keystore.New(dir).Exists()
	return err == nil && exists
}

// MigrateLegacyKeys copies a key pair from legacyDir into the configured key
// directory. An existing key pair there is backed up first. The legacy files
// are left in place.
func MigrateLegacyKeys(legacyDir string) (*MigrationResult, error) {
	if legacyDir == "" {
		return nil, fmt.Errorf("legacy key directory is empty")
	}

	absLegacy, err := filepath.Abs(legacyDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", legacyDir, err)
	}

	if !IsLegacyKeyDir(absLegacy) {
		return nil, fmt.Errorf("no key pair found in %s", absLegacy)
	}

	// Refuse to import key files that would not load afterwards.
	legacy := keystore.New(absLegacy)
	kp, err := legacy.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy key pair: %w", err)
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	target := config.KeyStore()

	absTarget, err := filepath.Abs(target.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", target.Dir, err)
	}
	if absTarget == absLegacy &&
		target.PrivateKeyFile == keystore.DefaultPrivateKeyFile &&
		target.PublicKeyFile == keystore.DefaultPublicKeyFile {
		return nil, fmt.Errorf("%s is already the key directory", absLegacy)
	}

	result := &MigrationResult{
		Source:      absLegacy,
		KeysDir:     target.Dir,
		Fingerprint: kp.Fingerprint(),
	}

	exists, err := target.Exists()
	if err != nil {
		return nil, err
	}
	if exists {
		backupPath, err := createBackup(target.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to create backup: %w", err)
		}
		result.BackupPath = backupPath
	}

	if err := os.MkdirAll(target.Dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create key directory: %w", err)
	}

	legacyPrivate, legacyPublic := legacy.Paths()
	targetPrivate, targetPublic := target.Paths()
	if err := copyFile(legacyPrivate, targetPrivate, 0600); err != nil {
		return nil, fmt.Errorf("failed to copy private key: %w", err)
	}
	if err := copyFile(legacyPublic, targetPublic, 0644); err != nil {
		return nil, fmt.Errorf("failed to copy public key: %w", err)
	}

	return result, nil
}

// createBackup copies the key directory next to itself.
func createBackup(keysDir string) (string, error) {
	backupDir := filepath.Clean(keysDir) + "-backup-" + time.Now().Format("20060102-150405")

	if err := copyDir(keysDir, backupDir); err != nil {
		return "", fmt.Errorf("failed to copy directory: %w", err)
	}

	return backupDir, nil
}

// copyDir copies the regular files of a directory. The first-run lock file
// is skipped.
func copyDir(src, dst string) error {
	if err := os.MkdirAll(dst, 0700); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == keystore.LockFileName {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		if err := copyFile(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name()), info.Mode().Perm()); err != nil {
			return err
		}
	}

	return nil
}

// copyFile copies a single file and sets its mode.
func copyFile(src, dst string, mode os.FileMode) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	if err := os.WriteFile(dst, data, mode); err != nil {
		return err
	}
	// WriteFile leaves the mode of an existing file alone.
	return os.Chmod(dst, mode)
}
