package configs

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/sealbox/internal/keystore"
)

// writeLegacyKeys creates a key pair in dir using the working-directory layout.
func writeLegacyKeys(t *testing.T, dir string) *keystore.KeyPair {
	t.Helper()
	kp, err := keystore.GenerateKeyPair()
	if err != nil {
		t.Fatalf("Failed to generate key pair: %v", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create legacy dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, keystore.DefaultPrivateKeyFile), kp.PrivateKey[:], 0644); err != nil {
		t.Fatalf("Failed to write private key: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, keystore.DefaultPublicKeyFile), kp.PublicKey[:], 0644); err != nil {
		t.Fatalf("Failed to write public key: %v", err)
	}
	return kp
}

func TestIsLegacyKeyDir(t *testing.T) {
	t.Run("EmptyPathReturnsFalse", func(t *testing.T) {
		if IsLegacyKeyDir("") {
			t.Fatal("Expected false for empty path")
		}
	})

	t.Run("NonExistentPathReturnsFalse", func(t *testing.T) {
		if IsLegacyKeyDir("/nonexistent/path") {
			t.Fatal("Expected false for non-existent path")
		}
	})

	t.Run("OnlyPublicKeyReturnsFalse", func(t *testing.T) {
		tempDir := t.TempDir()
		if err := os.WriteFile(filepath.Join(tempDir, keystore.DefaultPublicKeyFile), make([]byte, 32), 0644); err != nil {
			t.Fatalf("Failed to write public key: %v", err)
		}
		if IsLegacyKeyDir(tempDir) {
			t.Fatal("Expected false when the private key is missing")
		}
	})

	t.Run("BothKeysReturnsTrue", func(t *testing.T) {
		tempDir := t.TempDir()
		writeLegacyKeys(t, tempDir)
		if !IsLegacyKeyDir(tempDir) {
			t.Fatal("Expected true for a directory holding both key files")
		}
	})
}

func TestMigrateLegacyKeys(t *testing.T) {
	t.Run("CopiesIntoEmptyKeyDir", func(t *testing.T) {
		tempDir := withTempSettings(t)
		legacyDir := filepath.Join(tempDir, "legacy")
		kp := writeLegacyKeys(t, legacyDir)

		result, err := MigrateLegacyKeys(legacyDir)
		if err != nil {
			t.Fatalf("MigrateLegacyKeys failed: %v", err)
		}
		if result.BackupPath != "" {
			t.Errorf("Expected no backup, got %s", result.BackupPath)
		}
		if result.Fingerprint != kp.Fingerprint() {
			t.Errorf("Expected fingerprint %s, got %s", kp.Fingerprint(), result.Fingerprint)
		}

		keysDir := filepath.Join(tempDir, "data", "keys")
		if result.KeysDir != keysDir {
			t.Errorf("Expected keys dir %s, got %s", keysDir, result.KeysDir)
		}

		loaded, err := keystore.New(keysDir).Load()
		if err != nil {
			t.Fatalf("Imported key pair does not load: %v", err)
		}
		if *loaded.PrivateKey != *kp.PrivateKey || *loaded.PublicKey != *kp.PublicKey {
			t.Error("Imported key pair differs from the legacy one")
		}

		info, err := os.Stat(filepath.Join(keysDir, keystore.DefaultPrivateKeyFile))
		if err != nil {
			t.Fatalf("Failed to stat private key: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("Expected imported private key mode 0600, got %o", info.Mode().Perm())
		}

		if !IsLegacyKeyDir(legacyDir) {
			t.Error("Legacy files should be left in place")
		}
	})

	t.Run("BacksUpExistingKeys", func(t *testing.T) {
		tempDir := withTempSettings(t)
		keysDir := filepath.Join(tempDir, "data", "keys")
		existing, _, err := keystore.New(keysDir).LoadOrCreate()
		if err != nil {
			t.Fatalf("Failed to create existing keys: %v", err)
		}

		legacyDir := filepath.Join(tempDir, "legacy")
		writeLegacyKeys(t, legacyDir)

		result, err := MigrateLegacyKeys(legacyDir)
		if err != nil {
			t.Fatalf("MigrateLegacyKeys failed: %v", err)
		}
		if !strings.HasPrefix(result.BackupPath, keysDir+"-backup-") {
			t.Fatalf("Unexpected backup path %q", result.BackupPath)
		}

		backedUp, err := os.ReadFile(filepath.Join(result.BackupPath, keystore.DefaultPrivateKeyFile))
		if err != nil {
			t.Fatalf("Failed to read backed up key: %v", err)
		}
		if !bytes.Equal(backedUp, existing.PrivateKey[:]) {
			t.Error("Backup does not hold the replaced private key")
		}
	})

	t.Run("UsesConfiguredFileNames", func(t *testing.T) {
		tempDir := withTempSettings(t)
		config := DefaultConfig()
		config.Keys.PrivateKeyFile = "box.key"
		config.Keys.PublicKeyFile = "box.pub"
		if err := SaveConfig(config); err != nil {
			t.Fatalf("SaveConfig failed: %v", err)
		}

		legacyDir := filepath.Join(tempDir, "legacy")
		writeLegacyKeys(t, legacyDir)

		if _, err := MigrateLegacyKeys(legacyDir); err != nil {
			t.Fatalf("MigrateLegacyKeys failed: %v", err)
		}
		if _, err := os.Stat(filepath.Join(tempDir, "data", "keys", "box.key")); err != nil {
			t.Errorf("Expected box.key in key dir: %v", err)
		}
	})

	t.Run("RejectsCorruptKeys", func(t *testing.T) {
		tempDir := withTempSettings(t)
		legacyDir := filepath.Join(tempDir, "legacy")
		writeLegacyKeys(t, legacyDir)
		if err := os.WriteFile(filepath.Join(legacyDir, keystore.DefaultPublicKeyFile), []byte("short"), 0644); err != nil {
			t.Fatalf("Failed to corrupt key: %v", err)
		}

		if _, err := MigrateLegacyKeys(legacyDir); err == nil {
			t.Fatal("Expected error for a corrupt legacy key")
		}
		if _, err := os.Stat(filepath.Join(tempDir, "data", "keys")); !os.IsNotExist(err) {
			t.Error("Nothing should be written when the legacy keys are corrupt")
		}
	})

	t.Run("RejectsMissingKeys", func(t *testing.T) {
		withTempSettings(t)
		if _, err := MigrateLegacyKeys(t.TempDir()); err == nil {
			t.Fatal("Expected error for a directory without keys")
		}
	})

	t.Run("RejectsCurrentKeyDir", func(t *testing.T) {
		tempDir := withTempSettings(t)
		keysDir := filepath.Join(tempDir, "data", "keys")
		if _, _, err := keystore.New(keysDir).LoadOrCreate(); err != nil {
			t.Fatalf("Failed to create keys: %v", err)
		}

		if _, err := MigrateLegacyKeys(keysDir); err == nil {
			t.Fatal("Expected error when importing the key dir into itself")
		}
	})
}
