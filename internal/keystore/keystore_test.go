package keystore

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	kerrors "github.com/PolarWolf314/sealbox/internal/errors"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy source unavailable")
}

func TestLoadOrCreate_FirstRunCreatesRawKeyFiles(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "keys"))

	kp, created, err := store.LoadOrCreate()
	if err != nil {
		t.Fatalf("LoadOrCreate() failed: %v", err)
	}
	if !created {
		t.Error("expected first call to report the key pair as created")
	}

	privatePath, publicPath := store.Paths()
	privateData, err := os.ReadFile(privatePath)
	if err != nil {
		t.Fatalf("failed to read private key file: %v", err)
	}
	publicData, err := os.ReadFile(publicPath)
	if err != nil {
		t.Fatalf("failed to read public key file: %v", err)
	}

	if len(privateData) != KeySize || len(publicData) != KeySize {
		t.Fatalf("expected %d-byte key files, got private=%d public=%d", KeySize, len(privateData), len(publicData))
	}
	if !bytes.Equal(privateData, kp.PrivateKey[:]) {
		t.Error("private key file does not hold the raw private key")
	}
	if !bytes.Equal(publicData, kp.PublicKey[:]) {
		t.Error("public key file does not hold the raw public key")
	}

	if _, err := os.Stat(filepath.Join(store.Dir, LockFileName)); !os.IsNotExist(err) {
		t.Error("lock file should be removed after generation")
	}
}

func TestLoadOrCreate_Idempotent(t *testing.T) {
	store := New(t.TempDir())

	first, _, err := store.LoadOrCreate()
	if err != nil {
		t.Fatalf("first LoadOrCreate() failed: %v", err)
	}
	second, created, err := store.LoadOrCreate()
	if err != nil {
		t.Fatalf("second LoadOrCreate() failed: %v", err)
	}

	if created {
		t.Error("second call should load, not create")
	}
	if *first.PublicKey != *second.PublicKey || *first.PrivateKey != *second.PrivateKey {
		t.Error("expected identical key pair on second call")
	}
}

func TestLoadOrCreate_RegeneratesWhenOneFileMissing(t *testing.T) {
	for _, missing := range []string{"private", "public"} {
		t.Run(missing, func(t *testing.T) {
			store := New(t.TempDir())
			original, _, err := store.LoadOrCreate()
			if err != nil {
				t.Fatalf("LoadOrCreate() failed: %v", err)
			}

			privatePath, publicPath := store.Paths()
			target := privatePath
			if missing == "public" {
				target = publicPath
			}
			if err := os.Remove(target); err != nil {
				t.Fatalf("failed to remove %s: %v", target, err)
			}

			regenerated, created, err := store.LoadOrCreate()
			if err != nil {
				t.Fatalf("LoadOrCreate() after removal failed: %v", err)
			}
			if !created {
				t.Error("expected a new key pair when one file is missing")
			}
			if *regenerated.PublicKey == *original.PublicKey {
				t.Error("expected the public key to change after regeneration")
			}

			loaded, err := store.Load()
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if *loaded.PublicKey != *regenerated.PublicKey || *loaded.PrivateKey != *regenerated.PrivateKey {
				t.Error("both files should hold the regenerated pair")
			}
		})
	}
}

func TestLoadOrCreate_GenerationFailure(t *testing.T) {
	original := randReader
	randReader = failingReader{}
	defer func() { randReader = original }()

	store := New(t.TempDir())
	_, _, err := store.LoadOrCreate()
	if !errors.Is(err, kerrors.ErrKeyGeneration) {
		t.Fatalf("expected ErrKeyGeneration, got %v", err)
	}

	exists, err := store.Exists()
	if err != nil {
		t.Fatalf("Exists() failed: %v", err)
	}
	if exists {
		t.Error("no key files should be written when generation fails")
	}
}

func TestLoad_WrongKeyLength(t *testing.T) {
	store := New(t.TempDir())
	if _, _, err := store.LoadOrCreate(); err != nil {
		t.Fatalf("LoadOrCreate() failed: %v", err)
	}

	privatePath, _ := store.Paths()
	if err := os.WriteFile(privatePath, []byte("too short"), 0600); err != nil {
		t.Fatalf("failed to truncate private key: %v", err)
	}

	_, _, err := store.LoadOrCreate()
	if !errors.Is(err, kerrors.ErrStorage) {
		t.Errorf("expected ErrStorage, got %v", err)
	}
	if !errors.Is(err, kerrors.ErrInvalidKeyLength) {
		t.Errorf("expected ErrInvalidKeyLength, got %v", err)
	}
}

func TestLoad_NotInitialized(t *testing.T) {
	store := New(t.TempDir())
	_, err := store.Load()
	if !errors.Is(err, kerrors.ErrKeysNotInitialized) {
		t.Errorf("expected ErrKeysNotInitialized, got %v", err)
	}
}

func TestLoadOrCreate_UnwritableDirectory(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	parent := t.TempDir()
	if err := os.Chmod(parent, 0500); err != nil {
		t.Fatalf("failed to chmod: %v", err)
	}
	defer os.Chmod(parent, 0700)

	store := New(filepath.Join(parent, "keys"))
	_, _, err := store.LoadOrCreate()
	if !errors.Is(err, kerrors.ErrStorage) {
		t.Errorf("expected ErrStorage, got %v", err)
	}
}

func TestLoadOrCreate_ConcurrentFirstRun(t *testing.T) {
	store := New(t.TempDir())

	const callers = 8
	results := make([]*KeyPair, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			results[i], _, errs[i] = store.LoadOrCreate()
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("caller %d failed: %v", i, err)
		}
	}
	for i := 1; i < callers; i++ {
		if *results[i].PublicKey != *results[0].PublicKey {
			t.Fatalf("caller %d saw a different key pair", i)
		}
	}

	onDisk, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if *onDisk.PublicKey != *results[0].PublicKey {
		t.Error("key pair on disk differs from the one returned to callers")
	}
}

func TestLoadOrCreate_LockHeldTooLong(t *testing.T) {
	originalTimeout := lockTimeout
	lockTimeout = 100 * time.Millisecond
	defer func() { lockTimeout = originalTimeout }()

	store := New(t.TempDir())
	// This test process is alive, so the lock is not stale.
	writeLock(t, store, fmt.Sprintf("%d\n", os.Getpid()))

	_, _, err := store.LoadOrCreate()
	if !errors.Is(err, kerrors.ErrKeyStoreLocked) {
		t.Fatalf("expected ErrKeyStoreLocked, got %v", err)
	}
	if !errors.Is(err, kerrors.ErrStorage) {
		t.Errorf("lock timeout should also be a storage error, got %v", err)
	}
}

func TestLoadOrCreate_RecoversStaleLock(t *testing.T) {
	originalTimeout := lockTimeout
	lockTimeout = 200 * time.Millisecond
	defer func() { lockTimeout = originalTimeout }()

	tests := []struct {
		name    string
		content string
		age     time.Duration
	}{
		{"dead owner", "999999\n", 0},
		{"old lock with live owner", fmt.Sprintf("%d\n", os.Getpid()), time.Hour},
		{"old lock without owner", "", time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.name == "dead owner" && !processAliveKnown() {
				t.Skip("process liveness is not detectable on this platform")
			}
			store := New(t.TempDir())
			lockPath := writeLock(t, store, tt.content)
			if tt.age > 0 {
				old := time.Now().Add(-tt.age)
				if err := os.Chtimes(lockPath, old, old); err != nil {
					t.Fatalf("failed to age lock file: %v", err)
				}
			}

			// Repeated calls must all succeed, not only the first.
			for i := 0; i < 3; i++ {
				if _, _, err := store.LoadOrCreate(); err != nil {
					t.Fatalf("LoadOrCreate() call %d failed: %v", i+1, err)
				}
			}
			if _, err := os.Stat(lockPath); !os.IsNotExist(err) {
				t.Errorf("stale lock should be gone, stat returned %v", err)
			}
		})
	}
}

func TestLoadOrCreate_FreshEmptyLockIsHonoured(t *testing.T) {
	originalTimeout := lockTimeout
	lockTimeout = 100 * time.Millisecond
	defer func() { lockTimeout = originalTimeout }()

	// The owner has created the file but not written its PID yet.
	store := New(t.TempDir())
	writeLock(t, store, "")

	if _, _, err := store.LoadOrCreate(); !errors.Is(err, kerrors.ErrKeyStoreLocked) {
		t.Fatalf("expected ErrKeyStoreLocked, got %v", err)
	}
}

func writeLock(t *testing.T, store *Store, content string) string {
	t.Helper()
	if err := os.MkdirAll(store.Dir, 0700); err != nil {
		t.Fatalf("failed to create key directory: %v", err)
	}
	path := filepath.Join(store.Dir, LockFileName)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to create lock file: %v", err)
	}
	return path
}

func processAliveKnown() bool {
	return !processAlive(999999)
}

func TestFingerprint(t *testing.T) {
	a, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() failed: %v", err)
	}
	b, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() failed: %v", err)
	}

	if a.Fingerprint() != Fingerprint(a.PublicKey) {
		t.Error("method and function fingerprints differ")
	}
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("different keys should have different fingerprints")
	}
	// 10 bytes = 80 bits = 16 zbase32 characters.
	if got := len(a.Fingerprint()); got != 16 {
		t.Errorf("expected 16-character fingerprint, got %d", got)
	}
}
