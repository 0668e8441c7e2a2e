package keystore

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	kerrors "github.com/PolarWolf314/sealbox/internal/errors"
	"golang.org/x/crypto/nacl/box"
)

// KeySize is the length in bytes of both halves of a box key pair.
const KeySize = 32

const (
	DefaultPrivateKeyFile = "private_sodium.key"
	DefaultPublicKeyFile  = "public_sodium.key"
)

// randReader is the entropy source for key generation. Tests replace it to
// exercise the generation failure path.
var randReader io.Reader = rand.Reader

// KeyPair is a Curve25519 box key pair. Both keys are always set together.
type KeyPair struct {
	PublicKey  *[KeySize]byte
	PrivateKey *[KeySize]byte
}

// Store persists a single key pair as two raw files inside Dir.
type Store struct {
	Dir            string
	PrivateKeyFile string
	PublicKeyFile  string
}

// generateMu serialises first-run generation between goroutines of this
// process; the lock file covers other processes.
var generateMu sync.Mutex

// New returns a Store rooted at dir using the default file names.
func New(dir string) *Store {
	return &Store{
		Dir:            dir,
		PrivateKeyFile: DefaultPrivateKeyFile,
		PublicKeyFile:  DefaultPublicKeyFile,
	}
}

// Paths returns the private and public key file paths.
func (s *Store) Paths() (string, string) {
	return filepath.Join(s.Dir, s.PrivateKeyFile), filepath.Join(s.Dir, s.PublicKeyFile)
}

// Exists reports whether both key files are present.
func (s *Store) Exists() (bool, error) {
	privatePath, publicPath := s.Paths()
	for _, p := range []string{privatePath, publicPath} {
		if _, err := os.Stat(p); err != nil {
			if os.IsNotExist(err) {
				return false, nil
			}
			return false, fmt.Errorf("%w: checking %s: %v", kerrors.ErrStorage, p, err)
		}
	}
	return true, nil
}

// LoadOrCreate returns the persisted key pair, generating and writing a new
// one when either key file is missing. The bool is true when this call
// created the pair.
func (s *Store) LoadOrCreate() (*KeyPair, bool, error) {
	exists, err := s.Exists()
	if err != nil {
		return nil, false, err
	}
	if exists {
		kp, err := s.Load()
		return kp, false, err
	}

	generateMu.Lock()
	defer generateMu.Unlock()

	if err := os.MkdirAll(s.Dir, 0700); err != nil {
		return nil, false, fmt.Errorf("%w: creating key directory %s: %v", kerrors.ErrStorage, s.Dir, err)
	}

	unlock, err := acquireLock(s.lockPath())
	if err != nil {
		return nil, false, err
	}
	defer unlock()

	// Another caller may have finished generating while we waited.
	exists, err = s.Exists()
	if err != nil {
		return nil, false, err
	}
	if exists {
		kp, err := s.Load()
		return kp, false, err
	}

	kp, err := GenerateKeyPair()
	if err != nil {
		return nil, false, err
	}
	if err := s.write(kp); err != nil {
		return nil, false, err
	}
	return kp, true, nil
}

// Load reads an existing key pair. It returns ErrKeysNotInitialized when
// either file is missing.
func (s *Store) Load() (*KeyPair, error) {
	privatePath, publicPath := s.Paths()

	privateKey, err := readKey(privatePath)
	if err != nil {
		return nil, err
	}
	publicKey, err := readKey(publicPath)
	if err != nil {
		return nil, err
	}

	return &KeyPair{PublicKey: publicKey, PrivateKey: privateKey}, nil
}

// GenerateKeyPair creates a new box key pair from the package entropy source.
func GenerateKeyPair() (*KeyPair, error) {
	publicKey, privateKey, err := box.GenerateKey(randReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrKeyGeneration, err)
	}
	return &KeyPair{PublicKey: publicKey, PrivateKey: privateKey}, nil
}

func (s *Store) lockPath() string {
	return filepath.Join(s.Dir, LockFileName)
}

func (s *Store) write(kp *KeyPair) error {
	privatePath, publicPath := s.Paths()

	if err := os.WriteFile(privatePath, kp.PrivateKey[:], 0600); err != nil {
		return fmt.Errorf("%w: writing private key to %s: %v", kerrors.ErrStorage, privatePath, err)
	}
	// #nosec G306 -- public key is not secret
	if err := os.WriteFile(publicPath, kp.PublicKey[:], 0644); err != nil {
		return fmt.Errorf("%w: writing public key to %s: %v", kerrors.ErrStorage, publicPath, err)
	}
	return nil
}

func readKey(path string) (*[KeySize]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrKeysNotInitialized, path)
		}
		return nil, fmt.Errorf("%w: reading %s: %v", kerrors.ErrStorage, path, err)
	}
	if len(data) != KeySize {
		return nil, fmt.Errorf("%w: %w: %s holds %d bytes, expected %d",
			kerrors.ErrStorage, kerrors.ErrInvalidKeyLength, path, len(data), KeySize)
	}

	var key [KeySize]byte
	copy(key[:], data)
	return &key, nil
}
