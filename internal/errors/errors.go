package errors

import "errors"

// Key store errors indicate the key pair could not be produced or persisted.
var (
	// ErrStorage indicates key material could not be read from or written to disk.
	ErrStorage = errors.New("key storage failure")

	// ErrKeyGeneration indicates the box primitive could not produce a key pair.
	ErrKeyGeneration = errors.New("failed to generate key pair")

	// ErrKeyStoreLocked indicates another caller held the first-run lock for too long.
	ErrKeyStoreLocked = errors.New("key store is locked by another process")

	// ErrInvalidKeyLength indicates a key file on disk does not hold exactly one key.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrKeysNotInitialized indicates no key pair has been generated yet.
	ErrKeysNotInitialized = errors.New("key pair has not been initialized")
)

// Message errors indicate failures while sealing or opening a message.
var (
	// ErrFormat indicates the transport text is not valid base64.
	ErrFormat = errors.New("malformed message encoding")

	// ErrDecryptFailed indicates the envelope could not be authenticated.
	ErrDecryptFailed = errors.New("failed to decrypt message")

	// ErrEmptyMessage indicates blank input where a sealed message was expected.
	ErrEmptyMessage = errors.New("message is empty")
)

// Configuration errors.
var (
	// ErrInvalidConfig indicates config.toml holds unusable values.
	ErrInvalidConfig = errors.New("configuration is invalid")
)

// DecryptFailureNotice is the only text shown to a user when a message cannot
// be opened, whatever the underlying cause.
const DecryptFailureNotice = "Failed to decrypt the message. Wrong key or nonce."

// IsDecryptFailure reports whether err came from the open path, either a bad
// transport encoding or a failed authentication check.
func IsDecryptFailure(err error) bool {
	return errors.Is(err, ErrDecryptFailed) || errors.Is(err, ErrFormat)
}
