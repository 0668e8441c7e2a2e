// Package errors provides typed error values for sealbox.
//
// Callers handle specific conditions with errors.Is() rather than string
// matching:
//
//	plaintext, err := envelope.OpenString(text, kp)
//	if kerrors.IsDecryptFailure(err) {
//	    fmt.Println(kerrors.DecryptFailureNotice)
//	}
//
// # Error Categories
//
//   - Key store errors: ErrStorage, ErrKeyGeneration, ErrKeyStoreLocked
//   - Message errors: ErrFormat, ErrDecryptFailed, ErrEmptyMessage
//   - Configuration errors: ErrInvalidConfig
//
// Key store errors are fatal to the command that hit them. Message errors are
// reported to the user and never crash the process.
//
// ErrFormat and ErrDecryptFailed are kept apart for debugging, but the CLI
// renders both as DecryptFailureNotice so output never reveals why a message
// failed to open.
package errors
