package envelope

import (
	"encoding/base64"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/sealbox/internal/errors"
	"github.com/PolarWolf314/sealbox/internal/keystore"
)

// Encode returns base64(nonce || ciphertext) for display and copy/paste.
func Encode(env *Envelope) string {
	return base64.StdEncoding.EncodeToString(env.Bytes())
}

// Decode reverses Encode. Surrounding whitespace is ignored. Anything else
// Encode would not have produced, including embedded line breaks and
// non-zero padding bits, is ErrFormat.
func Decode(text string) ([]byte, error) {
	data, err := base64.StdEncoding.Strict().DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrFormat, err)
	}
	return data, nil
}

// SealString seals plaintext and returns the transport text.
func SealString(plaintext []byte, kp *keystore.KeyPair) (string, error) {
	env, err := Seal(plaintext, kp)
	if err != nil {
		return "", err
	}
	return Encode(env), nil
}

// OpenString decodes transport text and opens it.
func OpenString(text string, kp *keystore.KeyPair) ([]byte, error) {
	data, err := Decode(text)
	if err != nil {
		return nil, err
	}
	return Open(data, kp)
}
