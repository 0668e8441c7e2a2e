// Package envelope seals and opens messages with a sealbox key pair.
//
// # Wire Format
//
//	base64( nonce[24] || box(plaintext)[len(plaintext)+16] )
//
// The nonce is drawn from crypto/rand for every Seal and must never repeat
// for a key pair. The ciphertext carries a 16-byte Poly1305 tag.
//
// # Self-Encryption
//
// The box is derived from the pair's own private and public key, so the
// sender and the recipient are the same identity. This is not a two-party
// exchange; anyone holding the private key file can open every message.
//
// # Failures
//
// Decode reports ErrFormat for bad base64. Open reports ErrDecryptFailed for
// truncated input, a wrong key, or any tampering with nonce or ciphertext,
// and never returns unauthenticated plaintext.
package envelope
