// Package keystore owns sealbox's long-lived box key pair.
//
// A Store points at a directory holding two files, by default
// private_sodium.key and public_sodium.key. Each file holds exactly 32 raw
// key bytes with no header or encoding.
//
// # Lifecycle
//
// LoadOrCreate generates a pair with nacl/box when either file is missing and
// writes both; otherwise it reads both back unchanged. This package never
// rotates or rewrites an existing pair.
//
// # First Run
//
// Generation holds a process-wide mutex and an exclusive lock file
// (.sealbox.lock) in the key directory, then checks for keys again before
// generating. Concurrent first callers all end up with the same pair.
// Later calls only read.
package keystore
