// Package workflows provides high-level orchestration for sealbox commands.
//
// Each workflow loads config.toml, builds the key store it describes, runs
// the core operation and appends an audit entry. The cmd package only parses
// flags, calls a workflow and formats the result.
//
// # Available Workflows
//
//   - Init: generates the key pair on first run, otherwise loads it
//   - Encrypt: seals a message into base64(nonce || ciphertext)
//   - Decrypt: opens such a message
//   - KeysShow: reports paths and fingerprint of the existing pair
//   - Log: reads and filters the audit trail
//
// Encrypt and Decrypt create the key pair when it is missing, so a fresh
// install works without running Init first.
//
// # Error Handling
//
// Workflows return typed errors from internal/errors wrapped with context:
//
//	result, err := workflows.Decrypt(ctx, opts)
//	if kerrors.IsDecryptFailure(err) {
//	    // print kerrors.DecryptFailureNotice, nothing more specific
//	}
package workflows
