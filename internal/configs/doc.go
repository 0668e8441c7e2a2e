// Package configs manages sealbox's directories and config.toml.
//
// # Directories
//
// Settings are resolved once at start-up:
//
//   - Config: os.UserConfigDir()/sealbox (config.toml)
//   - Data: $XDG_DATA_HOME/sealbox, default ~/.local/share/sealbox (keys/, audit.jsonl)
//
// SEALBOX_HOME replaces both with a single directory.
//
// # config.toml
//
//	[keys]
//	dir = ""                               # default: <data>/keys
//	private_key_file = "private_sodium.key"
//	public_key_file = "public_sodium.key"
//
//	[audit]
//	enabled = true
//	path = ""                              # default: <data>/audit.jsonl
//
// A missing file means defaults. Unknown keys are rejected so typos do not
// silently fall back to a different key directory.
//
// # Legacy keys
//
// Older deployments kept private_sodium.key and public_sodium.key in the
// working directory. MigrateLegacyKeys copies such a pair into the configured
// key directory, backing up any pair already there.
package configs
