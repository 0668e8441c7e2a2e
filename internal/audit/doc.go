// Package audit records sealbox operations in an append-only JSON Lines file.
//
// Each init, encrypt and decrypt appends one line:
//
//	{"id":"…","ts":"2026-01-02T15:04:05.000000Z","op":"encrypt","key":"ybndrfg8ejkmcpqx","bytes":11,"ok":true}
//
// Entries hold the key fingerprint and a byte count, never plaintext or
// envelopes. Write failures are swallowed so auditing cannot break an
// operation. Set [audit] enabled = false in config.toml to turn it off.
package audit
