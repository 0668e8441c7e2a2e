// Package ui provides semantic text formatting for sealbox output.
//
// Formatters colour their content when the terminal supports it and fall
// back to plain decorations when NO_COLOR is set or colour is unavailable:
//
//	ui.Code.Sprint("sealbox init")        // `sealbox init`
//	ui.Highlight.Sprint(fingerprint)      // 'ybndrfg8ejkmcpqx'
//	ui.Muted.Sprint("created")            // (created)
//
// SuccessLine, FailureLine and HintLine build the ✓ / ✗ / → lines commands
// print as their final message.
//
// Sealed messages and recovered plaintext are printed raw, never through a
// formatter, so they can be piped and copied byte for byte.
package ui
