// Package logger provides leveled, coloured logging for sealbox commands.
//
// # Verbosity Levels
//
//   - --verbose: shows info and warning messages
//   - --debug: shows everything, including debug details and wrapped errors
//
// Without flags only WarnfAlways output is printed. Commands render their
// final result through the spinner and ui package, not the logger.
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Sealed %d bytes with key %s", n, fingerprint)
//
// Plaintext and key bytes must never be passed to the logger.
package logger
