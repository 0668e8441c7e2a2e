// Package utils provides small helpers shared by sealbox commands.
//
// # I/O Utilities
//
//   - ReadStdin: reads a piped message, refusing an interactive terminal
//   - ReadAll, ReadFile: bounded reads (MaxInputSize)
//
// # Terminal Utilities
//
//   - IsTerminal, IsStdoutTerminal: tty detection via golang.org/x/term
//
// # String Utilities
//
//   - FormatPaths: bulleted path list for final messages
//   - TrimFinalNewline: strips the newline a pipe adds to a message
package utils
