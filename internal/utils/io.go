package utils

import (
	"fmt"
	"io"
	"os"
)

// MaxInputSize bounds how much a single message read may pull in.
const MaxInputSize = 10 * 1024 * 1024

// ReadStdin reads all content from stdin.
// Returns an error if stdin is a terminal (no piped data) or unreadable. Empty
// input is returned as an empty message.
func ReadStdin() ([]byte, error) {
	if IsTerminal() {
		return nil, fmt.Errorf("no data provided on stdin (hint: pipe your message to this command)")
	}
	return ReadAll(os.Stdin)
}

// ReadAll reads r up to MaxInputSize bytes. Empty input is not an error.
func ReadAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxInputSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("input exceeds %d bytes", MaxInputSize)
	}
	return data, nil
}

// ReadFile reads a message from path with the same limits as ReadAll.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ReadAll(f)
}
