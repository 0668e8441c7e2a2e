// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for setting up test environments,
// capturing output and running the CLI with arguments.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/sealbox/internal/configs"
	logger "github.com/PolarWolf314/sealbox/internal/logging"
	"github.com/spf13/cobra"
)

// setupTestEnvironment points sealbox at a temporary home and resets every
// command flag. It returns the temporary home.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()

	originalSettings := configs.SealboxSettings
	configs.SealboxSettings = &configs.Settings{
		ConfigDir: filepath.Join(tempDir, "config"),
		DataDir:   filepath.Join(tempDir, "data"),
	}
	ResetGlobalState()

	t.Cleanup(func() {
		ResetGlobalState()
		configs.SealboxSettings = originalSettings
	})

	return tempDir
}

// keysDirFor returns the default key directory under a test home.
func keysDirFor(tempDir string) string {
	return filepath.Join(tempDir, "data", "keys")
}

// withStdin replaces os.Stdin with a pipe holding content.
func withStdin(t *testing.T, content string) {
	t.Helper()
	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create stdin pipe: %v", err)
	}
	if _, err := writer.WriteString(content); err != nil {
		t.Fatalf("Failed to write stdin content: %v", err)
	}
	writer.Close()

	originalStdin := os.Stdin
	os.Stdin = reader
	t.Cleanup(func() {
		os.Stdin = originalStdin
		reader.Close()
	})
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stdoutReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stdoutChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stderrReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stderrChan <- buf.String()
	}()

	// Execute the function
	err := fn()

	// Close writers to signal EOF
	stdoutWriter.Close()
	stderrWriter.Close()

	// Restore original stdout and stderr
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}

// captureStdout is captureOutput without stderr, for commands whose stdout is
// meant to be piped.
func captureStdout(fn func() error) (string, error) {
	originalStdout := os.Stdout
	reader, writer, _ := os.Pipe()
	os.Stdout = writer

	outputChan := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, reader)
		outputChan <- buf.String()
	}()

	err := fn()

	writer.Close()
	os.Stdout = originalStdout
	return <-outputChan, err
}

// createTestCLI prepares the real root command to run with args.
func createTestCLI(args []string, verboseFlag, debugFlag bool) *cobra.Command {
	// Flags keep their values across Execute calls on the same command tree.
	ResetGlobalState()

	// Set global flags for the actual command (needed for the real command implementations)
	verbose = verboseFlag
	debug = debugFlag

	// Initialize the logger with the test flags
	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
	}

	// A nil slice would make cobra fall back to os.Args.
	args = append([]string{}, args...)
	if verboseFlag {
		args = append(args, "--verbose")
	}
	if debugFlag {
		args = append(args, "--debug")
	}
	RootCmd.SetArgs(args)

	return RootCmd
}

// runCLI executes sealbox with args and returns everything it printed.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return captureOutput(func() error {
		return createTestCLI(args, false, false).Execute()
	})
}
