package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	kerrors "github.com/PolarWolf314/sealbox/internal/errors"
	"github.com/PolarWolf314/sealbox/internal/ui"
	"github.com/PolarWolf314/sealbox/internal/utils"
	"github.com/PolarWolf314/sealbox/internal/workflows"
	"github.com/spf13/cobra"
)

var decryptFromStdin bool

func init() {
	decryptCmd.Flags().BoolVar(&decryptFromStdin, "stdin", false, "read the sealed message from stdin")
}

// resetDecryptCommandState resets the decrypt command's global state for testing.
func resetDecryptCommandState() {
	decryptFromStdin = false
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt [sealed]",
	Short: "Open a message sealed with your key pair",
	Long: `Opens a base64 message produced by 'sealbox encrypt' and prints the plaintext
exactly as it was sealed. A newline is added only when printing to a terminal.

A message that was tampered with, truncated, or sealed with a different key
pair cannot be opened. All of these produce the same error.

Examples:
  sealbox decrypt "3Jx0..."
  sealbox encrypt "hi" | sealbox decrypt --stdin`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting decrypt command")
		Logger.Debugf("Flags: stdin=%t, args=%d", decryptFromStdin, len(args))

		sealed, err := readMessage(args, decryptFromStdin, "")
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner("Decrypting message...", verbose)
		defer cleanup()

		result, err := workflows.Decrypt(context.Background(), workflows.DecryptOptions{Sealed: string(sealed)})
		if err != nil {
			// Keep the cause out of the user-facing message.
			Logger.Errorf("Decrypt failed: %v", err)
			switch {
			case kerrors.IsDecryptFailure(err):
				spinner.FinalMSG = ui.FailureLine(kerrors.DecryptFailureNotice)
			case errors.Is(err, kerrors.ErrEmptyMessage):
				spinner.FinalMSG = ui.FailureLine("Nothing to decrypt: the message is empty")
			default:
				spinner.FinalMSG = formatKeyError(err)
			}
			return reported(err)
		}

		if result.KeysCreated {
			Logger.Infof("Generated a new key pair %s", result.Fingerprint)
		}
		Logger.Infof("Decrypt command completed successfully with key %s", result.Fingerprint)

		// The plaintext is written byte for byte, so stop the spinner first.
		cleanup()
		if _, err := os.Stdout.Write(result.Plaintext); err != nil {
			return fmt.Errorf("failed to write plaintext: %w", err)
		}
		if utils.IsStdoutTerminal() && !bytes.HasSuffix(result.Plaintext, []byte("\n")) {
			fmt.Println()
		}
		return nil
	},
}
