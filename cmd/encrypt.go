package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/sealbox/internal/ui"
	"github.com/PolarWolf314/sealbox/internal/utils"
	"github.com/PolarWolf314/sealbox/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	encryptFromStdin bool
	encryptFromFile  string
)

func init() {
	encryptCmd.Flags().BoolVar(&encryptFromStdin, "stdin", false, "read the message from stdin")
	encryptCmd.Flags().StringVarP(&encryptFromFile, "file", "f", "", "read the message from a file")
}

// resetEncryptCommandState resets the encrypt command's global state for testing.
func resetEncryptCommandState() {
	encryptFromStdin = false
	encryptFromFile = ""
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt [message]",
	Short: "Seal a message with your key pair",
	Long: `Seals a message and prints it as base64 text.

The message comes from exactly one of: the argument, --stdin, or --file.
When reading from stdin one trailing newline is dropped. An empty message
is sealed like any other.

Examples:
  sealbox encrypt "hello world"
  echo "hello world" | sealbox encrypt --stdin
  sealbox encrypt --file note.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting encrypt command")
		Logger.Debugf("Flags: stdin=%t, file=%q, args=%d", encryptFromStdin, encryptFromFile, len(args))

		message, err := readMessage(args, encryptFromStdin, encryptFromFile)
		if err != nil {
			return err
		}
		Logger.Debugf("Read %d bytes to encrypt", len(message))

		spinner, cleanup := startSpinner("Encrypting message...", verbose)
		defer cleanup()

		result, err := workflows.Encrypt(context.Background(), workflows.EncryptOptions{Message: message})
		if err != nil {
			Logger.Errorf("Encrypt failed: %v", err)
			spinner.FinalMSG = formatKeyError(err)
			return reported(err)
		}

		if result.KeysCreated {
			Logger.Infof("Generated a new key pair %s", result.Fingerprint)
		}
		Logger.Infof("Encrypt command completed successfully with key %s", result.Fingerprint)

		if utils.IsStdoutTerminal() {
			spinner.FinalMSG = ui.SuccessLine("Message encrypted with key "+ui.Highlight.Sprint(result.Fingerprint)) + "\n" +
				result.Sealed
		} else {
			spinner.FinalMSG = result.Sealed
		}
		return nil
	},
}

// readMessage collects the message from whichever single source was given.
func readMessage(args []string, fromStdin bool, fromFile string) ([]byte, error) {
	sources := 0
	if len(args) > 0 {
		sources++
	}
	if fromStdin {
		sources++
	}
	if fromFile != "" {
		sources++
	}

	switch {
	// An explicitly given empty message is valid; only a missing source is not.
	case sources == 0:
		return nil, fmt.Errorf("no message given, pass it as an argument or pipe it with --stdin")
	case sources > 1:
		return nil, fmt.Errorf("message given more than once, use a single source and not several")
	case fromStdin:
		data, err := utils.ReadStdin()
		if err != nil {
			return nil, err
		}
		return utils.TrimFinalNewline(data), nil
	case fromFile != "":
		return utils.ReadFile(fromFile)
	default:
		return []byte(args[0]), nil
	}
}
