package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"

	"github.com/PolarWolf314/sealbox/internal/configs"
	kerrors "github.com/PolarWolf314/sealbox/internal/errors"
	"github.com/PolarWolf314/sealbox/internal/ui"
	"github.com/PolarWolf314/sealbox/internal/workflows"
	"github.com/spf13/cobra"
)

var keysShowJSON bool

func init() {
	keysShowCmd.Flags().BoolVar(&keysShowJSON, "json", false, "output in JSON format")
	keysCmd.AddCommand(keysShowCmd)
	keysCmd.AddCommand(keysImportCmd)
}

// resetKeysCommandState resets the keys command's global state for testing.
func resetKeysCommandState() {
	keysShowJSON = false
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Inspect the sealbox key pair",
}

var keysShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show where the key pair lives and its fingerprint",
	Long: `Shows the key file locations, the public key and its fingerprint.

The private key is never printed. Unlike encrypt and decrypt, this command
does not create a key pair.

Examples:
  sealbox keys show
  sealbox keys show --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting keys show command")

		result, err := workflows.KeysShow(context.Background())
		if err != nil {
			if errors.Is(err, kerrors.ErrKeysNotInitialized) {
				Logger.Infof("No key pair found")
				fmt.Println(ui.FailureLine("No key pair found"))
				fmt.Println(ui.HintLine("Run " + ui.Code.Sprint("sealbox init") + " to create one"))
				return nil
			}
			fmt.Println(formatKeyError(err))
			return reported(err)
		}

		if runtime.GOOS != "windows" && result.PrivateKeyMode != 0600 {
			Logger.WarnfAlways("Private key file has overly permissive permissions (%o), consider running 'chmod 600 %s'",
				result.PrivateKeyMode, result.PrivateKeyPath)
		}

		if keysShowJSON {
			return outputKeysJSON(result)
		}

		fmt.Println(ui.Info.Sprint("Key pair"))
		fmt.Println()
		fmt.Printf("  %-14s %s\n", "Fingerprint:", ui.Highlight.Sprint(result.Fingerprint))
		fmt.Printf("  %-14s %s\n", "Public key:", result.PublicKey)
		fmt.Printf("  %-14s %s\n", "Private file:", ui.Path.Sprint(result.PrivateKeyPath))
		fmt.Printf("  %-14s %s\n", "Public file:", ui.Path.Sprint(result.PublicKeyPath))
		return nil
	},
}

type keysJSON struct {
	Fingerprint    string `json:"fingerprint"`
	PublicKey      string `json:"public_key"`
	PrivateKeyPath string `json:"private_key_path"`
	PublicKeyPath  string `json:"public_key_path"`
}

func outputKeysJSON(result *workflows.KeysShowResult) error {
	output, err := json.MarshalIndent(keysJSON{
		Fingerprint:    result.Fingerprint,
		PublicKey:      result.PublicKey,
		PrivateKeyPath: result.PrivateKeyPath,
		PublicKeyPath:  result.PublicKeyPath,
	}, "", "  ")
	if err != nil {
		return Logger.ErrorfAndReturn("Failed to marshal keys to JSON: %v", err)
	}
	fmt.Println(string(output))
	return nil
}

var keysImportCmd = &cobra.Command{
	Use:   "import [dir]",
	Short: "Import a key pair kept in the old working-directory layout",
	Long: `Copies private_sodium.key and public_sodium.key from dir (the current
directory by default) into the sealbox key directory.

An existing key pair is backed up next to the key directory first. The
original files are left where they are.

Examples:
  sealbox keys import
  sealbox keys import /srv/legacy-app`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting keys import command")

		legacyDir := "."
		if len(args) > 0 {
			legacyDir = args[0]
		}
		Logger.Debugf("Importing keys from %s", legacyDir)

		if !configs.IsLegacyKeyDir(legacyDir) {
			fmt.Println(ui.FailureLine("No key pair found in " + ui.Path.Sprint(legacyDir)))
			fmt.Println(ui.HintLine("Expected " + ui.Path.Sprint("private_sodium.key") + " and " + ui.Path.Sprint("public_sodium.key")))
			return nil
		}

		spinner, cleanup := startSpinner("Importing key pair...", verbose)
		defer cleanup()

		result, err := configs.MigrateLegacyKeys(legacyDir)
		if err != nil {
			Logger.Errorf("Import failed: %v", err)
			spinner.FinalMSG = formatKeyError(err)
			return reported(err)
		}

		finalMessage := ui.SuccessLine("Imported key pair "+ui.Highlight.Sprint(result.Fingerprint)) + "\n" +
			"Keys are now in " + ui.Path.Sprint(result.KeysDir)
		if result.BackupPath != "" {
			finalMessage += "\n" + ui.Warning.Sprint("⚠") + " The previous key pair was backed up to " + ui.Path.Sprint(result.BackupPath)
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}
