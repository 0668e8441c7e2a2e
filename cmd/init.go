package cmd

import (
	"context"

	"github.com/PolarWolf314/sealbox/internal/ui"
	"github.com/PolarWolf314/sealbox/internal/utils"
	"github.com/PolarWolf314/sealbox/internal/workflows"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the sealbox key pair if it does not exist",
	Long: `Creates the key pair used to seal and open messages.

Running init is optional: encrypt and decrypt create the key pair on first use.
Running it again is safe and leaves an existing key pair untouched.

Examples:
  sealbox init
  sealbox init --keys-dir ./keys`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")
		spinner, cleanup := startSpinner("Initializing key pair...", verbose)
		defer cleanup()

		result, err := workflows.Init(context.Background(), workflows.InitOptions{})
		if err != nil {
			Logger.Errorf("Init failed: %v", err)
			spinner.FinalMSG = formatKeyError(err)
			return reported(err)
		}

		Logger.Debugf("Private key: %s, public key: %s", result.PrivateKeyPath, result.PublicKeyPath)

		if !result.Created {
			Logger.Infof("Key pair already exists")
			spinner.FinalMSG = ui.SuccessLine("Key pair already exists "+ui.Highlight.Sprint(result.Fingerprint)) + "\n" +
				ui.HintLine("Run "+ui.Code.Sprint("sealbox keys show")+" for details")
			return nil
		}

		Logger.Infof("Init command completed successfully")
		spinner.FinalMSG = ui.SuccessLine("Key pair created "+ui.Highlight.Sprint(result.Fingerprint)) + "\n" +
			"The following files were created:" + utils.FormatPaths([]string{result.PrivateKeyPath, result.PublicKeyPath}) +
			ui.Warning.Sprint("⚠") + " Keep the private key safe: anything sealed with it is lost without it"
		return nil
	},
}
