package cmd

import (
	"errors"
	"fmt"

	"github.com/PolarWolf314/sealbox/internal/configs"
	logger "github.com/PolarWolf314/sealbox/internal/logging"
	"github.com/PolarWolf314/sealbox/internal/ui"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	keysDir string
	Logger  logger.Logger

	// RootCmd is the sealbox entry point.
	RootCmd = &cobra.Command{
		Use:   "sealbox",
		Short: "Sealbox - encrypt short messages to yourself with a local NaCl key pair.",
		Long: `Sealbox keeps one Curve25519 key pair on disk and uses it to seal and open
short text messages. Sealed messages are plain base64, safe to paste anywhere.

The key pair is generated automatically the first time it is needed.

Usage:
  sealbox <command> [flags]

Available Commands:
  init       Create the key pair if it does not exist
  encrypt    Seal a message
  decrypt    Open a sealed message
  keys       Inspect the key pair
  log        View the audit log
  config     Manage configuration

Run 'sealbox help <command>' for more details on a specific command.
`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			configs.SealboxSettings.KeysDirOverride = keysDir
			Logger.Debugf("Initializing sealbox with verbose=%t, debug=%t, keys-dir=%q", verbose, debug, keysDir)
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println()
			figure.NewColorFigure("sealbox", "small", "green", true).Print()
			fmt.Println()
			fmt.Println("Run " + ui.Code.Sprint("sealbox --help") + " to see available commands.")
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringVar(&keysDir, "keys-dir", "", "directory holding the key pair (overrides config.toml)")

	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(encryptCmd)
	RootCmd.AddCommand(decryptCmd)
	RootCmd.AddCommand(keysCmd)
	RootCmd.AddCommand(logCmd)
	RootCmd.AddCommand(configCmd)
}

// reportedError wraps an error whose message a command has already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

// IsReported returns true if the user has already seen err, so main only
// needs to set the exit code.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	keysDir = ""
	configs.SealboxSettings.KeysDirOverride = ""
	resetEncryptCommandState()
	resetDecryptCommandState()
	resetKeysCommandState()
	resetLogCommandState()
	resetConfigCommandState()
	resetCobraFlagState(RootCmd)
}

// resetCobraFlagState clears the Changed mark on every flag so one test's
// flags do not leak into the next.
func resetCobraFlagState(cmd *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		flag.Changed = false
		_ = flag.Value.Set(flag.DefValue)
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetCobraFlagState(child)
	}
}

// SetVerbose sets the verbose flag for testing.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing.
func SetDebug(d bool) {
	debug = d
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
