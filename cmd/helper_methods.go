package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	kerrors "github.com/PolarWolf314/sealbox/internal/errors"
	"github.com/PolarWolf314/sealbox/internal/keystore"
	"github.com/PolarWolf314/sealbox/internal/ui"
	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message

	err := s.Color("cyan")
	if err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if !verbose && !debug {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		// Stop the spinner first to clear the spinner line.
		if !verbose && !debug {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// formatKeyError turns a key store or config failure into the message shown
// to the user.
func formatKeyError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrInvalidConfig):
		return ui.FailureLine("Invalid configuration: "+err.Error()) + "\n" +
			ui.HintLine("Run "+ui.Code.Sprint("sealbox config show")+" to see which file is in use")

	case errors.Is(err, kerrors.ErrKeyStoreLocked):
		return ui.FailureLine("The key pair is locked by another sealbox process") + "\n" +
			ui.HintLine("If no other sealbox is running, delete "+ui.Code.Sprint(keystore.LockFileName)+" from the key directory")

	case errors.Is(err, kerrors.ErrInvalidKeyLength):
		return ui.FailureLine("A key file is corrupt: "+err.Error()) + "\n" +
			ui.HintLine("Restore it from a backup, or remove both key files to start over")

	case errors.Is(err, kerrors.ErrKeyGeneration):
		return ui.FailureLine("Failed to generate a key pair: " + err.Error())

	case errors.Is(err, kerrors.ErrStorage):
		return ui.FailureLine("Failed to access the key pair: " + err.Error())

	default:
		return ui.FailureLine(err.Error())
	}
}
