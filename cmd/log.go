package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/sealbox/internal/audit"
	"github.com/PolarWolf314/sealbox/internal/ui"
	"github.com/PolarWolf314/sealbox/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logOperation string
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logOperation = ""
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log of init, encrypt and decrypt operations.

Entries record the key fingerprint, a byte count and whether the operation
succeeded. Message content is never logged.

Examples:
  sealbox log                              # View full log
  sealbox log -n 10                        # Last 10 entries
  sealbox log --reverse                    # Most recent first
  sealbox log --operation decrypt          # Filter by operation
  sealbox log --json                       # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	opts := workflows.LogOptions{
		Limit:      logLimit,
		Reverse:    logReverse,
		Operations: logOperation,
	}

	result, err := workflows.Log(context.Background(), opts)
	if err != nil {
		fmt.Println(formatKeyError(err))
		return reported(err)
	}

	Logger.Debugf("Parsed %d entries from audit log", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	if !result.Enabled {
		fmt.Println(ui.Info.Sprint("ℹ") + " Audit logging is disabled.")
		fmt.Println(ui.HintLine("Set " + ui.Code.Sprint("enabled = true") + " under [audit] in config.toml to turn it on"))
		return nil
	}

	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			fmt.Println("No audit log entries found.")
		} else {
			fmt.Println("No audit log entries found matching the filters.")
		}
		return nil
	}

	if logJSON {
		return outputLogJSON(result.Entries)
	}

	outputLogDefault(result.Entries)
	return nil
}

func outputLogJSON(entries []audit.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func outputLogDefault(entries []audit.Entry) {
	for _, e := range entries {
		fmt.Printf("%-27s  %-8s  %-16s  %s\n", e.Timestamp, e.Operation, e.Key, formatLogDetails(e))
	}
}

func formatLogDetails(e audit.Entry) string {
	status := ui.Success.Sprint("ok")
	if !e.OK {
		status = ui.Error.Sprint("failed")
	}
	details := fmt.Sprintf("%s  %d bytes", status, e.Bytes)
	if e.Operation == audit.OpInit {
		details = status
		if e.Created {
			details += "  " + ui.Muted.Sprint("created")
		}
	}
	return details
}
