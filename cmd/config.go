package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/PolarWolf314/sealbox/internal/configs"
	"github.com/PolarWolf314/sealbox/internal/ui"
	"github.com/spf13/cobra"
)

var (
	configShowJSON  bool
	configInitForce bool
)

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config.toml with the defaults")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

// resetConfigCommandState resets the config commands' global state for testing.
func resetConfigCommandState() {
	configShowJSON = false
	configInitForce = false
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage sealbox configuration",
	Long: `Provides commands for inspecting and creating config.toml.

The config file lives in the sealbox config directory, or in $SEALBOX_HOME
when that is set.

Examples:
  sealbox config show
  sealbox config init`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")
		Logger.Debugf("Loading config from %s", configs.ConfigPath())

		config, err := configs.LoadConfig()
		if err != nil {
			fmt.Println(formatKeyError(err))
			return reported(err)
		}

		if configShowJSON {
			return outputConfigJSON(config)
		}

		auditPath := config.AuditPath()
		if auditPath == "" {
			auditPath = ui.Muted.Sprint("disabled")
		} else {
			auditPath = ui.Path.Sprint(auditPath)
		}

		configFile := ui.Path.Sprint(configs.ConfigPath())
		if _, err := os.Stat(configs.ConfigPath()); os.IsNotExist(err) {
			configFile += " " + ui.Muted.Sprint("not created, using defaults")
		}

		fmt.Println(ui.Info.Sprint("Configuration"))
		fmt.Println()
		fmt.Printf("  %-14s %s\n", "Config file:", configFile)
		fmt.Printf("  %-14s %s\n", "Keys dir:", ui.Path.Sprint(config.KeysDir()))
		fmt.Printf("  %-14s %s\n", "Private key:", config.Keys.PrivateKeyFile)
		fmt.Printf("  %-14s %s\n", "Public key:", config.Keys.PublicKeyFile)
		fmt.Printf("  %-14s %s\n", "Audit log:", auditPath)
		return nil
	},
}

type configJSON struct {
	ConfigFile     string `json:"config_file"`
	KeysDir        string `json:"keys_dir"`
	PrivateKeyFile string `json:"private_key_file"`
	PublicKeyFile  string `json:"public_key_file"`
	AuditEnabled   bool   `json:"audit_enabled"`
	AuditPath      string `json:"audit_path,omitempty"`
}

func outputConfigJSON(config *configs.Config) error {
	output, err := json.MarshalIndent(configJSON{
		ConfigFile:     configs.ConfigPath(),
		KeysDir:        config.KeysDir(),
		PrivateKeyFile: config.Keys.PrivateKeyFile,
		PublicKeyFile:  config.Keys.PublicKeyFile,
		AuditEnabled:   config.Audit.Enabled,
		AuditPath:      config.AuditPath(),
	}, "", "  ")
	if err != nil {
		return Logger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
	}
	fmt.Println(string(output))
	return nil
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config.toml with the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")
		configPath := configs.ConfigPath()

		if _, err := os.Stat(configPath); err == nil && !configInitForce {
			Logger.Infof("Config already exists at %s", configPath)
			fmt.Println(ui.Warning.Sprint("⚠") + " Config already exists at " + ui.Path.Sprint(configPath))
			fmt.Println(ui.HintLine("Use " + ui.Flag.Sprint("--force") + " to overwrite it with the defaults"))
			return nil
		}

		if err := configs.SaveConfig(configs.DefaultConfig()); err != nil {
			fmt.Println(ui.FailureLine("Failed to write config: " + err.Error()))
			return reported(err)
		}

		Logger.Infof("Wrote default config to %s", configPath)
		fmt.Println(ui.SuccessLine("Config written to " + ui.Path.Sprint(configPath)))
		return nil
	},
}
