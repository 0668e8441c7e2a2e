package configs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// HomeEnv overrides both the config and data directories when set.
const HomeEnv = "SEALBOX_HOME"

type Settings struct {
	ConfigDir string
	DataDir   string

	// KeysDirOverride comes from --keys-dir and wins over config.toml.
	KeysDirOverride string
}

var SealboxSettings *Settings

func init() {
	settings, err := ResolveSettings()
	if err != nil {
		log.Fatalf("error resolving sealbox directories: %s", err)
	}
	SealboxSettings = settings
}

// ResolveSettings works out where sealbox keeps its config and data.
func ResolveSettings() (*Settings, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return &Settings{ConfigDir: home, DataDir: home}, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("error getting home directory: %w", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("error getting config directory: %w", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return &Settings{
		ConfigDir: filepath.Join(configDir, "sealbox"),
		DataDir:   filepath.Join(dataDir, "sealbox"),
	}, nil
}

// ConfigPath returns the location of config.toml.
func ConfigPath() string {
	return filepath.Join(SealboxSettings.ConfigDir, "config.toml")
}
