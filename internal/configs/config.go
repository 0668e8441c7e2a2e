package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/sealbox/internal/errors"
	"github.com/PolarWolf314/sealbox/internal/keystore"
)

type Config struct {
	Keys  KeysConfig  `toml:"keys"`
	Audit AuditConfig `toml:"audit"`
}

type KeysConfig struct {
	Dir            string `toml:"dir"`
	PrivateKeyFile string `toml:"private_key_file"`
	PublicKeyFile  string `toml:"public_key_file"`
}

type AuditConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// DefaultConfig returns the settings used when config.toml is absent. Empty
// paths are resolved against the data directory.
func DefaultConfig() *Config {
	return &Config{
		Keys: KeysConfig{
			PrivateKeyFile: keystore.DefaultPrivateKeyFile,
			PublicKeyFile:  keystore.DefaultPublicKeyFile,
		},
		Audit: AuditConfig{
			Enabled: true,
		},
	}
}

// LoadConfig reads config.toml over the defaults. Keys missing from the file
// keep their default values.
func LoadConfig() (*Config, error) {
	config := DefaultConfig()
	configPath := ConfigPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("%w: failed to load %s: %v", kerrors.ErrInvalidConfig, configPath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig writes config to config.toml.
func SaveConfig(config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if err := SaveTOML(ConfigPath(), config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// Validate rejects key file names that cannot be used as two separate files
// inside the key directory.
func (c *Config) Validate() error {
	names := map[string]string{
		"private_key_file": c.Keys.PrivateKeyFile,
		"public_key_file":  c.Keys.PublicKeyFile,
	}
	for field, name := range names {
		if name == "" {
			return fmt.Errorf("%w: keys.%s must not be empty", kerrors.ErrInvalidConfig, field)
		}
		if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
			return fmt.Errorf("%w: keys.%s must be a plain file name, got %q", kerrors.ErrInvalidConfig, field, name)
		}
	}
	if c.Keys.PrivateKeyFile == c.Keys.PublicKeyFile {
		return fmt.Errorf("%w: private and public key files must differ", kerrors.ErrInvalidConfig)
	}
	return nil
}

// KeysDir returns the key directory, honouring --keys-dir.
func (c *Config) KeysDir() string {
	if SealboxSettings.KeysDirOverride != "" {
		return SealboxSettings.KeysDirOverride
	}
	if c.Keys.Dir != "" {
		return c.Keys.Dir
	}
	return filepath.Join(SealboxSettings.DataDir, "keys")
}

// AuditPath returns the audit log location, or "" when auditing is off.
func (c *Config) AuditPath() string {
	if !c.Audit.Enabled {
		return ""
	}
	if c.Audit.Path != "" {
		return c.Audit.Path
	}
	return filepath.Join(SealboxSettings.DataDir, "audit.jsonl")
}

// KeyStore builds the key store described by the config.
func (c *Config) KeyStore() *keystore.Store {
	return &keystore.Store{
		Dir:            c.KeysDir(),
		PrivateKeyFile: c.Keys.PrivateKeyFile,
		PublicKeyFile:  c.Keys.PublicKeyFile,
	}
}
