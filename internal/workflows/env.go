package workflows

import (
	"fmt"

	"github.com/PolarWolf314/sealbox/internal/audit"
	"github.com/PolarWolf314/sealbox/internal/configs"
	"github.com/PolarWolf314/sealbox/internal/keystore"
)

// environment is what every workflow needs: the config, the key store it
// describes, and where to audit.
type environment struct {
	config *configs.Config
	store  *keystore.Store
	audit  audit.Logger
}

func loadEnvironment() (*environment, error) {
	config, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &environment{
		config: config,
		store:  config.KeyStore(),
		audit:  audit.Logger{Path: config.AuditPath()},
	}, nil
}
