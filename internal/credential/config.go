package credential

import (
	"github.com/sant0-9/advisor/internal/config"
)

// FromConfig builds the resolution chain for cfg: environment, secrets.yaml,
// the key saved in config.yaml, then the scy secret URL when one is set.
func FromConfig(cfg *config.Config) *Resolver {
	var stores []Store
	if path, err := config.SecretsPath(); err == nil {
		stores = append(stores, NewFileStore(path))
	}
	stores = append(stores, ConfigStore{Config: cfg})
	if cfg.SecretsURL != "" {
		stores = append(stores, NewScyStore(cfg.SecretsURL))
	}
	return NewResolver(cfg.APIKeyEnv(), stores...)
}
