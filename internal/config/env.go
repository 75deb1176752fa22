package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment. Variable names come from
// the env/envPrefix tags, e.g. ADAPTER_REQUEST_TIMEOUT or
// WORKERS_REFRESH_INTERVAL. Unset variables leave fields zero so that the
// other sources can fill them during the merge.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	return nil
}
