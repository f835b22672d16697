package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every environment variable read by FireHorse processes.
const EnvPrefix = "FIREHORSE_"

// ParseEnv loads configuration from FIREHORSE_-prefixed environment variables.
//
// Struct tags name the variable without the shared prefix, so
// `env:"WEB_HTTP_ADDR"` reads FIREHORSE_WEB_HTTP_ADDR.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
