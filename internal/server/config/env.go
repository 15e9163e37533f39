package config

import "github.com/kelseyhightower/envconfig"

// EnvPrefix is prepended to every environment variable name, e.g. GOPHGUARD_GRPC_ADDR.
const EnvPrefix = "GOPHGUARD"

// parseEnv overlays Config with the GOPHGUARD_* variables that are set.
// Unset variables leave the current values alone. Malformed values panic.
func parseEnv(cfg *Config) {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		panic(err)
	}
}
