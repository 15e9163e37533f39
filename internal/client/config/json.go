package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophguard/internal/flagx"
	"github.com/dmitrijs2005/gophguard/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	StoragePath          string         `json:"storage_path"`
	DeviceKeyPath        string         `json:"device_key_path"`
	ProfileServerAddr    string         `json:"profile_server_addr"`
	ServiceSecret        string         `json:"service_secret"`
	RemoteTimeout        timex.Duration `json:"remote_timeout"`
	LockoutCheckInterval timex.Duration `json:"lockout_check_interval"`
	HashAlgorithm        string         `json:"hash_algorithm"`
	LockoutBackend       string         `json:"lockout_backend"`
	RedisAddr            string         `json:"redis_addr"`
	LogLevel             string         `json:"log_level"`
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// parseJson overlays Config with the non-empty values of the JSON file named
// by -c/-config. It panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.StoragePath, jc.StoragePath)
	setString(&cfg.DeviceKeyPath, jc.DeviceKeyPath)
	setString(&cfg.ProfileServerAddr, jc.ProfileServerAddr)
	setString(&cfg.ServiceSecret, jc.ServiceSecret)
	setString(&cfg.HashAlgorithm, jc.HashAlgorithm)
	setString(&cfg.LockoutBackend, jc.LockoutBackend)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.LogLevel, jc.LogLevel)

	if jc.RemoteTimeout.Duration > 0 {
		cfg.RemoteTimeout = jc.RemoteTimeout.Duration
	}
	if jc.LockoutCheckInterval.Duration > 0 {
		cfg.LockoutCheckInterval = jc.LockoutCheckInterval.Duration
	}
}
