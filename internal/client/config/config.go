package config

import "time"

// Lockout backends.
const (
	LockoutBackendSecure = "secure"
	LockoutBackendRedis  = "redis"
	LockoutBackendMemory = "memory"
)

// Config holds runtime settings for the gophguard client.
//
// Fields:
//   - StoragePath: SQLite file holding the encrypted credential, session and lockout records.
//   - DeviceKeyPath: file with the per-device secret the storage key is derived from.
//   - ProfileServerAddr: host:port of the profile store gRPC endpoint.
//   - ServiceSecret: HS256 secret shared with the profile store.
//   - RemoteTimeout: deadline applied to each profile store call.
//   - LockoutCheckInterval: how often an elapsed lockout is cleared in the background.
//   - HashAlgorithm: "sha256" or "argon2id" for newly stored password digests.
//   - LockoutBackend: where lockout state is persisted ("secure", "redis", "memory").
//   - RedisAddr: Redis address used when LockoutBackend is "redis".
//   - LogLevel: debug, info, warn or error.
type Config struct {
	StoragePath          string
	DeviceKeyPath        string
	ProfileServerAddr    string
	ServiceSecret        string
	RemoteTimeout        time.Duration
	LockoutCheckInterval time.Duration
	HashAlgorithm        string
	LockoutBackend       string
	RedisAddr            string
	LogLevel             string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StoragePath = "gophguard.db"
	c.DeviceKeyPath = "gophguard.key"
	c.ProfileServerAddr = "127.0.0.1:50051"
	c.ServiceSecret = "change-me"
	c.RemoteTimeout = 10 * time.Second
	c.LockoutCheckInterval = time.Minute
	c.HashAlgorithm = "sha256"
	c.LockoutBackend = LockoutBackendSecure
	c.RedisAddr = "127.0.0.1:6379"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
