package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophguard/internal/flagx"
)

var knownFlags = []string{"-a", "-d", "-k", "-i", "-t", "-hash", "-lockout", "-redis", "-secret", "-log"}

// parseFlags populates Config fields from command-line flags. os.Args is
// filtered with flagx.FilterArgs first so -c/-config and unknown flags do
// not make parsing fail. Parse errors panic.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ProfileServerAddr, "a", cfg.ProfileServerAddr, "address and port of the profile store")
	fs.StringVar(&cfg.StoragePath, "d", cfg.StoragePath, "local storage file")
	fs.StringVar(&cfg.DeviceKeyPath, "k", cfg.DeviceKeyPath, "device secret file")
	checkInterval := fs.Int("i", int(cfg.LockoutCheckInterval.Seconds()), "lockout check interval (in seconds)")
	fs.DurationVar(&cfg.RemoteTimeout, "t", cfg.RemoteTimeout, "profile store call timeout")
	fs.StringVar(&cfg.HashAlgorithm, "hash", cfg.HashAlgorithm, "password digest algorithm")
	fs.StringVar(&cfg.LockoutBackend, "lockout", cfg.LockoutBackend, "lockout backend: secure, redis or memory")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "redis address")
	fs.StringVar(&cfg.ServiceSecret, "secret", cfg.ServiceSecret, "service token secret")
	fs.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.LockoutCheckInterval = time.Duration(*checkInterval) * time.Second
}
