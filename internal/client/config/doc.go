// Package config loads runtime configuration for the gophguard client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     address:port of the profile store
//	-d string     path of the local SQLite storage file
//	-k string     path of the device secret file
//	-i int        lockout check interval (seconds)
//	-t duration   profile store call timeout, e.g. 10s
//	-hash string  password digest algorithm (sha256, argon2id)
//	-lockout string  lockout backend (secure, redis, memory)
//	-redis string    Redis address for the redis lockout backend
//	-secret string   service token secret
//	-log string      log level
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be strings like "10s" or
// integer nanoseconds. Keys missing from the file keep their current value:
//
//	{
//	  "storage_path": "gophguard.db",
//	  "device_key_path": "gophguard.key",
//	  "profile_server_addr": "127.0.0.1:50051",
//	  "service_secret": "change-me",
//	  "remote_timeout": "10s",
//	  "lockout_check_interval": "1m",
//	  "hash_algorithm": "sha256",
//	  "lockout_backend": "secure",
//	  "redis_addr": "127.0.0.1:6379",
//	  "log_level": "info"
//	}
package config
