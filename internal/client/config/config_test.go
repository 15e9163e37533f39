package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50051", c.ProfileServerAddr)
	assert.Equal(t, 10*time.Second, c.RemoteTimeout)
	assert.Equal(t, time.Minute, c.LockoutCheckInterval)
	assert.Equal(t, "sha256", c.HashAlgorithm)
	assert.Equal(t, LockoutBackendSecure, c.LockoutBackend)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "127.0.0.1:50051", cfg.ProfileServerAddr)
	assert.Equal(t, time.Minute, cfg.LockoutCheckInterval)
}
