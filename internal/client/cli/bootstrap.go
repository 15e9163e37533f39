package cli

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/gophguard/internal/client/config"
	"github.com/dmitrijs2005/gophguard/internal/client/credentials"
	"github.com/dmitrijs2005/gophguard/internal/client/hasher"
	"github.com/dmitrijs2005/gophguard/internal/client/localdb"
	"github.com/dmitrijs2005/gophguard/internal/client/lockout"
	"github.com/dmitrijs2005/gophguard/internal/client/profiles"
	"github.com/dmitrijs2005/gophguard/internal/client/securestore"
	"github.com/dmitrijs2005/gophguard/internal/client/services"
	"github.com/dmitrijs2005/gophguard/internal/client/session"
	"github.com/dmitrijs2005/gophguard/internal/logging"
)

// ErrUnknownLockoutBackend is returned for an unsupported lockout backend name.
var ErrUnknownLockoutBackend = errors.New("unknown lockout backend")

// serviceSubject is the subject put into service tokens by this client.
const serviceSubject = "gophguard-cli"

// Bootstrap opens local storage, connects the profile store client and
// assembles an AuthService from cfg. The returned closer releases every
// resource in reverse order of acquisition.
func Bootstrap(ctx context.Context, cfg *config.Config, l logging.Logger) (*services.AuthService, func() error, error) {
	var closers []io.Closer
	closeAll := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
	fail := func(err error) (*services.AuthService, func() error, error) {
		_ = closeAll()
		return nil, nil, err
	}

	db, err := localdb.Open(ctx, cfg.StoragePath)
	if err != nil {
		return fail(fmt.Errorf("open local storage: %w", err))
	}
	closers = append(closers, db)

	secret, err := securestore.LoadDeviceSecret(cfg.DeviceKeyPath)
	if err != nil {
		return fail(fmt.Errorf("load device secret: %w", err))
	}

	items, err := securestore.Open(ctx, db, secret)
	if err != nil {
		return fail(err)
	}

	h, err := hasher.New(cfg.HashAlgorithm)
	if err != nil {
		return fail(err)
	}

	var lockStore lockout.Store
	switch cfg.LockoutBackend {
	case config.LockoutBackendSecure, "":
		lockStore = lockout.NewSecureStore(items)
	case config.LockoutBackendMemory:
		lockStore = lockout.NewMemoryStore()
	case config.LockoutBackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		closers = append(closers, rdb)
		lockStore = lockout.NewRedisStore(rdb, DeviceID(secret))
	default:
		return fail(fmt.Errorf("%w: %q", ErrUnknownLockoutBackend, cfg.LockoutBackend))
	}

	remote, err := profiles.NewGRPCClient(cfg.ProfileServerAddr, []byte(cfg.ServiceSecret), serviceSubject)
	if err != nil {
		return fail(fmt.Errorf("profile store client: %w", err))
	}
	closers = append(closers, remote)

	svc := services.NewAuthService(
		credentials.NewStore(items, l),
		session.NewManager(items, l),
		lockout.NewPolicy(lockStore, l),
		h,
		remote,
		l,
		services.WithRemoteTimeout(cfg.RemoteTimeout),
	)

	return svc, closeAll, nil
}

// DeviceID is a stable, non-secret identifier derived from the device secret.
func DeviceID(secret []byte) string {
	sum := sha256.Sum256(secret)
	return hex.EncodeToString(sum[:8])
}
