package lockout

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

var ErrStoreUnavailable = errors.New("lockout store unavailable")

const (
	fieldAttempts = "failed_attempts"
	fieldUntil    = "lockout_until"
)

// RedisStore keeps the status in a Redis hash, for setups where several
// client processes on one machine share a single limiter.
type RedisStore struct {
	redis redis.UniversalClient
	key   string
}

func NewRedisStore(client redis.UniversalClient, deviceID string) *RedisStore {
	return &RedisStore{redis: client, key: "gophguard:lockout:" + deviceID}
}

func (r *RedisStore) Load(ctx context.Context) (Status, bool, error) {
	vals, err := r.redis.HGetAll(ctx, r.key).Result()
	if err != nil {
		return Status{}, false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if len(vals) == 0 {
		return Status{}, false, nil
	}

	var rec record
	if rec.FailedAttempts, err = strconv.Atoi(vals[fieldAttempts]); err != nil {
		return Status{}, false, fmt.Errorf("decode %s: %w", fieldAttempts, err)
	}
	if rec.LockoutUntil, err = strconv.ParseInt(vals[fieldUntil], 10, 64); err != nil {
		return Status{}, false, fmt.Errorf("decode %s: %w", fieldUntil, err)
	}
	return rec.status(), true, nil
}

func (r *RedisStore) Save(ctx context.Context, st Status) error {
	if st == (Status{}) {
		if err := r.redis.Del(ctx, r.key).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return nil
	}

	rec := toRecord(st)
	if err := r.redis.HSet(ctx, r.key, fieldAttempts, rec.FailedAttempts, fieldUntil, rec.LockoutUntil).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
