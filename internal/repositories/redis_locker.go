package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-password-history/internal/logger"
)

// ErrLockTimeout is returned when a per-user lock cannot be acquired in time.
var ErrLockTimeout = errors.New("timed out waiting for user lock")

const redisLockPrefix = "password_lock:"

// releaseScript deletes the lock key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker serializes password changes of one user across service instances
// with a Redis key set by SET NX PX.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration // lock expiry, bounds a crashed holder
	retry  time.Duration // polling interval while the lock is held elsewhere
	wait   time.Duration // maximum time to wait for the lock
}

// NewRedisLocker creates a RedisLocker.
func NewRedisLocker(client *redis.Client, ttl, retry, wait time.Duration) *RedisLocker {
	return &RedisLocker{
		client: client,
		ttl:    ttl,
		retry:  retry,
		wait:   wait,
	}
}

// Lock acquires the lock for userID, polling until wait elapses or ctx is done.
// The context is returned unchanged.
func (l *RedisLocker) Lock(ctx context.Context, userID uuid.UUID) (context.Context, func(), error) {
	key := redisLockPrefix + userID.String()
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		logger.Log.Debugw("key", "key", key, "result", ok, "error", err)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, nil, ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}

	return ctx, func() {
		res, err := releaseScript.Run(context.Background(), l.client, []string{key}, token).Int()
		logger.Log.Debugw("key", "key", key, "result", res, "error", err)
		if err != nil {
			logger.Log.Errorw("failed to release redis lock", "user_id", userID, "error", err)
		}
	}, nil
}
