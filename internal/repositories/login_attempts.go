package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-password-history/internal/logger"
)

const loginFailuresPrefix = "login_failures:"

// LoginAttemptRepository counts failed logins per user in Redis.
type LoginAttemptRepository struct {
	client *redis.Client
}

func NewLoginAttemptRepository(client *redis.Client) *LoginAttemptRepository {
	return &LoginAttemptRepository{client: client}
}

// Failures returns the failed logins counted for userID, zero when none are.
func (r *LoginAttemptRepository) Failures(ctx context.Context, userID uuid.UUID) (int64, error) {
	key := loginFailuresPrefix + userID.String()
	n, err := r.client.Get(ctx, key).Int64()

	logger.Log.Debugw("key",
		"key", key,
		"result", n,
		"error", err,
	)

	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

// RecordFailure increments the counter of userID and keeps it for window
// after the latest failure. It returns the new count.
func (r *LoginAttemptRepository) RecordFailure(ctx context.Context, userID uuid.UUID, window time.Duration) (int64, error) {
	key := loginFailuresPrefix + userID.String()

	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)
		return nil
	})

	var n int64
	if err == nil {
		n = incr.Val()
	}
	logger.Log.Debugw("key",
		"key", key,
		"result", n,
		"error", err,
	)

	return n, err
}

// Reset clears the counter of userID.
func (r *LoginAttemptRepository) Reset(ctx context.Context, userID uuid.UUID) error {
	key := loginFailuresPrefix + userID.String()
	err := r.client.Del(ctx, key).Err()

	logger.Log.Debugw("key",
		"key", key,
		"error", err,
	)

	return err
}
