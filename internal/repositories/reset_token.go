package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-password-history/internal/logger"
)

// ErrResetTokenNotFound is returned for unknown, expired or already used reset tokens.
var ErrResetTokenNotFound = errors.New("reset token not found")

const resetTokenPrefix = "password_reset:"

// ResetTokenRepository keeps issued reset token ids in Redis until they are used or expire.
type ResetTokenRepository struct {
	client *redis.Client
}

func NewResetTokenRepository(client *redis.Client) *ResetTokenRepository {
	return &ResetTokenRepository{client: client}
}

// Save registers the token id for userID with the given expiration.
func (r *ResetTokenRepository) Save(ctx context.Context, jti string, userID uuid.UUID, ttl time.Duration) error {
	key := resetTokenPrefix + jti
	err := r.client.Set(ctx, key, userID.String(), ttl).Err()

	logger.Log.Debugw("key",
		"key", key,
		"user_id", userID,
		"error", err,
	)

	return err
}

// Consume removes the token id and returns the user it was issued for.
// A token id can be consumed once.
func (r *ResetTokenRepository) Consume(ctx context.Context, jti string) (uuid.UUID, error) {
	key := resetTokenPrefix + jti
	val, err := r.client.GetDel(ctx, key).Result()

	logger.Log.Debugw("key",
		"key", key,
		"result", val,
		"error", err,
	)

	if errors.Is(err, redis.Nil) {
		return uuid.Nil, ErrResetTokenNotFound
	}
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(val)
}
