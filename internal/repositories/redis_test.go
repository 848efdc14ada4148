package repositories

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedisContainer(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := redisC.Host(ctx)
	require.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	require.NoError(t, rdb.Ping(ctx).Err())

	return rdb, func() {
		rdb.Close()
		redisC.Terminate(ctx)
	}
}

func TestResetTokenRepository(t *testing.T) {
	rdb, teardown := setupRedisContainer(t)
	defer teardown()

	ctx := context.Background()
	repo := NewResetTokenRepository(rdb)

	t.Run("Save and Consume once", func(t *testing.T) {
		userID := uuid.New()
		jti := uuid.NewString()

		require.NoError(t, repo.Save(ctx, jti, userID, time.Minute))

		got, err := repo.Consume(ctx, jti)
		require.NoError(t, err)
		assert.Equal(t, userID, got)

		_, err = repo.Consume(ctx, jti)
		assert.ErrorIs(t, err, ErrResetTokenNotFound)
	})

	t.Run("Unknown token", func(t *testing.T) {
		_, err := repo.Consume(ctx, "missing")
		assert.ErrorIs(t, err, ErrResetTokenNotFound)
	})

	t.Run("Token expires", func(t *testing.T) {
		jti := uuid.NewString()
		require.NoError(t, repo.Save(ctx, jti, uuid.New(), time.Second))

		time.Sleep(2 * time.Second)

		_, err := repo.Consume(ctx, jti)
		assert.ErrorIs(t, err, ErrResetTokenNotFound)
	})
}

func TestRedisLocker(t *testing.T) {
	rdb, teardown := setupRedisContainer(t)
	defer teardown()

	ctx := context.Background()
	userID := uuid.New()

	t.Run("Serializes same user", func(t *testing.T) {
		locker := NewRedisLocker(rdb, 5*time.Second, 10*time.Millisecond, 5*time.Second)

		var (
			mu      sync.Mutex
			active  int
			overlap bool
			wg      sync.WaitGroup
		)
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, unlock, err := locker.Lock(ctx, userID)
				if !assert.NoError(t, err) {
					return
				}
				defer unlock()

				mu.Lock()
				active++
				overlap = overlap || active > 1
				mu.Unlock()

				time.Sleep(30 * time.Millisecond)

				mu.Lock()
				active--
				mu.Unlock()
			}()
		}
		wg.Wait()
		assert.False(t, overlap)
	})

	t.Run("Times out while held", func(t *testing.T) {
		locker := NewRedisLocker(rdb, 5*time.Second, 10*time.Millisecond, 100*time.Millisecond)

		_, unlock, err := locker.Lock(ctx, userID)
		require.NoError(t, err)
		defer unlock()

		_, _, err = locker.Lock(ctx, userID)
		assert.ErrorIs(t, err, ErrLockTimeout)

		_, other, err := locker.Lock(ctx, uuid.New())
		require.NoError(t, err)
		other()
	})

	t.Run("Release does not delete a lock taken over after expiry", func(t *testing.T) {
		locker := NewRedisLocker(rdb, 100*time.Millisecond, 10*time.Millisecond, time.Second)
		id := uuid.New()

		_, staleUnlock, err := locker.Lock(ctx, id)
		require.NoError(t, err)

		time.Sleep(200 * time.Millisecond)

		_, unlock, err := NewRedisLocker(rdb, 5*time.Second, 10*time.Millisecond, time.Second).Lock(ctx, id)
		require.NoError(t, err)

		staleUnlock()

		exists, err := rdb.Exists(ctx, redisLockPrefix+id.String()).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), exists)

		unlock()
	})
}

func TestLoginAttemptRepository(t *testing.T) {
	rdb, teardown := setupRedisContainer(t)
	defer teardown()

	repo := NewLoginAttemptRepository(rdb)
	ctx := context.Background()
	userID := uuid.New()

	n, err := repo.Failures(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, n)

	for want := int64(1); want <= 3; want++ {
		n, err = repo.RecordFailure(ctx, userID, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	n, err = repo.Failures(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	ttl, err := rdb.TTL(ctx, loginFailuresPrefix+userID.String()).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, repo.Reset(ctx, userID))
	n, err = repo.Failures(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, n)

	t.Run("Counter expires after the window", func(t *testing.T) {
		id := uuid.New()
		_, err := repo.RecordFailure(ctx, id, 100*time.Millisecond)
		require.NoError(t, err)

		assert.Eventually(t, func() bool {
			n, err := repo.Failures(ctx, id)
			return err == nil && n == 0
		}, 2*time.Second, 20*time.Millisecond)
	})
}
