package repositories

import (
	"context"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-password-history/internal/logger"
)

const advisoryKeyPrefix = "password_history:"

// AdvisoryLocker serializes password changes of one user with a PostgreSQL
// session-level advisory lock. The connection holding the lock travels in the
// returned context, so repository calls made with it reuse that session and
// never wait on the pool while the lock is held.
type AdvisoryLocker struct {
	db    *sqlx.DB
	retry time.Duration
	wait  time.Duration
}

// NewAdvisoryLocker creates an AdvisoryLocker that polls every retry and
// gives up with ErrLockTimeout after wait.
func NewAdvisoryLocker(db *sqlx.DB, retry, wait time.Duration) *AdvisoryLocker {
	return &AdvisoryLocker{db: db, retry: retry, wait: wait}
}

// Lock acquires the advisory lock for userID. Statements issued with the
// returned context run on the locked connection. The returned function
// releases the lock and hands the connection back to the pool.
func (l *AdvisoryLocker) Lock(ctx context.Context, userID uuid.UUID) (context.Context, func(), error) {
	const unlockQuery = `SELECT pg_advisory_unlock(hashtext($1))`

	key := advisoryKeyPrefix + userID.String()

	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	for {
		conn, err := l.tryLock(waitCtx, key)
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			if waitCtx.Err() != nil {
				return nil, nil, ErrLockTimeout
			}
			return nil, nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		if conn != nil {
			return withLockedConn(ctx, conn), func() {
				_, err := conn.ExecContext(context.Background(), unlockQuery, key)
				logQuery(unlockQuery, []any{key}, nil, err)
				if err != nil {
					logger.Log.Errorw("failed to release advisory lock", "user_id", userID, "error", err)
					discardConn(conn)
				}
				conn.Close()
			}, nil
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			return nil, nil, ErrLockTimeout
		case <-time.After(l.retry):
		}
	}
}

// tryLock returns the connection holding the lock, or nil when another
// session holds it. A connection is only kept while it owns the lock.
func (l *AdvisoryLocker) tryLock(ctx context.Context, key string) (*sqlx.Conn, error) {
	const lockQuery = `SELECT pg_try_advisory_lock(hashtext($1))`

	conn, err := l.db.Connx(ctx)
	if err != nil {
		logQuery(lockQuery, []any{key}, nil, err)
		return nil, err
	}

	var acquired bool
	err = conn.GetContext(ctx, &acquired, lockQuery, key)
	logQuery(lockQuery, []any{key}, acquired, err)
	if err != nil {
		// the lock may have been granted before the call failed
		discardConn(conn)
		conn.Close()
		return nil, err
	}
	if !acquired {
		conn.Close()
		return nil, nil
	}
	return conn, nil
}

// discardConn marks conn as broken so Close drops it instead of pooling it.
// Session locks outlive statements.
func discardConn(conn *sqlx.Conn) {
	_ = conn.Raw(func(any) error { return driver.ErrBadConn })
}
