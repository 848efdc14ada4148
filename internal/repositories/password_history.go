package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-password-history/internal/models"
)

// PasswordHistoryRepository persists password history records in PostgreSQL.
type PasswordHistoryRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

// NewPasswordHistoryRepository creates a repository. When txGetter returns a
// transaction for the context, statements join it.
func NewPasswordHistoryRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *PasswordHistoryRepository {
	return &PasswordHistoryRepository{db: db, txGetter: txGetter}
}

// Append stores a record. Re-appending the same (user, hash) pair overwrites changed_at.
func (r *PasswordHistoryRepository) Append(ctx context.Context, userID uuid.UUID, passwordHash string, changedAt time.Time) error {
	const query = `
		INSERT INTO password_history (user_id, password_hash, changed_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, password_hash)
		DO UPDATE SET changed_at = EXCLUDED.changed_at
	`

	changedAt = changedAt.UTC()
	_, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, userID, passwordHash, changedAt)
	logQuery(query, []any{userID, changedAt}, nil, err)

	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// RecordsWithin returns every record of the user with changed_at >= windowStart.
func (r *PasswordHistoryRepository) RecordsWithin(ctx context.Context, userID uuid.UUID, windowStart time.Time) ([]models.PasswordHistoryRecord, error) {
	const query = `
		SELECT user_id, password_hash, changed_at
		FROM password_history
		WHERE user_id = $1 AND changed_at >= $2
	`

	windowStart = windowStart.UTC()
	var records []models.PasswordHistoryRecord
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &records, query, userID, windowStart)
	logQuery(query, []any{userID, windowStart}, len(records), err)

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if len(records) == 0 {
		if err := r.ensureUser(ctx, userID); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// AllRecords returns the full history of the user ordered by changed_at.
func (r *PasswordHistoryRepository) AllRecords(ctx context.Context, userID uuid.UUID) ([]models.PasswordHistoryRecord, error) {
	const query = `
		SELECT user_id, password_hash, changed_at
		FROM password_history
		WHERE user_id = $1
		ORDER BY changed_at
	`

	var records []models.PasswordHistoryRecord
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &records, query, userID)
	logQuery(query, []any{userID}, len(records), err)

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if len(records) == 0 {
		if err := r.ensureUser(ctx, userID); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// DeleteBefore removes records older than cutoff. The latest record of each
// user is always kept, so every user retains at least one record.
func (r *PasswordHistoryRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `
		DELETE FROM password_history ph
		WHERE ph.changed_at < $1
		  AND ph.changed_at < (
		      SELECT MAX(latest.changed_at)
		      FROM password_history latest
		      WHERE latest.user_id = ph.user_id
		  )
	`

	cutoff = cutoff.UTC()
	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, cutoff)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, []any{cutoff}, rowsAffected, err)

	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return rowsAffected, nil
}

func (r *PasswordHistoryRepository) ensureUser(ctx context.Context, userID uuid.UUID) error {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1)`

	var exists bool
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &exists, query, userID)
	logQuery(query, []any{userID}, exists, err)

	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}
