package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-password-history/internal/logger"
	"github.com/sbilibin2017/gw-password-history/internal/models"
	"github.com/sbilibin2017/gw-password-history/internal/repositories"
)

//go:generate mockgen -source=password.go -destination=mock_password.go -package=services

// Error variables
var (
	ErrPasswordReused     = errors.New("cannot reuse a recently used password")
	ErrUserNotFound       = repositories.ErrUserNotFound
	ErrStoreUnavailable   = repositories.ErrStoreUnavailable
	ErrHistoryNotRecorded = errors.New("password changed but not recorded in history")
)

// ExternalFailure wraps a failure of the delegated change or reset primitive.
// The message is the delegated error's message, unchanged.
type ExternalFailure struct {
	Op  string
	Err error
}

func (e *ExternalFailure) Error() string { return e.Err.Error() }

func (e *ExternalFailure) Unwrap() error { return e.Err }

// AccountManager is the account system the coordinator delegates to.
type AccountManager interface {
	FindUserByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	ResetPassword(ctx context.Context, userID uuid.UUID, token, newPassword string) error
}

// ReuseDetector reports whether a candidate password is inside the user's recent history.
type ReuseDetector interface {
	IsReused(ctx context.Context, userID uuid.UUID, candidate string, now time.Time) (bool, error)
}

// HistoryAppender stores a new history record.
type HistoryAppender interface {
	Append(ctx context.Context, userID uuid.UUID, passwordHash string, changedAt time.Time) error
}

// PasswordHasher produces a salted one-way hash.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// UserLocker provides mutual exclusion per user. Work done under the lock uses
// the returned context. The returned function releases the lock.
type UserLocker interface {
	Lock(ctx context.Context, userID uuid.UUID) (context.Context, func(), error)
}

// PasswordService is the only entry point for password changes and resets.
// It rejects passwords used inside the enforcement window, delegates to the
// account system and records the new hash on success.
type PasswordService struct {
	accounts    AccountManager
	reuse       ReuseDetector
	history     HistoryAppender
	hasher      PasswordHasher
	locker      UserLocker
	kafkaWriter KafkaWriter
	now         func() time.Time
}

// NewPasswordService creates a new PasswordService.
func NewPasswordService(
	accounts AccountManager,
	reuse ReuseDetector,
	history HistoryAppender,
	hasher PasswordHasher,
	locker UserLocker,
	kafkaWriter KafkaWriter,
) *PasswordService {
	return &PasswordService{
		accounts:    accounts,
		reuse:       reuse,
		history:     history,
		hasher:      hasher,
		locker:      locker,
		kafkaWriter: kafkaWriter,
		now:         time.Now,
	}
}

// WithClock replaces the time source.
func (s *PasswordService) WithClock(now func() time.Time) *PasswordService {
	s.now = now
	return s
}

// ChangePassword changes the password of an authenticated user who proves the current password.
func (s *PasswordService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) (*models.PasswordChangeResult, error) {
	return s.apply(ctx, userID, newPassword, models.EventPasswordChanged, func(ctx context.Context) error {
		return s.accounts.ChangePassword(ctx, userID, currentPassword, newPassword)
	})
}

// ResetPassword sets a new password using a reset token.
func (s *PasswordService) ResetPassword(ctx context.Context, userID uuid.UUID, token, newPassword string) (*models.PasswordChangeResult, error) {
	return s.apply(ctx, userID, newPassword, models.EventPasswordReset, func(ctx context.Context) error {
		return s.accounts.ResetPassword(ctx, userID, token, newPassword)
	})
}

// apply runs reuse check, delegation and history append while holding the user's lock.
func (s *PasswordService) apply(
	ctx context.Context,
	userID uuid.UUID,
	newPassword string,
	op string,
	delegate func(ctx context.Context) error,
) (*models.PasswordChangeResult, error) {
	ctx, unlock, err := s.locker.Lock(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to lock user", "user_id", userID, "op", op, "error", err)
		return nil, err
	}
	defer unlock()

	if _, err := s.accounts.FindUserByID(ctx, userID); err != nil {
		logger.Log.Errorw("failed to find user", "user_id", userID, "op", op, "error", err)
		return nil, err
	}

	reused, err := s.reuse.IsReused(ctx, userID, newPassword, s.now().UTC())
	if err != nil {
		logger.Log.Errorw("password reuse check failed", "user_id", userID, "op", op, "error", err)
		return nil, err
	}
	if reused {
		logger.Log.Infow("password reuse rejected", "user_id", userID, "op", op)
		publishEvent(ctx, s.kafkaWriter, newEvent(models.EventPasswordReuseRejected, userID))
		return nil, ErrPasswordReused
	}

	if err := delegate(ctx); err != nil {
		logger.Log.Errorw("delegated password operation failed", "user_id", userID, "op", op, "error", err)
		return nil, &ExternalFailure{Op: op, Err: err}
	}

	changedAt := s.now().UTC()
	result := &models.PasswordChangeResult{
		UserID:    userID,
		ChangedAt: changedAt,
	}

	if err := s.record(ctx, userID, newPassword, changedAt); err != nil {
		// The account system has already committed the new password.
		logger.Log.Errorw(ErrHistoryNotRecorded.Error(), "user_id", userID, "op", op, "error", err)
		publishEvent(ctx, s.kafkaWriter, newEvent(models.EventHistoryNotRecorded, userID))
		return result, nil
	}

	result.HistoryRecorded = true
	publishEvent(ctx, s.kafkaWriter, newEvent(op, userID))
	return result, nil
}

func (s *PasswordService) record(ctx context.Context, userID uuid.UUID, newPassword string, changedAt time.Time) error {
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.history.Append(ctx, userID, hash, changedAt)
}
