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

//go:generate mockgen -source=account.go -destination=mock_account.go -package=services

// Error variables
var (
	ErrUserAlreadyExists  = repositories.ErrUserAlreadyExists
	ErrUserDoesNotExist   = errors.New("username does not exist")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrAccountLocked      = errors.New("account locked after repeated failed logins")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	GetByUsernameOrEmail(ctx context.Context, username *string, email *string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username string, passwordHash string, email string) (uuid.UUID, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

// Hasher hashes and verifies passwords.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(storedHash, plaintext string) bool
}

// TokenIssuer issues access tokens and password reset tokens.
type TokenIssuer interface {
	Generate(ctx context.Context, userID uuid.UUID) (string, error)
	GenerateResetToken(ctx context.Context, userID uuid.UUID) (string, string, error)
	ParseResetToken(ctx context.Context, token string) (uuid.UUID, string, error)
}

// ResetTokenStore tracks issued reset tokens so each can be used once.
type ResetTokenStore interface {
	Save(ctx context.Context, jti string, userID uuid.UUID, ttl time.Duration) error
	Consume(ctx context.Context, jti string) (uuid.UUID, error)
}

// LoginAttemptTracker counts failed logins per user.
type LoginAttemptTracker interface {
	Failures(ctx context.Context, userID uuid.UUID) (int64, error)
	RecordFailure(ctx context.Context, userID uuid.UUID, window time.Duration) (int64, error)
	Reset(ctx context.Context, userID uuid.UUID) error
}

// AccountService handles registration, login and the plain password
// change and reset primitives. Password changes reach it through PasswordService.
type AccountService struct {
	reader      UserReader
	writer      UserWriter
	history     HistoryAppender
	hasher      Hasher
	tokens      TokenIssuer
	resetTokens ResetTokenStore
	policy      PasswordPolicy
	resetTTL    time.Duration
	kafkaWriter KafkaWriter
	now         func() time.Time

	attempts    LoginAttemptTracker
	maxFailures int64
	lockout     time.Duration
}

// NewAccountService creates a new AccountService instance.
func NewAccountService(
	reader UserReader,
	writer UserWriter,
	history HistoryAppender,
	hasher Hasher,
	tokens TokenIssuer,
	resetTokens ResetTokenStore,
	policy PasswordPolicy,
	resetTTL time.Duration,
	kafkaWriter KafkaWriter,
) *AccountService {
	return &AccountService{
		reader:      reader,
		writer:      writer,
		history:     history,
		hasher:      hasher,
		tokens:      tokens,
		resetTokens: resetTokens,
		policy:      policy,
		resetTTL:    resetTTL,
		kafkaWriter: kafkaWriter,
		now:         time.Now,
	}
}

// WithClock replaces the time source.
func (svc *AccountService) WithClock(now func() time.Time) *AccountService {
	svc.now = now
	return svc
}

// WithLockout locks an account for lockout once maxFailures consecutive
// logins have failed. Without it failed logins are not counted.
func (svc *AccountService) WithLockout(attempts LoginAttemptTracker, maxFailures int, lockout time.Duration) *AccountService {
	svc.attempts = attempts
	svc.maxFailures = int64(maxFailures)
	svc.lockout = lockout
	return svc
}

// Register creates a user and seeds the password history with the initial password.
func (svc *AccountService) Register(ctx context.Context, username, password, email string) (uuid.UUID, error) {
	if err := svc.policy.Validate(password); err != nil {
		logger.Log.Infow("password rejected by policy", "username", username, "error", err)
		return uuid.Nil, err
	}

	user, err := svc.reader.GetByUsernameOrEmail(ctx, &username, &email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return uuid.Nil, err
	}
	if user != nil {
		logger.Log.Errorw("user already exists", "username", username, "email", email)
		return uuid.Nil, ErrUserAlreadyExists
	}

	hashedPassword, err := svc.hasher.Hash(password)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return uuid.Nil, err
	}

	userID, err := svc.writer.Save(ctx, username, hashedPassword, email)
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return uuid.Nil, err
	}

	if err := svc.history.Append(ctx, userID, hashedPassword, svc.now().UTC()); err != nil {
		logger.Log.Errorw("failed to seed password history", "user_id", userID, "err", err)
		return uuid.Nil, err
	}

	return userID, nil
}

// Login authenticates a user and returns a JWT token.
func (svc *AccountService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := svc.reader.GetByUsernameOrEmail(ctx, &username, nil)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "username", username)
		return "", ErrUserDoesNotExist
	}

	if svc.attempts != nil {
		failures, err := svc.attempts.Failures(ctx, user.UserID)
		if err != nil {
			logger.Log.Errorw("failed to read login failures", "user_id", user.UserID, "err", err)
			return "", err
		}
		if failures >= svc.maxFailures {
			logger.Log.Infow("login rejected for locked account", "user_id", user.UserID)
			return "", ErrAccountLocked
		}
	}

	if !svc.hasher.Verify(user.PasswordHash, password) {
		logger.Log.Errorw("invalid credentials", "username", username)
		svc.recordLoginFailure(ctx, user.UserID)
		return "", ErrInvalidCredentials
	}

	token, err := svc.tokens.Generate(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	if svc.attempts != nil {
		if err := svc.attempts.Reset(ctx, user.UserID); err != nil {
			logger.Log.Errorw("failed to reset login failures", "user_id", user.UserID, "err", err)
		}
	}

	return token, nil
}

func (svc *AccountService) recordLoginFailure(ctx context.Context, userID uuid.UUID) {
	if svc.attempts == nil {
		return
	}
	failures, err := svc.attempts.RecordFailure(ctx, userID, svc.lockout)
	if err != nil {
		logger.Log.Errorw("failed to record login failure", "user_id", userID, "err", err)
		return
	}
	if failures >= svc.maxFailures {
		logger.Log.Warnw("account locked", "user_id", userID, "failures", failures, "lockout", svc.lockout)
	}
}

// FindUserByID returns the user or ErrUserNotFound.
func (svc *AccountService) FindUserByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ChangePassword replaces the password after verifying the current one.
// It does not consult the password history.
func (svc *AccountService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := svc.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !svc.hasher.Verify(user.PasswordHash, currentPassword) {
		logger.Log.Errorw("invalid current password", "user_id", userID)
		return ErrInvalidCredentials
	}

	return svc.setPassword(ctx, userID, newPassword)
}

// RequestPasswordReset issues a single-use reset token and publishes it for delivery.
// Unknown emails are not reported to the caller.
func (svc *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := svc.reader.GetByUsernameOrEmail(ctx, nil, &email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return err
	}
	if user == nil {
		logger.Log.Infow("password reset requested for unknown email", "email", email)
		return nil
	}

	token, jti, err := svc.tokens.GenerateResetToken(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate reset token", "user_id", user.UserID, "err", err)
		return err
	}

	if err := svc.resetTokens.Save(ctx, jti, user.UserID, svc.resetTTL); err != nil {
		logger.Log.Errorw("failed to store reset token", "user_id", user.UserID, "err", err)
		return err
	}

	event := newEvent(models.EventResetRequested, user.UserID)
	event.Email = user.Email
	event.ResetToken = token
	publishEvent(ctx, svc.kafkaWriter, event)

	return nil
}

// ResetPassword replaces the password of userID using a reset token issued for that user.
// It does not consult the password history.
func (svc *AccountService) ResetPassword(ctx context.Context, userID uuid.UUID, token, newPassword string) error {
	tokenUserID, jti, err := svc.tokens.ParseResetToken(ctx, token)
	if err != nil || tokenUserID != userID {
		logger.Log.Errorw("invalid reset token", "user_id", userID, "err", err)
		return ErrInvalidResetToken
	}

	if err := svc.policy.Validate(newPassword); err != nil {
		logger.Log.Infow("password rejected by policy", "user_id", userID, "error", err)
		return err
	}

	storedUserID, err := svc.resetTokens.Consume(ctx, jti)
	if errors.Is(err, repositories.ErrResetTokenNotFound) || (err == nil && storedUserID != userID) {
		logger.Log.Errorw("reset token already used or expired", "user_id", userID)
		return ErrInvalidResetToken
	}
	if err != nil {
		logger.Log.Errorw("failed to consume reset token", "user_id", userID, "err", err)
		return err
	}

	return svc.setPassword(ctx, userID, newPassword)
}

func (svc *AccountService) setPassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	if err := svc.policy.Validate(newPassword); err != nil {
		logger.Log.Infow("password rejected by policy", "user_id", userID, "error", err)
		return err
	}

	hashedPassword, err := svc.hasher.Hash(newPassword)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	if err := svc.writer.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		logger.Log.Errorw("failed to update password", "user_id", userID, "err", err)
		return err
	}
	return nil
}
