package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-password-history/internal/logger"
	"github.com/sbilibin2017/gw-password-history/internal/models"
)

//go:generate mockgen -source=reuse.go -destination=mock_reuse.go -package=services

// DefaultEnforcementWindow is the trailing period in which a password cannot be reused.
const DefaultEnforcementWindow = 365 * 24 * time.Hour

// HashVerifier reports whether a plaintext matches a stored hash.
type HashVerifier interface {
	Verify(storedHash, plaintext string) bool
}

// HistoryReader returns the history records of a user inside a window.
type HistoryReader interface {
	RecordsWithin(ctx context.Context, userID uuid.UUID, windowStart time.Time) ([]models.PasswordHistoryRecord, error)
}

// ReuseChecker decides whether a candidate password was used inside the enforcement window.
type ReuseChecker struct {
	history  HistoryReader
	verifier HashVerifier
	window   time.Duration
}

// NewReuseChecker creates a ReuseChecker. A non-positive window selects DefaultEnforcementWindow.
func NewReuseChecker(history HistoryReader, verifier HashVerifier, window time.Duration) *ReuseChecker {
	if window <= 0 {
		window = DefaultEnforcementWindow
	}
	return &ReuseChecker{
		history:  history,
		verifier: verifier,
		window:   window,
	}
}

// Window returns the enforcement window.
func (c *ReuseChecker) Window() time.Duration {
	return c.window
}

// IsReused reports whether candidate matches any record with changed_at >= now-window.
// Every in-window hash is verified individually because salted hashes cannot be compared.
// An error means the check could not complete and the change must not proceed.
func (c *ReuseChecker) IsReused(ctx context.Context, userID uuid.UUID, candidate string, now time.Time) (bool, error) {
	windowStart := now.Add(-c.window)

	records, err := c.history.RecordsWithin(ctx, userID, windowStart)
	if err != nil {
		logger.Log.Errorw("failed to read password history", "user_id", userID, "window_start", windowStart, "error", err)
		return false, err
	}

	for _, record := range records {
		if c.verifier.Verify(record.PasswordHash, candidate) {
			logger.Log.Infow("candidate password found in history", "user_id", userID, "changed_at", record.ChangedAt)
			return true, nil
		}
	}
	return false, nil
}
