package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sbilibin2017/gw-password-history/internal/logger"
	"github.com/sbilibin2017/gw-password-history/internal/models"
	"github.com/sbilibin2017/gw-password-history/internal/repositories"
	"github.com/sbilibin2017/gw-password-history/internal/services"
)

// PasswordChangeResponse represents a successful password change or reset
// swagger:model PasswordChangeResponse
type PasswordChangeResponse struct {
	// Success message
	// default: Password changed successfully
	Message string `json:"message"`

	// Time the new password took effect
	ChangedAt time.Time `json:"changed_at"`

	// False when the new password could not be added to the password history
	HistoryRecorded bool `json:"history_recorded"`
}

// PasswordErrorResponse represents an error response for password operations
// swagger:model PasswordErrorResponse
type PasswordErrorResponse struct {
	// Error message
	// default: cannot reuse a recently used password
	Error string `json:"error"`
}

func newPasswordChangeResponse(message string, result *models.PasswordChangeResult) PasswordChangeResponse {
	return PasswordChangeResponse{
		Message:         message,
		ChangedAt:       result.ChangedAt,
		HistoryRecorded: result.HistoryRecorded,
	}
}

// writePasswordError maps password change and reset failures to HTTP responses.
// Rejections from the account system keep their original message.
func writePasswordError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordReused),
		errors.Is(err, services.ErrPasswordPolicy),
		errors.Is(err, services.ErrInvalidResetToken):
		writeJSON(w, http.StatusBadRequest, PasswordErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, PasswordErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, PasswordErrorResponse{Error: "User not found"})
	case errors.Is(err, services.ErrStoreUnavailable),
		errors.Is(err, repositories.ErrLockTimeout),
		errors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusServiceUnavailable, PasswordErrorResponse{Error: "Service temporarily unavailable"})
	default:
		logger.Log.Errorw("internal server error", "err", err)
		writeJSON(w, http.StatusInternalServerError, PasswordErrorResponse{Error: "Internal server error"})
	}
}
