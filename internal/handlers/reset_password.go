package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-password-history/internal/models"
)

//go:generate mockgen -source=reset_password.go -destination=mock_reset_password.go -package=handlers

// PasswordResetter sets a new password using a reset token.
type PasswordResetter interface {
	ResetPassword(ctx context.Context, userID uuid.UUID, token, newPassword string) (*models.PasswordChangeResult, error)
}

// ResetPasswordRequest represents the JSON body for a password reset
// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	// User identifier
	// required: true
	UserID string `json:"user_id" validate:"required,uuid"`

	// Reset token received by email
	// required: true
	Token string `json:"token" validate:"required"`

	// New password
	// required: true
	NewPassword string `json:"new_password" validate:"required"`
}

// NewResetPasswordHandler returns an HTTP handler for resetting the password.
// @Summary Reset password
// @Description Sets a new password using a reset token. Passwords used within the enforcement window are rejected.
// @Tags password
// @Accept json
// @Produce json
// @Param resetPasswordRequest body handlers.ResetPasswordRequest true "Reset password request"
// @Success 200 {object} handlers.PasswordChangeResponse "Password reset"
// @Failure 400 {object} handlers.PasswordErrorResponse "Password reused, rejected by policy or invalid token"
// @Failure 404 {object} handlers.PasswordErrorResponse "User not found"
// @Failure 503 {object} handlers.PasswordErrorResponse "Storage unavailable"
// @Router /password/reset [post]
func NewResetPasswordHandler(svc PasswordResetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetPasswordRequest
		if err := decodeValidate(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, PasswordErrorResponse{Error: err.Error()})
			return
		}

		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, PasswordErrorResponse{Error: errMissingFields.Error()})
			return
		}

		result, err := svc.ResetPassword(r.Context(), userID, req.Token, req.NewPassword)
		if err != nil {
			writePasswordError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newPasswordChangeResponse("Password reset successfully", result))
	}
}
