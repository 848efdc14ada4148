package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-password-history/internal/middlewares"
	"github.com/sbilibin2017/gw-password-history/internal/models"
)

//go:generate mockgen -source=change_password.go -destination=mock_change_password.go -package=handlers

// PasswordChanger changes the password of an authenticated user.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) (*models.PasswordChangeResult, error)
}

// ChangePasswordRequest represents the JSON body for a password change
// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	// Current password
	// required: true
	CurrentPassword string `json:"current_password" validate:"required"`

	// New password
	// required: true
	NewPassword string `json:"new_password" validate:"required"`
}

// NewChangePasswordHandler returns an HTTP handler for changing the password.
// @Summary Change password
// @Description Changes the password of the authenticated user. Passwords used within the enforcement window are rejected.
// @Tags password
// @Accept json
// @Produce json
// @Param changePasswordRequest body handlers.ChangePasswordRequest true "Change password request"
// @Success 200 {object} handlers.PasswordChangeResponse "Password changed"
// @Failure 400 {object} handlers.PasswordErrorResponse "Password reused or rejected by policy"
// @Failure 401 {object} handlers.PasswordErrorResponse "Unauthorized or wrong current password"
// @Failure 404 {object} handlers.PasswordErrorResponse "User not found"
// @Failure 503 {object} handlers.PasswordErrorResponse "Storage unavailable"
// @Router /password/change [post]
// @Security BearerAuth
func NewChangePasswordHandler(svc PasswordChanger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middlewares.GetUserIDFromContext(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, PasswordErrorResponse{Error: "Unauthorized"})
			return
		}

		var req ChangePasswordRequest
		if err := decodeValidate(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, PasswordErrorResponse{Error: err.Error()})
			return
		}

		result, err := svc.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword)
		if err != nil {
			writePasswordError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newPasswordChangeResponse("Password changed successfully", result))
	}
}
