package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-password-history/internal/logger"
	"github.com/sbilibin2017/gw-password-history/internal/services"
)

//go:generate mockgen -source=forgot_password.go -destination=mock_forgot_password.go -package=handlers

// PasswordResetRequester issues password reset tokens.
type PasswordResetRequester interface {
	RequestPasswordReset(ctx context.Context, email string) error
}

// ForgotPasswordRequest represents the JSON body for a reset token request
// swagger:model ForgotPasswordRequest
type ForgotPasswordRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email" validate:"required,email"`
}

// ForgotPasswordResponse is returned whether or not the email is registered
// swagger:model ForgotPasswordResponse
type ForgotPasswordResponse struct {
	// default: If the email is registered, a reset token has been sent
	Message string `json:"message"`
}

// NewForgotPasswordHandler returns an HTTP handler that issues a password reset token.
// @Summary Request password reset
// @Description Issues a single-use reset token and publishes it for delivery by email.
// @Tags password
// @Accept json
// @Produce json
// @Param forgotPasswordRequest body handlers.ForgotPasswordRequest true "Forgot password request"
// @Success 202 {object} handlers.ForgotPasswordResponse "Request accepted"
// @Failure 400 {object} handlers.PasswordErrorResponse "Invalid request body"
// @Failure 503 {object} handlers.PasswordErrorResponse "Storage unavailable"
// @Router /password/forgot [post]
func NewForgotPasswordHandler(svc PasswordResetRequester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ForgotPasswordRequest
		if err := decodeValidate(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, PasswordErrorResponse{Error: err.Error()})
			return
		}

		if err := svc.RequestPasswordReset(r.Context(), req.Email); err != nil {
			if errors.Is(err, services.ErrStoreUnavailable) {
				writeJSON(w, http.StatusServiceUnavailable, PasswordErrorResponse{Error: "Service temporarily unavailable"})
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			writeJSON(w, http.StatusInternalServerError, PasswordErrorResponse{Error: "Internal server error"})
			return
		}

		writeJSON(w, http.StatusAccepted, ForgotPasswordResponse{
			Message: "If the email is registered, a reset token has been sent",
		})
	}
}
