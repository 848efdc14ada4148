package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-password-history/internal/logger"
	"github.com/sbilibin2017/gw-password-history/internal/services"
)

//go:generate mockgen -source=register.go -destination=mock_register.go -package=handlers

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, username, password, email string) (uuid.UUID, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username
	// required: true
	// default: john_doe
	Username string `json:"username" validate:"required,min=3,max=64"`

	// Password
	// required: true
	// default: Secret1!
	Password string `json:"password" validate:"required"`

	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email" validate:"required,email"`
}

// RegisterResponse represents a successful registration response
// swagger:model RegisterResponse
type RegisterResponse struct {
	// Success message
	// default: User registered successfully
	Message string `json:"message"`

	// Identifier of the new user
	UserID string `json:"user_id"`
}

// RegisterErrorResponse represents an error response for registration
// swagger:model RegisterErrorResponse
type RegisterErrorResponse struct {
	// Error message
	// default: Username or email already exists
	Error string `json:"error"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account and records the initial password in the password history.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.RegisterResponse "User successfully registered"
// @Failure 400 {object} handlers.RegisterErrorResponse "Invalid request or password policy violation"
// @Failure 409 {object} handlers.RegisterErrorResponse "Username or email already exists"
// @Failure 503 {object} handlers.RegisterErrorResponse "Storage unavailable"
// @Router /register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := decodeValidate(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, RegisterErrorResponse{Error: err.Error()})
			return
		}

		userID, err := svc.Register(r.Context(), req.Username, req.Password, req.Email)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserAlreadyExists):
				writeJSON(w, http.StatusConflict, RegisterErrorResponse{Error: "Username or email already exists"})
			case errors.Is(err, services.ErrPasswordPolicy):
				writeJSON(w, http.StatusBadRequest, RegisterErrorResponse{Error: err.Error()})
			case errors.Is(err, services.ErrStoreUnavailable):
				writeJSON(w, http.StatusServiceUnavailable, RegisterErrorResponse{Error: "Service temporarily unavailable"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeJSON(w, http.StatusInternalServerError, RegisterErrorResponse{Error: "Internal server error"})
			}
			return
		}

		writeJSON(w, http.StatusCreated, RegisterResponse{
			Message: "User registered successfully",
			UserID:  userID.String(),
		})
	}
}
