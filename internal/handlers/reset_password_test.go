package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-password-history/internal/models"
	"github.com/sbilibin2017/gw-password-history/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetPasswordHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	changedAt := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	body := func(id string) string {
		return fmt.Sprintf(`{"user_id":%q,"token":"reset-token","new_password":"Cc3!cccc"}`, id)
	}

	tests := []struct {
		name          string
		reqBody       string
		mockSetup     func(m *MockPasswordResetter)
		expectedCode  int
		expectedError string
	}{
		{
			name:    "success",
			reqBody: body(userID.String()),
			mockSetup: func(m *MockPasswordResetter) {
				m.EXPECT().ResetPassword(gomock.Any(), userID, "reset-token", "Cc3!cccc").
					Return(&models.PasswordChangeResult{UserID: userID, ChangedAt: changedAt, HistoryRecorded: true}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:    "password reused",
			reqBody: body(userID.String()),
			mockSetup: func(m *MockPasswordResetter) {
				m.EXPECT().ResetPassword(gomock.Any(), userID, "reset-token", "Cc3!cccc").
					Return(nil, services.ErrPasswordReused)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "cannot reuse a recently used password",
		},
		{
			name:    "token rejected",
			reqBody: body(userID.String()),
			mockSetup: func(m *MockPasswordResetter) {
				m.EXPECT().ResetPassword(gomock.Any(), userID, "reset-token", "Cc3!cccc").
					Return(nil, &services.ExternalFailure{Op: models.EventPasswordReset, Err: services.ErrInvalidResetToken})
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid or expired reset token",
		},
		{
			name:    "unknown user",
			reqBody: body(userID.String()),
			mockSetup: func(m *MockPasswordResetter) {
				m.EXPECT().ResetPassword(gomock.Any(), userID, "reset-token", "Cc3!cccc").
					Return(nil, services.ErrUserNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "User not found",
		},
		{
			name:          "malformed user id",
			reqBody:       body("123"),
			expectedCode:  http.StatusBadRequest,
			expectedError: "required fields missing or malformed",
		},
		{
			name:          "invalid json",
			reqBody:       "{",
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockPasswordResetter(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			req := httptest.NewRequest(http.MethodPost, "/password/reset", bytes.NewBufferString(tt.reqBody))
			rr := httptest.NewRecorder()
			NewResetPasswordHandler(mockSvc)(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				var resp PasswordErrorResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedError, resp.Error)
				return
			}

			var resp PasswordChangeResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "Password reset successfully", resp.Message)
			assert.True(t, resp.HistoryRecorded)
		})
	}
}
