package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-password-history/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockLoginer(ctrl)

	tests := []struct {
		name         string
		reqBody      string
		mockSetup    func()
		expectedCode int
		expectedBody map[string]string
	}{
		{
			name:    "success",
			reqBody: `{"username":"john","password":"pass123"}`,
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "john", "pass123").
					Return("JWT_TOKEN", nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: map[string]string{"token": "JWT_TOKEN"},
		},
		{
			name:         "invalid JSON",
			reqBody:      "{invalid json}",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]string{"error": "invalid request body"},
		},
		{
			name:         "missing password",
			reqBody:      `{"username":"john"}`,
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]string{"error": "required fields missing or malformed"},
		},
		{
			name:    "invalid credentials",
			reqBody: `{"username":"john","password":"wrong"}`,
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "john", "wrong").
					Return("", services.ErrInvalidCredentials)
			},
			expectedCode: http.StatusUnauthorized,
			expectedBody: map[string]string{"error": "Invalid username or password"},
		},
		{
			name:    "user does not exist",
			reqBody: `{"username":"ghost","password":"pass123"}`,
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "ghost", "pass123").
					Return("", services.ErrUserDoesNotExist)
			},
			expectedCode: http.StatusUnauthorized,
			expectedBody: map[string]string{"error": "Invalid username or password"},
		},
		{
			name:    "account locked",
			reqBody: `{"username":"john","password":"pass123"}`,
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "john", "pass123").
					Return("", services.ErrAccountLocked)
			},
			expectedCode: http.StatusLocked,
			expectedBody: map[string]string{"error": "Account temporarily locked"},
		},
		{
			name:    "internal server error",
			reqBody: `{"username":"john","password":"pass123"}`,
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "john", "pass123").
					Return("", errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: map[string]string{"error": "Internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			handler := NewLoginHandler(mockSvc)
			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(tt.reqBody))
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp map[string]string
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedBody, resp)
		})
	}
}
