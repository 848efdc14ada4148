package jwt

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_GenerateAndGetUserID(t *testing.T) {
	j := New("test-secret", time.Minute, time.Minute)
	ctx := context.Background()
	userID := uuid.New()

	token, err := j.Generate(ctx, userID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	got, err := j.GetUserID(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := New("test-secret", -time.Minute, -time.Minute)
	ctx := context.Background()

	token, err := j.Generate(ctx, uuid.New())
	require.NoError(t, err)

	_, err = j.GetUserID(ctx, token)
	assert.Error(t, err)

	resetToken, _, err := j.GenerateResetToken(ctx, uuid.New())
	require.NoError(t, err)

	_, _, err = j.ParseResetToken(ctx, resetToken)
	assert.Error(t, err)
}

func TestJWT_InvalidToken(t *testing.T) {
	j := New("secret", time.Minute, time.Minute)
	ctx := context.Background()

	_, err := j.GetUserID(ctx, "invalid.token.string")
	assert.Error(t, err)

	_, _, err = j.ParseResetToken(ctx, "invalid.token.string")
	assert.Error(t, err)
}

func TestJWT_WrongSecret(t *testing.T) {
	j1 := New("secret1", time.Minute, time.Minute)
	j2 := New("secret2", time.Minute, time.Minute)
	ctx := context.Background()

	token, err := j1.Generate(ctx, uuid.New())
	require.NoError(t, err)

	_, err = j2.GetUserID(ctx, token)
	assert.Error(t, err)
}

func TestJWT_ResetToken(t *testing.T) {
	j := New("secret", time.Minute, 15*time.Minute)
	ctx := context.Background()
	userID := uuid.New()

	token, jti, err := j.GenerateResetToken(ctx, userID)
	require.NoError(t, err)
	assert.NotEmpty(t, jti)

	gotUser, gotJTI, err := j.ParseResetToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, jti, gotJTI)

	// reset tokens are not access tokens
	_, err = j.GetUserID(ctx, token)
	assert.ErrorIs(t, err, ErrWrongPurpose)

	// access tokens are not reset tokens
	access, err := j.Generate(ctx, userID)
	require.NoError(t, err)
	_, _, err = j.ParseResetToken(ctx, access)
	assert.ErrorIs(t, err, ErrWrongPurpose)
}

func TestJWT_GetTokenFromRequest(t *testing.T) {
	j := New("secret", time.Minute, time.Minute)
	ctx := context.Background()

	tests := []struct {
		name          string
		header        string
		expectedToken string
		expectError   bool
	}{
		{"ValidBearer", "Bearer mytoken123", "mytoken123", false},
		{"LowercaseBearer", "bearer mytoken123", "mytoken123", false},
		{"NoHeader", "", "", true},
		{"InvalidFormat", "Token mytoken123", "", true},
		{"TooManyParts", "Bearer a b c", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			token, err := j.GetTokenFromRequest(ctx, req)
			if tt.expectError {
				assert.Error(t, err)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedToken, token)
			}
		})
	}
}
