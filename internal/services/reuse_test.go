package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-password-history/internal/hasher"
	"github.com/sbilibin2017/gw-password-history/internal/models"
	"github.com/sbilibin2017/gw-password-history/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestReuseChecker_WindowBoundary(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	window := 365 * 24 * time.Hour

	h := hasher.New(hasher.WithCost(bcrypt.MinCost))
	hash, err := h.Hash(passwordA)
	require.NoError(t, err)

	tests := []struct {
		name      string
		changedAt time.Time
		want      bool
	}{
		{name: "exactly at window start", changedAt: now.Add(-window), want: true},
		{name: "one instant older", changedAt: now.Add(-window).Add(-time.Nanosecond), want: false},
		{name: "inside window", changedAt: now.Add(-time.Hour), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := newMemHistory()
			require.NoError(t, history.Append(ctx, userID, hash, tt.changedAt))

			checker := services.NewReuseChecker(history, h, window)
			got, err := checker.IsReused(ctx, userID, passwordA, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReuseChecker_IsReused(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	window := 24 * time.Hour
	records := []models.PasswordHistoryRecord{
		{UserID: userID, PasswordHash: "h1", ChangedAt: now.Add(-time.Hour)},
		{UserID: userID, PasswordHash: "h2", ChangedAt: now.Add(-2 * time.Hour)},
		{UserID: userID, PasswordHash: "h3", ChangedAt: now.Add(-3 * time.Hour)},
	}

	t.Run("short-circuits on first match", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		reader := services.NewMockHistoryReader(ctrl)
		verifier := services.NewMockHashVerifier(ctrl)

		reader.EXPECT().RecordsWithin(ctx, userID, now.Add(-window)).Return(records, nil)
		gomock.InOrder(
			verifier.EXPECT().Verify("h1", passwordA).Return(false),
			verifier.EXPECT().Verify("h2", passwordA).Return(true),
		)

		reused, err := services.NewReuseChecker(reader, verifier, window).IsReused(ctx, userID, passwordA, now)
		assert.NoError(t, err)
		assert.True(t, reused)
	})

	t.Run("no match", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		reader := services.NewMockHistoryReader(ctrl)
		verifier := services.NewMockHashVerifier(ctrl)

		reader.EXPECT().RecordsWithin(ctx, userID, now.Add(-window)).Return(records, nil)
		verifier.EXPECT().Verify(gomock.Any(), passwordA).Return(false).Times(3)

		reused, err := services.NewReuseChecker(reader, verifier, window).IsReused(ctx, userID, passwordA, now)
		assert.NoError(t, err)
		assert.False(t, reused)
	})

	t.Run("store failure fails closed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		reader := services.NewMockHistoryReader(ctrl)
		verifier := services.NewMockHashVerifier(ctrl)
		storeErr := errors.New("connection refused")

		reader.EXPECT().RecordsWithin(ctx, userID, gomock.Any()).Return(nil, storeErr)

		reused, err := services.NewReuseChecker(reader, verifier, window).IsReused(ctx, userID, passwordA, now)
		assert.ErrorIs(t, err, storeErr)
		assert.False(t, reused)
	})
}

func TestNewReuseChecker_DefaultWindow(t *testing.T) {
	checker := services.NewReuseChecker(nil, nil, 0)
	assert.Equal(t, services.DefaultEnforcementWindow, checker.Window())

	checker = services.NewReuseChecker(nil, nil, time.Hour)
	assert.Equal(t, time.Hour, checker.Window())
}
