package services_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-password-history/internal/hasher"
	"github.com/sbilibin2017/gw-password-history/internal/jwt"
	"github.com/sbilibin2017/gw-password-history/internal/models"
	"github.com/sbilibin2017/gw-password-history/internal/repositories"
	"github.com/sbilibin2017/gw-password-history/internal/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memHistory is an in-memory password history store.
type memHistory struct {
	mu        sync.Mutex
	records   map[uuid.UUID]map[string]time.Time
	appendErr error
}

func newMemHistory() *memHistory {
	return &memHistory{records: make(map[uuid.UUID]map[string]time.Time)}
}

func (h *memHistory) Append(ctx context.Context, userID uuid.UUID, passwordHash string, changedAt time.Time) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.appendErr != nil {
		return h.appendErr
	}
	if h.records[userID] == nil {
		h.records[userID] = make(map[string]time.Time)
	}
	h.records[userID][passwordHash] = changedAt
	return nil
}

func (h *memHistory) RecordsWithin(ctx context.Context, userID uuid.UUID, windowStart time.Time) ([]models.PasswordHistoryRecord, error) {
	var out []models.PasswordHistoryRecord
	for _, r := range h.all(userID) {
		if !r.ChangedAt.Before(windowStart) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (h *memHistory) all(userID uuid.UUID) []models.PasswordHistoryRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]models.PasswordHistoryRecord, 0, len(h.records[userID]))
	for hash, at := range h.records[userID] {
		out = append(out, models.PasswordHistoryRecord{UserID: userID, PasswordHash: hash, ChangedAt: at})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChangedAt.Before(out[j].ChangedAt) })
	return out
}

func (h *memHistory) setChangedAt(userID uuid.UUID, passwordHash string, at time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records[userID][passwordHash] = at
}

// memUsers is an in-memory user table.
type memUsers struct {
	mu   sync.Mutex
	byID map[uuid.UUID]models.UserDB
}

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[uuid.UUID]models.UserDB)}
}

func (u *memUsers) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	user, ok := u.byID[userID]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (u *memUsers) GetByUsernameOrEmail(ctx context.Context, username *string, email *string) (*models.UserDB, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, user := range u.byID {
		if (username != nil && user.Username == *username) || (email != nil && user.Email == *email) {
			found := user
			return &found, nil
		}
	}
	return nil, nil
}

func (u *memUsers) Save(ctx context.Context, username string, passwordHash string, email string) (uuid.UUID, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	id := uuid.New()
	u.byID[id] = models.UserDB{UserID: id, Username: username, Email: email, PasswordHash: passwordHash}
	return id, nil
}

func (u *memUsers) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	user, ok := u.byID[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	u.byID[userID] = user
	return nil
}

// memResetTokens is an in-memory ResetTokenStore.
type memResetTokens struct {
	mu     sync.Mutex
	tokens map[string]uuid.UUID
}

func newMemResetTokens() *memResetTokens {
	return &memResetTokens{tokens: make(map[string]uuid.UUID)}
}

func (s *memResetTokens) Save(ctx context.Context, jti string, userID uuid.UUID, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[jti] = userID
	return nil
}

func (s *memResetTokens) Consume(ctx context.Context, jti string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.tokens[jti]
	if !ok {
		return uuid.Nil, repositories.ErrResetTokenNotFound
	}
	delete(s.tokens, jti)
	return userID, nil
}

// harness wires the real services over in-memory stores.
type harness struct {
	now         time.Time
	window      time.Duration
	users       *memUsers
	history     *memHistory
	resetTokens *memResetTokens
	tokens      *jwt.JWT
	checker     *services.ReuseChecker
	accounts    *services.AccountService
	passwords   *services.PasswordService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		now:         time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC),
		window:      services.DefaultEnforcementWindow,
		users:       newMemUsers(),
		history:     newMemHistory(),
		resetTokens: newMemResetTokens(),
		tokens:      jwt.New("test-secret", time.Hour, 15*time.Minute),
	}
	clock := func() time.Time { return h.now }
	bcryptHasher := hasher.New(hasher.WithCost(bcrypt.MinCost))

	h.checker = services.NewReuseChecker(h.history, bcryptHasher, h.window)
	h.accounts = services.NewAccountService(
		h.users, h.users, h.history, bcryptHasher, h.tokens, h.resetTokens,
		services.DefaultPasswordPolicy(), 15*time.Minute, nil,
	).WithClock(clock)
	h.passwords = services.NewPasswordService(
		h.accounts, h.checker, h.history, bcryptHasher, services.NewKeyedMutex(), nil,
	).WithClock(clock)

	return h
}

func (h *harness) register(t *testing.T, password string) uuid.UUID {
	t.Helper()
	userID, err := h.accounts.Register(context.Background(), "user-"+uuid.NewString()[:8], password, uuid.NewString()+"@example.com")
	require.NoError(t, err)
	return userID
}

func (h *harness) resetToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	ctx := context.Background()
	token, jti, err := h.tokens.GenerateResetToken(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, h.resetTokens.Save(ctx, jti, userID, time.Minute))
	return token
}
