package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const purposeReset = "password_reset"

var (
	// ErrInvalidToken is returned for tokens that fail signature, expiry or claim checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrWrongPurpose is returned when an access token is presented as a reset token or vice versa.
	ErrWrongPurpose = errors.New("token issued for another purpose")
)

// JWT provides methods to generate and validate JWT tokens.
type JWT struct {
	SecretKey string        // Secret key for signing tokens
	Exp       time.Duration // Access token expiration duration
	ResetExp  time.Duration // Reset token expiration duration
}

// New creates a new JWT instance
func New(secretKey string, expiration, resetExpiration time.Duration) *JWT {
	return &JWT{
		SecretKey: secretKey,
		Exp:       expiration,
		ResetExp:  resetExpiration,
	}
}

// Generate creates an access token for a given userID
func (j *JWT) Generate(ctx context.Context, userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     now.Add(j.Exp).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.SecretKey))
}

// GenerateResetToken creates a single-use password reset token.
// The returned jti identifies the token in the reset token store.
func (j *JWT) GenerateResetToken(ctx context.Context, userID uuid.UUID) (token string, jti string, err error) {
	now := time.Now()
	jti = uuid.NewString()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"purpose": purposeReset,
		"jti":     jti,
		"exp":     now.Add(j.ResetExp).Unix(),
		"iat":     now.Unix(),
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(j.SecretKey))
	if err != nil {
		return "", "", err
	}
	return token, jti, nil
}

// GetUserID parses an access token and returns the userID if valid
func (j *JWT) GetUserID(ctx context.Context, tokenString string) (uuid.UUID, error) {
	claims, err := j.parse(tokenString)
	if err != nil {
		return uuid.Nil, err
	}
	if _, ok := claims["purpose"]; ok {
		return uuid.Nil, ErrWrongPurpose
	}
	return userIDFromClaims(claims)
}

// ParseResetToken validates a reset token and returns its userID and jti.
func (j *JWT) ParseResetToken(ctx context.Context, tokenString string) (uuid.UUID, string, error) {
	claims, err := j.parse(tokenString)
	if err != nil {
		return uuid.Nil, "", err
	}
	if purpose, _ := claims["purpose"].(string); purpose != purposeReset {
		return uuid.Nil, "", ErrWrongPurpose
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return uuid.Nil, "", ErrInvalidToken
	}
	userID, err := userIDFromClaims(claims)
	if err != nil {
		return uuid.Nil, "", err
	}
	return userID, jti, nil
}

// GetTokenFromRequest extracts the token string from the Authorization header
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}

func (j *JWT) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func userIDFromClaims(claims jwt.MapClaims) (uuid.UUID, error) {
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, errors.New("user_id not found in token")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, errors.New("invalid user_id format")
	}
	return userID, nil
}
