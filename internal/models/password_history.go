package models

import (
	"time"

	"github.com/google/uuid"
)

// PasswordHistoryRecord is one password hash a user has held.
// The pair (UserID, PasswordHash) is unique.
type PasswordHistoryRecord struct {
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	PasswordHash string    `json:"-" db:"password_hash"`
	ChangedAt    time.Time `json:"changed_at" db:"changed_at"` // UTC time the hash became active
}
