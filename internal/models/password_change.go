package models

import (
	"time"

	"github.com/google/uuid"
)

// PasswordChangeResult describes a password change or reset that reached the account system.
type PasswordChangeResult struct {
	UserID    uuid.UUID `json:"user_id"`
	ChangedAt time.Time `json:"changed_at"`
	// HistoryRecorded is false when the account was updated but the new hash
	// could not be appended to the history.
	HistoryRecorded bool `json:"history_recorded"`
}
