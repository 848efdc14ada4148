package models

// Password event types published to Kafka.
const (
	EventPasswordChanged       = "password_changed"
	EventPasswordReset         = "password_reset"
	EventPasswordReuseRejected = "password_reuse_rejected"
	EventHistoryNotRecorded    = "password_history_not_recorded"
	EventResetRequested        = "password_reset_requested"
)

// PasswordEvent is the message value written to the password events topic.
type PasswordEvent struct {
	EventID    string `json:"event_id"`
	Type       string `json:"type"`
	UserID     string `json:"user_id"`
	Email      string `json:"email,omitempty"`
	ResetToken string `json:"reset_token,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}
