package account

import (
	"encoding/json"
	"time"
)

// Topics published by the account service.
const (
	TopicResetRequested = "auth.password_reset.requested"
	TopicResetCompleted = "auth.password_reset.completed"
)

// ResetRequested is published after a reset link was requested for Email.
type ResetRequested struct {
	Email       string    `json:"email"`
	ResetLink   string    `json:"reset_link"`
	RequestedAt time.Time `json:"requested_at"`
}

// ResetCompleted is published after a new password was submitted.
type ResetCompleted struct {
	HasToken    bool      `json:"has_token"`
	CompletedAt time.Time `json:"completed_at"`
}

// DecodeResetRequested parses a TopicResetRequested payload.
func DecodeResetRequested(payload []byte) (ResetRequested, error) {
	var ev ResetRequested
	err := json.Unmarshal(payload, &ev)
	return ev, err
}

// DecodeResetCompleted parses a TopicResetCompleted payload.
func DecodeResetCompleted(payload []byte) (ResetCompleted, error) {
	var ev ResetCompleted
	err := json.Unmarshal(payload, &ev)
	return ev, err
}
