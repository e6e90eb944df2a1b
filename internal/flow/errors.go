package flow

import (
	"errors"
	"fmt"

	"github.com/nfrund/goby-auth/internal/domain/auth_errors"
)

var (
	// ErrSubmitInFlight is returned when a submission arrives while the
	// previous one is still waiting on the account service.
	ErrSubmitInFlight = errors.New("a submission is already in progress")

	// ErrFlowClosed is returned for submissions against an instance that was
	// closed or has navigated away.
	ErrFlowClosed = errors.New("flow instance is closed")
)

// Texts of the flow-level messages.
const (
	MsgResetRequested = "If an account exists for %s, a password reset link has been sent."
	MsgResetComplete  = "Your password has been reset successfully. You can now log in with your new password."
	MsgTokenInvalid   = "Invalid or expired reset token. Please try requesting a new reset link."
	MsgServiceFailure = "Something went wrong while processing your request. Please try again later."
)

// ServiceError wraps a failed account service call.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, auth_errors.ErrServiceUnavailable, e.Err)
}

// Unwrap exposes both the sentinel and the cause to errors.Is.
func (e *ServiceError) Unwrap() []error {
	return []error{auth_errors.ErrServiceUnavailable, e.Err}
}
