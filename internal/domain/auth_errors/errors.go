package auth_errors

import "errors"

// Application errors raised by the password reset pages.
var (
	// ErrTokenMissing indicates a reset-password submission arrived for a
	// page that was opened without a reset token.
	ErrTokenMissing = errors.New("password reset token missing")

	// ErrServiceUnavailable indicates the account service could not complete
	// a call. The cause is wrapped alongside it.
	ErrServiceUnavailable = errors.New("account service unavailable")
)
