package flow

import (
	"maps"

	"github.com/nfrund/goby-auth/internal/validation"
)

// Status is the submission status of a flow instance.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSuccess
	StatusError
	StatusNavigated
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	case StatusNavigated:
		return "navigated"
	case StatusClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// terminal reports whether no further submissions are accepted.
func (s Status) terminal() bool {
	return s == StatusNavigated || s == StatusClosed
}

// MessageKind distinguishes success banners from error banners.
type MessageKind string

const (
	KindError   MessageKind = "error"
	KindSuccess MessageKind = "success"
)

// Cause says why a submission ended in an error banner.
type Cause string

const (
	CauseNone         Cause = ""
	CauseService      Cause = "service"
	CauseTokenMissing Cause = "token_missing"
)

// Message is the flow-level banner shown around a form.
type Message struct {
	Kind  MessageKind
	Text  string
	Cause Cause
}

func successMessage(text string) Message { return Message{Kind: KindSuccess, Text: text} }

func errorMessage(text string, cause Cause) Message {
	return Message{Kind: KindError, Text: text, Cause: cause}
}

// State is a point-in-time copy of a flow instance, used for rendering.
type State[T any] struct {
	Values  T
	Errors  validation.FieldErrors
	Status  Status
	Message *Message
	// Redirect is set once the instance has navigated away.
	Redirect string
}

// Busy reports whether a submission is pending.
func (s State[T]) Busy() bool {
	return s.Status == StatusSubmitting
}

// TokenRejected reports whether the last submission failed because the
// page was opened without a reset token.
func (s State[T]) TokenRejected() bool {
	return s.Message != nil && s.Message.Cause == CauseTokenMissing
}

// FieldError returns the error message for field, or "".
func (s State[T]) FieldError(field string) string {
	return s.Errors[field]
}

func (s State[T]) clone() State[T] {
	out := s
	if s.Errors != nil {
		out.Errors = maps.Clone(s.Errors)
	}
	if s.Message != nil {
		msg := *s.Message
		out.Message = &msg
	}
	return out
}
