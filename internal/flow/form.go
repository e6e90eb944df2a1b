package flow

import (
	"sync"

	"github.com/nfrund/goby-auth/internal/validation"
)

// Form holds the mutable state of one flow instance. The zero value is an
// idle form with empty values.
type Form[T any] struct {
	mu    sync.Mutex
	state State[T]
}

// Snapshot returns a copy of the current state.
func (f *Form[T]) Snapshot() State[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.clone()
}

// Edit records new field values, as when the user types. An instance showing
// an error returns to idle. Field errors are cleared; the message is kept.
func (f *Form[T]) Edit(values T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state.Status.terminal() {
		return ErrFlowClosed
	}
	f.state.Values = values
	f.state.Errors = nil
	if f.state.Status == StatusError {
		f.state.Status = StatusIdle
	}
	return nil
}

// begin starts a submit attempt. It returns the validation errors when check
// rejects values, in which case message and status are left alone apart from
// Error -> Idle. On nil the form is Submitting with its message cleared.
func (f *Form[T]) begin(values T, check func(T) validation.FieldErrors) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case f.state.Status.terminal():
		return ErrFlowClosed
	case f.state.Status == StatusSubmitting:
		return ErrSubmitInFlight
	}

	f.state.Values = values
	if f.state.Status == StatusError {
		f.state.Status = StatusIdle
	}
	if errs := check(values); errs != nil {
		f.state.Errors = errs
		return errs
	}

	f.state.Errors = nil
	f.state.Message = nil
	f.state.Status = StatusSubmitting
	return nil
}

// resolve ends a pending submission with msg. When clear is set the values
// are reset to their zero value. It reports false if the instance left the
// Submitting state in the meantime.
func (f *Form[T]) resolve(msg Message, clear bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state.Status != StatusSubmitting {
		return false
	}
	f.state.Message = &msg
	if msg.Kind == KindSuccess {
		f.state.Status = StatusSuccess
	} else {
		f.state.Status = StatusError
	}
	if clear {
		var zero T
		f.state.Values = zero
	}
	return true
}

// navigated moves a live instance to Navigated.
func (f *Form[T]) navigated(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state.Status.terminal() {
		return false
	}
	f.state.Status = StatusNavigated
	f.state.Redirect = path
	return true
}

// close moves the instance to Closed. It reports false if it already was
// terminal.
func (f *Form[T]) close() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state.Status.terminal() {
		return false
	}
	f.state.Status = StatusClosed
	return true
}
