package flow

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nfrund/goby-auth/internal/domain"
	"github.com/nfrund/goby-auth/internal/domain/auth_errors"
	"github.com/nfrund/goby-auth/internal/metrics"
	"github.com/nfrund/goby-auth/internal/validation"
)

// ConfirmState is the rendered state of the reset-password form.
type ConfirmState = State[validation.PasswordResetInput]

// ConfirmFlow collects the new password for the reset token the page was
// opened with. On success it navigates to the login page after a delay.
type ConfirmFlow struct {
	form     Form[validation.PasswordResetInput]
	token    string
	rules    *validation.Rules
	accounts domain.AccountService
	logger   *slog.Logger

	navigator Navigator
	delay     time.Duration
	loginPath string

	// mu guards timer and gen and orders scheduling against Close.
	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// NewConfirmFlow creates a confirm flow instance bound to token. An empty
// token is accepted here and rejected at submit time.
func NewConfirmFlow(token string, rules *validation.Rules, accounts domain.AccountService, opts ...Option) *ConfirmFlow {
	o := buildOptions(opts)
	return &ConfirmFlow{
		token:     token,
		rules:     rules,
		accounts:  accounts,
		logger:    o.logger.With("flow", metrics.FlowConfirm),
		navigator: o.navigator,
		delay:     o.redirectDelay,
		loginPath: o.loginPath,
	}
}

// Token returns the reset token captured when the instance was created.
func (f *ConfirmFlow) Token() string { return f.token }

// State returns a snapshot of the form.
func (f *ConfirmFlow) State() ConfirmState { return f.form.Snapshot() }

// Edit records values without submitting.
func (f *ConfirmFlow) Edit(in validation.PasswordResetInput) error { return f.form.Edit(in) }

// NavigationPending reports whether a redirect is scheduled and has not
// fired yet.
func (f *ConfirmFlow) NavigationPending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.timer != nil
}

// Submit runs one submit attempt. The error is nil on success and otherwise
// one of validation.FieldErrors, auth_errors.ErrTokenMissing, *ServiceError,
// ErrSubmitInFlight or ErrFlowClosed.
func (f *ConfirmFlow) Submit(ctx context.Context, in validation.PasswordResetInput) (ConfirmState, error) {
	err := f.submit(ctx, in)
	metrics.RecordSubmission(metrics.FlowConfirm, Outcome(err))
	return f.form.Snapshot(), err
}

func (f *ConfirmFlow) submit(ctx context.Context, in validation.PasswordResetInput) error {
	if err := f.form.begin(in, f.check); err != nil {
		return err
	}

	start := time.Now()
	err := f.accounts.FinalizeReset(ctx, f.token, in.Password)
	metrics.RecordAccountCall(metrics.FlowConfirm, time.Since(start))

	if err != nil {
		f.logger.Error("Password reset failed", "error", err)
		if !f.form.resolve(errorMessage(MsgServiceFailure, CauseService), false) {
			return ErrFlowClosed
		}
		return &ServiceError{Op: "finalize reset", Err: err}
	}

	if f.token == "" {
		f.logger.Warn("Password reset submitted without a token")
		if !f.form.resolve(errorMessage(MsgTokenInvalid, CauseTokenMissing), false) {
			return ErrFlowClosed
		}
		return auth_errors.ErrTokenMissing
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.form.resolve(successMessage(MsgResetComplete), false) {
		return ErrFlowClosed
	}
	f.logger.Info("Password reset completed", "redirect_in", f.delay)
	f.scheduleLocked()
	return nil
}

func (f *ConfirmFlow) check(in validation.PasswordResetInput) validation.FieldErrors {
	return f.rules.Check(in)
}

// scheduleLocked arms the one-shot redirect, replacing any earlier one.
// f.mu must be held.
func (f *ConfirmFlow) scheduleLocked() {
	if f.timer != nil {
		f.timer.Stop()
	}
	f.gen++
	gen := f.gen
	f.timer = time.AfterFunc(f.delay, func() { f.navigate(gen) })
}

func (f *ConfirmFlow) navigate(gen uint64) {
	f.mu.Lock()
	if f.timer == nil || f.gen != gen {
		// Replaced or cancelled after the timer had already fired.
		f.mu.Unlock()
		return
	}
	f.timer = nil
	ok := f.form.navigated(f.loginPath)
	f.mu.Unlock()

	if ok {
		f.logger.Debug("Navigating after password reset", "path", f.loginPath)
		f.navigator.Navigate(f.loginPath)
	}
}

// Close ends the instance and cancels a pending redirect.
func (f *ConfirmFlow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.form.close()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}
