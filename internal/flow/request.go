package flow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nfrund/goby-auth/internal/domain"
	"github.com/nfrund/goby-auth/internal/metrics"
	"github.com/nfrund/goby-auth/internal/validation"
)

// RequestState is the rendered state of the forgot-password form.
type RequestState = State[validation.EmailRequestInput]

// RequestFlow collects an email address and asks the account service to
// send a reset link. The answer shown is the same whether or not the
// address belongs to an account.
type RequestFlow struct {
	form     Form[validation.EmailRequestInput]
	rules    *validation.Rules
	accounts domain.AccountService
	logger   *slog.Logger
}

// NewRequestFlow creates a request flow instance.
func NewRequestFlow(rules *validation.Rules, accounts domain.AccountService, opts ...Option) *RequestFlow {
	o := buildOptions(opts)
	return &RequestFlow{
		rules:    rules,
		accounts: accounts,
		logger:   o.logger.With("flow", metrics.FlowRequest),
	}
}

// State returns a snapshot of the form.
func (f *RequestFlow) State() RequestState { return f.form.Snapshot() }

// Edit records values without submitting.
func (f *RequestFlow) Edit(in validation.EmailRequestInput) error { return f.form.Edit(in) }

// Submit runs one submit attempt. The returned state is always renderable;
// the error is nil on success and otherwise one of validation.FieldErrors,
// *ServiceError, ErrSubmitInFlight or ErrFlowClosed.
func (f *RequestFlow) Submit(ctx context.Context, in validation.EmailRequestInput) (RequestState, error) {
	err := f.submit(ctx, in)
	metrics.RecordSubmission(metrics.FlowRequest, Outcome(err))
	return f.form.Snapshot(), err
}

func (f *RequestFlow) submit(ctx context.Context, in validation.EmailRequestInput) error {
	if err := f.form.begin(in, f.check); err != nil {
		return err
	}

	start := time.Now()
	err := f.accounts.InitiateReset(ctx, in.Email)
	metrics.RecordAccountCall(metrics.FlowRequest, time.Since(start))

	if err != nil {
		f.logger.Error("Password reset request failed", "error", err)
		if !f.form.resolve(errorMessage(MsgServiceFailure, CauseService), false) {
			return ErrFlowClosed
		}
		return &ServiceError{Op: "initiate reset", Err: err}
	}

	f.logger.Info("Password reset requested", "email", in.Email)
	if !f.form.resolve(successMessage(fmt.Sprintf(MsgResetRequested, in.Email)), true) {
		return ErrFlowClosed
	}
	return nil
}

func (f *RequestFlow) check(in validation.EmailRequestInput) validation.FieldErrors {
	return f.rules.Check(in)
}

// Close ends the instance.
func (f *RequestFlow) Close() {
	f.form.close()
}
