package flow

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nfrund/goby-auth/internal/domain/auth_errors"
	"github.com/nfrund/goby-auth/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validReset = validation.PasswordResetInput{Password: "longenough1", ConfirmPassword: "longenough1"}

// recordingNavigator counts navigations and remembers the last path.
type recordingNavigator struct {
	calls atomic.Int32
	path  atomic.Value
}

func (n *recordingNavigator) Navigate(path string) {
	n.path.Store(path)
	n.calls.Add(1)
}

func newConfirm(token string, accounts *fakeAccounts, nav *recordingNavigator, delay time.Duration) *ConfirmFlow {
	return NewConfirmFlow(token, validation.New(), accounts,
		WithNavigator(nav),
		WithRedirectDelay(delay),
		WithLoginPath("/login"),
	)
}

func TestConfirmFlow_SuccessSchedulesNavigation(t *testing.T) {
	accounts := &fakeAccounts{}
	nav := &recordingNavigator{}
	f := newConfirm("abc123", accounts, nav, 20*time.Millisecond)
	defer f.Close()

	state, err := f.Submit(context.Background(), validReset)
	require.NoError(t, err)

	require.NotNil(t, state.Message)
	assert.Equal(t, KindSuccess, state.Message.Kind)
	assert.Equal(t, MsgResetComplete, state.Message.Text)
	assert.True(t, f.NavigationPending())
	assert.Equal(t, []string{"abc123"}, accounts.finalizeCalls())

	require.Eventually(t, func() bool { return nav.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "/login", nav.path.Load())

	final := f.State()
	assert.Equal(t, StatusNavigated, final.Status)
	assert.Equal(t, "/login", final.Redirect)
	assert.False(t, f.NavigationPending())

	_, err = f.Submit(context.Background(), validReset)
	assert.ErrorIs(t, err, ErrFlowClosed, "a navigated page accepts no more submissions")
}

func TestConfirmFlow_MissingToken(t *testing.T) {
	accounts := &fakeAccounts{}
	nav := &recordingNavigator{}
	f := newConfirm("", accounts, nav, 5*time.Millisecond)
	defer f.Close()

	state, err := f.Submit(context.Background(), validReset)
	assert.ErrorIs(t, err, auth_errors.ErrTokenMissing)

	require.NotNil(t, state.Message)
	assert.Equal(t, KindError, state.Message.Kind)
	assert.Equal(t, "Invalid or expired reset token. Please try requesting a new reset link.", state.Message.Text)
	assert.Equal(t, StatusError, state.Status)
	assert.True(t, state.TokenRejected())
	assert.False(t, f.NavigationPending())

	assert.Never(t, func() bool { return nav.calls.Load() > 0 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestConfirmFlow_ShortPasswordMakesNoCall(t *testing.T) {
	accounts := &fakeAccounts{}
	f := newConfirm("abc123", accounts, &recordingNavigator{}, time.Millisecond)
	defer f.Close()

	state, err := f.Submit(context.Background(), validation.PasswordResetInput{Password: "short", ConfirmPassword: "short"})

	var fieldErrs validation.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, validation.MsgPasswordTooShort, state.FieldError(validation.FieldPassword))
	assert.Empty(t, state.FieldError(validation.FieldConfirmPassword))
	assert.Nil(t, state.Message)
	assert.Empty(t, accounts.finalizeCalls())
	assert.False(t, f.NavigationPending())
}

func TestConfirmFlow_MismatchMakesNoCall(t *testing.T) {
	accounts := &fakeAccounts{}
	f := newConfirm("abc123", accounts, &recordingNavigator{}, time.Millisecond)
	defer f.Close()

	state, err := f.Submit(context.Background(), validation.PasswordResetInput{Password: "longenough1", ConfirmPassword: "longenough2"})
	require.Error(t, err)
	assert.Equal(t, validation.MsgPasswordMismatch, state.FieldError(validation.FieldConfirmPassword))
	assert.Empty(t, state.FieldError(validation.FieldPassword))
	assert.Empty(t, accounts.finalizeCalls())
}

func TestConfirmFlow_CloseCancelsNavigation(t *testing.T) {
	nav := &recordingNavigator{}
	f := newConfirm("abc123", &fakeAccounts{}, nav, 30*time.Millisecond)

	_, err := f.Submit(context.Background(), validReset)
	require.NoError(t, err)
	require.True(t, f.NavigationPending())

	f.Close()
	assert.False(t, f.NavigationPending())
	assert.Never(t, func() bool { return nav.calls.Load() > 0 }, 80*time.Millisecond, 5*time.Millisecond)
	assert.Equal(t, StatusClosed, f.State().Status)
}

func TestConfirmFlow_ResubmitReplacesTimer(t *testing.T) {
	nav := &recordingNavigator{}
	f := newConfirm("abc123", &fakeAccounts{}, nav, 40*time.Millisecond)
	defer f.Close()

	_, err := f.Submit(context.Background(), validReset)
	require.NoError(t, err)
	_, err = f.Submit(context.Background(), validReset)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return nav.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Never(t, func() bool { return nav.calls.Load() > 1 }, 80*time.Millisecond, 5*time.Millisecond)
}

func TestConfirmFlow_ServiceFailure(t *testing.T) {
	nav := &recordingNavigator{}
	accounts := &fakeAccounts{err: errors.New("timeout")}
	f := newConfirm("abc123", accounts, nav, time.Millisecond)
	defer f.Close()

	state, err := f.Submit(context.Background(), validReset)

	var serr *ServiceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "finalize reset", serr.Op)
	require.NotNil(t, state.Message)
	assert.Equal(t, MsgServiceFailure, state.Message.Text)
	assert.False(t, f.NavigationPending())
}

func TestConfirmFlow_ServiceFailureWinsOverMissingToken(t *testing.T) {
	accounts := &fakeAccounts{err: errors.New("down")}
	f := newConfirm("", accounts, &recordingNavigator{}, time.Millisecond)
	defer f.Close()

	state, err := f.Submit(context.Background(), validReset)
	assert.ErrorIs(t, err, auth_errors.ErrServiceUnavailable)
	assert.NotErrorIs(t, err, auth_errors.ErrTokenMissing)
	assert.False(t, state.TokenRejected())
	assert.Equal(t, CauseService, state.Message.Cause)
}

func TestConfirmFlow_BlocksResubmissionWhilePending(t *testing.T) {
	accounts := newBlockingAccounts()
	f := newConfirm("abc123", accounts, &recordingNavigator{}, time.Hour)
	defer f.Close()

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background(), validReset)
		done <- err
	}()
	<-accounts.entered

	state, err := f.Submit(context.Background(), validReset)
	assert.ErrorIs(t, err, ErrSubmitInFlight)
	assert.True(t, state.Busy())

	close(accounts.block)
	require.NoError(t, <-done)
	assert.Len(t, accounts.finalizeCalls(), 1)
}

func TestConfirmFlow_ErrorReturnsToIdleOnEdit(t *testing.T) {
	f := newConfirm("", &fakeAccounts{}, &recordingNavigator{}, time.Millisecond)
	defer f.Close()

	_, err := f.Submit(context.Background(), validReset)
	require.Error(t, err)
	require.Equal(t, StatusError, f.State().Status)

	require.NoError(t, f.Edit(validation.PasswordResetInput{Password: "x"}))
	assert.Equal(t, StatusIdle, f.State().Status)
	assert.Equal(t, "", f.Token(), "the token captured at entry never changes")
}
