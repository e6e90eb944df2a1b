package domain

import "context"

// AccountService is the boundary to whatever owns user accounts and reset
// tokens. The reset pages only need these two calls.
//
// InitiateReset must return nil for addresses that have no account; a non-nil
// error always means the service itself failed. Callers rely on this so that
// the answer shown to the user never depends on account existence.
type AccountService interface {
	InitiateReset(ctx context.Context, email string) error
	FinalizeReset(ctx context.Context, token, newPassword string) error
}
