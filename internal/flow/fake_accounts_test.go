package flow

import (
	"context"
	"sync"
)

// fakeAccounts records calls and can be told to fail or to block.
type fakeAccounts struct {
	mu        sync.Mutex
	initiated []string
	finalized []string
	err       error

	// When block is set, calls signal entered and wait for block to close.
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeAccounts) InitiateReset(ctx context.Context, email string) error {
	f.mu.Lock()
	f.initiated = append(f.initiated, email)
	f.mu.Unlock()
	return f.wait(ctx)
}

func (f *fakeAccounts) FinalizeReset(ctx context.Context, token, newPassword string) error {
	f.mu.Lock()
	f.finalized = append(f.finalized, token)
	f.mu.Unlock()
	return f.wait(ctx)
}

func (f *fakeAccounts) wait(ctx context.Context) error {
	if f.block != nil {
		f.entered <- struct{}{}
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *fakeAccounts) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeAccounts) initiateCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.initiated)
}

func (f *fakeAccounts) finalizeCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.finalized...)
}

func newBlockingAccounts() *fakeAccounts {
	return &fakeAccounts{block: make(chan struct{}), entered: make(chan struct{}, 1)}
}
