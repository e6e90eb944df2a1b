// Package notify turns account events into emails and audit log lines.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/nfrund/goby-auth/internal/account"
	"github.com/nfrund/goby-auth/internal/domain"
	"github.com/nfrund/goby-auth/internal/pubsub"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// ResetEmailSubject is the subject line of the reset link email.
const ResetEmailSubject = "Reset your password"

// Notifier listens for account events.
type Notifier struct {
	sender domain.EmailSender
	logger *slog.Logger
}

// New creates a Notifier.
func New(sender domain.EmailSender, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{sender: sender, logger: logger.With("component", "notifier")}
}

// Start subscribes to the account topics. Deliveries continue until ctx is
// done or the bus is closed.
func (n *Notifier) Start(ctx context.Context, sub pubsub.Subscriber) error {
	if err := sub.Subscribe(ctx, account.TopicResetRequested, n.handleResetRequested); err != nil {
		return fmt.Errorf("subscribe %s: %w", account.TopicResetRequested, err)
	}
	if err := sub.Subscribe(ctx, account.TopicResetCompleted, n.handleResetCompleted); err != nil {
		return fmt.Errorf("subscribe %s: %w", account.TopicResetCompleted, err)
	}
	return nil
}

func (n *Notifier) handleResetRequested(ctx context.Context, msg pubsub.Message) error {
	ev, err := account.DecodeResetRequested(msg.Payload)
	if err != nil {
		return fmt.Errorf("decode reset requested: %w", err)
	}

	body, err := renderResetEmail(ev.ResetLink)
	if err != nil {
		return err
	}
	if err := n.sender.Send(ev.Email, ResetEmailSubject, body); err != nil {
		// The page has already answered; a lost email is only logged.
		n.logger.Error("Failed to send password reset email", "email", ev.Email, "error", err)
		return nil
	}
	n.logger.Info("Password reset email dispatched", "email", ev.Email)
	return nil
}

func (n *Notifier) handleResetCompleted(ctx context.Context, msg pubsub.Message) error {
	ev, err := account.DecodeResetCompleted(msg.Payload)
	if err != nil {
		return fmt.Errorf("decode reset completed: %w", err)
	}
	n.logger.Info("Password reset finalized", "has_token", ev.HasToken, "at", ev.CompletedAt)
	return nil
}

func renderResetEmail(link string) (string, error) {
	node := g.Div(
		g.P(cmp.Text("We received a request to reset the password for this address.")),
		g.P(g.A(g.Href(link), cmp.Text("Reset Password"))),
		g.P(cmp.Text("If you did not ask for this, you can ignore this email.")),
	)
	var buf bytes.Buffer
	if err := node.Render(&buf); err != nil {
		return "", fmt.Errorf("render reset email: %w", err)
	}
	return buf.String(), nil
}
