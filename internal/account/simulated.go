// Package account provides a stand-in for the external account service.
package account

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/goby-auth/internal/domain"
	"github.com/nfrund/goby-auth/internal/pubsub"
	"github.com/samber/oops"
)

// DefaultLatency mimics the round trip of a real account service.
const DefaultLatency = time.Second

// Simulated implements domain.AccountService without any account storage.
// Each call waits for the configured latency and then announces itself on
// the bus. The reset link it announces carries a random token that is not
// stored anywhere; any non-empty token is accepted on the way back.
type Simulated struct {
	publisher pubsub.Publisher
	latency   time.Duration
	baseURL   string
	logger    *slog.Logger
	now       func() time.Time
}

var _ domain.AccountService = (*Simulated)(nil)

// NewSimulated creates a simulated account service. publisher may be nil.
func NewSimulated(publisher pubsub.Publisher, latency time.Duration, baseURL string, logger *slog.Logger) *Simulated {
	if logger == nil {
		logger = slog.Default()
	}
	return &Simulated{
		publisher: publisher,
		latency:   latency,
		baseURL:   strings.TrimRight(baseURL, "/"),
		logger:    logger,
		now:       time.Now,
	}
}

// InitiateReset implements domain.AccountService.
func (s *Simulated) InitiateReset(ctx context.Context, email string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}

	link := s.baseURL + "/reset-password?token=" + url.QueryEscape(uuid.NewString())
	return s.publish(ctx, TopicResetRequested, ResetRequested{
		Email:       email,
		ResetLink:   link,
		RequestedAt: s.now().UTC(),
	})
}

// FinalizeReset implements domain.AccountService.
func (s *Simulated) FinalizeReset(ctx context.Context, token, newPassword string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	return s.publish(ctx, TopicResetCompleted, ResetCompleted{
		HasToken:    token != "",
		CompletedAt: s.now().UTC(),
	})
}

func (s *Simulated) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Simulated) publish(ctx context.Context, topic string, event any) error {
	if s.publisher == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return oops.Code("EVENT_ENCODE_FAILED").With("topic", topic).Wrapf(err, "failed to encode %s event", topic)
	}
	if err := s.publisher.Publish(ctx, pubsub.Message{Topic: topic, Payload: payload}); err != nil {
		return oops.Code("EVENT_PUBLISH_FAILED").With("topic", topic).Wrapf(err, "failed to publish %s event", topic)
	}
	s.logger.Debug("Published account event", "topic", topic)
	return nil
}
