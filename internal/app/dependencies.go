// Package app wires the process-wide services together.
package app

import (
	"fmt"
	"log/slog"

	"github.com/nfrund/goby-auth/internal/account"
	"github.com/nfrund/goby-auth/internal/config"
	"github.com/nfrund/goby-auth/internal/domain"
	"github.com/nfrund/goby-auth/internal/email"
	"github.com/nfrund/goby-auth/internal/flow"
	"github.com/nfrund/goby-auth/internal/metrics"
	"github.com/nfrund/goby-auth/internal/notify"
	"github.com/nfrund/goby-auth/internal/pubsub"
	"github.com/nfrund/goby-auth/internal/rendering"
	"github.com/nfrund/goby-auth/internal/validation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/samber/do/v2"
)

// Dependencies holds the core services the server is built from.
type Dependencies struct {
	Config   config.Provider
	Logger   *slog.Logger
	Bus      *pubsub.WatermillBridge
	Emailer  domain.EmailSender
	Accounts domain.AccountService
	Notifier *notify.Notifier
	Rules    *validation.Rules
	Requests *flow.Registry[*flow.RequestFlow]
	Confirms *flow.Registry[*flow.ConfirmFlow]
	Renderer rendering.Renderer
	Metrics  *prometheus.Registry
}

// NewInjector registers a lazy provider for every service. Nothing is built
// until it is first invoked.
func NewInjector(cfg config.Provider, logger *slog.Logger) do.Injector {
	i := do.New()
	do.ProvideValue(i, cfg)
	do.ProvideValue(i, logger)

	do.Provide(i, func(i do.Injector) (*pubsub.WatermillBridge, error) {
		return pubsub.NewWatermillBridge(do.MustInvoke[*slog.Logger](i)), nil
	})
	do.Provide(i, func(i do.Injector) (domain.EmailSender, error) {
		return email.NewEmailService(do.MustInvoke[config.Provider](i))
	})
	do.Provide(i, func(i do.Injector) (domain.AccountService, error) {
		cfg := do.MustInvoke[config.Provider](i)
		bus := do.MustInvoke[*pubsub.WatermillBridge](i)
		logger := do.MustInvoke[*slog.Logger](i)
		return account.NewSimulated(bus, cfg.GetAccountLatency(), cfg.GetAppBaseURL(), logger), nil
	})
	do.Provide(i, func(i do.Injector) (*notify.Notifier, error) {
		sender, err := do.Invoke[domain.EmailSender](i)
		if err != nil {
			return nil, err
		}
		return notify.New(sender, do.MustInvoke[*slog.Logger](i)), nil
	})
	do.Provide(i, func(i do.Injector) (*validation.Rules, error) {
		return validation.New(), nil
	})
	do.Provide(i, func(i do.Injector) (*flow.Registry[*flow.RequestFlow], error) {
		cfg := do.MustInvoke[config.Provider](i)
		return flow.NewRegistry[*flow.RequestFlow](metrics.FlowRequest, cfg.GetFlowTTL(), flow.WithMaxInstances(cfg.GetFlowMaxInstances())), nil
	})
	do.Provide(i, func(i do.Injector) (*flow.Registry[*flow.ConfirmFlow], error) {
		cfg := do.MustInvoke[config.Provider](i)
		return flow.NewRegistry[*flow.ConfirmFlow](metrics.FlowConfirm, cfg.GetFlowTTL(), flow.WithMaxInstances(cfg.GetFlowMaxInstances())), nil
	})
	do.Provide(i, func(i do.Injector) (rendering.Renderer, error) {
		return rendering.NewUniversalRenderer(), nil
	})
	do.Provide(i, func(i do.Injector) (*prometheus.Registry, error) {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics.Register(reg)
		return reg, nil
	})
	return i
}

// Resolve builds every service registered by NewInjector.
func Resolve(i do.Injector) (Dependencies, error) {
	var deps Dependencies
	var err error

	if deps.Config, err = do.Invoke[config.Provider](i); err != nil {
		return deps, fmt.Errorf("config: %w", err)
	}
	if deps.Logger, err = do.Invoke[*slog.Logger](i); err != nil {
		return deps, fmt.Errorf("logger: %w", err)
	}
	if deps.Bus, err = do.Invoke[*pubsub.WatermillBridge](i); err != nil {
		return deps, fmt.Errorf("message bus: %w", err)
	}
	if deps.Emailer, err = do.Invoke[domain.EmailSender](i); err != nil {
		return deps, fmt.Errorf("email service: %w", err)
	}
	if deps.Accounts, err = do.Invoke[domain.AccountService](i); err != nil {
		return deps, fmt.Errorf("account service: %w", err)
	}
	if deps.Notifier, err = do.Invoke[*notify.Notifier](i); err != nil {
		return deps, fmt.Errorf("notifier: %w", err)
	}
	if deps.Rules, err = do.Invoke[*validation.Rules](i); err != nil {
		return deps, fmt.Errorf("validation rules: %w", err)
	}
	if deps.Requests, err = do.Invoke[*flow.Registry[*flow.RequestFlow]](i); err != nil {
		return deps, fmt.Errorf("request flows: %w", err)
	}
	if deps.Confirms, err = do.Invoke[*flow.Registry[*flow.ConfirmFlow]](i); err != nil {
		return deps, fmt.Errorf("confirm flows: %w", err)
	}
	if deps.Renderer, err = do.Invoke[rendering.Renderer](i); err != nil {
		return deps, fmt.Errorf("renderer: %w", err)
	}
	if deps.Metrics, err = do.Invoke[*prometheus.Registry](i); err != nil {
		return deps, fmt.Errorf("metrics: %w", err)
	}
	return deps, nil
}
