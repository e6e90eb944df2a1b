package flow

import (
	"log/slog"
	"time"
)

const (
	// DefaultRedirectDelay is how long the success message of the confirm
	// flow stays up before navigating to the login page.
	DefaultRedirectDelay = 3 * time.Second

	// DefaultLoginPath is where a completed reset navigates to.
	DefaultLoginPath = "/login"
)

// Navigator moves the user to another page.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

// Navigate calls fn(path).
func (fn NavigatorFunc) Navigate(path string) { fn(path) }

type options struct {
	logger        *slog.Logger
	navigator     Navigator
	redirectDelay time.Duration
	loginPath     string
}

// Option configures a flow instance.
type Option func(*options)

// WithLogger sets the logger used by the flow.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithNavigator sets who is told when the confirm flow navigates away.
func WithNavigator(n Navigator) Option {
	return func(o *options) { o.navigator = n }
}

// WithRedirectDelay overrides DefaultRedirectDelay.
func WithRedirectDelay(d time.Duration) Option {
	return func(o *options) { o.redirectDelay = d }
}

// WithLoginPath overrides DefaultLoginPath.
func WithLoginPath(p string) Option {
	return func(o *options) {
		if p != "" {
			o.loginPath = p
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger:        slog.Default(),
		navigator:     NavigatorFunc(func(string) {}),
		redirectDelay: DefaultRedirectDelay,
		loginPath:     DefaultLoginPath,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.navigator == nil {
		o.navigator = NavigatorFunc(func(string) {})
	}
	return o
}
