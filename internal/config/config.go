package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Provider exposes configuration values through getters so that consumers
// can be tested with partial fakes.
type Provider interface {
	GetAppAddr() string
	GetAppBaseURL() string
	GetSessionSecret() string
	GetLogFormat() string
	GetLogLevel() string
	GetEmailProvider() string
	GetEmailAPIKey() string
	GetEmailSender() string
	GetEmailOutboxDir() string
	GetAccountLatency() time.Duration
	GetResetRedirectDelay() time.Duration
	GetLoginPath() string
	GetFlowTTL() time.Duration
	GetFlowMaxInstances() int
	GetRateLimitPerMinute() int
	GetMetricsEnabled() bool
}

// Config holds all configuration for the application.
type Config struct {
	AppAddr            string
	AppBaseURL         string
	SessionSecret      string
	LogFormat          string
	LogLevel           string
	EmailProvider      string
	EmailAPIKey        string
	EmailSender        string
	EmailOutboxDir     string
	AccountLatency     time.Duration
	ResetRedirectDelay time.Duration
	LoginPath          string
	FlowTTL            time.Duration
	FlowMaxInstances   int
	RateLimitPerMinute int
	MetricsEnabled     bool
}

// devSessionSecret is used when SESSION_SECRET is unset. It is fine for local
// development and nothing else.
const devSessionSecret = "goby-auth-development-session-secret"

// Defaults returns the configuration used when no variables are set.
func Defaults() *Config {
	return &Config{
		AppAddr:            ":8080",
		AppBaseURL:         "http://localhost:8080",
		SessionSecret:      devSessionSecret,
		LogFormat:          "text",
		LogLevel:           "info",
		EmailProvider:      "log",
		EmailSender:        "Goby <no-reply@localhost>",
		EmailOutboxDir:     "tmp/outbox",
		AccountLatency:     time.Second,
		ResetRedirectDelay: 3 * time.Second,
		LoginPath:          "/login",
		FlowTTL:            30 * time.Minute,
		FlowMaxInstances:   10000,
		RateLimitPerMinute: 10,
		MetricsEnabled:     true,
	}
}

// Load reads a .env file if present and then the process environment.
func Load() (*Config, error) {
	// A missing .env file is normal outside development.
	_ = godotenv.Load()
	return FromEnv(os.LookupEnv)
}

// FromEnv builds the configuration from lookup, starting from Defaults.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Defaults()
	p := parser{lookup: lookup}

	p.str("APP_ADDR", &cfg.AppAddr)
	p.str("APP_BASE_URL", &cfg.AppBaseURL)
	p.str("SESSION_SECRET", &cfg.SessionSecret)
	p.str("LOG_FORMAT", &cfg.LogFormat)
	p.str("LOG_LEVEL", &cfg.LogLevel)
	p.str("EMAIL_PROVIDER", &cfg.EmailProvider)
	p.str("EMAIL_API_KEY", &cfg.EmailAPIKey)
	p.str("EMAIL_SENDER", &cfg.EmailSender)
	p.str("EMAIL_OUTBOX_DIR", &cfg.EmailOutboxDir)
	p.duration("ACCOUNT_LATENCY", &cfg.AccountLatency)
	p.duration("RESET_REDIRECT_DELAY", &cfg.ResetRedirectDelay)
	p.str("LOGIN_PATH", &cfg.LoginPath)
	p.duration("FLOW_TTL", &cfg.FlowTTL)
	p.integer("FLOW_MAX_INSTANCES", &cfg.FlowMaxInstances)
	p.integer("RATE_LIMIT_PER_MINUTE", &cfg.RateLimitPerMinute)
	p.boolean("METRICS_ENABLED", &cfg.MetricsEnabled)

	if p.err != nil {
		return nil, p.err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case len(c.SessionSecret) < 16:
		return fmt.Errorf("SESSION_SECRET must be at least 16 characters")
	case !strings.HasPrefix(c.LoginPath, "/"):
		return fmt.Errorf("LOGIN_PATH must be an absolute path, got %q", c.LoginPath)
	case c.RateLimitPerMinute <= 0:
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimitPerMinute)
	case c.FlowTTL <= 0:
		return fmt.Errorf("FLOW_TTL must be positive, got %s", c.FlowTTL)
	case c.FlowMaxInstances <= 0:
		return fmt.Errorf("FLOW_MAX_INSTANCES must be positive, got %d", c.FlowMaxInstances)
	case c.AccountLatency < 0 || c.ResetRedirectDelay < 0:
		return fmt.Errorf("ACCOUNT_LATENCY and RESET_REDIRECT_DELAY must not be negative")
	}
	return nil
}

// parser keeps the first conversion error so FromEnv can report it once.
type parser struct {
	lookup func(string) (string, bool)
	err    error
}

func (p *parser) get(key string) (string, bool) {
	v, ok := p.lookup(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (p *parser) str(key string, dst *string) {
	if v, ok := p.get(key); ok {
		*dst = v
	}
}

func (p *parser) duration(key string, dst *time.Duration) {
	v, ok := p.get(key)
	if !ok || p.err != nil {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.err = fmt.Errorf("invalid %s %q: %w", key, v, err)
		return
	}
	*dst = d
}

func (p *parser) integer(key string, dst *int) {
	v, ok := p.get(key)
	if !ok || p.err != nil {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.err = fmt.Errorf("invalid %s %q: %w", key, v, err)
		return
	}
	*dst = n
}

func (p *parser) boolean(key string, dst *bool) {
	v, ok := p.get(key)
	if !ok || p.err != nil {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.err = fmt.Errorf("invalid %s %q: %w", key, v, err)
		return
	}
	*dst = b
}

func (c *Config) GetAppAddr() string { return c.AppAddr }
func (c *Config) GetAppBaseURL() string { return c.AppBaseURL }
func (c *Config) GetSessionSecret() string { return c.SessionSecret }
func (c *Config) GetLogFormat() string { return c.LogFormat }
func (c *Config) GetLogLevel() string { return c.LogLevel }
func (c *Config) GetEmailProvider() string { return c.EmailProvider }
func (c *Config) GetEmailAPIKey() string { return c.EmailAPIKey }
func (c *Config) GetEmailSender() string { return c.EmailSender }
func (c *Config) GetEmailOutboxDir() string { return c.EmailOutboxDir }
func (c *Config) GetAccountLatency() time.Duration { return c.AccountLatency }
func (c *Config) GetResetRedirectDelay() time.Duration { return c.ResetRedirectDelay }
func (c *Config) GetLoginPath() string { return c.LoginPath }
func (c *Config) GetFlowTTL() time.Duration { return c.FlowTTL }
func (c *Config) GetFlowMaxInstances() int { return c.FlowMaxInstances }
func (c *Config) GetRateLimitPerMinute() int { return c.RateLimitPerMinute }
func (c *Config) GetMetricsEnabled() bool { return c.MetricsEnabled }
