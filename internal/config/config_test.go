package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.GetAppAddr())
	assert.Equal(t, "log", cfg.GetEmailProvider())
	assert.Equal(t, time.Second, cfg.GetAccountLatency())
	assert.Equal(t, 3*time.Second, cfg.GetResetRedirectDelay())
	assert.Equal(t, "/login", cfg.GetLoginPath())
	assert.Equal(t, 10, cfg.GetRateLimitPerMinute())
	assert.True(t, cfg.GetMetricsEnabled())
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"APP_ADDR":              ":9090",
		"APP_BASE_URL":          "https://auth.example.com",
		"SESSION_SECRET":        "0123456789abcdef0123",
		"EMAIL_PROVIDER":        "file",
		"EMAIL_OUTBOX_DIR":      "/var/outbox",
		"ACCOUNT_LATENCY":       "250ms",
		"RESET_REDIRECT_DELAY":  "5s",
		"LOGIN_PATH":            "/auth/login",
		"FLOW_TTL":              "10m",
		"FLOW_MAX_INSTANCES":    "500",
		"RATE_LIMIT_PER_MINUTE": "30",
		"METRICS_ENABLED":       "false",
		"LOG_FORMAT":            "json",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.AppAddr)
	assert.Equal(t, "https://auth.example.com", cfg.GetAppBaseURL())
	assert.Equal(t, "file", cfg.EmailProvider)
	assert.Equal(t, "/var/outbox", cfg.GetEmailOutboxDir())
	assert.Equal(t, 250*time.Millisecond, cfg.AccountLatency)
	assert.Equal(t, 5*time.Second, cfg.ResetRedirectDelay)
	assert.Equal(t, "/auth/login", cfg.LoginPath)
	assert.Equal(t, 10*time.Minute, cfg.GetFlowTTL())
	assert.Equal(t, 500, cfg.GetFlowMaxInstances())
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, "json", cfg.GetLogFormat())
}

func TestFromEnv_EmptyValuesKeepDefaults(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{"APP_ADDR": "", "FLOW_TTL": ""}))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, 30*time.Minute, cfg.FlowTTL)
}

func TestFromEnv_Errors(t *testing.T) {
	cases := map[string]map[string]string{
		"bad duration":     {"ACCOUNT_LATENCY": "soon"},
		"bad integer":      {"RATE_LIMIT_PER_MINUTE": "many"},
		"bad bool":         {"METRICS_ENABLED": "perhaps"},
		"short secret":     {"SESSION_SECRET": "short"},
		"relative login":   {"LOGIN_PATH": "login"},
		"zero rate limit":  {"RATE_LIMIT_PER_MINUTE": "0"},
		"zero max flows":   {"FLOW_MAX_INSTANCES": "0"},
		"negative latency": {"ACCOUNT_LATENCY": "-1s"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(envOf(vars))
			assert.Error(t, err)
		})
	}
}
