package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "csrfd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultHTTPAddr, cfg.HTTP.Addr)
	assert.Equal(t, 30*time.Second, cfg.CSRF.Timeout)
	assert.Equal(t, cfg.CSRF.Timeout, cfg.CSRF.EffectiveSweepInterval())
	assert.Equal(t, "X-CSRF-Token", cfg.CSRF.HeaderName)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Zero(t, cfg.RateLimit.IssueRPS)
	require.NoError(t, Verify(cfg))
}

func TestLoadDefaultsOnly(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
http:
  addr: "127.0.0.1:9000"
csrf:
  timeout: 45s
  sweep_interval: 15s
  enforce_origin_check: true
  allowed_origin: app.example.com
ratelimit:
  issue_rps: 5
  issue_burst: 10
log:
  level: debug
  format: console
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
	assert.Equal(t, 45*time.Second, cfg.CSRF.Timeout)
	assert.Equal(t, 15*time.Second, cfg.CSRF.EffectiveSweepInterval())
	assert.True(t, cfg.CSRF.EnforceOriginCheck)
	assert.Equal(t, "app.example.com", cfg.CSRF.AllowedOrigin)
	assert.Equal(t, 5.0, cfg.RateLimit.IssueRPS)
	assert.Equal(t, 10, cfg.RateLimit.IssueBurst)
	assert.Equal(t, "debug", cfg.Log.Level)

	// untouched keys keep their defaults
	assert.Equal(t, DefaultHeaderName, cfg.CSRF.HeaderName)
	assert.Equal(t, DefaultShutdownTimeout, cfg.HTTP.ShutdownTimeout)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "csrf:\n  timeout: 45s\n")
	t.Setenv("CSRFD_CSRF__TIMEOUT", "1m")
	t.Setenv("CSRFD_CSRF__HEADER_NAME", "X-XSRF-Token")
	t.Setenv("CSRFD_LOG__LEVEL", "warn")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.CSRF.Timeout)
	assert.Equal(t, "X-XSRF-Token", cfg.CSRF.HeaderName)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadOverridesWin(t *testing.T) {
	t.Setenv("CSRFD_HTTP__ADDR", ":7000")

	cfg, err := Load("", map[string]any{"http.addr": ":8000", "log.level": "error"})
	require.NoError(t, err)
	assert.Equal(t, ":8000", cfg.HTTP.Addr)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeFile(t, "csrf:\n  timeout: 0s\n")
	_, err := Load(path, nil)
	require.ErrorContains(t, err, "csrf.timeout")
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty addr", func(c *Config) { c.HTTP.Addr = "" }, "http.addr"},
		{"zero shutdown", func(c *Config) { c.HTTP.ShutdownTimeout = 0 }, "http.shutdown_timeout"},
		{"negative timeout", func(c *Config) { c.CSRF.Timeout = -time.Second }, "csrf.timeout"},
		{"negative sweep", func(c *Config) { c.CSRF.SweepInterval = -time.Second }, "csrf.sweep_interval"},
		{"empty header", func(c *Config) { c.CSRF.HeaderName = "" }, "csrf.header_name"},
		{"negative rps", func(c *Config) { c.RateLimit.IssueRPS = -1 }, "ratelimit.issue_rps"},
		{"rps without burst", func(c *Config) { c.RateLimit.IssueRPS = 1 }, "ratelimit.issue_burst"},
		{"bad metrics path", func(c *Config) { c.Metrics.Path = "metrics" }, "metrics.path"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			require.ErrorContains(t, Verify(cfg), tt.want)
		})
	}
}

func TestEffectiveSweepInterval(t *testing.T) {
	s := CSRFSection{Timeout: time.Minute}
	assert.Equal(t, time.Minute, s.EffectiveSweepInterval())
	s.SweepInterval = time.Second
	assert.Equal(t, time.Second, s.EffectiveSweepInterval())
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "csrf.sweep_interval", envKey("CSRFD_CSRF__SWEEP_INTERVAL"))
	assert.Equal(t, "http.addr", envKey("CSRFD_HTTP__ADDR"))
}
