package config

import (
	"errors"
	"fmt"
	"strings"
)

// Verify validates the configuration.
func Verify(cfg *Config) error {
	if cfg.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	if cfg.HTTP.ShutdownTimeout <= 0 {
		return errors.New("http.shutdown_timeout must be positive")
	}

	if cfg.CSRF.Timeout <= 0 {
		return errors.New("csrf.timeout must be positive")
	}
	if cfg.CSRF.SweepInterval < 0 {
		return errors.New("csrf.sweep_interval must not be negative")
	}
	if cfg.CSRF.HeaderName == "" {
		return errors.New("csrf.header_name is required")
	}

	if cfg.RateLimit.IssueRPS < 0 {
		return errors.New("ratelimit.issue_rps must not be negative")
	}
	if cfg.RateLimit.IssueRPS > 0 && cfg.RateLimit.IssueBurst < 1 {
		return errors.New("ratelimit.issue_burst must be at least 1 when issue_rps is set")
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path %q must start with /", cfg.Metrics.Path)
	}

	switch strings.ToLower(cfg.Log.Format) {
	case "json", "console", "text":
	default:
		return fmt.Errorf("log.format %q must be json or console", cfg.Log.Format)
	}
	return nil
}
