// Package config defines the csrfd configuration and loads it with koanf.
package config

import "time"

// Config is the root configuration for csrfd.
type Config struct {
	HTTP      HTTPSection      `koanf:"http"`
	CSRF      CSRFSection      `koanf:"csrf"`
	RateLimit RateLimitSection `koanf:"ratelimit"`
	Metrics   MetricsSection   `koanf:"metrics"`
	Log       LogSection       `koanf:"log"`
}

// HTTPSection configures the HTTP listener.
type HTTPSection struct {
	Addr              string        `koanf:"addr"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
}

// CSRFSection configures token lifetime and transport.
type CSRFSection struct {
	// Timeout is the sliding idle window of a token.
	Timeout time.Duration `koanf:"timeout"`
	// SweepInterval defaults to Timeout when zero.
	SweepInterval time.Duration `koanf:"sweep_interval"`

	HeaderName         string `koanf:"header_name"`
	FormField          string `koanf:"form_field"`
	EnforceOriginCheck bool   `koanf:"enforce_origin_check"`
	AllowedOrigin      string `koanf:"allowed_origin"`
}

// RateLimitSection throttles token issuance. Zero IssueRPS disables it.
type RateLimitSection struct {
	IssueRPS   float64 `koanf:"issue_rps"`
	IssueBurst int     `koanf:"issue_burst"`
}

// MetricsSection configures the Prometheus endpoint.
type MetricsSection struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default configuration values.
const (
	DefaultHTTPAddr          = ":3000"
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second

	DefaultTimeout    = 30 * time.Second
	DefaultHeaderName = "X-CSRF-Token"
	DefaultFormField  = "csrf_token"

	DefaultMetricsPath = "/metrics"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		HTTP: HTTPSection{
			Addr:              DefaultHTTPAddr,
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
			ShutdownTimeout:   DefaultShutdownTimeout,
		},
		CSRF: CSRFSection{
			Timeout:    DefaultTimeout,
			HeaderName: DefaultHeaderName,
			FormField:  DefaultFormField,
		},
		Metrics: MetricsSection{
			Enabled: true,
			Path:    DefaultMetricsPath,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// EffectiveSweepInterval returns SweepInterval, or Timeout when unset.
func (c CSRFSection) EffectiveSweepInterval() time.Duration {
	if c.SweepInterval > 0 {
		return c.SweepInterval
	}
	return c.Timeout
}
