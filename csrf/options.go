package csrf

import (
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout is the idle window after which an issued token stops validating.
const DefaultTimeout = 30 * time.Second

// ManagerConfig configures the token lifecycle Manager.
type ManagerConfig struct {
	// Idle window; a token not validated for this long is expired.
	Timeout time.Duration
	// How often the background sweep runs. Zero means Timeout.
	SweepInterval time.Duration

	// Clock, mainly for tests. Defaults to time.Now.
	Now func() time.Time

	Logger  *zerolog.Logger
	Metrics *Metrics // optional
}

// TokenManager is the narrow interface the HTTP layer uses to reach the store.
type TokenManager interface {
	Issue() string
	Validate(token string) error
}

// Config drives the HTTP side of the protection (Protector).
type Config struct {
	// Token transport
	HeaderName string // e.g.: "X-CSRF-Token"
	FormField  string // e.g.: "csrf_token"

	// Extra security
	EnforceOriginCheck bool
	AllowedOrigin      string // if empty, uses r.Host
}

// Protector adapts a TokenManager to net/http.
type Protector struct {
	cfg    Config
	tokens TokenManager
}

// New returns a Protector that issues and checks tokens through tokens.
func New(tokens TokenManager, cfg Config) *Protector {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-CSRF-Token"
	}
	if cfg.FormField == "" {
		cfg.FormField = "csrf_token"
	}
	return &Protector{cfg: cfg, tokens: tokens}
}
