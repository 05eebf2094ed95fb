package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/JeanGrijp/csrfguard/csrf"
	"github.com/JeanGrijp/csrfguard/internal/config"
)

// Routes served by csrfd.
const (
	PathToken   = "/csrf-token"
	PathProcess = "/process"
	PathHealth  = "/healthz"
)

// TokenStore is what the router needs from the token manager.
type TokenStore interface {
	csrf.TokenManager
	Len() int
}

// NewRouter wires the token endpoints, health and metrics. gatherer may be
// nil, in which case no metrics route is mounted.
func NewRouter(cfg *config.Config, tokens TokenStore, log zerolog.Logger, gatherer prometheus.Gatherer) http.Handler {
	p := csrf.New(tokens, csrf.Config{
		HeaderName:         cfg.CSRF.HeaderName,
		FormField:          cfg.CSRF.FormField,
		EnforceOriginCheck: cfg.CSRF.EnforceOriginCheck,
		AllowedOrigin:      cfg.CSRF.AllowedOrigin,
	})

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(AccessLog(log))
	r.Use(middleware.Recoverer)

	r.Group(func(r chi.Router) {
		if cfg.RateLimit.IssueRPS > 0 {
			r.Use(RateLimit(rate.NewLimiter(rate.Limit(cfg.RateLimit.IssueRPS), cfg.RateLimit.IssueBurst)))
		}
		r.Method(http.MethodGet, PathToken, p.TokenHandler())
	})

	r.With(p.Protect).Post(PathProcess, processHandler)

	r.Get(PathHealth, healthHandler(tokens))

	if cfg.Metrics.Enabled && gatherer != nil {
		r.Method(http.MethodGet, cfg.Metrics.Path, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

// processHandler is the protected action; reaching it means the token passed.
func processHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type healthResponse struct {
	Status string `json:"status"`
	Tokens int    `json:"tokens"`
}

func healthHandler(tokens TokenStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(healthResponse{Status: "ok", Tokens: tokens.Len()})
	}
}
