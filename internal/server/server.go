// Package server assembles the csrfd HTTP server.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/JeanGrijp/csrfguard/internal/config"
)

// New creates the HTTP server; the caller starts and stops it.
func New(cfg *config.Config, tokens TokenStore, log zerolog.Logger, gatherer prometheus.Gatherer) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           NewRouter(cfg, tokens, log, gatherer),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}
}
