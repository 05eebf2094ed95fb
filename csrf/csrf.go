package csrf

import (
	"context"
	"errors"
	"net/http"
)

// Methods that require CSRF protection
var unsafeMethods = map[string]bool{
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// Response bodies for rejected requests.
const (
	MsgInvalidToken   = "Invalid CSRF token"
	MsgSessionExpired = "Session expired"
	MsgInvalidOrigin  = "invalid origin"
)

// Protect wraps the given next http.Handler and enforces CSRF protection.
//
// Behavior:
//   - For "safe" methods (GET/HEAD/OPTIONS): calls next untouched.
//   - For "unsafe" methods (POST/PUT/PATCH/DELETE): optionally validates Origin/Referer
//     (when EnforceOriginCheck is true), extracts the client token from header or form,
//     validates it against the token store, and only then calls next with the token in
//     the request context.
//
// Rejections:
//   - unknown, empty or swept token: 403 "Invalid CSRF token"
//   - token idle past the timeout:   401 "Session expired"
func (p *Protector) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cfg := p.cfg

		// 1) for safe methods, just continue
		if !unsafeMethods[r.Method] {
			next.ServeHTTP(w, r)
			return
		}

		// 2) Origin/Referer validation (if enabled)
		if cfg.EnforceOriginCheck {
			if err := validateOriginOrReferer(r, cfg.AllowedOrigin); err != nil {
				http.Error(w, MsgInvalidOrigin, http.StatusForbidden)
				return
			}
		}

		// 3) extract client-provided token (header or form); absent means ""
		clientToken := extractClientToken(r, cfg.HeaderName, cfg.FormField)

		// 4) existence, then sliding expiry
		if err := p.tokens.Validate(clientToken); err != nil {
			WriteError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(contextWithToken(r.Context(), clientToken)))
	})
}

// StatusFor maps a validation error to its HTTP status and body.
func StatusFor(err error) (int, string) {
	if errors.Is(err, ErrSessionExpired) {
		return http.StatusUnauthorized, MsgSessionExpired
	}
	return http.StatusForbidden, MsgInvalidToken
}

// WriteError writes the response for a failed validation.
func WriteError(w http.ResponseWriter, err error) {
	code, msg := StatusFor(err)
	http.Error(w, msg, code)
}

// TokenFromContext returns the validated CSRF token stored in ctx, if present.
func TokenFromContext(ctx context.Context) (string, bool) {
	return tokenFromContext(ctx)
}

// TokenHandler returns an HTTP handler that issues a fresh token and writes
// it as the plain-text response body.
func (p *Protector) TokenHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := p.tokens.Issue()
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(tok))
	})
}

// HeaderName is the request header the Protector reads the token from.
func (p *Protector) HeaderName() string {
	return p.cfg.HeaderName
}

// validateOriginOrReferer checks whether the request is same-site according to
// the allowed host policy. When allowed is empty, it falls back to r.Host.
// It prefers the Origin header; if empty, it falls back to Referer.
func validateOriginOrReferer(r *http.Request, allowed string) error {
	host := allowed
	if host == "" {
		host = r.Host
	}

	origin := r.Header.Get("Origin")
	ref := r.Header.Get("Referer")

	if origin == "" && ref == "" {
		return errors.New("no origin/referer")
	}
	if origin != "" && !sameSite(origin, host) {
		return errors.New("bad origin")
	}
	if origin == "" && !sameSite(ref, host) {
		return errors.New("bad referer")
	}
	return nil
}
