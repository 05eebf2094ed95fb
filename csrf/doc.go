// Package csrf issues short-lived anti-forgery tokens and validates them on
// state-changing requests.
//
// # Token lifecycle
//
// A Manager keeps every issued token in memory together with its last
// activity time:
//   - Issue draws a random 64-bit value, renders it as a decimal string and
//     records the current time.
//   - Validate rejects unknown tokens with ErrInvalidToken, rejects tokens idle
//     for at least the timeout with ErrSessionExpired, and otherwise refreshes
//     the timestamp (sliding expiry).
//   - Run sweeps idle tokens out of the store on a fixed interval until its
//     context is cancelled. The sweep is the only remover, so an expired token
//     may still be found between sweeps; it is then reported as expired.
//
// State is process-local. Running several replicas requires a shared store,
// which this package does not provide.
//
// # HTTP
//
// Protector adapts a TokenManager to net/http:
//   - TokenHandler issues a token and writes it as the response body.
//   - Protect validates the X-CSRF-Token header (or the csrf_token form field)
//     on POST/PUT/PATCH/DELETE, answering 403 "Invalid CSRF token" or
//     401 "Session expired" on failure.
//
// Typical usage
//
//	m := csrf.NewManager(csrf.ManagerConfig{Timeout: 30 * time.Second})
//	go m.Run(ctx)
//
//	p := csrf.New(m, csrf.Config{})
//	r.Get("/csrf-token", p.TokenHandler().ServeHTTP)
//	r.With(p.Protect).Post("/process", processHandler)
package csrf
