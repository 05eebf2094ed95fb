package csrf

import "errors"

// Validation failures reported by Manager.Validate. Callers must keep them
// distinguishable: an absent token is never reported as expired.
var (
	// ErrInvalidToken means the presented token is not in the store: it was
	// never issued, is malformed or empty, or has already been swept.
	ErrInvalidToken = errors.New("csrf: invalid token")

	// ErrSessionExpired means the token is still stored but has been idle for
	// at least the configured timeout.
	ErrSessionExpired = errors.New("csrf: session expired")
)
