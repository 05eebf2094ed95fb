package csrf

import "context"

type ctxKey struct{}

var tokenKey ctxKey

// contextWithToken returns a derived context carrying a validated token.
func contextWithToken(ctx context.Context, tok string) context.Context {
	return context.WithValue(ctx, tokenKey, tok)
}

func tokenFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(tokenKey).(string)
	return s, ok
}
