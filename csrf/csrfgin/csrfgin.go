// Package csrfgin adapts the net/http CSRF protection to Gin.
package csrfgin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JeanGrijp/csrfguard/csrf"
)

// Middleware runs p.Protect in front of the rest of the Gin chain. A rejected
// request has already been answered, so the chain is aborted.
func Middleware(p *csrf.Protector) gin.HandlerFunc {
	return func(c *gin.Context) {
		passed := false
		h := p.Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// keep gin context in sync with possibly modified *http.Request
			passed = true
			c.Request = r
			c.Next()
		}))
		h.ServeHTTP(c.Writer, c.Request)

		if !passed {
			c.Abort()
		}
	}
}

// TokenHandler issues a token as the plain-text response body.
func TokenHandler(p *csrf.Protector) gin.HandlerFunc {
	return gin.WrapH(p.TokenHandler())
}
