package csrf

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// newToken renders a uniformly random 64-bit value as a decimal string.
// A failing random source leaves no safe way to continue, so it panics.
func newToken() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(fmt.Sprintf("csrf: read random source: %v", err))
	}
	return strconv.FormatUint(binary.BigEndian.Uint64(b[:]), 10)
}

// extractClientToken returns the token from the header, falling back to the
// form field. A missing credential yields "".
func extractClientToken(r *http.Request, headerName, formField string) string {
	if h := r.Header.Get(headerName); h != "" {
		return h
	}
	if formField == "" {
		return ""
	}
	_ = r.ParseForm()
	return r.Form.Get(formField)
}

// sameSite reports whether originOrRef points at allowedHost.
func sameSite(originOrRef, allowedHost string) bool {
	u, err := url.Parse(originOrRef)
	if err != nil {
		return false
	}
	// host only (may include port)
	return strings.EqualFold(u.Host, allowedHost)
}
