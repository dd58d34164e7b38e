package mw

import (
	"net/http"

	"github.com/gorilla/csrf"
)

// CSRF protects the console forms. Over plain HTTP the request is marked as
// such so the origin check does not require TLS.
func CSRF(key []byte, secure bool) func(http.Handler) http.Handler {
	protect := csrf.Protect(key,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
	)
	return func(next http.Handler) http.Handler {
		h := protect(next)
		if secure {
			return h
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}
