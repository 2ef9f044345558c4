package middleware

import (
	"net/http"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/util"
)

// ReadOnlyMiddleware rejects writes while enabled, except logging in.
func ReadOnlyMiddleware(enabled bool) func(http.Handler) http.Handler {
	allowedPosts := map[string]bool{
		"/api/login": true,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled || r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			if r.Method == http.MethodPost && allowedPosts[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}
			util.WriteStatusError(w, http.StatusServiceUnavailable, "read-only mode: writes are disabled")
		})
	}
}
