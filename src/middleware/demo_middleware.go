package middleware

import (
	"net/http"

	"spendlog-server/src/util"
)

// DemoModeMiddleware makes the API read-only, except for the endpoints a
// visitor needs to sign in and out.
func DemoModeMiddleware(isDemo bool) func(http.Handler) http.Handler {
	allowedWrites := map[string]bool{
		"/api/v1/login":         true,
		"/api/v1/register":      true,
		"/api/v1/logout":        true,
		"/api/v1/refresh_token": true,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isDemo || r.Method == http.MethodGet || r.Method == http.MethodOptions || r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}
			if (r.Method == http.MethodPost || r.Method == http.MethodPut) && allowedWrites[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}
			util.WriteError(w, http.StatusForbidden, "demo mode: only GET requests are allowed")
		})
	}
}
