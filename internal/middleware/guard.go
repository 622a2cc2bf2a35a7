package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
)

const (
	// APIKeyHeader carries the shared admin secret.
	APIKeyHeader = "X-API-Key"

	// AdminPrefix marks the paths the guard protects.
	AdminPrefix = "/admin/"
)

// AdminGuard returns middleware requiring the X-API-Key header to match
// key on every /admin/ path. A mismatch short-circuits with a 401 and
// never invokes the downstream handler; all other paths pass through
// unconditionally.
func AdminGuard(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, AdminPrefix) {
				provided := r.Header.Get(APIKeyHeader)
				if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusUnauthorized)
					json.NewEncoder(w).Encode(map[string]string{
						"detail": "Unauthorized (missing/invalid X-API-Key)",
					})
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
