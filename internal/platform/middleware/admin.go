package middleware

import (
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// RequireAdminToken guards the admin surface with a shared token carried in
// X-Admin-Token. Only the bcrypt hash of the token is held in memory so a
// config dump never reveals the cleartext.
func RequireAdminToken(expectedTokenHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("X-Admin-Token")
			if token == "" || expectedTokenHash == "" ||
				bcrypt.CompareHashAndPassword([]byte(expectedTokenHash), []byte(token)) != nil {
				logger.WarnContext(r.Context(), "admin access denied",
					"path", r.URL.Path,
					"request_id", GetRequestID(r.Context()),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"forbidden"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
