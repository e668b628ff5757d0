package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tutorhive/tutorhive-api/internal/auth"
)

// SessionCookieName carries the admin JWT. HttpOnly + SameSite-Strict; the
// token itself is signed and expires after 24h.
const SessionCookieName = "admin_session"

type contextKey string

const sessionKey contextKey = "adminSession"

// RequireAdmin guards the back-office routes. Missing, expired or tampered
// tokens all read as Unauthorized.
func RequireAdmin(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				unauthorized(w)
				return
			}

			claims, err := tokens.ValidateToken(cookie.Value)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the validated claims, or nil outside the guard.
func SessionFromContext(ctx context.Context) *auth.SessionClaims {
	claims, _ := ctx.Value(sessionKey).(*auth.SessionClaims)
	return claims
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   "UNAUTHORIZED",
		"message": "a valid admin session is required",
	})
}
