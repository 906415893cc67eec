package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"seventytwo/pkg/requestcontext"
)

// TokenValidator validates bearer tokens for the admin surface.
type TokenValidator interface {
	ValidateToken(tokenString string) (*AdminClaims, error)
}

// AdminClaims represents the claims we expect from the token validator.
type AdminClaims struct {
	Username string
}

type contextKeyAdminUser struct{}

// ContextKeyAdminUser is exported for use in handlers and tests.
var ContextKeyAdminUser = contextKeyAdminUser{}

// AdminUser retrieves the authenticated admin username from the context.
func AdminUser(ctx context.Context) string {
	username, ok := ctx.Value(ContextKeyAdminUser).(string)
	if !ok {
		return ""
	}
	return username
}

// RequireAdmin guards admin routes with a bearer token check. Failures are
// logged with the request path but never echo the token.
func RequireAdmin(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				logger.Warn("admin request without bearer token", "path", r.URL.Path)
				writeUnauthorized(w)
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.Warn("admin token rejected", "path", r.URL.Path, "error", err)
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAdminUser, claims.Username)
			ctx = requestcontext.WithActor(ctx, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
}
