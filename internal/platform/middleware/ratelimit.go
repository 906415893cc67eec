package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"seventytwo/internal/platform/ratelimit"
	"seventytwo/pkg/requestcontext"
)

// RateLimit rejects requests over the per-client budget with 429. Keys on
// the client IP resolved by ClientInfo, so it must run after that
// middleware.
func RateLimit(limiter ratelimit.Limiter, limit int, window time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := requestcontext.ClientIP(ctx)
			if key == "" {
				key = r.RemoteAddr
			}

			result, err := limiter.Allow(ctx, key, limit, window)
			if err != nil {
				// An unavailable limiter must not take the portal down with
				// it; let the request through.
				logger.Warn("rate limiter unavailable", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if !result.Allowed {
				retryAfter := max(int(time.Until(result.ResetAt).Seconds()), 1)
				logger.Warn("request rate limited",
					"client_ip", key,
					"path", r.URL.Path,
				)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate_limited"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
