package middleware

import (
	"fmt"
	"net"
	"net/http"

	"github.com/google/uuid"
	"github.com/mssola/useragent"

	"seventytwo/pkg/requestcontext"
)

// ClientInfo stamps every request with a correlation ID and the caller's
// network/browser facts. Receipts and audit events read these from the
// context instead of from *http.Request.
func ClientInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx = requestcontext.WithRequestID(ctx, requestID)
		ctx = requestcontext.WithClientIP(ctx, clientIP(r))

		if rawUA := r.UserAgent(); rawUA != "" {
			ctx = requestcontext.WithUserAgent(ctx, rawUA)
			ctx = requestcontext.WithDevice(ctx, describeAgent(rawUA))
		}

		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// describeAgent normalizes a User-Agent header into a short human-readable
// label like "Chrome 120 on Linux" for receipts and the audit trail.
func describeAgent(raw string) string {
	ua := useragent.New(raw)
	name, version := ua.Browser()
	if name == "" {
		return "Unknown browser"
	}
	label := name
	if version != "" {
		label = fmt.Sprintf("%s %s", name, majorVersion(version))
	}
	if os := ua.OS(); os != "" {
		label += " on " + os
	}
	return label
}

func majorVersion(v string) string {
	for i := range len(v) {
		if v[i] == '.' {
			return v[:i]
		}
	}
	return v
}
