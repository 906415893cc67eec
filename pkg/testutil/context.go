package testutil

import (
	"net/http"
	"time"

	"seventytwo/pkg/requestcontext"
)

// WithTime pins the request clock so handlers and services stamp a
// deterministic timestamp.
func WithTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}

// WithClient attaches resolved client info, simulating the ClientInfo
// middleware.
func WithClient(req *http.Request, ip, device string) *http.Request {
	ctx := requestcontext.WithClientIP(req.Context(), ip)
	ctx = requestcontext.WithDevice(ctx, device)
	return req.WithContext(ctx)
}

// WithActor attaches an admin actor, simulating the admin auth middleware.
func WithActor(req *http.Request, username string) *http.Request {
	return req.WithContext(requestcontext.WithActor(req.Context(), username))
}
