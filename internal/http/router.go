// Package httpapi assembles the portal's HTTP surface: applicant wizard and
// document endpoints, the guarded admin review API, and operational
// endpoints.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminhandler "seventytwo/internal/admin/handler"
	documenthandler "seventytwo/internal/document/handler"
	"seventytwo/internal/platform/middleware"
	"seventytwo/internal/platform/ratelimit"
	wizardhandler "seventytwo/internal/wizard/handler"
	"seventytwo/pkg/platform/httputil"
)

// HealthChecker reports backend liveness for the health endpoint.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps carries everything the router mounts.
type Deps struct {
	Wizard    *wizardhandler.Handler
	Documents *documenthandler.Handler
	Admin     *adminhandler.Handler
	// AdminAuth validates bearer tokens on the /admin subtree.
	AdminAuth middleware.TokenValidator
	// Checks run on /healthz; nil entries are skipped.
	Checks []HealthChecker
	// RateLimiter guards login and document upload; nil disables limiting.
	RateLimiter ratelimit.Limiter
	RateLimit   int
	RateWindow  time.Duration
	Logger      *slog.Logger
}

// NewRouter wires all endpoints with the shared middleware stack.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.ClientInfo)

	limited := func(r chi.Router) chi.Router {
		if deps.RateLimiter == nil {
			return r
		}
		return r.With(middleware.RateLimit(deps.RateLimiter, deps.RateLimit, deps.RateWindow, deps.Logger))
	}

	deps.Wizard.Register(r)
	deps.Documents.Register(limited(r))
	deps.Admin.RegisterLogin(limited(r))

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(deps.AdminAuth, deps.Logger))
		deps.Admin.Register(r)
	})

	r.Get("/healthz", handleHealth(deps.Checks))
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func handleHealth(checks []HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if check == nil {
				continue
			}
			if err := check.Health(r.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
					"error":  err.Error(),
				})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
