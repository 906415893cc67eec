// Package handler exposes the admin review surface: login, the registration
// dashboard, and decision recording.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"seventytwo/internal/registration/models"
	id "seventytwo/pkg/domain"
	dErrors "seventytwo/pkg/domain-errors"
	"seventytwo/pkg/platform/httputil"
	"seventytwo/pkg/requestcontext"
)

// RegistrationService defines the registration operations admins use.
type RegistrationService interface {
	List(ctx context.Context) ([]*models.Registration, error)
	Get(ctx context.Context, regID id.RegistrationID) (*models.Registration, error)
	DocumentsFor(ctx context.Context, regID id.RegistrationID) ([]models.Document, error)
	Decide(ctx context.Context, regID id.RegistrationID, target models.ReviewStatus, notes string) (*models.Registration, error)
}

// Authenticator checks credentials and issues bearer tokens.
type Authenticator interface {
	Login(username, password string) (string, error)
}

// Handler wires admin endpoints to the registration service.
type Handler struct {
	registrations RegistrationService
	auth          Authenticator
	logger        *slog.Logger
}

// New constructs an admin handler with its dependencies.
func New(registrations RegistrationService, auth Authenticator, logger *slog.Logger) *Handler {
	return &Handler{
		registrations: registrations,
		auth:          auth,
		logger:        logger,
	}
}

// RegisterLogin mounts the unauthenticated login endpoint.
func (h *Handler) RegisterLogin(r chi.Router) {
	r.Post("/admin/login", h.HandleLogin)
}

// Register mounts the guarded admin endpoints. The caller applies the auth
// middleware.
func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/registrations", h.HandleList)
	r.Get("/admin/registrations/{id}", h.HandleGet)
	r.Get("/admin/registrations/{id}/documents", h.HandleDocuments)
	r.Post("/admin/registrations/{id}/decision", h.HandleDecision)
}

// HandleLogin handles POST /admin/login requests.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	token, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "admin login rejected",
			"request_id", requestID,
			"username", req.Username,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "admin logged in",
		"request_id", requestID,
		"username", req.Username,
	)
	httputil.WriteJSON(w, http.StatusOK, LoginResponse{Token: token})
}

// HandleList handles GET /admin/registrations requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	regs, err := h.registrations.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list registrations",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRegistrations(regs))
}

// HandleGet handles GET /admin/registrations/{id} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	regID, err := id.ParseRegistrationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	reg, err := h.registrations.Get(ctx, regID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRegistration(reg))
}

// HandleDocuments handles GET /admin/registrations/{id}/documents requests.
func (h *Handler) HandleDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	regID, err := id.ParseRegistrationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	docs, err := h.registrations.DocumentsFor(ctx, regID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromDocuments(docs))
}

// HandleDecision handles POST /admin/registrations/{id}/decision requests.
func (h *Handler) HandleDecision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	regID, err := id.ParseRegistrationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid registration id"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[DecisionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	reg, err := h.registrations.Decide(ctx, regID, req.ParsedStatus(), req.Notes)
	if err != nil {
		h.logger.ErrorContext(ctx, "decision failed",
			"request_id", requestID,
			"registration_id", regID.String(),
			"status", req.Status,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "decision recorded",
		"request_id", requestID,
		"registration_id", regID.String(),
		"status", req.Status,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromRegistration(reg))
}
