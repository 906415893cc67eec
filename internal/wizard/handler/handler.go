// Package handler exposes the wizard draft endpoints used by the portal
// front end: load, step save, skip, and final submission.
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	regmodels "seventytwo/internal/registration/models"
	"seventytwo/internal/wizard/models"
	"seventytwo/internal/wizard/service"
	dErrors "seventytwo/pkg/domain-errors"
	"seventytwo/pkg/platform/httputil"
	"seventytwo/pkg/requestcontext"
)

const maxStepBody = 256 << 10

// Service defines the wizard operations the handler needs.
type Service interface {
	Load(ctx context.Context, key string) (*models.Draft, error)
	Advance(ctx context.Context, key string, payload models.StepPayload) (service.State, error)
	SkipDocuments(ctx context.Context, key string) (service.State, error)
	Submit(ctx context.Context, key string) (*regmodels.Registration, error)
}

// Handler wires wizard endpoints to the wizard service.
type Handler struct {
	wizard Service
	logger *slog.Logger
}

// New constructs a wizard handler with its dependencies.
func New(wizard Service, logger *slog.Logger) *Handler {
	return &Handler{wizard: wizard, logger: logger}
}

// Register mounts wizard endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/drafts/{key}", h.HandleLoad)
	r.Put("/api/drafts/{key}/steps/{step}", h.HandleSaveStep)
	r.Post("/api/drafts/{key}/documents/skip", h.HandleSkipDocuments)
	r.Post("/api/drafts/{key}/submit", h.HandleSubmit)
}

// HandleLoad handles GET /api/drafts/{key} requests.
func (h *Handler) HandleLoad(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	key, err := draftKey(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	draft, err := h.wizard.Load(ctx, key)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load draft",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, draft)
}

// HandleSaveStep handles PUT /api/drafts/{key}/steps/{step} requests. The
// body is the raw step payload; its shape is selected by the step URL
// parameter.
func (h *Handler) HandleSaveStep(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	key, err := draftKey(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	step, err := models.ParseStepID(chi.URLParam(r, "step"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxStepBody))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "failed to read request body"))
		return
	}
	payload, err := models.DecodeStepPayload(step, raw)
	if err != nil {
		h.logger.WarnContext(ctx, "malformed step payload",
			"request_id", requestID,
			"step", string(step),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	next, err := h.wizard.Advance(ctx, key, payload)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "draft step saved",
		"request_id", requestID,
		"step", string(step),
	)
	httputil.WriteJSON(w, http.StatusOK, StepResponse{NextState: string(next)})
}

// HandleSkipDocuments handles POST /api/drafts/{key}/documents/skip requests.
func (h *Handler) HandleSkipDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	key, err := draftKey(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	next, err := h.wizard.SkipDocuments(ctx, key)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, StepResponse{NextState: string(next)})
}

// HandleSubmit handles POST /api/drafts/{key}/submit requests.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	key, err := draftKey(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	reg, err := h.wizard.Submit(ctx, key)
	if err != nil {
		h.logger.ErrorContext(ctx, "draft submission failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "draft submitted",
		"request_id", requestID,
		"reference", reg.ReferenceNumber.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, SubmitResponse{
		ReferenceNumber: reg.ReferenceNumber.String(),
		Status:          reg.Status.String(),
		SubmittedAt:     reg.SubmittedAt,
	})
}

// StepResponse reports where the wizard goes after a successful save.
type StepResponse struct {
	NextState string `json:"next_state"`
}

// SubmitResponse is the HTTP response for a successful submission.
type SubmitResponse struct {
	ReferenceNumber string    `json:"reference_number"`
	Status          string    `json:"status"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

// draftKey validates the draft session key from the URL. Keys are opaque
// session identifiers minted by the front end.
func draftKey(r *http.Request) (string, error) {
	key := strings.TrimSpace(chi.URLParam(r, "key"))
	if key == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "draft key is required")
	}
	if len(key) > 128 {
		return "", dErrors.New(dErrors.CodeInvalidInput, "draft key must be at most 128 characters")
	}
	return key, nil
}
