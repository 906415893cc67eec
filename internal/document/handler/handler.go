// Package handler exposes document submission over multipart HTTP: the
// wizard's documents step and the standalone upload page share one endpoint,
// distinguished by a mode field.
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"seventytwo/internal/document/service"
	"seventytwo/internal/receipt"
	"seventytwo/internal/registration/models"
	dErrors "seventytwo/pkg/domain-errors"
	"seventytwo/pkg/platform/httputil"
	"seventytwo/pkg/requestcontext"
)

// The multipart form cap leaves headroom over the per-file limit for all
// five document slots.
const maxFormMemory = 32 << 20

// Service defines the document operations the handler needs.
type Service interface {
	SubmitDocuments(ctx context.Context, ref, email string, files []service.FileUpload, mode service.SubmissionMode) (*service.Result, error)
	ListForReference(ctx context.Context, ref string) ([]models.Document, error)
	Receipt(ctx context.Context, ref string) (*receipt.Receipt, error)
}

// Handler wires document endpoints to the reconciliation service.
type Handler struct {
	documents Service
	logger    *slog.Logger
}

// New constructs a document handler with its dependencies.
func New(documents Service, logger *slog.Logger) *Handler {
	return &Handler{documents: documents, logger: logger}
}

// Register mounts document endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/documents", h.HandleSubmit)
	r.Get("/api/documents", h.HandleList)
	r.Get("/api/documents/receipt/{ref}", h.HandleReceipt)
}

// HandleSubmit handles POST /api/documents requests. The multipart form
// carries `ref`, optional `email`, optional `mode`, and one file part per
// document slot, named by document type.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "malformed multipart form"))
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	ref := strings.TrimSpace(r.FormValue("ref"))
	if ref == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "ref is required"))
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))
	mode, err := service.ParseSubmissionMode(strings.TrimSpace(r.FormValue("mode")))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	files, err := collectFiles(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.documents.SubmitDocuments(ctx, ref, email, files, mode)
	if err != nil {
		h.logger.ErrorContext(ctx, "document submission failed",
			"request_id", requestID,
			"reference", ref,
			"mode", string(mode),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "documents submitted",
		"request_id", requestID,
		"reference", ref,
		"stored", len(result.Documents),
		"skipped", result.Skipped,
		"mode", string(mode),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleList handles GET /api/documents?ref= requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ref := strings.TrimSpace(r.URL.Query().Get("ref"))
	if ref == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "ref is required"))
		return
	}

	docs, err := h.documents.ListForReference(ctx, ref)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromDocuments(docs))
}

// HandleReceipt handles GET /api/documents/receipt/{ref} requests, backing
// the standalone confirmation view.
func (h *Handler) HandleReceipt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ref := strings.TrimSpace(chi.URLParam(r, "ref"))
	if ref == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "ref is required"))
		return
	}

	rec, err := h.documents.Receipt(ctx, ref)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if rec == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no submission receipt for this reference"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec)
}

// collectFiles reads every file part whose field name is a known document
// type. Unknown field names are rejected so a front-end typo surfaces
// instead of silently dropping a document.
func collectFiles(r *http.Request) ([]service.FileUpload, error) {
	var files []service.FileUpload
	for field, headers := range r.MultipartForm.File {
		docType, err := models.ParseDocumentType(field)
		if err != nil {
			return nil, err
		}
		for _, header := range headers {
			part, err := header.Open()
			if err != nil {
				return nil, dErrors.Newf(dErrors.CodeBadRequest, "failed to read file for %s", field)
			}
			data, err := io.ReadAll(io.LimitReader(part, service.MaxFileSize+1))
			_ = part.Close()
			if err != nil {
				return nil, dErrors.Newf(dErrors.CodeBadRequest, "failed to read file for %s", field)
			}
			files = append(files, service.FileUpload{
				Type:        docType,
				FileName:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Data:        data,
			})
		}
	}
	return files, nil
}
