// Package service implements document reconciliation: the wipe-and-replace
// update of a registration's supporting-document set, keyed by reference
// number.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"seventytwo/internal/document/blob"
	"seventytwo/internal/platform/metrics"
	"seventytwo/internal/receipt"
	"seventytwo/internal/registration/models"
	id "seventytwo/pkg/domain"
	dErrors "seventytwo/pkg/domain-errors"
	"seventytwo/pkg/email"
	"seventytwo/pkg/platform/audit"
	"seventytwo/pkg/platform/sentinel"
	"seventytwo/pkg/requestcontext"
)

// MaxFileSize is the per-file upload limit, enforced server-side.
const MaxFileSize = 5 << 20

// SubmissionMode distinguishes the two entry paths into document submission.
// The paths must never cross-contaminate: wizard submissions never touch
// receipt slots, standalone submissions never touch the wizard draft.
type SubmissionMode string

const (
	// ModeWizard is the documents step inside the registration wizard.
	ModeWizard SubmissionMode = "wizard"
	// ModeStandalone is the direct upload link sent in status emails.
	ModeStandalone SubmissionMode = "standalone"
)

// ParseSubmissionMode validates a mode string; empty defaults to wizard.
func ParseSubmissionMode(s string) (SubmissionMode, error) {
	switch SubmissionMode(s) {
	case ModeWizard, "":
		return ModeWizard, nil
	case ModeStandalone:
		return ModeStandalone, nil
	default:
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown submission mode: %s", s)
	}
}

// FileUpload is one file selected for a document slot.
type FileUpload struct {
	Type        models.DocumentType
	FileName    string
	ContentType string
	Data        []byte
}

// Result reports what a submission achieved.
type Result struct {
	Registration *models.Registration
	Documents    []models.Document
	// Skipped counts files that failed validation or upload and were left
	// out of the final set.
	Skipped int
	// LegacyLink marks a standalone submission whose link carried no email.
	LegacyLink bool
}

// RegistrationStore is the lookup/update surface reconciliation needs.
type RegistrationStore interface {
	FindByReference(ctx context.Context, ref id.ReferenceNumber) (*models.Registration, error)
	UpdateStatus(ctx context.Context, regID id.RegistrationID, status models.ReviewStatus, notes string, reviewedAt time.Time) error
}

// DocumentStore is the wipe/insert surface reconciliation needs.
type DocumentStore interface {
	Insert(ctx context.Context, doc *models.Document) error
	DeleteByRegistration(ctx context.Context, regID id.RegistrationID) error
	ListByRegistration(ctx context.Context, regID id.RegistrationID) ([]models.Document, error)
}

// Service reconciles a registration's document set.
//
// Concurrent submissions for the same reference number are not serialized:
// the delete-then-insert window is scoped to one registration and callers
// are expected not to overlap submissions for the same reference. This is a
// documented limitation, not a solved race.
type Service struct {
	registrations RegistrationStore
	documents     DocumentStore
	blobs         blob.Store
	receipts      receipt.Store
	logger        *slog.Logger
	metrics       *metrics.Metrics
	audit         *audit.Emitter
}

func New(registrations RegistrationStore, documents DocumentStore, blobs blob.Store, receipts receipt.Store, logger *slog.Logger, m *metrics.Metrics, emitter *audit.Emitter) *Service {
	return &Service{
		registrations: registrations,
		documents:     documents,
		blobs:         blobs,
		receipts:      receipts,
		logger:        logger,
		metrics:       m,
		audit:         emitter,
	}
}

// SubmitDocuments replaces the registration's document set with the given
// files and moves the registration to under_review.
//
// The operation is idempotent in its effect: repeating a call with the same
// inputs converges on the same final document set, because every call wipes
// the previous set before inserting. Per-file failures are logged and
// skipped; only a submission where every file fails reports an error, and
// retrying after that is safe because the wipe is idempotent too.
func (s *Service) SubmitDocuments(ctx context.Context, refInput string, emailParam string, files []FileUpload, mode SubmissionMode) (*Result, error) {
	ref, err := id.ParseReferenceNumber(refInput)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "no documents were provided")
	}
	// A mangled email parameter degrades to the legacy-link path rather than
	// polluting the receipt.
	if emailParam != "" && !email.IsPlausible(emailParam) {
		s.logger.Warn("ignoring implausible email parameter", "reference", ref.String())
		emailParam = ""
	}

	reg, err := s.registrations.FindByReference(ctx, ref)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.DocumentSubmissions.WithLabelValues(string(mode), "not_found").Inc()
			return nil, dErrors.Newf(dErrors.CodeNotFound, "no registration found for reference %s", ref)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "registration lookup failed")
	}

	// Wipe before insert so a resubmission can never accumulate duplicates
	// or leave stale files from a previous attempt.
	if err := s.documents.DeleteByRegistration(ctx, reg.ID); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear previous documents")
	}

	now := requestcontext.Now(ctx)
	var (
		mu      sync.Mutex
		stored  []models.Document
		skipped int
	)

	// Uploads are independent: one bad file must not cancel its siblings,
	// so goroutines swallow their own failures and the group never errors.
	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			doc, err := s.storeFile(gctx, reg, file, i, now)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				skipped++
				s.metrics.DocumentUploadFailures.Inc()
				s.logger.Error("document upload skipped",
					"reference", ref.String(),
					"type", string(file.Type),
					"error", err)
				return nil
			}
			stored = append(stored, *doc)
			s.metrics.DocumentsUploaded.Inc()
			return nil
		})
	}
	_ = g.Wait()

	if len(stored) == 0 {
		s.metrics.DocumentSubmissions.WithLabelValues(string(mode), "failed").Inc()
		return nil, dErrors.New(dErrors.CodeUnprocessable, "none of the documents could be stored; please try again")
	}

	// Preserve existing admin notes; the upload only changes review state.
	if err := s.registrations.UpdateStatus(ctx, reg.ID, models.StatusUnderReview, reg.AdminNotes, now); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update registration status")
	}
	reg.Status = models.StatusUnderReview
	reg.ReviewedAt = &now

	result := &Result{
		Registration: reg,
		Documents:    stored,
		Skipped:      skipped,
		LegacyLink:   mode == ModeStandalone && emailParam == "",
	}

	if mode == ModeStandalone {
		s.storeReceipt(ctx, ref, emailParam, stored, result.LegacyLink, now)
	}

	s.metrics.DocumentSubmissions.WithLabelValues(string(mode), "ok").Inc()
	s.audit.Emit(audit.Event{
		Action:          audit.ActionDocumentsSubmitted,
		Timestamp:       now,
		ReferenceNumber: ref.String(),
		Detail:          fmt.Sprintf("%d stored, %d skipped, mode=%s", len(stored), skipped, mode),
		RequestID:       requestcontext.RequestID(ctx),
		ClientIP:        requestcontext.ClientIP(ctx),
		Device:          requestcontext.Device(ctx),
	})
	s.logger.Info("documents reconciled",
		"reference", ref.String(),
		"stored", len(stored),
		"skipped", skipped,
		"mode", string(mode))
	return result, nil
}

// ListForReference returns the current document set, for the confirmation
// and admin views.
func (s *Service) ListForReference(ctx context.Context, refInput string) ([]models.Document, error) {
	ref, err := id.ParseReferenceNumber(refInput)
	if err != nil {
		return nil, err
	}
	reg, err := s.registrations.FindByReference(ctx, ref)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "no registration found for reference %s", ref)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "registration lookup failed")
	}
	docs, err := s.documents.ListByRegistration(ctx, reg.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list documents")
	}
	return docs, nil
}

// Receipt returns the stored submission receipt for a reference, or nil.
func (s *Service) Receipt(ctx context.Context, refInput string) (*receipt.Receipt, error) {
	ref, err := id.ParseReferenceNumber(refInput)
	if err != nil {
		return nil, err
	}
	r, err := s.receipts.Get(ctx, ref.String())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load receipt")
	}
	return r, nil
}

// storeFile validates, uploads, and records a single document.
func (s *Service) storeFile(ctx context.Context, reg *models.Registration, file FileUpload, ordinal int, now time.Time) (*models.Document, error) {
	if err := validateFile(file); err != nil {
		return nil, err
	}

	key := storageKey(reg.ReferenceNumber, file, now, ordinal)
	url, err := s.blobs.Put(ctx, key, file.ContentType, file.Data)
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}

	doc := &models.Document{
		ID:             id.DocumentID(uuid.New()),
		RegistrationID: reg.ID,
		Type:           file.Type,
		FileName:       file.FileName,
		FileURL:        url,
		UploadedAt:     now,
	}
	if err := s.documents.Insert(ctx, doc); err != nil {
		// Roll the orphaned blob back so storage does not accumulate
		// unreferenced files.
		if rmErr := s.blobs.Remove(ctx, key); rmErr != nil {
			s.logger.Warn("failed to remove orphaned blob", "key", key, "error", rmErr)
		}
		return nil, fmt.Errorf("record document: %w", err)
	}
	return doc, nil
}

func (s *Service) storeReceipt(ctx context.Context, ref id.ReferenceNumber, email string, stored []models.Document, legacy bool, now time.Time) {
	fileSummary := make(map[string]string, len(stored))
	for _, doc := range stored {
		fileSummary[string(doc.Type)] = doc.FileName
	}
	err := s.receipts.Put(ctx, receipt.Receipt{
		ReferenceNumber: ref.String(),
		Email:           email,
		LegacyLink:      legacy,
		Files:           fileSummary,
		SubmittedAt:     now,
		Device:          requestcontext.Device(ctx),
	})
	if err != nil {
		// The documents are stored; a missing receipt only degrades the
		// confirmation view.
		s.logger.Warn("failed to store submission receipt", "reference", ref.String(), "error", err)
	}
}

var allowedExtensions = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

func validateFile(file FileUpload) error {
	if len(file.Data) == 0 {
		return errors.New("file is empty")
	}
	if len(file.Data) > MaxFileSize {
		return fmt.Errorf("file exceeds %d byte limit", MaxFileSize)
	}
	ext := strings.ToLower(path.Ext(file.FileName))
	if _, ok := allowedExtensions[ext]; !ok {
		return fmt.Errorf("unsupported file type %q (PDF, JPG and PNG are accepted)", ext)
	}
	return nil
}

// storageKey builds a collision-resistant object key from the reference,
// document type, and submission time. The ordinal disambiguates files stored
// within the same nanosecond tick on coarse clocks.
func storageKey(ref id.ReferenceNumber, file FileUpload, now time.Time, ordinal int) string {
	ext := strings.ToLower(path.Ext(file.FileName))
	return fmt.Sprintf("%s_%s_%d_%d%s", ref, file.Type, now.UnixNano(), ordinal, ext)
}
