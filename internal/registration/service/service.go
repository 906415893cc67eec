// Package service orchestrates registration lifecycle: creation from a
// completed wizard draft, admin review decisions, and the status
// notifications decisions trigger.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"seventytwo/internal/platform/metrics"
	"seventytwo/internal/registration/models"
	id "seventytwo/pkg/domain"
	dErrors "seventytwo/pkg/domain-errors"
	"seventytwo/pkg/platform/audit"
	"seventytwo/pkg/platform/sentinel"
	"seventytwo/pkg/requestcontext"
)

// RegistrationStore is the persistence surface the service needs.
type RegistrationStore interface {
	Create(ctx context.Context, reg *models.Registration) error
	FindByID(ctx context.Context, regID id.RegistrationID) (*models.Registration, error)
	FindByReference(ctx context.Context, ref id.ReferenceNumber) (*models.Registration, error)
	UpdateStatus(ctx context.Context, regID id.RegistrationID, status models.ReviewStatus, notes string, reviewedAt time.Time) error
	List(ctx context.Context) ([]*models.Registration, error)
}

// DocumentStore lists stored documents for the admin surface.
type DocumentStore interface {
	ListByRegistration(ctx context.Context, regID id.RegistrationID) ([]models.Document, error)
}

// Notifier sends status update emails. Sending is best-effort: the notifier
// reports success as a boolean and never fails the decision.
type Notifier interface {
	SendStatusUpdate(ctx context.Context, reg *models.Registration, status models.ReviewStatus, notes string) bool
}

// Service is the registration application service.
type Service struct {
	registrations RegistrationStore
	documents     DocumentStore
	notifier      Notifier
	logger        *slog.Logger
	metrics       *metrics.Metrics
	audit         *audit.Emitter
}

func New(registrations RegistrationStore, documents DocumentStore, notifier Notifier, logger *slog.Logger, m *metrics.Metrics, emitter *audit.Emitter) *Service {
	return &Service{
		registrations: registrations,
		documents:     documents,
		notifier:      notifier,
		logger:        logger,
		metrics:       m,
		audit:         emitter,
	}
}

// NewRegistrationParams carries the aggregated draft fields a submission
// needs to become a registration.
type NewRegistrationParams struct {
	FullName         string
	Email            string
	MobileNumber     string
	BusinessName     string
	BusinessCategory string
	BusinessLocation string
	BusinessType     string
}

// Create persists a new registration with a fresh reference number.
func (s *Service) Create(ctx context.Context, params NewRegistrationParams) (*models.Registration, error) {
	now := requestcontext.Now(ctx)
	reg, err := models.NewRegistration(
		id.RegistrationID(uuid.New()),
		id.NewReferenceNumber(now),
		params.FullName, params.Email, params.BusinessName,
		now,
	)
	if err != nil {
		return nil, err
	}
	reg.MobileNumber = params.MobileNumber
	reg.BusinessCategory = params.BusinessCategory
	reg.BusinessLocation = params.BusinessLocation
	reg.BusinessType = params.BusinessType

	if err := s.registrations.Create(ctx, reg); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			// Reference collision is lottery-odds; one retry with a fresh
			// reference covers it.
			reg.ReferenceNumber = id.NewReferenceNumber(now)
			err = s.registrations.Create(ctx, reg)
		}
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create registration")
		}
	}

	s.metrics.RegistrationsSubmitted.Inc()
	s.audit.Emit(audit.Event{
		Action:          audit.ActionRegistrationSubmitted,
		Timestamp:       now,
		ReferenceNumber: reg.ReferenceNumber.String(),
		RequestID:       requestcontext.RequestID(ctx),
		ClientIP:        requestcontext.ClientIP(ctx),
		Device:          requestcontext.Device(ctx),
	})
	s.logger.Info("registration created",
		"reference", reg.ReferenceNumber.String(),
		"business", reg.BusinessName)
	return reg, nil
}

// Get returns a registration by ID.
func (s *Service) Get(ctx context.Context, regID id.RegistrationID) (*models.Registration, error) {
	reg, err := s.registrations.FindByID(ctx, regID)
	if err != nil {
		return nil, wrapLookupErr(err)
	}
	return reg, nil
}

// GetByReference returns a registration by its reference number.
func (s *Service) GetByReference(ctx context.Context, ref id.ReferenceNumber) (*models.Registration, error) {
	reg, err := s.registrations.FindByReference(ctx, ref)
	if err != nil {
		return nil, wrapLookupErr(err)
	}
	return reg, nil
}

// List returns every registration for the admin dashboard, newest first.
func (s *Service) List(ctx context.Context) ([]*models.Registration, error) {
	regs, err := s.registrations.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list registrations")
	}
	return regs, nil
}

// DocumentsFor returns the stored document set for a registration.
func (s *Service) DocumentsFor(ctx context.Context, regID id.RegistrationID) ([]models.Document, error) {
	if _, err := s.registrations.FindByID(ctx, regID); err != nil {
		return nil, wrapLookupErr(err)
	}
	docs, err := s.documents.ListByRegistration(ctx, regID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list documents")
	}
	return docs, nil
}

// Decide records an admin decision, then sends the status email best-effort.
// Email failure never rolls the decision back; the applicant can be
// re-notified but the review outcome stands.
func (s *Service) Decide(ctx context.Context, regID id.RegistrationID, target models.ReviewStatus, notes string) (*models.Registration, error) {
	reg, err := s.registrations.FindByID(ctx, regID)
	if err != nil {
		return nil, wrapLookupErr(err)
	}
	if err := reg.CanDecide(target); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	reg.ApplyDecision(target, notes, now)
	if err := s.registrations.UpdateStatus(ctx, reg.ID, target, notes, now); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record decision")
	}

	s.audit.Emit(audit.Event{
		Action:          audit.ActionDecisionRecorded,
		Timestamp:       now,
		ReferenceNumber: reg.ReferenceNumber.String(),
		Actor:           requestcontext.Actor(ctx),
		Detail:          target.String(),
		RequestID:       requestcontext.RequestID(ctx),
	})

	sent := s.notifier.SendStatusUpdate(ctx, reg, target, notes)
	if !sent {
		s.logger.Warn("status email not delivered",
			"reference", reg.ReferenceNumber.String(),
			"status", target.String())
	}
	return reg, nil
}

func wrapLookupErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "registration not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "registration lookup failed")
}
