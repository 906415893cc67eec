package notification

import (
	"context"
	"log/slog"

	"seventytwo/internal/platform/metrics"
	"seventytwo/internal/registration/models"
	"seventytwo/pkg/email"
	"seventytwo/pkg/platform/audit"
	"seventytwo/pkg/requestcontext"
)

// Service composes and sends status update emails.
type Service struct {
	sender  Sender
	baseURL string
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   *audit.Emitter
}

func New(sender Sender, baseURL string, logger *slog.Logger, m *metrics.Metrics, emitter *audit.Emitter) *Service {
	return &Service{
		sender:  sender,
		baseURL: baseURL,
		logger:  logger,
		metrics: m,
		audit:   emitter,
	}
}

// SendStatusUpdate composes and delivers the email for a status change. It
// reports success as a boolean: failures are logged and audited but never
// propagate, so a dead email provider cannot block an admin decision.
func (s *Service) SendStatusUpdate(ctx context.Context, reg *models.Registration, status models.ReviewStatus, notes string) bool {
	msg, err := Compose(reg, status, notes, s.baseURL)
	if err != nil {
		s.recordFailure(ctx, reg, status, err)
		return false
	}

	toName := reg.FullName
	if toName == "" {
		toName = email.DeriveDisplayName(reg.Email)
	}
	err = s.sender.Send(ctx, TemplateParams{
		ToEmail:         reg.Email,
		ToName:          toName,
		Subject:         msg.Subject,
		HTMLContent:     msg.HTMLBody,
		BusinessName:    reg.BusinessName,
		ReferenceNumber: reg.ReferenceNumber.String(),
		Status:          status.String(),
		AdminNotes:      notes,
	})
	if err != nil {
		s.recordFailure(ctx, reg, status, err)
		return false
	}

	s.metrics.StatusEmails.WithLabelValues(status.String(), "sent").Inc()
	s.audit.Emit(audit.Event{
		Action:          audit.ActionStatusEmailSent,
		Timestamp:       requestcontext.Now(ctx),
		ReferenceNumber: reg.ReferenceNumber.String(),
		Detail:          status.String(),
		RequestID:       requestcontext.RequestID(ctx),
	})
	s.logger.Info("status email sent",
		"reference", reg.ReferenceNumber.String(),
		"status", status.String())
	return true
}

func (s *Service) recordFailure(ctx context.Context, reg *models.Registration, status models.ReviewStatus, err error) {
	s.metrics.StatusEmails.WithLabelValues(status.String(), "failed").Inc()
	s.audit.Emit(audit.Event{
		Action:          audit.ActionStatusEmailFailed,
		Timestamp:       requestcontext.Now(ctx),
		ReferenceNumber: reg.ReferenceNumber.String(),
		Detail:          err.Error(),
		RequestID:       requestcontext.RequestID(ctx),
	})
	s.logger.Error("status email failed",
		"reference", reg.ReferenceNumber.String(),
		"status", status.String(),
		"error", err)
}
