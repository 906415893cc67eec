package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the portal.
type Metrics struct {
	RegistrationsSubmitted prometheus.Counter
	DraftStepsSaved        *prometheus.CounterVec
	DocumentSubmissions    *prometheus.CounterVec
	DocumentsUploaded      prometheus.Counter
	DocumentUploadFailures prometheus.Counter
	StatusEmails           *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers against a specific registerer so tests can isolate.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RegistrationsSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "portal_registrations_submitted_total",
			Help: "Total number of business registrations submitted",
		}),
		DraftStepsSaved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_draft_steps_saved_total",
			Help: "Total number of wizard step saves, by step",
		}, []string{"step"}),
		DocumentSubmissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_document_submissions_total",
			Help: "Total number of document submissions, by mode and outcome",
		}, []string{"mode", "outcome"}),
		DocumentsUploaded: factory.NewCounter(prometheus.CounterOpts{
			Name: "portal_documents_uploaded_total",
			Help: "Total number of document files stored",
		}),
		DocumentUploadFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "portal_document_upload_failures_total",
			Help: "Total number of per-file upload failures (skipped, not fatal)",
		}),
		StatusEmails: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_status_emails_total",
			Help: "Total number of status update emails, by status and outcome",
		}, []string{"status", "outcome"}),
	}
}
