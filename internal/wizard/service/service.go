// Package service drives the registration wizard: step merging into the
// draft store, required-field gating, and the final conversion of a draft
// into a registration.
package service

import (
	"context"
	"log/slog"
	"strings"

	"seventytwo/internal/platform/metrics"
	regmodels "seventytwo/internal/registration/models"
	regservice "seventytwo/internal/registration/service"
	"seventytwo/internal/wizard/models"
	"seventytwo/internal/wizard/store"
	dErrors "seventytwo/pkg/domain-errors"
)

// Registrar converts a completed draft into a persisted registration.
type Registrar interface {
	Create(ctx context.Context, params regservice.NewRegistrationParams) (*regmodels.Registration, error)
}

// Service owns wizard navigation and draft persistence. The draft store is
// injected so merge behavior is testable with any backend.
type Service struct {
	drafts    store.DraftStore
	registrar Registrar
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func New(drafts store.DraftStore, registrar Registrar, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{drafts: drafts, registrar: registrar, logger: logger, metrics: m}
}

// Load returns the current draft for a session, blank when nothing usable is
// stored.
func (s *Service) Load(ctx context.Context, key string) (*models.Draft, error) {
	draft, err := s.drafts.Load(ctx, key)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load draft")
	}
	return draft, nil
}

// Advance validates the step's gate, merges the payload into the draft, and
// returns the next wizard state. All gate violations are reported together.
func (s *Service) Advance(ctx context.Context, key string, payload models.StepPayload) (State, error) {
	if err := gateError(gate(payload)); err != nil {
		return StateFor(payload.Step()), err
	}
	if err := s.drafts.SaveStep(ctx, key, payload); err != nil {
		return StateFor(payload.Step()), dErrors.Wrap(err, dErrors.CodeInternal, "failed to save draft step")
	}
	s.metrics.DraftStepsSaved.WithLabelValues(string(payload.Step())).Inc()
	return Next(StateFor(payload.Step())), nil
}

// SkipDocuments records the documents step as skipped and advances. Only
// legal in wizard mode; the standalone flow has no skip.
func (s *Service) SkipDocuments(ctx context.Context, key string) (State, error) {
	payload := &models.DocumentChecklist{Skipped: true}
	if err := s.drafts.SaveStep(ctx, key, payload); err != nil {
		return StateSupportingDocuments, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save draft step")
	}
	return Next(StateSupportingDocuments), nil
}

// Submit runs the final disclaimer gate, aggregates the draft into a
// registration, and clears the draft slot so a stale draft cannot be
// resubmitted.
func (s *Service) Submit(ctx context.Context, key string) (*regmodels.Registration, error) {
	draft, err := s.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	var violations []string
	if draft.Business == nil {
		violations = append(violations, "business information step is incomplete")
	}
	if draft.Disclaimer == nil {
		violations = append(violations, "disclaimer step is incomplete")
	} else {
		violations = append(violations, gate(draft.Disclaimer)...)
	}
	if err := gateError(violations); err != nil {
		return nil, err
	}

	reg, err := s.registrar.Create(ctx, aggregate(draft))
	if err != nil {
		return nil, err
	}

	if err := s.drafts.Clear(ctx, key); err != nil {
		// The registration exists; a lingering draft is an annoyance, not a
		// failure.
		s.logger.Warn("failed to clear draft after submission",
			"reference", reg.ReferenceNumber.String(), "error", err)
	}
	return reg, nil
}

// aggregate flattens the step union into the registration fields. Business
// info wins over account info where both carry a value, matching what the
// review dashboard displays.
func aggregate(draft *models.Draft) regservice.NewRegistrationParams {
	params := regservice.NewRegistrationParams{}
	if acc := draft.Account; acc != nil {
		params.FullName = acc.FullName
		params.Email = acc.EmailAddress
		params.MobileNumber = acc.MobileNumber
	}
	if biz := draft.Business; biz != nil {
		params.FullName = strings.TrimSpace(biz.FirstName + " " + biz.LastName)
		params.Email = biz.EmailAddress
		params.MobileNumber = biz.CellphoneNumber
		params.BusinessName = biz.BusinessName
		params.BusinessCategory = biz.BusinessIndustry
		params.BusinessLocation = biz.CityTownship
	}
	if app := draft.Application; app != nil && len(app.SelectedTypes) > 0 {
		params.BusinessType = app.SelectedTypes[0]
	}
	return params
}
