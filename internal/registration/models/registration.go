package models

import (
	"time"

	id "seventytwo/pkg/domain"
	dErrors "seventytwo/pkg/domain-errors"
)

// Registration is the aggregate root for a business registration application.
//
// Invariants:
//   - ReferenceNumber is unique and immutable after construction
//   - Status transitions follow ReviewStatus.CanTransitionTo
//   - SubmittedAt is immutable; ReviewedAt is stamped on every status change
type Registration struct {
	ID               id.RegistrationID  `json:"id"`
	ReferenceNumber  id.ReferenceNumber `json:"reference_number"`
	FullName         string             `json:"full_name"`
	Email            string             `json:"email"`
	MobileNumber     string             `json:"mobile_number"`
	BusinessName     string             `json:"business_name"`
	BusinessCategory string             `json:"business_category"`
	BusinessLocation string             `json:"business_location"`
	BusinessType     string             `json:"business_type"`
	Status           ReviewStatus       `json:"status"`
	AdminNotes       string             `json:"admin_notes"`
	SubmittedAt      time.Time          `json:"submitted_at"`
	ReviewedAt       *time.Time         `json:"reviewed_at,omitempty"`
}

// NewRegistration constructs a submitted registration, enforcing the fields
// every downstream consumer (emails, admin list, document matching) relies on.
func NewRegistration(regID id.RegistrationID, ref id.ReferenceNumber, fullName, email, businessName string, now time.Time) (*Registration, error) {
	if fullName == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "full name is required")
	}
	if email == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if businessName == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "business name is required")
	}
	return &Registration{
		ID:              regID,
		ReferenceNumber: ref,
		FullName:        fullName,
		Email:           email,
		BusinessName:    businessName,
		Status:          StatusSubmitted,
		SubmittedAt:     now,
	}, nil
}

// CanDecide checks whether an admin decision to target is allowed.
func (r *Registration) CanDecide(target ReviewStatus) error {
	if !r.Status.CanTransitionTo(target) {
		return dErrors.Newf(dErrors.CodeConflict, "cannot move registration from %s to %s", r.Status, target)
	}
	return nil
}

// ApplyDecision transitions the registration and stamps the review time.
// Call CanDecide first.
func (r *Registration) ApplyDecision(target ReviewStatus, notes string, now time.Time) {
	r.Status = target
	r.AdminNotes = notes
	r.ReviewedAt = &now
}
