package models

import (
	dErrors "seventytwo/pkg/domain-errors"
)

// ReviewStatus is the admin-facing lifecycle of a registration.
type ReviewStatus string

const (
	StatusSubmitted         ReviewStatus = "submitted"
	StatusUnderReview       ReviewStatus = "under_review"
	StatusApproved          ReviewStatus = "approved"
	StatusRejected          ReviewStatus = "rejected"
	StatusRequiresDocuments ReviewStatus = "requires_documents"
)

// ParseReviewStatus validates a status string from an untrusted source.
func ParseReviewStatus(s string) (ReviewStatus, error) {
	switch ReviewStatus(s) {
	case StatusSubmitted, StatusUnderReview, StatusApproved, StatusRejected, StatusRequiresDocuments:
		return ReviewStatus(s), nil
	default:
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unsupported status: %s", s)
	}
}

func (s ReviewStatus) String() string { return string(s) }

// IsTerminal reports whether the status permits no further transitions.
// Approved and rejected registrations are settled; a fresh application is the
// only way forward from either.
func (s ReviewStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransitionTo reports whether an admin decision may move the
// registration from s to target. Nothing moves out of a terminal state, and
// nothing moves back to submitted.
func (s ReviewStatus) CanTransitionTo(target ReviewStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if target == StatusSubmitted {
		return false
	}
	if target == s {
		// Re-submitting documents legitimately lands on under_review again;
		// every other same-state decision is a no-op mistake.
		return target == StatusUnderReview
	}
	return true
}
