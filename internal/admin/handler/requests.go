package handler

import (
	"strings"

	"seventytwo/internal/registration/models"
	dErrors "seventytwo/pkg/domain-errors"
)

// LoginRequest is the HTTP request body for POST /admin/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate validates the request.
func (r *LoginRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" {
		return dErrors.New(dErrors.CodeValidation, "username is required")
	}
	if r.Password == "" {
		return dErrors.New(dErrors.CodeValidation, "password is required")
	}
	return nil
}

// DecisionRequest is the HTTP request body for
// POST /admin/registrations/{id}/decision.
type DecisionRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`

	// Parsed values (populated by Validate)
	parsedStatus models.ReviewStatus
}

// Validate validates and parses the request.
func (r *DecisionRequest) Validate() error {
	r.Status = strings.TrimSpace(r.Status)
	if r.Status == "" {
		return dErrors.New(dErrors.CodeValidation, "status is required")
	}
	status, err := models.ParseReviewStatus(r.Status)
	if err != nil {
		return err
	}
	r.parsedStatus = status

	r.Notes = strings.TrimSpace(r.Notes)
	if len(r.Notes) > 2000 {
		return dErrors.New(dErrors.CodeValidation, "notes must be at most 2000 characters")
	}
	if status == models.StatusRequiresDocuments && r.Notes == "" {
		return dErrors.New(dErrors.CodeValidation, "notes are required when requesting documents")
	}
	return nil
}

// ParsedStatus returns the validated review status.
func (r *DecisionRequest) ParsedStatus() models.ReviewStatus { return r.parsedStatus }
