package handler

import (
	"time"

	"seventytwo/internal/registration/models"
)

// LoginResponse is the HTTP response for POST /admin/login.
type LoginResponse struct {
	Token string `json:"token"`
}

// RegistrationResponse is one registration row on the admin dashboard.
type RegistrationResponse struct {
	ID               string     `json:"id"`
	ReferenceNumber  string     `json:"reference_number"`
	FullName         string     `json:"full_name"`
	Email            string     `json:"email"`
	MobileNumber     string     `json:"mobile_number"`
	BusinessName     string     `json:"business_name"`
	BusinessCategory string     `json:"business_category"`
	BusinessLocation string     `json:"business_location"`
	BusinessType     string     `json:"business_type"`
	Status           string     `json:"status"`
	AdminNotes       string     `json:"admin_notes"`
	SubmittedAt      time.Time  `json:"submitted_at"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
}

// FromRegistration converts a domain registration to an HTTP response.
func FromRegistration(reg *models.Registration) *RegistrationResponse {
	return &RegistrationResponse{
		ID:               reg.ID.String(),
		ReferenceNumber:  reg.ReferenceNumber.String(),
		FullName:         reg.FullName,
		Email:            reg.Email,
		MobileNumber:     reg.MobileNumber,
		BusinessName:     reg.BusinessName,
		BusinessCategory: reg.BusinessCategory,
		BusinessLocation: reg.BusinessLocation,
		BusinessType:     reg.BusinessType,
		Status:           reg.Status.String(),
		AdminNotes:       reg.AdminNotes,
		SubmittedAt:      reg.SubmittedAt,
		ReviewedAt:       reg.ReviewedAt,
	}
}

// FromRegistrations converts a registration list, newest first.
func FromRegistrations(regs []*models.Registration) []*RegistrationResponse {
	out := make([]*RegistrationResponse, 0, len(regs))
	for _, reg := range regs {
		out = append(out, FromRegistration(reg))
	}
	return out
}

// DocumentResponse is one stored document in admin and applicant views.
type DocumentResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"document_type"`
	DisplayName string    `json:"display_name"`
	FileName    string    `json:"file_name"`
	FileURL     string    `json:"file_url"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// FromDocuments converts a document list to HTTP responses.
func FromDocuments(docs []models.Document) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, DocumentResponse{
			ID:          doc.ID.String(),
			Type:        string(doc.Type),
			DisplayName: doc.Type.DisplayName(),
			FileName:    doc.FileName,
			FileURL:     doc.FileURL,
			UploadedAt:  doc.UploadedAt,
		})
	}
	return out
}
