package handler

import (
	"time"

	"seventytwo/internal/document/service"
	"seventytwo/internal/registration/models"
)

// SubmitResponse is the HTTP response for a document submission.
type SubmitResponse struct {
	ReferenceNumber string             `json:"reference_number"`
	Status          string             `json:"status"`
	Documents       []DocumentResponse `json:"documents"`
	Skipped         int                `json:"skipped,omitempty"`
	LegacyLink      bool               `json:"legacy_link,omitempty"`
}

// DocumentResponse is one stored document.
type DocumentResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"document_type"`
	DisplayName string    `json:"display_name"`
	FileName    string    `json:"file_name"`
	FileURL     string    `json:"file_url"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// FromResult converts a reconciliation result to an HTTP response.
func FromResult(result *service.Result) *SubmitResponse {
	return &SubmitResponse{
		ReferenceNumber: result.Registration.ReferenceNumber.String(),
		Status:          result.Registration.Status.String(),
		Documents:       FromDocuments(result.Documents),
		Skipped:         result.Skipped,
		LegacyLink:      result.LegacyLink,
	}
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
