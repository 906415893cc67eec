package models

import (
	"time"

	id "seventytwo/pkg/domain"
	dErrors "seventytwo/pkg/domain-errors"
)

// DocumentType enumerates the five supporting-document slots. The wire keys
// match the upload form field names; display names match what reviewers and
// applicants see.
type DocumentType string

const (
	DocCompanyRegistration DocumentType = "companyRegistration"
	DocIDProof             DocumentType = "idDocument"
	DocBBBEECertificate    DocumentType = "beeeCertificate"
	DocTaxClearance        DocumentType = "taxClearance"
	DocBusinessProfile     DocumentType = "businessProfile"
)

// AllDocumentTypes lists every slot in display order.
var AllDocumentTypes = []DocumentType{
	DocCompanyRegistration,
	DocIDProof,
	DocBBBEECertificate,
	DocTaxClearance,
	DocBusinessProfile,
}

// RequiredDocumentTypes is the subset that gates submission.
var RequiredDocumentTypes = []DocumentType{
	DocCompanyRegistration,
	DocIDProof,
	DocBBBEECertificate,
}

var documentDisplayNames = map[DocumentType]string{
	DocCompanyRegistration: "CIPC Registration Document",
	DocIDProof:             "Proof of ID",
	DocBBBEECertificate:    "Valid B-BBEE Certificate/Affidavit",
	DocTaxClearance:        "Valid Tax Clearance Certificate (Optional)",
	DocBusinessProfile:     "Business Profile (Optional)",
}

// ParseDocumentType validates a wire key.
func ParseDocumentType(s string) (DocumentType, error) {
	if _, ok := documentDisplayNames[DocumentType(s)]; !ok {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown document type: %s", s)
	}
	return DocumentType(s), nil
}

// DisplayName returns the reviewer-facing name for the slot.
func (t DocumentType) DisplayName() string {
	return documentDisplayNames[t]
}

// Required reports whether the slot gates submission.
func (t DocumentType) Required() bool {
	for _, r := range RequiredDocumentTypes {
		if t == r {
			return true
		}
	}
	return false
}

// Document is one stored supporting file. A registration's document set is
// replaced wholesale on every submission, never appended to.
type Document struct {
	ID             id.DocumentID     `json:"id"`
	RegistrationID id.RegistrationID `json:"registration_id"`
	Type           DocumentType      `json:"document_type"`
	FileName       string            `json:"file_name"`
	FileURL        string            `json:"file_url"`
	UploadedAt     time.Time         `json:"uploaded_at"`
}
