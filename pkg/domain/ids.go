package domain

import (
	"github.com/google/uuid"

	dErrors "seventytwo/pkg/domain-errors"
)

// Typed IDs keep registration and document identifiers from being mixed up at
// compile time. Parse helpers enforce the invariant that IDs are valid,
// non-nil UUIDs at trust boundaries (HTTP, storage rows).
type (
	RegistrationID uuid.UUID
	DocumentID     uuid.UUID
)

func (id RegistrationID) String() string { return uuid.UUID(id).String() }
func (id DocumentID) String() string     { return uuid.UUID(id).String() }

func (id RegistrationID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// ParseRegistrationID parses and validates a registration ID.
func ParseRegistrationID(s string) (RegistrationID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return RegistrationID{}, err
	}
	return RegistrationID(u), nil
}

// ParseDocumentID parses and validates a document ID.
func ParseDocumentID(s string) (DocumentID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return DocumentID{}, err
	}
	return DocumentID(u), nil
}

func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is not a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be the nil UUID")
	}
	return u, nil
}
