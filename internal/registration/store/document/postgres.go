package document

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"seventytwo/internal/registration/models"
	id "seventytwo/pkg/domain"
)

// Postgres persists document records in the registration_documents table.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (s *Postgres) Insert(ctx context.Context, doc *models.Document) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO registration_documents (id, registration_id, document_type, file_name, file_url, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.UUID(doc.ID), uuid.UUID(doc.RegistrationID), string(doc.Type),
		doc.FileName, doc.FileURL, doc.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (s *Postgres) DeleteByRegistration(ctx context.Context, regID id.RegistrationID) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM registration_documents WHERE registration_id = $1`, uuid.UUID(regID))
	if err != nil {
		return fmt.Errorf("delete documents: %w", err)
	}
	return nil
}

func (s *Postgres) ListByRegistration(ctx context.Context, regID id.RegistrationID) ([]models.Document, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, registration_id, document_type, file_name, file_url, uploaded_at
		FROM registration_documents
		WHERE registration_id = $1
		ORDER BY uploaded_at DESC`, uuid.UUID(regID))
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		var (
			doc     models.Document
			docID   uuid.UUID
			ownerID uuid.UUID
			docType string
		)
		if err := rows.Scan(&docID, &ownerID, &docType, &doc.FileName, &doc.FileURL, &doc.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		doc.ID = id.DocumentID(docID)
		doc.RegistrationID = id.RegistrationID(ownerID)
		doc.Type = models.DocumentType(docType)
		out = append(out, doc)
	}
	return out, rows.Err()
}
