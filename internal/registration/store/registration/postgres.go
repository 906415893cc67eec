package registration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"seventytwo/internal/registration/models"
	id "seventytwo/pkg/domain"
	"seventytwo/pkg/platform/sentinel"
)

// Postgres persists registrations in the business_registrations table.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

const registrationColumns = `id, reference_number, full_name, email, mobile_number,
	business_name, business_category, business_location, business_type,
	status, admin_notes, submitted_at, reviewed_at`

func (s *Postgres) Create(ctx context.Context, reg *models.Registration) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO business_registrations (`+registrationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		uuid.UUID(reg.ID), reg.ReferenceNumber.String(), reg.FullName, reg.Email, reg.MobileNumber,
		reg.BusinessName, reg.BusinessCategory, reg.BusinessLocation, reg.BusinessType,
		reg.Status.String(), reg.AdminNotes, reg.SubmittedAt, reg.ReviewedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create registration: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, regID id.RegistrationID) (*models.Registration, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+registrationColumns+`
		FROM business_registrations WHERE id = $1`, uuid.UUID(regID))
	return scanRegistration(row)
}

func (s *Postgres) FindByReference(ctx context.Context, ref id.ReferenceNumber) (*models.Registration, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+registrationColumns+`
		FROM business_registrations WHERE reference_number = $1`, ref.String())
	return scanRegistration(row)
}

func (s *Postgres) UpdateStatus(ctx context.Context, regID id.RegistrationID, status models.ReviewStatus, notes string, reviewedAt time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE business_registrations
		SET status = $2, admin_notes = $3, reviewed_at = $4
		WHERE id = $1`,
		uuid.UUID(regID), status.String(), notes, reviewedAt,
	)
	if err != nil {
		return fmt.Errorf("update registration status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) List(ctx context.Context) ([]*models.Registration, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+registrationColumns+`
		FROM business_registrations ORDER BY submitted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var out []*models.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row rowScanner) (*models.Registration, error) {
	var (
		reg   models.Registration
		regID uuid.UUID
		ref   string
	)
	err := row.Scan(
		&regID, &ref, &reg.FullName, &reg.Email, &reg.MobileNumber,
		&reg.BusinessName, &reg.BusinessCategory, &reg.BusinessLocation, &reg.BusinessType,
		&reg.Status, &reg.AdminNotes, &reg.SubmittedAt, &reg.ReviewedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan registration: %w", err)
	}
	reg.ID = id.RegistrationID(regID)
	reg.ReferenceNumber = id.ReferenceNumber(ref)
	return &reg, nil
}

func isUniqueViolation(err error) bool {
	// 23505 is the postgres unique_violation class.
	var pgErr interface{ SQLState() string }
	return errors.As(err, &pgErr) && pgErr.SQLState() == "23505"
}
