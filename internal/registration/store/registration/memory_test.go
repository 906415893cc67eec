package registration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"seventytwo/internal/registration/models"
	id "seventytwo/pkg/domain"
	"seventytwo/pkg/platform/sentinel"
)

type RegistrationStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestRegistrationStoreSuite(t *testing.T) {
	suite.Run(t, new(RegistrationStoreSuite))
}

func (s *RegistrationStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *RegistrationStoreSuite) makeRegistration(ref string) *models.Registration {
	return &models.Registration{
		ID:              id.RegistrationID(uuid.New()),
		ReferenceNumber: id.ReferenceNumber(ref),
		FullName:        "Thandi Mokoena",
		Email:           "thandi@example.com",
		BusinessName:    "Mokoena Catering",
		Status:          models.StatusSubmitted,
		SubmittedAt:     time.Now().UTC(),
	}
}

func (s *RegistrationStoreSuite) TestCreateAndFind() {
	reg := s.makeRegistration("BIZ-2025-000001")
	s.Require().NoError(s.store.Create(s.ctx, reg))

	byID, err := s.store.FindByID(s.ctx, reg.ID)
	s.Require().NoError(err)
	s.Equal(reg.ReferenceNumber, byID.ReferenceNumber)

	byRef, err := s.store.FindByReference(s.ctx, reg.ReferenceNumber)
	s.Require().NoError(err)
	s.Equal(reg.ID, byRef.ID)
}

func (s *RegistrationStoreSuite) TestFindUnknownReturnsNotFound() {
	_, err := s.store.FindByID(s.ctx, id.RegistrationID(uuid.New()))
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.FindByReference(s.ctx, "BIZ-2025-999999")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RegistrationStoreSuite) TestDuplicateReferenceConflicts() {
	s.Require().NoError(s.store.Create(s.ctx, s.makeRegistration("BIZ-2025-000001")))

	err := s.store.Create(s.ctx, s.makeRegistration("BIZ-2025-000001"))
	s.Require().ErrorIs(err, sentinel.ErrConflict)
}

func (s *RegistrationStoreSuite) TestReferenceLookupIsCaseInsensitive() {
	s.Require().NoError(s.store.Create(s.ctx, s.makeRegistration("BIZ-2025-000001")))

	found, err := s.store.FindByReference(s.ctx, "biz-2025-000001")
	s.Require().NoError(err)
	s.Equal(id.ReferenceNumber("BIZ-2025-000001"), found.ReferenceNumber)
}

func (s *RegistrationStoreSuite) TestFindReturnsACopy() {
	reg := s.makeRegistration("BIZ-2025-000001")
	s.Require().NoError(s.store.Create(s.ctx, reg))

	first, err := s.store.FindByID(s.ctx, reg.ID)
	s.Require().NoError(err)
	first.AdminNotes = "mutated by caller"

	second, err := s.store.FindByID(s.ctx, reg.ID)
	s.Require().NoError(err)
	s.Empty(second.AdminNotes)
}

func (s *RegistrationStoreSuite) TestUpdateStatus() {
	reg := s.makeRegistration("BIZ-2025-000001")
	s.Require().NoError(s.store.Create(s.ctx, reg))

	reviewedAt := time.Now().UTC()
	err := s.store.UpdateStatus(s.ctx, reg.ID, models.StatusApproved, "great application", reviewedAt)
	s.Require().NoError(err)

	stored, err := s.store.FindByID(s.ctx, reg.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusApproved, stored.Status)
	s.Equal("great application", stored.AdminNotes)
	s.Require().NotNil(stored.ReviewedAt)
	s.Equal(reviewedAt, *stored.ReviewedAt)
}

func (s *RegistrationStoreSuite) TestUpdateStatusUnknownIDReturnsNotFound() {
	err := s.store.UpdateStatus(s.ctx, id.RegistrationID(uuid.New()), models.StatusApproved, "", time.Now())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RegistrationStoreSuite) TestListNewestFirst() {
	first := s.makeRegistration("BIZ-2025-000001")
	second := s.makeRegistration("BIZ-2025-000002")
	s.Require().NoError(s.store.Create(s.ctx, first))
	s.Require().NoError(s.store.Create(s.ctx, second))

	all, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal(second.ID, all[0].ID)
	s.Equal(first.ID, all[1].ID)
}
