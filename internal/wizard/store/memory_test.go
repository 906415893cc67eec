package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"seventytwo/internal/wizard/models"
)

type DraftStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestDraftStoreSuite(t *testing.T) {
	suite.Run(t, new(DraftStoreSuite))
}

func (s *DraftStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *DraftStoreSuite) TestLoadUnknownKeyReturnsEmptyDraft() {
	draft, err := s.store.Load(s.ctx, "session-1")
	s.Require().NoError(err)
	s.Require().NotNil(draft)
	s.Nil(draft.Account)
	s.Nil(draft.Business)
}

func (s *DraftStoreSuite) TestSaveStepAccumulatesAcrossSteps() {
	err := s.store.SaveStep(s.ctx, "session-1", &models.AccountInfo{FullName: "Thandi Mokoena"})
	s.Require().NoError(err)
	err = s.store.SaveStep(s.ctx, "session-1", &models.BusinessInfo{BusinessName: "Mokoena Catering"})
	s.Require().NoError(err)

	draft, err := s.store.Load(s.ctx, "session-1")
	s.Require().NoError(err)
	s.Require().NotNil(draft.Account)
	s.Require().NotNil(draft.Business)
	s.Equal("Thandi Mokoena", draft.Account.FullName)
	s.Equal("Mokoena Catering", draft.Business.BusinessName)
}

func (s *DraftStoreSuite) TestSaveStepIsolatesSessions() {
	s.Require().NoError(s.store.SaveStep(s.ctx, "session-1", &models.AccountInfo{FullName: "Thandi Mokoena"}))
	s.Require().NoError(s.store.SaveStep(s.ctx, "session-2", &models.AccountInfo{FullName: "Sipho Dlamini"}))

	one, err := s.store.Load(s.ctx, "session-1")
	s.Require().NoError(err)
	two, err := s.store.Load(s.ctx, "session-2")
	s.Require().NoError(err)
	s.Equal("Thandi Mokoena", one.Account.FullName)
	s.Equal("Sipho Dlamini", two.Account.FullName)
}

func (s *DraftStoreSuite) TestCorruptContentYieldsEmptyDraft() {
	s.store.Corrupt("session-1", []byte(`{"step1":{"fullName":`))

	draft, err := s.store.Load(s.ctx, "session-1")
	s.Require().NoError(err)
	s.Nil(draft.Account)
}

func (s *DraftStoreSuite) TestSaveStepOverCorruptContentStartsFresh() {
	s.store.Corrupt("session-1", []byte(`not json at all`))

	err := s.store.SaveStep(s.ctx, "session-1", &models.AccountInfo{FullName: "Thandi Mokoena"})
	s.Require().NoError(err)

	draft, err := s.store.Load(s.ctx, "session-1")
	s.Require().NoError(err)
	s.Require().NotNil(draft.Account)
	s.Equal("Thandi Mokoena", draft.Account.FullName)
}

func (s *DraftStoreSuite) TestClearRemovesDraft() {
	s.Require().NoError(s.store.SaveStep(s.ctx, "session-1", &models.AccountInfo{FullName: "Thandi Mokoena"}))
	s.Require().NoError(s.store.Clear(s.ctx, "session-1"))

	draft, err := s.store.Load(s.ctx, "session-1")
	s.Require().NoError(err)
	s.Nil(draft.Account)
}

func (s *DraftStoreSuite) TestClearUnknownKeyIsIdempotent() {
	s.Require().NoError(s.store.Clear(s.ctx, "never-seen"))
}
