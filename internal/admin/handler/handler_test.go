package handler_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	adminauth "seventytwo/internal/admin/auth"
	"seventytwo/internal/admin/handler"
	"seventytwo/internal/platform/metrics"
	"seventytwo/internal/platform/middleware"
	"seventytwo/internal/registration/models"
	"seventytwo/internal/registration/service"
	documentstore "seventytwo/internal/registration/store/document"
	registrationstore "seventytwo/internal/registration/store/registration"
	"seventytwo/pkg/testutil"
)

type noopNotifier struct{}

func (noopNotifier) SendStatusUpdate(context.Context, *models.Registration, models.ReviewStatus, string) bool {
	return true
}

type AdminHandlerSuite struct {
	suite.Suite
	router chi.Router
	svc    *service.Service
	auth   *adminauth.Authenticator
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerSuite))
}

func (s *AdminHandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.NewWith(prometheus.NewRegistry())

	s.svc = service.New(
		registrationstore.NewInMemory(),
		documentstore.NewInMemory(),
		noopNotifier{},
		logger,
		m,
		nil,
	)

	hash, err := adminauth.HashPassword("s3cret")
	s.Require().NoError(err)
	s.auth = adminauth.New("admin", hash, "signing-key", time.Hour)

	h := handler.New(s.svc, s.auth, logger)
	s.router = chi.NewRouter()
	h.RegisterLogin(s.router)
	s.router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(s.auth, logger))
		h.Register(r)
	})
}

func (s *AdminHandlerSuite) login() string {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/login", map[string]string{
		"username": "admin",
		"password": "s3cret",
	})
	rr := testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusOK, rr.Code)
	resp := testutil.UnmarshalResponse[handler.LoginResponse](s.T(), rr)
	s.Require().NotEmpty(resp.Token)
	return resp.Token
}

func (s *AdminHandlerSuite) submit() *models.Registration {
	reg, err := s.svc.Create(context.Background(), service.NewRegistrationParams{
		FullName:     "Thandi Mokoena",
		Email:        "thandi@example.com",
		BusinessName: "Mokoena Catering",
	})
	s.Require().NoError(err)
	return reg
}

func (s *AdminHandlerSuite) TestLoginRejectsBadPassword() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/login", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	rr := testutil.DoRequest(s.router, req)
	s.Equal(http.StatusUnauthorized, rr.Code)
}

func (s *AdminHandlerSuite) TestLoginRequiresBothFields() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/login", map[string]string{
		"username": "admin",
	})
	rr := testutil.DoRequest(s.router, req)
	s.Equal(http.StatusUnprocessableEntity, rr.Code)
}

func (s *AdminHandlerSuite) TestGuardedRoutesRejectMissingToken() {
	req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/admin/registrations", nil)
	rr := testutil.DoRequest(s.router, req)
	s.Equal(http.StatusUnauthorized, rr.Code)
}

func (s *AdminHandlerSuite) TestGuardedRoutesRejectBogusToken() {
	req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/admin/registrations", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr := testutil.DoRequest(s.router, req)
	s.Equal(http.StatusUnauthorized, rr.Code)
}

func (s *AdminHandlerSuite) TestListRegistrations() {
	s.submit()
	s.submit()
	token := s.login()

	req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/admin/registrations", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusOK, rr.Code)

	rows := testutil.UnmarshalResponse[[]handler.RegistrationResponse](s.T(), rr)
	s.Len(*rows, 2)
}

func (s *AdminHandlerSuite) TestGetRegistration() {
	reg := s.submit()
	token := s.login()

	req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/admin/registrations/"+reg.ID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusOK, rr.Code)

	resp := testutil.UnmarshalResponse[handler.RegistrationResponse](s.T(), rr)
	s.Equal(reg.ReferenceNumber.String(), resp.ReferenceNumber)
	s.Equal("submitted", resp.Status)
}

func (s *AdminHandlerSuite) TestGetRegistrationNotFound() {
	token := s.login()

	req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/admin/registrations/7b1c8f0e-4a4b-4f6e-9d2a-1f2e3d4c5b6a", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := testutil.DoRequest(s.router, req)
	s.Equal(http.StatusNotFound, rr.Code)
}

func (s *AdminHandlerSuite) TestDecisionFlow() {
	reg := s.submit()
	token := s.login()

	body := map[string]string{"status": "approved", "notes": "welcome aboard"}
	path := fmt.Sprintf("/admin/registrations/%s/decision", reg.ID)
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, path, body)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusOK, rr.Code)

	resp := testutil.UnmarshalResponse[handler.RegistrationResponse](s.T(), rr)
	s.Equal("approved", resp.Status)
	s.Equal("welcome aboard", resp.AdminNotes)
	s.NotNil(resp.ReviewedAt)
}

func (s *AdminHandlerSuite) TestDecisionOnTerminalRegistrationConflicts() {
	reg := s.submit()
	token := s.login()

	path := fmt.Sprintf("/admin/registrations/%s/decision", reg.ID)
	for i, want := range []int{http.StatusOK, http.StatusConflict} {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, path, map[string]string{"status": "rejected"})
		req.Header.Set("Authorization", "Bearer "+token)
		rr := testutil.DoRequest(s.router, req)
		s.Equal(want, rr.Code, "attempt %d", i+1)
	}
}

func (s *AdminHandlerSuite) TestDecisionRequiresNotesWhenRequestingDocuments() {
	reg := s.submit()
	token := s.login()

	path := fmt.Sprintf("/admin/registrations/%s/decision", reg.ID)
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, path, map[string]string{"status": "requires_documents"})
	req.Header.Set("Authorization", "Bearer "+token)
	rr := testutil.DoRequest(s.router, req)
	s.Equal(http.StatusUnprocessableEntity, rr.Code)
}

func (s *AdminHandlerSuite) TestDecisionRejectsUnknownStatus() {
	reg := s.submit()
	token := s.login()

	path := fmt.Sprintf("/admin/registrations/%s/decision", reg.ID)
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, path, map[string]string{"status": "archived"})
	req.Header.Set("Authorization", "Bearer "+token)
	rr := testutil.DoRequest(s.router, req)
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *AdminHandlerSuite) TestDecisionRejectsMalformedID() {
	token := s.login()

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/registrations/nope/decision", map[string]string{"status": "approved"})
	req.Header.Set("Authorization", "Bearer "+token)
	rr := testutil.DoRequest(s.router, req)
	s.Equal(http.StatusBadRequest, rr.Code)
}
