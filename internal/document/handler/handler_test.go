package handler_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"seventytwo/internal/document/blob"
	"seventytwo/internal/document/handler"
	"seventytwo/internal/document/service"
	"seventytwo/internal/platform/metrics"
	"seventytwo/internal/receipt"
	"seventytwo/internal/registration/models"
	documentstore "seventytwo/internal/registration/store/document"
	registrationstore "seventytwo/internal/registration/store/registration"
	id "seventytwo/pkg/domain"
	"seventytwo/pkg/testutil"
)

type DocumentHandlerSuite struct {
	suite.Suite
	router        chi.Router
	registrations *registrationstore.InMemory
	receipts      *receipt.InMemory
	reg           *models.Registration
}

func TestDocumentHandlerSuite(t *testing.T) {
	suite.Run(t, new(DocumentHandlerSuite))
}

func (s *DocumentHandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.registrations = registrationstore.NewInMemory()
	s.receipts = receipt.NewInMemory()

	svc := service.New(
		s.registrations,
		documentstore.NewInMemory(),
		blob.NewMemory(),
		s.receipts,
		logger,
		metrics.NewWith(prometheus.NewRegistry()),
		nil,
	)

	h := handler.New(svc, logger)
	s.router = chi.NewRouter()
	h.Register(s.router)

	reg, err := models.NewRegistration(
		id.RegistrationID(uuid.New()),
		"BIZ-2025-000042",
		"Thandi Mokoena", "thandi@example.com", "Mokoena Catering",
		time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
	)
	s.Require().NoError(err)
	s.Require().NoError(s.registrations.Create(context.Background(), reg))
	s.reg = reg
}

type formFile struct {
	field, name string
	data        []byte
}

func (s *DocumentHandlerSuite) submitForm(fields map[string]string, files []formFile) *httptest.ResponseRecorder {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		s.Require().NoError(writer.WriteField(key, value))
	}
	for _, file := range files {
		part, err := writer.CreateFormFile(file.field, file.name)
		s.Require().NoError(err)
		_, err = part.Write(file.data)
		s.Require().NoError(err)
	}
	s.Require().NoError(writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/documents", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return testutil.DoRequest(s.router, req)
}

func requiredFiles() []formFile {
	return []formFile{
		{field: "companyRegistration", name: "cipc.pdf", data: []byte("%PDF-1.4 cipc")},
		{field: "idDocument", name: "id.pdf", data: []byte("%PDF-1.4 id")},
		{field: "beeeCertificate", name: "beee.pdf", data: []byte("%PDF-1.4 beee")},
	}
}

func (s *DocumentHandlerSuite) TestSubmitStoresDocumentsAndMovesToReview() {
	rr := s.submitForm(map[string]string{"ref": "BIZ-2025-000042"}, requiredFiles())
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

	resp := testutil.UnmarshalResponse[handler.SubmitResponse](s.T(), rr)
	s.Equal("BIZ-2025-000042", resp.ReferenceNumber)
	s.Equal("under_review", resp.Status)
	s.Len(resp.Documents, 3)
	s.Zero(resp.Skipped)
	s.False(resp.LegacyLink)
}

func (s *DocumentHandlerSuite) TestSubmitRequiresRef() {
	rr := s.submitForm(map[string]string{}, requiredFiles())
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *DocumentHandlerSuite) TestSubmitUnknownReferenceIs404() {
	rr := s.submitForm(map[string]string{"ref": "REF-404"}, requiredFiles())
	s.Equal(http.StatusNotFound, rr.Code)
}

func (s *DocumentHandlerSuite) TestSubmitRejectsUnknownFieldName() {
	files := []formFile{{field: "passportScan", name: "scan.pdf", data: []byte("%PDF-1.4")}}
	rr := s.submitForm(map[string]string{"ref": "BIZ-2025-000042"}, files)
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *DocumentHandlerSuite) TestSubmitWithNoFilesIsRejected() {
	rr := s.submitForm(map[string]string{"ref": "BIZ-2025-000042"}, nil)
	s.Equal(http.StatusUnprocessableEntity, rr.Code)
}

func (s *DocumentHandlerSuite) TestSubmitRejectsUnknownMode() {
	rr := s.submitForm(map[string]string{"ref": "BIZ-2025-000042", "mode": "bulk"}, requiredFiles())
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *DocumentHandlerSuite) TestStandaloneSubmitWritesReceipt() {
	fields := map[string]string{
		"ref":   "BIZ-2025-000042",
		"email": "thandi@example.com",
		"mode":  "standalone",
	}
	rr := s.submitForm(fields, requiredFiles())
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/api/documents/receipt/BIZ-2025-000042", nil)
	rec := testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusOK, rec.Code)

	body := testutil.UnmarshalResponse[receipt.Receipt](s.T(), rec)
	s.Equal("thandi@example.com", body.Email)
	s.Len(body.Files, 3)
}

func (s *DocumentHandlerSuite) TestStandaloneSubmitWithoutEmailFlagsLegacyLink() {
	fields := map[string]string{"ref": "BIZ-2025-000042", "mode": "standalone"}
	rr := s.submitForm(fields, requiredFiles())
	s.Require().Equal(http.StatusOK, rr.Code)

	resp := testutil.UnmarshalResponse[handler.SubmitResponse](s.T(), rr)
	s.True(resp.LegacyLink)
}

func (s *DocumentHandlerSuite) TestWizardSubmitLeavesNoReceipt() {
	rr := s.submitForm(map[string]string{"ref": "BIZ-2025-000042"}, requiredFiles())
	s.Require().Equal(http.StatusOK, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/documents/receipt/BIZ-2025-000042", nil)
	rec := testutil.DoRequest(s.router, req)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *DocumentHandlerSuite) TestResubmissionReplacesDocumentSet() {
	rr := s.submitForm(map[string]string{"ref": "BIZ-2025-000042"}, requiredFiles())
	s.Require().Equal(http.StatusOK, rr.Code)

	files := []formFile{{field: "idDocument", name: "id-v2.pdf", data: []byte("%PDF-1.4 v2")}}
	rr = s.submitForm(map[string]string{"ref": "BIZ-2025-000042"}, files)
	s.Require().Equal(http.StatusOK, rr.Code)

	resp := testutil.UnmarshalResponse[handler.SubmitResponse](s.T(), rr)
	s.Require().Len(resp.Documents, 1)
	s.Equal("id-v2.pdf", resp.Documents[0].FileName)
}

func (s *DocumentHandlerSuite) TestListDocuments() {
	rr := s.submitForm(map[string]string{"ref": "BIZ-2025-000042"}, requiredFiles())
	s.Require().Equal(http.StatusOK, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/documents?ref=BIZ-2025-000042", nil)
	list := testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusOK, list.Code)

	docs := testutil.UnmarshalResponse[[]handler.DocumentResponse](s.T(), list)
	s.Len(*docs, 3)
}

func (s *DocumentHandlerSuite) TestListRequiresRef() {
	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	rr := testutil.DoRequest(s.router, req)
	s.Equal(http.StatusBadRequest, rr.Code)
}
