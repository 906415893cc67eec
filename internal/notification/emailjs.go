package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TemplateParams are the variables substituted into the EmailJS template.
// The field names are the template placeholders and must not change without
// updating the hosted template.
type TemplateParams struct {
	ToEmail         string `json:"to_email"`
	ToName          string `json:"to_name"`
	Subject         string `json:"subject"`
	HTMLContent     string `json:"html_content"`
	BusinessName    string `json:"business_name"`
	ReferenceNumber string `json:"reference_number"`
	Status          string `json:"status"`
	AdminNotes      string `json:"admin_notes"`
}

// Sender delivers a composed email to one recipient.
type Sender interface {
	Send(ctx context.Context, params TemplateParams) error
}

// EmailJS sends email through the EmailJS REST API.
type EmailJS struct {
	baseURL    string
	serviceID  string
	templateID string
	publicKey  string
	client     *http.Client
}

func NewEmailJS(baseURL, serviceID, templateID, publicKey string) *EmailJS {
	return &EmailJS{
		baseURL:    baseURL,
		serviceID:  serviceID,
		templateID: templateID,
		publicKey:  publicKey,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

type emailJSRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	TemplateParams TemplateParams `json:"template_params"`
}

func (e *EmailJS) Send(ctx context.Context, params TemplateParams) error {
	payload, err := json.Marshal(emailJSRequest{
		ServiceID:      e.serviceID,
		TemplateID:     e.templateID,
		UserID:         e.publicKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("encode email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/api/v1.0/email/send", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email service returned %d: %s", resp.StatusCode, body)
	}
	return nil
}
