// Package notification composes and delivers status update emails to
// applicants. Delivery is best-effort: a failed email never fails the
// decision that triggered it.
package notification

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"seventytwo/internal/registration/models"
)

// Message is a composed email ready for delivery.
type Message struct {
	Subject  string
	HTMLBody string
}

var statusSubjects = map[models.ReviewStatus]string{
	models.StatusApproved:          "Your Application Has Been Approved - Township Business Development Programme",
	models.StatusRejected:          "Application Status Update - Township Business Development Programme",
	models.StatusUnderReview:       "Your Application is Under Review - Township Business Development Programme",
	models.StatusRequiresDocuments: "Additional Documents Required - Township Business Development Programme",
}

type templateData struct {
	FullName        string
	BusinessName    string
	Category        string
	ReferenceNumber string
	SubmittedAt     string
	AdminNotes      string
	UploadURL       string
}

// Compose renders the email for a status change. Statuses without a template
// (submitted, or anything unrecognized) are an error; the caller must not
// fall back to a generic message.
func Compose(reg *models.Registration, status models.ReviewStatus, notes string, baseURL string) (Message, error) {
	subject, ok := statusSubjects[status]
	if !ok {
		return Message{}, fmt.Errorf("no email template for status %q", status)
	}
	tmpl, ok := statusTemplates[status]
	if !ok {
		return Message{}, fmt.Errorf("no email template for status %q", status)
	}

	data := templateData{
		FullName:        reg.FullName,
		BusinessName:    reg.BusinessName,
		Category:        reg.BusinessCategory,
		ReferenceNumber: reg.ReferenceNumber.String(),
		SubmittedAt:     reg.SubmittedAt.Format(time.DateOnly),
		AdminNotes:      notes,
	}
	if status == models.StatusRequiresDocuments {
		data.UploadURL = uploadLink(baseURL, reg)
	}

	var body strings.Builder
	if err := tmpl.Execute(&body, data); err != nil {
		return Message{}, fmt.Errorf("render %s email: %w", status, err)
	}
	return Message{Subject: subject, HTMLBody: body.String()}, nil
}

// uploadLink builds the standalone document upload URL embedded in the
// requires_documents email. The email parameter lets the upload page
// pre-associate the submission; older links without it still work.
func uploadLink(baseURL string, reg *models.Registration) string {
	q := url.Values{}
	q.Set("ref", reg.ReferenceNumber.String())
	q.Set("email", reg.Email)
	return fmt.Sprintf("%s/register/documents?%s", strings.TrimRight(baseURL, "/"), q.Encode())
}

var statusTemplates = map[models.ReviewStatus]*template.Template{
	models.StatusApproved:          template.Must(template.New("approved").Parse(approvedHTML)),
	models.StatusRejected:          template.Must(template.New("rejected").Parse(rejectedHTML)),
	models.StatusUnderReview:       template.Must(template.New("under_review").Parse(underReviewHTML)),
	models.StatusRequiresDocuments: template.Must(template.New("requires_documents").Parse(requiresDocumentsHTML)),
}

const emailHeader = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1a1a2e; max-width: 600px; margin: 0 auto;">
<div style="background: #0a2540; color: #ffffff; padding: 24px; text-align: center;">
  <h1 style="margin: 0; font-size: 20px;">Township Business Development Programme</h1>
</div>
<div style="padding: 24px;">`

const emailDetails = `<div style="background: #f5f7fa; border-radius: 8px; padding: 16px; margin: 16px 0;">
  <p style="margin: 4px 0;"><strong>Reference Number:</strong> {{.ReferenceNumber}}</p>
  <p style="margin: 4px 0;"><strong>Business Name:</strong> {{.BusinessName}}</p>
  <p style="margin: 4px 0;"><strong>Category:</strong> {{.Category}}</p>
  <p style="margin: 4px 0;"><strong>Submitted:</strong> {{.SubmittedAt}}</p>
</div>`

const emailFooter = `<p>Best regards,<br><strong>Township Business Development Programme Team</strong></p>
</div>
<div style="padding: 16px; text-align: center; font-size: 12px; color: #6b7280;">
  <p>This email was sent automatically upon application status update.</p>
</div>
</body>
</html>`

const approvedHTML = emailHeader + `
<h2>Congratulations, {{.FullName}}!</h2>
<p>Your application to the programme has been <strong>approved</strong>.</p>
` + emailDetails + `
{{if .AdminNotes}}<div style="border-left: 4px solid #16a34a; padding-left: 12px; margin: 16px 0;">
  <h4 style="margin: 4px 0;">Notes from our team:</h4>
  <p>{{.AdminNotes}}</p>
</div>{{end}}
<p>Our team will be in touch with the next steps for onboarding your business.</p>
` + emailFooter

const rejectedHTML = emailHeader + `
<h2>Dear {{.FullName}},</h2>
<p>Thank you for your application. After careful review we are unable to
approve it at this time.</p>
` + emailDetails + `
{{if .AdminNotes}}<div style="border-left: 4px solid #dc2626; padding-left: 12px; margin: 16px 0;">
  <h4 style="margin: 4px 0;">Reviewer feedback:</h4>
  <p>{{.AdminNotes}}</p>
</div>{{end}}
<p>You are welcome to apply again in a future intake.</p>
` + emailFooter

const underReviewHTML = emailHeader + `
<h2>Dear {{.FullName}},</h2>
<p>Your application is now <strong>under review</strong>. Our team is
assessing your submission and supporting documents.</p>
` + emailDetails + `
{{if .AdminNotes}}<div style="border-left: 4px solid #2563eb; padding-left: 12px; margin: 16px 0;">
  <p>{{.AdminNotes}}</p>
</div>{{end}}
<p>We will notify you as soon as a decision has been made. No action is
required from you at this stage.</p>
` + emailFooter

const requiresDocumentsHTML = emailHeader + `
<h2>Dear {{.FullName}},</h2>
<p>We need additional documents to continue processing your application.</p>
` + emailDetails + `
{{if .AdminNotes}}<div style="border-left: 4px solid #d97706; padding-left: 12px; margin: 16px 0;">
  <h4 style="margin: 4px 0;">Required documents:</h4>
  <p>{{.AdminNotes}}</p>
</div>{{end}}
<p><strong>Action required:</strong> please upload the requested documents as
soon as possible to avoid delays in processing your application.</p>
<p style="margin: 24px 0;">
  <a href="{{.UploadURL}}" style="background: #0a2540; color: #ffffff; padding: 12px 24px; border-radius: 6px; text-decoration: none;">Upload Documents</a>
</p>
<p>Please ensure all documents are clear, legible, and in PDF or image format
(JPG, PNG).</p>
` + emailFooter
