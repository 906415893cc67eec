package notification

import (
	"context"
	"sync"

	"seventytwo/pkg/platform/sentinel"
)

// Recorder is a Sender that captures sends in memory, for tests and local
// development without an email provider.
type Recorder struct {
	mu   sync.Mutex
	sent []TemplateParams
	fail bool
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Send(_ context.Context, params TemplateParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return sentinel.ErrUnavailable
	}
	r.sent = append(r.sent, params)
	return nil
}

// Sent returns a snapshot of delivered emails.
func (r *Recorder) Sent() []TemplateParams {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]TemplateParams, len(r.sent))
	copy(out, r.sent)
	return out
}

// Fail makes subsequent sends error, simulating a provider outage.
func (r *Recorder) Fail() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = true
}
