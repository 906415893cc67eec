// Package audit captures key portal actions for operational review: who
// submitted what, which admin decided, which emails went out. Events are
// emitted from domain logic onto a channel and persisted by a worker, keeping
// the hot path non-blocking.
package audit

import "time"

// Action identifies what happened.
type Action string

const (
	ActionRegistrationSubmitted Action = "registration_submitted"
	ActionDocumentsSubmitted    Action = "documents_submitted"
	ActionDecisionRecorded      Action = "decision_recorded"
	ActionStatusEmailSent       Action = "status_email_sent"
	ActionStatusEmailFailed     Action = "status_email_failed"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Action          Action
	Timestamp       time.Time
	ReferenceNumber string
	// Actor is the admin username for decision events, empty for
	// applicant-driven events.
	Actor string
	// Detail carries action-specific context: decision status, document
	// count, email outcome.
	Detail string
	// RequestID correlates the event with HTTP request logs.
	RequestID string
	ClientIP  string
	Device    string
}

// Store persists audit events.
type Store interface {
	Append(event Event) error
}

// Emitter is the write side handed to services. A nil-safe helper wraps the
// channel so call sites never block or nil-check.
type Emitter struct {
	inbox chan<- Event
}

// NewEmitter wraps an event channel. A nil channel yields a no-op emitter.
func NewEmitter(inbox chan<- Event) *Emitter {
	return &Emitter{inbox: inbox}
}

// Emit delivers the event unless the inbox is full or absent; auditing is
// best-effort and must never stall a request.
func (e *Emitter) Emit(event Event) {
	if e == nil || e.inbox == nil {
		return
	}
	select {
	case e.inbox <- event:
	default:
	}
}
