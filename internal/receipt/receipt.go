// Package receipt stores the outcome of out-of-band document submissions so
// the confirmation view can show what was received, keyed by reference
// number. It replaces the browser-local slots the portal's earlier front end
// kept for the same purpose.
package receipt

import (
	"context"
	"time"
)

// Receipt summarizes one standalone document submission.
type Receipt struct {
	ReferenceNumber string            `json:"reference_number"`
	Email           string            `json:"email,omitempty"`
	// LegacyLink marks submissions from an older email link format that
	// carried no email parameter.
	LegacyLink  bool              `json:"legacy_link,omitempty"`
	Files       map[string]string `json:"files"`
	SubmittedAt time.Time         `json:"submitted_at"`
	Device      string            `json:"device,omitempty"`
}

// Store persists submission receipts.
type Store interface {
	Put(ctx context.Context, receipt Receipt) error
	// Get returns the most recent receipt for a reference, or nil when none
	// is stored.
	Get(ctx context.Context, referenceNumber string) (*Receipt, error)
}
