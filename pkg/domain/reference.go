package domain

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	dErrors "seventytwo/pkg/domain-errors"
)

// ReferenceNumber is the stable, human-quotable identifier printed on every
// confirmation view and status email. It is the correlation key for
// out-of-band document uploads, so it must survive copy/paste from email
// clients: uppercase, digits and hyphens only.
type ReferenceNumber string

var referenceCharset = regexp.MustCompile(`^[A-Z0-9-]+$`)

// NewReferenceNumber generates a reference of the form BIZ-YYYY-NNNNNN.
// The six-digit suffix is random rather than sequential so references do not
// leak registration volume.
func NewReferenceNumber(now time.Time) ReferenceNumber {
	return ReferenceNumber(fmt.Sprintf("BIZ-%d-%06d", now.Year(), rand.Intn(1_000_000)))
}

// ParseReferenceNumber normalizes and validates user-supplied input. Trailing
// whitespace and lowercase are tolerated because the value round-trips
// through email links and manual entry. Lookup stays exact-match, so only the
// charset is constrained here, not the generated shape: older registrations
// carry references issued under previous formats.
func ParseReferenceNumber(s string) (ReferenceNumber, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "reference number is required")
	}
	if len(s) > 64 || !referenceCharset.MatchString(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "reference number contains unexpected characters")
	}
	return ReferenceNumber(s), nil
}

func (r ReferenceNumber) String() string { return string(r) }
