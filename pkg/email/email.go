// Package email holds small helpers for addressing people by email when the
// registration record is missing a usable name.
package email

import (
	"strings"
	"unicode"
)

// DeriveDisplayName builds a "First Last" display name from the local part of
// an email address. Used as the email recipient name when a registration
// predates the full-name field.
func DeriveDisplayName(email string) string {
	first, last := DeriveNameFromEmail(email)
	if last == "User" {
		return first
	}
	return first + " " + last
}

// DeriveNameFromEmail splits the local part of an address on common
// separators and capitalizes the first and last segments.
func DeriveNameFromEmail(email string) (string, string) {
	localPart := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		localPart = email[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})

	if len(parts) == 0 {
		return "User", "User"
	}

	first := capitalize(parts[0])
	last := "User"
	if len(parts) > 1 {
		last = capitalize(parts[len(parts)-1])
	}

	return first, last
}

// IsPlausible reports whether s looks like an email address. This is a
// routing sanity check for link parameters, not RFC validation.
func IsPlausible(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.ContainsAny(s, " \t\r\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
