package domain

import (
	"regexp"
	"strings"
)

// emailRegex accepts the local@domain.tld shape: non-whitespace local part,
// non-whitespace domain, and a dot-separated TLD.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email is a validated, case-insensitive email address.
// The zero value is invalid; use NewEmail to construct one.
type Email struct {
	value string
}

// NewEmail validates the raw address and returns a normalized (lowercase) Email.
func NewEmail(raw string) (Email, error) {
	if !emailRegex.MatchString(raw) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: strings.ToLower(raw)}, nil
}

// String returns the normalized email value.
func (e Email) String() string {
	return e.value
}

// Equals compares two emails by their normalized values.
func (e Email) Equals(other Email) bool {
	return e.value == other.value
}

// IsZero reports whether the email is the invalid zero value.
func (e Email) IsZero() bool {
	return e.value == ""
}
