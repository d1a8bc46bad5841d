// Package validate holds the pure field validators for signup and login
// input. Each function either returns the normalized value or a
// *domain.ValidationError naming the offending field.
package validate

import (
	"regexp"
	"strings"

	"github.com/edusign/edusign-api/internal/core/domain"
)

const (
	MinFullNameLen = 2
	MaxFullNameLen = 100
	MaxEmailLen    = 255
	MinPasswordLen = 8
	MinAge         = 2
	MaxAge         = 100
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// weakPasswords are rejected regardless of length, compared case-insensitively.
var weakPasswords = map[string]struct{}{
	"password":    {},
	"123456":      {},
	"password123": {},
	"admin":       {},
	"qwerty":      {},
}

// NormalizeEmail lower-cases and trims an address. Every comparison and every
// store access uses the normalized form; this is the uniqueness key.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FullName trims the name and checks its length bounds.
func FullName(s string) (string, error) {
	name := strings.TrimSpace(s)
	if len(name) < MinFullNameLen {
		return "", &domain.ValidationError{Field: "fullName", Reason: "must be at least 2 characters long"}
	}
	if len(name) > MaxFullNameLen {
		return "", &domain.ValidationError{Field: "fullName", Reason: "must be at most 100 characters long"}
	}
	return name, nil
}

// Email normalizes the address and checks shape and length.
func Email(s string) (string, error) {
	email := NormalizeEmail(s)
	if len(email) > MaxEmailLen {
		return "", &domain.ValidationError{Field: "email", Reason: "must be at most 255 characters long"}
	}
	if !emailPattern.MatchString(email) {
		return "", &domain.ValidationError{Field: "email", Reason: "must be a valid email address"}
	}
	return email, nil
}

// Password checks the minimum length and the weak-password deny-list. The
// value is never normalized.
func Password(s string) error {
	if len(s) < MinPasswordLen {
		return &domain.ValidationError{Field: "password", Reason: "must be at least 8 characters long"}
	}
	if _, weak := weakPasswords[strings.ToLower(s)]; weak {
		return &domain.ValidationError{Field: "password", Reason: "is too common, choose a stronger one"}
	}
	return nil
}

// Age checks the signup age bounds. The courses-by-age domain uses a wider
// range and has its own rules; do not reuse this there.
func Age(n int) error {
	if n < MinAge || n > MaxAge {
		return &domain.ValidationError{Field: "age", Reason: "must be between 2 and 100"}
	}
	return nil
}
