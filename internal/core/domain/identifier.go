package domain

import (
	"regexp"
	"strings"
)

// IdentifierKind classifies a free-text login identifier.
type IdentifierKind int

const (
	IdentifierUnknown IdentifierKind = iota
	IdentifierEmail
	IdentifierPhone
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10,11}$`)
)

// ClassifyIdentifier decides whether identifier looks like an email address
// or a 10-11 digit phone number. It is total: any string classifies to
// exactly one of the three kinds, never an error.
func ClassifyIdentifier(identifier string) IdentifierKind {
	if emailPattern.MatchString(identifier) {
		return IdentifierEmail
	}
	if phonePattern.MatchString(identifier) {
		return IdentifierPhone
	}
	return IdentifierUnknown
}

// NormalizeEmail lowercases an email identifier for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
