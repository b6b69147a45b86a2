package store

import (
	"github.com/google/uuid"
)

// NewID returns a fresh identifier. Ids travel as opaque strings in
// requests and responses.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether s is a well-formed identifier.
func ValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
