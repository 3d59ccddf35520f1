package id

import "github.com/google/uuid"

// New returns a fresh message id.
func New() string { return uuid.NewString() }

// Valid reports whether s parses as a canonical UUID.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
