package shared

import "errors"

var (
	// ErrNotFound indicates the record is absent or owned by another account.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates rejected input.
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates a uniqueness conflict, e.g. a duplicate invoice number.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized indicates a missing or invalid bearer token.
	ErrUnauthorized = errors.New("unauthorized")
)
