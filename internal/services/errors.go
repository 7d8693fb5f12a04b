package services

import "errors"

// Sentinel errors classifying every business failure the services return.
// Handlers map them to HTTP statuses with errors.Is; anything that does not
// match is a persistence fault and surfaces as a server error.
var (
	// ErrValidation marks malformed or incomplete input.
	ErrValidation = errors.New("validation failed")

	// ErrNotEligible marks a request that is well-formed but not allowed in
	// the current state, e.g. a basket below the business minimum.
	ErrNotEligible = errors.New("not eligible")

	// ErrConflict marks a lost race or a duplicate, e.g. accepting a line
	// that was already decided.
	ErrConflict = errors.New("conflict")

	// ErrNotFound marks a missing record. Also returned for records owned by
	// another tenant, so existence is never leaked.
	ErrNotFound = errors.New("not found")
)
