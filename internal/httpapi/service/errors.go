package service

import "errors"

// Sentinel errors shared by the services. Handlers map these onto HTTP status
// codes; anything else is a 500.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)
