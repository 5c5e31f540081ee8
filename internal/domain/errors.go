package domain

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidState        = errors.New("invalid state")
	ErrConflict            = errors.New("conflict")
	ErrMalformedSubmission = errors.New("malformed submission")
	ErrStorageUnavailable  = errors.New("storage unavailable")
)
