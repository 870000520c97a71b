package models

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("not authorized to perform the requested action")
	ErrInvalidTarget      = errors.New("exactly one target must be provided")
	ErrCircularReference  = errors.New("circular reference detected in comment ancestry")
	ErrInvariantViolation = errors.New("internal invariant violation")
)
