package domain

import "errors"

var (
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrInvalidData     = errors.New("invalid data provided for profile operations")
	ErrUnhandled       = errors.New("unexpected error")
	ErrProfileNotFound = errors.New("profile not found")
)
