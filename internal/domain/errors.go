package domain

import "errors"

// Ledger error taxonomy. Services return these (possibly wrapped with detail);
// the HTTP layer maps them to response codes with errors.Is.
var (
	ErrNotAuthorized       = errors.New("actor is not authorized for this operation")
	ErrDriverNotFound      = errors.New("driver not found")
	ErrAccountNotFound     = errors.New("spending account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrLimitExceeded       = errors.New("top-up would push balance above spending limit")
	ErrValidation          = errors.New("validation failed")
)
