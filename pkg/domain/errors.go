package domain

import "errors"

// Error kinds shared by every layer. Specific domain errors wrap one of these
// with %w so callers can match either the rule or the kind.
var (
	// ErrInvalidArgument is returned when the caller supplied a structurally invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrFailedPrecondition is returned when the account state does not allow the operation.
	ErrFailedPrecondition = errors.New("failed precondition")
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
)
