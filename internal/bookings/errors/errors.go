package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrPreconditionFailed reports a conditional update that matched no
	// document: the booking is missing, held by another actor, or not in
	// a legal source state. The caller disambiguates by re-reading.
	ErrPreconditionFailed = errors.New("booking transition precondition not met")
)
