package errors

import "errors"

var (
	ErrNotFound = errors.New("guide application not found")

	ErrInvalidID = errors.New("invalid guide application ID format")

	// ErrAlreadyDecided reports a decision attempted on an application
	// that already reached a terminal status.
	ErrAlreadyDecided = errors.New("guide application already decided")
)
