package errors

import "errors"

var (
	ErrNotFound = errors.New("story not found")

	ErrInvalidID = errors.New("invalid story ID format")
)
