package analyses

import "errors"

var (
	// ErrNotFound indicates the analysis does not exist.
	ErrNotFound = errors.New("analysis not found")
	// ErrDuplicate indicates a second analysis row for the same photo.
	ErrDuplicate = errors.New("analysis already exists for photo")
	// ErrInvalidInput indicates a malformed request.
	ErrInvalidInput = errors.New("invalid input")
)
