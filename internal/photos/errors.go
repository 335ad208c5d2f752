package photos

import "errors"

var (
	ErrNotFound     = errors.New("photo not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotAnImage   = errors.New("file is not an image")
)
